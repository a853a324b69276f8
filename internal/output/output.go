package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Uploading(name string) {
	fmt.Fprintf(f.w, "⬆️  Uploading %s...\n", name)
}

func (f *Formatter) Transcribing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio...\n")
}

func (f *Formatter) GeneratingMinutes() {
	fmt.Fprintf(f.w, "🤖 Generating meeting minutes...\n")
}

func (f *Formatter) ClipCaptured(n int, preview string) {
	fmt.Fprintf(f.w, "🎙️  Clip %d: %s\n", n, preview)
}

func (f *Formatter) ClipSkipped(n int, reason string) {
	fmt.Fprintf(f.w, "⚠️  Clip %d skipped: %s\n", n, reason)
}

func (f *Formatter) InterimSummary(summary string) {
	fmt.Fprintf(f.w, "\n--- Interim summary ---\n%s\n-----------------------\n\n", summary)
}

func (f *Formatter) MeetingSaved(id, title string, partial bool) {
	if partial {
		fmt.Fprintf(f.w, "\n📁 Saved %q (%s) without minutes — run 'minutes regen %s' to retry\n", title, id, shortID(id))
		return
	}
	fmt.Fprintf(f.w, "\n📁 Meeting saved: %q (%s)\n", title, id)
}

func (f *Formatter) RecordingStopped(duration time.Duration) {
	fmt.Fprintf(f.w, "⏹️  Recording stopped (%s)\n", formatDuration(duration))
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) MeetingListHeader() {
	fmt.Fprintf(f.w, "📁 Meetings:\n\n")
}

func (f *Formatter) MeetingListItem(id string, createdAt time.Time, title string, hasReport bool) {
	status := " 📝"
	if hasReport {
		status = " ✅"
	}
	fmt.Fprintf(f.w, "  %s  %s  %s%s\n", shortID(id), createdAt.Local().Format("2006-01-02 15:04"), title, status)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
