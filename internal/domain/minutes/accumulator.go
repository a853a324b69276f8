package minutes

import (
	"fmt"
	"strings"
	"time"
)

// Accumulator owns the growing ordered list of timestamped transcript
// segments. Insertion order is temporal order and is preserved verbatim in
// the snapshot; near-duplicate texts are distinct capture events and are
// never deduplicated.
type Accumulator struct {
	segments []TranscriptSegment
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Record appends one segment.
func (a *Accumulator) Record(text string, at time.Time) {
	a.segments = append(a.segments, TranscriptSegment{CapturedAt: at, Text: text})
}

// Count reports the number of recorded segments.
func (a *Accumulator) Count() int {
	return len(a.segments)
}

// Snapshot renders the transcript as newline-delimited "[HH:MM:SS] text"
// lines in insertion order.
func (a *Accumulator) Snapshot() string {
	lines := make([]string, len(a.segments))
	for i, seg := range a.segments {
		lines[i] = fmt.Sprintf("[%s] %s", seg.CapturedAt.Format("15:04:05"), seg.Text)
	}
	return strings.Join(lines, "\n")
}

// ShouldRefreshInterim reports whether the segment count is a positive
// multiple of everyN. Used to throttle interim-summary calls.
func (a *Accumulator) ShouldRefreshInterim(everyN int) bool {
	if everyN <= 0 || len(a.segments) == 0 {
		return false
	}
	return len(a.segments)%everyN == 0
}

// Reset clears all segments.
func (a *Accumulator) Reset() {
	a.segments = nil
}
