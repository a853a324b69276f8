package usecases

import (
	"context"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/genai"
)

// InterimFallback is shown when an interim-summary refresh fails. Interim
// summaries are advisory; the previous one is kept and capture continues.
const InterimFallback = "(interim summary unavailable)"

// ReportError is a terminal failure of final-report generation. A finalize
// without a report is incomplete, so this propagates to the caller.
type ReportError struct {
	Cause error
}

func (e *ReportError) Error() string { return "generating minutes: " + e.Cause.Error() }
func (e *ReportError) Unwrap() error { return e.Cause }

// Report generates meeting minutes from a transcript snapshot, or from the
// original media directly. Interim and final share the same underlying call
// and differ in prompt weight and failure policy.
type Report struct {
	Client        *genai.Client
	MinutesPrompt string
	InterimPrompt string
	MediaProfile  genai.PollProfile // poll bounds for the media-based path
}

// Interim produces a cheap mid-session summary. It never fails the capture
// flow: on any error it returns the fallback string and false.
func (r *Report) Interim(ctx context.Context, snapshot string) (string, bool) {
	text, err := r.Client.Generate(ctx, r.InterimPrompt+"\n\nTranscript so far:\n"+snapshot, nil)
	if err != nil {
		return InterimFallback, false
	}
	return text, true
}

// Final produces the full minutes from the complete transcript.
func (r *Report) Final(ctx context.Context, snapshot string) (string, error) {
	text, err := r.Client.Generate(ctx, r.MinutesPrompt+"\n\nTranscript:\n"+snapshot, nil)
	if err != nil {
		return "", &ReportError{Cause: err}
	}
	return text, nil
}

// FinalFromMedia produces the minutes straight from the original recording,
// bypassing the transcript. Used when a stored meeting has audio but its
// transcript was edited away or is untrusted.
func (r *Report) FinalFromMedia(ctx context.Context, payload []byte, filename string) (string, error) {
	file, cleanup, err := stageAndUpload(ctx, r.Client, payload, filename, r.MediaProfile)
	if err != nil {
		return "", &ReportError{Cause: err}
	}
	defer cleanup()

	text, err := r.Client.Generate(ctx, r.MinutesPrompt, file)
	if err != nil {
		return "", &ReportError{Cause: err}
	}
	return text, nil
}
