package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes"
)

// Transcriber turns one audio payload into text.
type Transcriber interface {
	Execute(ctx context.Context, payload []byte, opts TranscribeOptions) (string, error)
}

// InterimReporter produces a best-effort mid-session summary.
type InterimReporter interface {
	Interim(ctx context.Context, snapshot string) (string, bool)
}

// Capture processes one live clip: store its audio, transcribe it, record
// the timestamped text, and refresh the interim summary when due. Clips are
// processed sequentially in capture order, so recorded segments keep the
// order their audio was captured in.
type Capture struct {
	Transcriber  Transcriber
	Reporter     InterimReporter
	InterimEvery int
	Profile      TranscribeOptions // template options for each clip call

	// Now stamps recorded segments; tests inject a fixed clock.
	Now func() time.Time
}

// ClipResult reports what one clip produced.
type ClipResult struct {
	Text             string
	InterimRefreshed bool   // an interim refresh was due for this clip
	InterimOK        bool   // the refresh succeeded
	Interim          string // summary when OK, fallback string otherwise
}

// Clip ingests one recorded WAV clip into the session. A transcription
// failure is returned to the caller and leaves the session able to continue
// with the next clip; a format mismatch rejects the clip before any remote
// call is made.
func (c *Capture) Clip(ctx context.Context, sess *minutes.Session, wav []byte) (*ClipResult, error) {
	if sess.State() != minutes.StateCapturing {
		return nil, fmt.Errorf("%w: clip in %s", minutes.ErrInvalidTransition, sess.State())
	}

	seg, err := audio.DecodeWAV(wav)
	if err != nil {
		return nil, err
	}
	if err := sess.Segments.Append(seg); err != nil {
		return nil, err
	}

	opts := c.Profile
	text, err := c.Transcriber.Execute(ctx, wav, opts)
	if err != nil {
		return nil, err
	}

	if !sess.Record(text, c.now()) {
		// Session left the capturing state while the call was in flight;
		// discard the result.
		return &ClipResult{Text: text}, nil
	}

	result := &ClipResult{Text: text}
	if c.Reporter != nil && sess.Transcript.ShouldRefreshInterim(c.InterimEvery) {
		result.InterimRefreshed = true
		summary, ok := c.Reporter.Interim(ctx, sess.Transcript.Snapshot())
		result.Interim = summary
		result.InterimOK = ok
		if ok {
			sess.SetInterim(summary)
		}
	}
	return result, nil
}

func (c *Capture) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
