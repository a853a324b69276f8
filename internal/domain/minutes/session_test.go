package minutes

import (
	"errors"
	"testing"
	"time"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
)

func TestSessionLifecycle(t *testing.T) {
	sess := NewSession()
	if sess.State() != StateIdle {
		t.Fatalf("new session state = %s, want idle", sess.State())
	}

	if err := sess.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !sess.Record("hello", time.Now()) {
		t.Error("Record while capturing should succeed")
	}

	if err := sess.BeginFinalize(); err != nil {
		t.Fatalf("BeginFinalize: %v", err)
	}
	if err := sess.MarkSaved(); err != nil {
		t.Fatalf("MarkSaved: %v", err)
	}
	if sess.State() != StateSaved {
		t.Errorf("state = %s, want saved", sess.State())
	}
}

func TestSavedIsTerminal(t *testing.T) {
	sess := NewSession()
	sess.Start()
	sess.BeginFinalize()
	sess.MarkSaved()

	if err := sess.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start after save: err = %v, want ErrInvalidTransition", err)
	}
	if err := sess.Abandon(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Abandon after save: err = %v, want ErrInvalidTransition", err)
	}
}

func TestRecordAfterAbandonIsDiscarded(t *testing.T) {
	sess := NewSession()
	sess.Start()
	sess.Record("kept", time.Now())

	if err := sess.Abandon(); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	// A late in-flight transcription result must be discarded.
	if sess.Record("late result", time.Now()) {
		t.Error("Record after Abandon should report discarded")
	}
	if sess.Transcript.Count() != 0 {
		t.Errorf("transcript count = %d, want 0", sess.Transcript.Count())
	}
}

func TestAbandonReleasesBuffers(t *testing.T) {
	sess := NewSession()
	sess.Start()

	format := audio.Format{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
	sess.Segments.Append(audio.Segment{Format: format, Frames: []byte{1, 2}})
	sess.Record("hello", time.Now())
	sess.SetInterim("so far so good")

	sess.Abandon()

	if sess.Segments.Count() != 0 {
		t.Errorf("segments after abandon = %d, want 0", sess.Segments.Count())
	}
	if sess.Transcript.Count() != 0 {
		t.Errorf("transcript after abandon = %d, want 0", sess.Transcript.Count())
	}
	if sess.Interim() != "" {
		t.Errorf("interim after abandon = %q, want empty", sess.Interim())
	}
}

func TestFinalizeRequiresCapturing(t *testing.T) {
	sess := NewSession()
	if err := sess.BeginFinalize(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("BeginFinalize from idle: err = %v, want ErrInvalidTransition", err)
	}
}

func TestInterimRetained(t *testing.T) {
	sess := NewSession()
	sess.Start()
	sess.SetInterim("first summary")

	// A failed refresh does not call SetInterim; the previous one stands.
	if sess.Interim() != "first summary" {
		t.Errorf("interim = %q, want %q", sess.Interim(), "first summary")
	}

	sess.SetInterim("second summary")
	if sess.Interim() != "second summary" {
		t.Errorf("interim = %q, want %q", sess.Interim(), "second summary")
	}
}
