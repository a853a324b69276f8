// Package minutes holds the capture-session domain model: the ordered
// transcript accumulator and the session state machine.
package minutes

import (
	"errors"
	"fmt"
	"time"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
)

// TranscriptSegment is one timestamped speaker turn produced by a successful
// transcription. Immutable once recorded.
type TranscriptSegment struct {
	CapturedAt time.Time
	Text       string
}

// SessionState tracks a session through its lifecycle. Saved and Abandoned
// are terminal.
type SessionState int

const (
	StateIdle SessionState = iota
	StateCapturing
	StateFinalizing
	StateSaved
	StateAbandoned
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateFinalizing:
		return "finalizing"
	case StateSaved:
		return "saved"
	default:
		return "abandoned"
	}
}

var ErrInvalidTransition = errors.New("minutes: invalid session transition")

// Session is the in-memory state of one capture session. It exists only
// between start and finalize/abandon; nothing is persisted until finalize
// completes. Not safe for concurrent use — the driving application invokes
// it sequentially, one capture event at a time.
type Session struct {
	Segments   *audio.SegmentStore
	Transcript *Accumulator

	state   SessionState
	interim string
}

func NewSession() *Session {
	return &Session{
		Segments:   audio.NewSegmentStore(),
		Transcript: NewAccumulator(),
		state:      StateIdle,
	}
}

func (s *Session) State() SessionState { return s.state }

// Start moves the session into the capture loop.
func (s *Session) Start() error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateCapturing
	return nil
}

// Record appends a transcript segment if the session is still capturing.
// Results of in-flight calls that complete after the session was abandoned
// are discarded: it returns false and records nothing.
func (s *Session) Record(text string, at time.Time) bool {
	if s.state != StateCapturing {
		return false
	}
	s.Transcript.Record(text, at)
	return true
}

// BeginFinalize closes the capture loop; merge and final-report generation
// happen in this state.
func (s *Session) BeginFinalize() error {
	if s.state != StateCapturing {
		return fmt.Errorf("%w: finalize from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateFinalizing
	return nil
}

// MarkSaved records a completed persist. Terminal; there is no way back to
// capturing — edits to a saved meeting operate on the stored record.
func (s *Session) MarkSaved() error {
	if s.state != StateFinalizing {
		return fmt.Errorf("%w: save from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateSaved
	s.Transcript.Reset()
	s.Segments.Reset()
	return nil
}

// Abandon drops the session and releases its audio and text buffers.
// Valid from Idle or Capturing.
func (s *Session) Abandon() error {
	if s.state != StateIdle && s.state != StateCapturing {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateAbandoned
	s.Transcript.Reset()
	s.Segments.Reset()
	s.interim = ""
	return nil
}

// SetInterim stores the latest interim summary. A failed refresh keeps the
// previous summary, so callers only set on success.
func (s *Session) SetInterim(summary string) {
	s.interim = summary
}

func (s *Session) Interim() string { return s.interim }
