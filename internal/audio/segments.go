package audio

import (
	"errors"
	"fmt"
)

// ErrFormatMismatch is returned when an appended segment's format differs
// from the format established by the first segment of the session.
var ErrFormatMismatch = errors.New("audio: segment format mismatch")

// SegmentStore holds the ordered audio segments of one capture session.
// It is owned by a single session and is not safe for concurrent use.
type SegmentStore struct {
	format      Format
	established bool
	segments    []Segment
}

func NewSegmentStore() *SegmentStore {
	return &SegmentStore{}
}

// Append adds a segment to the end of the sequence. The first segment
// establishes the session format; later segments must match it exactly.
func (s *SegmentStore) Append(seg Segment) error {
	if s.established && seg.Format != s.format {
		return fmt.Errorf("%w: got %s, session is %s", ErrFormatMismatch, seg.Format, s.format)
	}
	if !s.established {
		s.format = seg.Format
		s.established = true
	}
	s.segments = append(s.segments, seg)
	return nil
}

// Merge concatenates all stored segments' frames into one segment carrying
// the established format. The second return is false if nothing was ever
// appended. Merge does not mutate the store and repeated calls with no
// intervening appends return equal output.
func (s *SegmentStore) Merge() (Segment, bool) {
	if len(s.segments) == 0 {
		return Segment{}, false
	}

	var total int
	for _, seg := range s.segments {
		total += len(seg.Frames)
	}

	frames := make([]byte, 0, total)
	for _, seg := range s.segments {
		frames = append(frames, seg.Frames...)
	}

	return Segment{Format: s.format, Frames: frames}, true
}

// Count reports the number of appended segments.
func (s *SegmentStore) Count() int {
	return len(s.segments)
}

// Format reports the established session format, if any segment was appended.
func (s *SegmentStore) Format() (Format, bool) {
	return s.format, s.established
}

// Reset releases all held segments, e.g. when a session is abandoned.
func (s *SegmentStore) Reset() {
	s.format = Format{}
	s.established = false
	s.segments = nil
}
