package audio

import (
	"bytes"
	"errors"
	"testing"
)

var testFormat = Format{SampleRate: 16000, Channels: 1, BitsPerSample: 16}

func TestAppendAndMergeRoundTrip(t *testing.T) {
	store := NewSegmentStore()

	chunks := [][]byte{
		{1, 2, 3, 4},
		{5, 6},
		{7, 8, 9, 10, 11, 12},
	}
	for _, frames := range chunks {
		if err := store.Append(Segment{Format: testFormat, Frames: frames}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	merged, ok := store.Merge()
	if !ok {
		t.Fatal("Merge returned empty for non-empty store")
	}
	if merged.Format != testFormat {
		t.Errorf("merged format = %v, want %v", merged.Format, testFormat)
	}

	// Re-splitting at the known boundaries recovers each chunk exactly.
	off := 0
	for i, frames := range chunks {
		got := merged.Frames[off : off+len(frames)]
		if !bytes.Equal(got, frames) {
			t.Errorf("chunk %d = %v, want %v", i, got, frames)
		}
		off += len(frames)
	}
	if off != len(merged.Frames) {
		t.Errorf("merged length = %d, want %d", len(merged.Frames), off)
	}
}

func TestMergeIdempotent(t *testing.T) {
	store := NewSegmentStore()
	store.Append(Segment{Format: testFormat, Frames: []byte{1, 2}})
	store.Append(Segment{Format: testFormat, Frames: []byte{3, 4}})

	first, _ := store.Merge()
	second, _ := store.Merge()

	if !bytes.Equal(first.Frames, second.Frames) {
		t.Errorf("repeated Merge differs: %v vs %v", first.Frames, second.Frames)
	}
	if store.Count() != 2 {
		t.Errorf("Count after Merge = %d, want 2", store.Count())
	}
}

func TestMergeEmptyStore(t *testing.T) {
	store := NewSegmentStore()

	if _, ok := store.Merge(); ok {
		t.Error("Merge on empty store should report empty, not a segment")
	}
}

func TestAppendFormatMismatch(t *testing.T) {
	store := NewSegmentStore()
	if err := store.Append(Segment{Format: testFormat, Frames: []byte{1, 2}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	stereo := Format{SampleRate: 16000, Channels: 2, BitsPerSample: 16}
	err := store.Append(Segment{Format: stereo, Frames: []byte{3, 4, 5, 6}})
	if !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("err = %v, want ErrFormatMismatch", err)
	}

	// The failed append must leave the store unchanged.
	if store.Count() != 1 {
		t.Errorf("Count after failed append = %d, want 1", store.Count())
	}
	merged, _ := store.Merge()
	if !bytes.Equal(merged.Frames, []byte{1, 2}) {
		t.Errorf("merged frames = %v, want [1 2]", merged.Frames)
	}
}

func TestResetReleasesSegments(t *testing.T) {
	store := NewSegmentStore()
	store.Append(Segment{Format: testFormat, Frames: []byte{1, 2}})

	store.Reset()

	if store.Count() != 0 {
		t.Errorf("Count after Reset = %d, want 0", store.Count())
	}
	if _, ok := store.Format(); ok {
		t.Error("format should not be established after Reset")
	}

	// A new format can be established after Reset.
	stereo := Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16}
	if err := store.Append(Segment{Format: stereo, Frames: []byte{1, 2, 3, 4}}); err != nil {
		t.Errorf("Append after Reset: %v", err)
	}
}
