package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Format describes the waveform parameters shared by all segments of a session.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.Channels, f.BitsPerSample)
}

// Segment is one capture unit: raw PCM sample frames plus their format.
// The frames carry no per-segment framing metadata, so segments of equal
// format can be concatenated directly.
type Segment struct {
	Format Format
	Frames []byte
}

var errNotWAV = errors.New("audio: not a RIFF/WAVE file")

// DecodeWAV parses a PCM WAV file into a Segment. Only uncompressed PCM
// (format tag 1) is supported; that is what both ffmpeg capture and the
// merge output produce.
func DecodeWAV(data []byte) (Segment, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Segment{}, errNotWAV
	}

	var seg Segment
	var haveFmt, haveData bool

	// Walk the chunk list; fmt and data are the only chunks we care about.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			return Segment{}, fmt.Errorf("audio: truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Segment{}, errors.New("audio: fmt chunk too short")
			}
			tag := binary.LittleEndian.Uint16(data[body : body+2])
			if tag != 1 {
				return Segment{}, fmt.Errorf("audio: unsupported format tag %d (PCM only)", tag)
			}
			seg.Format = Format{
				Channels:      int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				SampleRate:    int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
			haveFmt = true
		case "data":
			seg.Frames = append([]byte(nil), data[body:body+size]...)
			haveData = true
		}

		// Chunks are word-aligned.
		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt || !haveData {
		return Segment{}, errors.New("audio: missing fmt or data chunk")
	}
	return seg, nil
}

// EncodeWAV renders the segment as a canonical 44-byte-header PCM WAV file.
func EncodeWAV(seg Segment) []byte {
	f := seg.Format
	blockAlign := f.Channels * f.BitsPerSample / 8
	byteRate := f.SampleRate * blockAlign

	out := make([]byte, 44+len(seg.Frames))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(seg.Frames)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.BitsPerSample))

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(seg.Frames)))
	copy(out[44:], seg.Frames)

	return out
}
