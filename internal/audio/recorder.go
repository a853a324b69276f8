package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// Recorder captures mic audio clips via ffmpeg.
type Recorder struct {
	CaptureFormat string // ffmpeg -f value, e.g. "avfoundation" or "alsa"
	CaptureDevice string // ffmpeg -i value, e.g. ":default"
}

func NewRecorder(format, device string) *Recorder {
	return &Recorder{CaptureFormat: format, CaptureDevice: device}
}

func (r *Recorder) CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found. Install it and make sure it is on PATH")
	}
	return nil
}

// RecordClip records one fixed-length 16kHz mono PCM clip from the default
// input device into outputPath. It returns early when ctx is cancelled, in
// which case ffmpeg finalizes whatever was captured so far.
func (r *Recorder) RecordClip(ctx context.Context, seconds int, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", r.CaptureFormat,
		"-i", r.CaptureDevice,
		"-t", strconv.Itoa(seconds),
		"-ac", "1",
		"-ar", "16000",
		"-sample_fmt", "s16",
		"-y",
		outputPath,
	)

	// On cancellation send SIGINT instead of the default SIGKILL so ffmpeg
	// flushes and closes the WAV before exiting.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second

	// Log stderr for diagnostics
	logPath := outputPath + ".ffmpeg.log"
	if logFile, err := os.Create(logPath); err == nil {
		cmd.Stderr = logFile
		defer logFile.Close()
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// Interrupted on purpose; the partial clip is still usable.
			return nil
		}
		return fmt.Errorf("recording clip: %w", err)
	}
	return nil
}
