package usecases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/genai"
)

// ErrTranscriptionTimeout means the service did not finish processing the
// payload within the selected poll profile.
var ErrTranscriptionTimeout = errors.New("transcription timed out")

// TranscriptionError is a terminal transcription failure: service error,
// malformed response, or network failure. The adapter never retries; that
// policy belongs to the caller.
type TranscriptionError struct {
	Cause error
}

func (e *TranscriptionError) Error() string { return "transcription failed: " + e.Cause.Error() }
func (e *TranscriptionError) Unwrap() error { return e.Cause }

// Transcribe turns one audio payload into text via the asynchronous
// upload-and-poll flow of the generative-language service.
type Transcribe struct {
	Client *genai.Client
	Prompt string
}

// TranscribeOptions select the per-call behavior of Execute.
type TranscribeOptions struct {
	Filename     string // used for the staging file extension and mime type
	LanguageHint string
	Diarize      bool
	Profile      genai.PollProfile
}

// Execute uploads the payload, waits for the service to finish processing
// it, and runs the transcription instruction over it. The local staging
// file used for the upload is removed on every exit path.
func (t *Transcribe) Execute(ctx context.Context, payload []byte, opts TranscribeOptions) (string, error) {
	if t.Client.APIKey == "" {
		return "", errors.New("API key not set: set MINUTES_API_KEY or add api_key to config")
	}

	file, cleanup, err := stageAndUpload(ctx, t.Client, payload, opts.Filename, opts.Profile)
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := t.Client.Generate(ctx, t.instruction(opts), file)
	if err != nil {
		return "", &TranscriptionError{Cause: err}
	}
	return text, nil
}

func (t *Transcribe) instruction(opts TranscribeOptions) string {
	var b strings.Builder
	b.WriteString(t.Prompt)
	if opts.LanguageHint != "" {
		fmt.Fprintf(&b, "\nThe audio is in %s.", opts.LanguageHint)
	}
	if opts.Diarize {
		b.WriteString("\nLabel every line with the speaker (Speaker 1, Speaker 2, ...) after the timestamp.")
	}
	return b.String()
}

// stageAndUpload writes the payload to a temporary file, uploads it, and
// waits for the remote file to become ready. The returned cleanup removes
// the staging file and best-effort deletes the remote file; it is safe to
// call even though the staging file is already gone on the error paths.
func stageAndUpload(ctx context.Context, client *genai.Client, payload []byte, filename string, profile genai.PollProfile) (*genai.File, func(), error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".wav"
	}

	staged, err := os.CreateTemp("", "minutes-upload-*"+ext)
	if err != nil {
		return nil, nil, fmt.Errorf("creating staging file: %w", err)
	}
	stagedPath := staged.Name()

	if _, err := staged.Write(payload); err != nil {
		staged.Close()
		os.Remove(stagedPath)
		return nil, nil, fmt.Errorf("writing staging file: %w", err)
	}
	if err := staged.Close(); err != nil {
		os.Remove(stagedPath)
		return nil, nil, fmt.Errorf("closing staging file: %w", err)
	}

	file, err := client.UploadFile(ctx, stagedPath)
	if err != nil {
		os.Remove(stagedPath)
		return nil, nil, &TranscriptionError{Cause: err}
	}

	file, err = client.WaitReady(ctx, file.Name, profile)
	if err != nil {
		os.Remove(stagedPath)
		if errors.Is(err, genai.ErrWaitTimeout) {
			return nil, nil, ErrTranscriptionTimeout
		}
		return nil, nil, &TranscriptionError{Cause: err}
	}

	cleanup := func() {
		os.Remove(stagedPath)
		_ = client.DeleteFile(context.WithoutCancel(ctx), file.Name)
	}
	return file, cleanup, nil
}
