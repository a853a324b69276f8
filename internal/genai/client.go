// Package genai is a minimal client for the generative-language API used for
// transcription and minutes generation: media upload, file-processing state
// polling, and content generation.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrFileFailed means the service reported a terminal failure while
	// processing an uploaded file.
	ErrFileFailed = errors.New("genai: file processing failed")

	// ErrWaitTimeout means the uploaded file did not leave the processing
	// state within the poll profile's maximum wait.
	ErrWaitTimeout = errors.New("genai: timed out waiting for file processing")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("genai: API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// JobState is the closed set of remote file-processing states. Anything the
// service reports that is not recognized maps to StateFailed rather than
// being polled forever.
type JobState int

const (
	StatePending JobState = iota
	StateProcessing
	StateReady
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateProcessing:
		return "processing"
	case StateReady:
		return "ready"
	default:
		return "failed"
	}
}

func parseState(s string) JobState {
	switch s {
	case "STATE_UNSPECIFIED":
		return StatePending
	case "PROCESSING":
		return StateProcessing
	case "ACTIVE":
		return StateReady
	default:
		return StateFailed
	}
}

// File is a remote media file owned by the service.
type File struct {
	Name     string
	URI      string
	MimeType string
	State    JobState
}

// PollProfile bounds the file-processing wait loop. Callers pick a profile
// matching the payload: long uploaded recordings tolerate a much larger wait
// than short live clips.
type PollProfile struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// Clock abstracts time for the poll loop so timeout behavior is testable
// without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	HTTPClient *http.Client
	Clock      Clock
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{APIKey: apiKey, BaseURL: baseURL, Model: model}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) clock() Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return realClock{}
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// UploadFile uploads the media file at path and returns the remote file,
// typically still in a processing state.
func (c *Client) UploadFile(ctx context.Context, path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	url := c.base() + "/upload/v1beta/files?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, f)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", MimeTypeFor(path))
	req.Header.Set("X-Goog-Upload-Protocol", "raw")

	var resp struct {
		File fileResource `json:"file"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.File.toFile(), nil
}

// GetFile fetches the current state of a remote file.
func (c *Client) GetFile(ctx context.Context, name string) (*File, error) {
	url := c.base() + "/v1beta/" + name + "?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var resp fileResource
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.toFile(), nil
}

// DeleteFile removes a remote file. Best-effort callers may ignore the error.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	url := c.base() + "/v1beta/" + name + "?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// WaitReady polls the file's state at the profile interval until it leaves
// pending/processing. The overall deadline is re-checked on every iteration.
func (c *Client) WaitReady(ctx context.Context, name string, profile PollProfile) (*File, error) {
	clock := c.clock()
	deadline := clock.Now().Add(profile.MaxWait)

	for {
		f, err := c.GetFile(ctx, name)
		if err != nil {
			return nil, err
		}

		switch f.State {
		case StateReady:
			return f, nil
		case StateFailed:
			return nil, fmt.Errorf("%w: %s", ErrFileFailed, f.Name)
		}

		if !clock.Now().Before(deadline) {
			return nil, ErrWaitTimeout
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clock.Sleep(profile.Interval)
	}
}

// Generate runs the model over an instruction, optionally grounded on a
// remote media file, and returns the generated text.
func (c *Client) Generate(ctx context.Context, instruction string, file *File) (string, error) {
	var parts []part
	if file != nil {
		parts = append(parts, part{FileData: &fileData{FileURI: file.URI, MimeType: file.MimeType}})
	}
	parts = append(parts, part{Text: instruction})

	reqBody := generateRequest{
		Contents: []content{{Parts: parts}},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := c.base() + "/v1beta/models/" + c.Model + ":generateContent?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp generateResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return "", errors.New("genai: empty response from model")
	}
	return text.String(), nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("genai: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("genai: parsing response: %w", err)
	}
	return nil
}

// MimeTypeFor maps an audio filename to its upload content type.
func MimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".aac":
		return "audio/aac"
	case ".webm":
		return "audio/webm"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}

type fileResource struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	State    string `json:"state"`
}

func (r fileResource) toFile() *File {
	return &File{
		Name:     r.Name,
		URI:      r.URI,
		MimeType: r.MimeType,
		State:    parseState(r.State),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"fileData,omitempty"`
}

type fileData struct {
	FileURI  string `json:"fileUri"`
	MimeType string `json:"mimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
