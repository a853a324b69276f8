package app

import (
	"github.com/ezcaretechglobal/meeting-minutes-ai/config"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes/usecases"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/genai"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/store"
)

type App struct {
	Transcribe *usecases.Transcribe
	Report     *usecases.Report
	Finalize   *usecases.Finalize
	Capture    *usecases.Capture
	Records    *store.Store
	Recorder   *audio.Recorder

	// Poll bounds: long uploaded media vs short live clips.
	FileProfile genai.PollProfile
	ClipProfile genai.PollProfile
}

func New(cfg *config.Config) (*App, error) {
	client := genai.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model)

	records, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	fileProfile := genai.PollProfile{Interval: cfg.PollInterval, MaxWait: cfg.FileWait}
	clipProfile := genai.PollProfile{Interval: cfg.PollInterval, MaxWait: cfg.ClipWait}

	transcribe := &usecases.Transcribe{
		Client: client,
		Prompt: cfg.TranscribePrompt,
	}

	report := &usecases.Report{
		Client:        client,
		MinutesPrompt: cfg.MinutesPrompt,
		InterimPrompt: cfg.InterimPrompt,
		MediaProfile:  fileProfile,
	}

	finalize := &usecases.Finalize{
		Reporter: report,
		Records:  records,
	}

	capture := &usecases.Capture{
		Transcriber:  transcribe,
		Reporter:     report,
		InterimEvery: cfg.InterimEvery,
		Profile:      usecases.TranscribeOptions{Profile: clipProfile},
	}

	return &App{
		Transcribe:  transcribe,
		Report:      report,
		Finalize:    finalize,
		Capture:     capture,
		Records:     records,
		Recorder:    audio.NewRecorder(cfg.CaptureFormat, cfg.CaptureDevice),
		FileProfile: fileProfile,
		ClipProfile: clipProfile,
	}, nil
}

func (a *App) Close() error {
	return a.Records.Close()
}
