package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultTranscribePrompt is the instruction sent alongside the audio payload.
const DefaultTranscribePrompt = `Transcribe the entire audio verbatim. Write one speaker turn per line and prefix every line with the elapsed time as [HH:MM:SS]. Do not add commentary or headings.`

// DefaultMinutesPrompt is the system prompt for the final meeting minutes.
const DefaultMinutesPrompt = `You are a meeting-minutes writer. Work only from the transcript you are given and never invent content that is not in it.

Produce the minutes in markdown with these sections:

## Overview
Date, topic, and the participants that can be inferred.

## Discussion
The main points grouped by topic, quoting important timestamped lines.

## Decisions
Bullet points of decisions that were made.

## Action Items
Bullet points of tasks with the owner and due date where identifiable.

If a section has no content, omit it.`

// DefaultInterimPrompt is the cheap prompt used for mid-session summaries.
const DefaultInterimPrompt = `Summarize the meeting so far in at most three short bullet points. Work only from the transcript below.`

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	DBPath string

	TranscribePrompt string
	MinutesPrompt    string
	InterimPrompt    string

	ClipSeconds  int // length of one live-capture clip
	InterimEvery int // refresh the interim summary every N clips

	CaptureFormat string // ffmpeg -f value for mic capture
	CaptureDevice string // ffmpeg -i value for mic capture

	PollInterval time.Duration
	FileWait     time.Duration // max wait for uploaded-file processing
	ClipWait     time.Duration // max wait for short live clips
}

type fileConfig struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	Model            string `toml:"model"`
	DBPath           string `toml:"db_path"`
	TranscribePrompt string `toml:"transcribe_prompt"`
	MinutesPrompt    string `toml:"minutes_prompt"`
	InterimPrompt    string `toml:"interim_prompt"`
	ClipSeconds      int    `toml:"clip_seconds"`
	InterimEvery     int    `toml:"interim_every"`
	CaptureFormat    string `toml:"capture_format"`
	CaptureDevice    string `toml:"capture_device"`
}

func Load() (*Config, error) {
	// Pick up a local .env before reading the environment.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:          "https://generativelanguage.googleapis.com",
		Model:            "gemini-2.5-flash",
		DBPath:           defaultDBPath(),
		TranscribePrompt: DefaultTranscribePrompt,
		MinutesPrompt:    DefaultMinutesPrompt,
		InterimPrompt:    DefaultInterimPrompt,
		ClipSeconds:      30,
		InterimEvery:     3,
		CaptureFormat:    defaultCaptureFormat(),
		CaptureDevice:    defaultCaptureDevice(),
		PollInterval:     500 * time.Millisecond,
		FileWait:         20 * time.Minute,
		ClipWait:         45 * time.Second,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.APIKey != "" {
				cfg.APIKey = fc.APIKey
			}
			if fc.BaseURL != "" {
				cfg.BaseURL = fc.BaseURL
			}
			if fc.Model != "" {
				cfg.Model = fc.Model
			}
			if fc.DBPath != "" {
				cfg.DBPath = expandTilde(fc.DBPath)
			}
			if fc.TranscribePrompt != "" {
				cfg.TranscribePrompt = fc.TranscribePrompt
			}
			if fc.MinutesPrompt != "" {
				cfg.MinutesPrompt = fc.MinutesPrompt
			}
			if fc.InterimPrompt != "" {
				cfg.InterimPrompt = fc.InterimPrompt
			}
			if fc.ClipSeconds > 0 {
				cfg.ClipSeconds = fc.ClipSeconds
			}
			if fc.InterimEvery > 0 {
				cfg.InterimEvery = fc.InterimEvery
			}
			if fc.CaptureFormat != "" {
				cfg.CaptureFormat = fc.CaptureFormat
			}
			if fc.CaptureDevice != "" {
				cfg.CaptureDevice = fc.CaptureDevice
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MINUTES_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MINUTES_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MINUTES_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MINUTES_DB_PATH"); v != "" {
		cfg.DBPath = expandTilde(v)
	}
	if v := os.Getenv("MINUTES_CLIP_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ClipSeconds = n
		}
	}
	if v := os.Getenv("MINUTES_INTERIM_EVERY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.InterimEvery = n
		}
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "minutes")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "minutes")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultDBPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "minutes", "minutes.db")
	}
	return filepath.Join(".", "minutes.db")
}

func defaultCaptureFormat() string {
	// avfoundation on macOS, alsa elsewhere; ffmpeg reports a clear error
	// if the format is wrong for the host, and both are overridable.
	if isDarwin() {
		return "avfoundation"
	}
	return "alsa"
}

func defaultCaptureDevice() string {
	if isDarwin() {
		return ":default"
	}
	return "default"
}

func isDarwin() bool {
	return runtime.GOOS == "darwin"
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
