package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes/usecases"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewLiveCmd(deps *Dependencies) *cobra.Command {
	var title string
	var allowPartial bool

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Record a meeting live and build the minutes as it runs",
		Long:  "Record the default input in short clips, transcribe each clip as it finishes, show interim summaries along the way, and generate the final minutes on Ctrl+C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if err := deps.App.Recorder.CheckFFmpeg(); err != nil {
				return err
			}

			if title == "" {
				title = "Meeting " + time.Now().Format("2006-01-02 15:04")
			}

			return runLive(cmd.Context(), deps, formatter, title, allowPartial)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Meeting title (defaults to the current date)")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", true, "Save the transcript even if minutes generation fails")

	return cmd
}

func runLive(ctx context.Context, deps *Dependencies, formatter *output.Formatter, title string, allowPartial bool) error {
	// Ctrl+C ends the capture loop; finalize runs on a fresh context so the
	// final minutes call is not cancelled by the same signal.
	captureCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	clipDir, err := os.MkdirTemp("", "minutes-live-")
	if err != nil {
		return fmt.Errorf("creating clip directory: %w", err)
	}
	defer os.RemoveAll(clipDir)

	sess := minutes.NewSession()
	if err := sess.Start(); err != nil {
		return err
	}

	startedAt := time.Now()
	formatter.Info(fmt.Sprintf("Recording %q in %ds clips — press Ctrl+C to stop", title, deps.Config.ClipSeconds))

	recordFailures := 0
	for clipNum := 1; captureCtx.Err() == nil; clipNum++ {
		clipPath := filepath.Join(clipDir, fmt.Sprintf("clip-%04d.wav", clipNum))
		if err := deps.App.Recorder.RecordClip(captureCtx, deps.Config.ClipSeconds, clipPath); err != nil {
			recordFailures++
			if recordFailures >= 3 {
				// Stop the loop; whatever was captured so far still gets
				// finalized below.
				formatter.Warning("recording keeps failing, stopping capture: " + err.Error())
				break
			}
			formatter.ClipSkipped(clipNum, err.Error())
			continue
		}
		recordFailures = 0

		wav, err := os.ReadFile(clipPath)
		if err != nil || len(wav) == 0 {
			continue
		}

		// Transcription of the last partial clip still runs after Ctrl+C.
		result, err := deps.App.Capture.Clip(context.WithoutCancel(captureCtx), sess, wav)
		if err != nil {
			// Skip and continue: one failed clip must not end the session.
			formatter.ClipSkipped(clipNum, err.Error())
			continue
		}

		formatter.ClipCaptured(clipNum, preview(result.Text))
		if result.InterimRefreshed {
			if result.InterimOK {
				formatter.InterimSummary(result.Interim)
			} else {
				formatter.Warning(result.Interim)
			}
		}
	}

	formatter.RecordingStopped(time.Since(startedAt))

	if sess.Transcript.Count() == 0 && sess.Segments.Count() == 0 {
		if err := sess.Abandon(); err != nil {
			return err
		}
		formatter.Info("Nothing captured — session abandoned")
		return nil
	}

	formatter.GeneratingMinutes()
	result, err := deps.App.Finalize.Execute(context.WithoutCancel(ctx), sess, usecases.FinalizeOptions{
		Title:        title,
		AllowPartial: allowPartial,
	})
	if err != nil {
		var reportErr *usecases.ReportError
		if errors.As(err, &reportErr) {
			return fmt.Errorf("%w (re-run with --allow-partial to keep the transcript)", err)
		}
		return err
	}

	formatter.MeetingSaved(result.ID, title, result.Partial)
	return nil
}

func preview(text string) string {
	const max = 60
	for i, r := range text {
		if r == '\n' {
			return text[:i] + "…"
		}
		if i >= max {
			return text[:i] + "…"
		}
	}
	return text
}
