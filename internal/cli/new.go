package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes/usecases"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/store"
)

func NewNewCmd(deps *Dependencies) *cobra.Command {
	var title string
	var language string
	var diarize bool
	var allowPartial bool

	cmd := &cobra.Command{
		Use:   "new <audio-file>",
		Short: "Transcribe a recording and generate minutes",
		Long:  "Upload a recorded meeting, transcribe it, generate meeting minutes, and save everything to the local history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)
			audioPath := args[0]

			payload, err := os.ReadFile(audioPath)
			if err != nil {
				return fmt.Errorf("reading audio file: %w", err)
			}

			if title == "" {
				title = "Meeting " + time.Now().Format("2006-01-02 15:04")
			}

			formatter.Uploading(filepath.Base(audioPath))
			formatter.Transcribing()
			transcript, err := deps.App.Transcribe.Execute(cmd.Context(), payload, usecases.TranscribeOptions{
				Filename:     filepath.Base(audioPath),
				LanguageHint: language,
				Diarize:      diarize,
				Profile:      deps.App.FileProfile,
			})
			if err != nil {
				return err
			}

			formatter.GeneratingMinutes()
			report, reportErr := deps.App.Report.Final(cmd.Context(), transcript)
			partial := false
			if reportErr != nil {
				if !allowPartial {
					return reportErr
				}
				formatter.Warning(reportErr.Error())
				report = ""
				partial = true
			}

			id, err := deps.App.Records.Create(store.Record{
				Title:            title,
				Transcript:       transcript,
				Report:           report,
				OriginalFilename: filepath.Base(audioPath),
				AudioAsset:       payload,
			})
			if err != nil {
				return err
			}

			formatter.MeetingSaved(id, title, partial)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Meeting title (defaults to the current date)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language hint for transcription")
	cmd.Flags().BoolVar(&diarize, "diarize", false, "Label speakers in the transcript")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "Save the transcript even if minutes generation fails")

	return cmd
}
