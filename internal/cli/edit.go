package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewEditCmd(deps *Dependencies) *cobra.Command {
	var title string
	var transcriptFile string
	var reportFile string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a saved meeting",
		Long:  "Update the title, transcript, or minutes of a saved meeting. The stored audio and creation time never change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if title == "" && transcriptFile == "" && reportFile == "" {
				return fmt.Errorf("nothing to change: pass --title, --transcript-file, or --report-file")
			}

			id, err := deps.App.Records.ResolveID(args[0])
			if err != nil {
				return err
			}

			rec, err := deps.App.Records.Get(id)
			if err != nil {
				return err
			}

			newTitle := rec.Title
			newTranscript := rec.Transcript
			newReport := rec.Report

			if title != "" {
				newTitle = title
			}
			if transcriptFile != "" {
				data, err := os.ReadFile(transcriptFile)
				if err != nil {
					return fmt.Errorf("reading transcript: %w", err)
				}
				newTranscript = string(data)
			}
			if reportFile != "" {
				data, err := os.ReadFile(reportFile)
				if err != nil {
					return fmt.Errorf("reading minutes: %w", err)
				}
				newReport = string(data)
			}

			if err := deps.App.Records.Update(id, newTitle, newTranscript, newReport); err != nil {
				return err
			}

			formatter.Success(fmt.Sprintf("Updated %q (%s)", newTitle, id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVar(&transcriptFile, "transcript-file", "", "Replace the transcript with this file's contents")
	cmd.Flags().StringVar(&reportFile, "report-file", "", "Replace the minutes with this file's contents")

	return cmd
}
