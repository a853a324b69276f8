package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewRegenCmd(deps *Dependencies) *cobra.Command {
	var fromAudio bool

	cmd := &cobra.Command{
		Use:   "regen <id>",
		Short: "Re-generate the minutes of a saved meeting",
		Long:  "Generate the minutes again from the stored transcript (or from the stored audio with --from-audio) and update the meeting. Useful after an edit, or for meetings saved without minutes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			id, err := deps.App.Records.ResolveID(args[0])
			if err != nil {
				return err
			}

			rec, err := deps.App.Records.Get(id)
			if err != nil {
				return err
			}

			formatter.GeneratingMinutes()

			var report string
			if fromAudio {
				if len(rec.AudioAsset) == 0 {
					return fmt.Errorf("meeting %s has no stored audio", id)
				}
				filename := rec.OriginalFilename
				if filename == "" {
					filename = "meeting.wav"
				}
				report, err = deps.App.Report.FinalFromMedia(cmd.Context(), rec.AudioAsset, filename)
			} else {
				if rec.Transcript == "" {
					return fmt.Errorf("meeting %s has no transcript; try --from-audio", id)
				}
				report, err = deps.App.Report.Final(cmd.Context(), rec.Transcript)
			}
			if err != nil {
				return err
			}

			if err := deps.App.Records.Update(id, rec.Title, rec.Transcript, report); err != nil {
				return err
			}

			formatter.Success(fmt.Sprintf("Minutes updated for %q (%s)", rec.Title, id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromAudio, "from-audio", false, "Generate from the stored audio instead of the transcript")

	return cmd
}
