package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewShowCmd(deps *Dependencies) *cobra.Command {
	var audioOut string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved meeting",
		Long:  "Print the transcript and minutes of a saved meeting. The id may be abbreviated to any unambiguous prefix.",
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

			fmt.Printf("# %s\n\n", rec.Title)
			fmt.Printf("- Saved: %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Printf("- ID: %s\n", rec.ID)
			if rec.OriginalFilename != "" {
				fmt.Printf("- Source: %s\n", rec.OriginalFilename)
			}

			fmt.Printf("\n## Transcript\n\n%s\n", rec.Transcript)

			if rec.Report != "" {
				fmt.Printf("\n## Minutes\n\n%s\n", rec.Report)
			} else {
				formatter.Warning("No minutes saved for this meeting — run 'minutes regen' to generate them")
			}

			if audioOut != "" {
				if len(rec.AudioAsset) == 0 {
					formatter.Warning("No audio stored for this meeting")
					return nil
				}
				if err := os.WriteFile(audioOut, rec.AudioAsset, 0o644); err != nil {
					return fmt.Errorf("writing audio: %w", err)
				}
				formatter.Success("Audio written to " + audioOut)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&audioOut, "audio-out", "", "Write the stored audio asset to this file")

	return cmd
}
