package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			entries, err := deps.App.Records.List()
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			formatter.MeetingListHeader()
			for _, e := range entries {
				formatter.MeetingListItem(e.ID, e.CreatedAt, e.Title, e.HasReport)
			}

			return nil
		},
	}

	return cmd
}
