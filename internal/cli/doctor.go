package cli

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if _, err := exec.LookPath("ffmpeg"); err != nil {
				f.SetupCheck("ffmpeg", false, "not found (only needed for 'minutes live')")
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			if deps.Config.APIKey != "" {
				f.SetupCheck("API key", true, "configured")
			} else {
				f.SetupCheck("API key", false, "not set. Set MINUTES_API_KEY or add api_key to config")
				ok = false
			}

			f.SetupCheck("Model", true, deps.Config.Model)
			f.SetupCheck("Database", true, deps.Config.DBPath)

			if ok {
				f.Success("\nAll prerequisites met.")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
