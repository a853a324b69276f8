package cli

import (
	"github.com/spf13/cobra"

	"github.com/ezcaretechglobal/meeting-minutes-ai/config"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/app"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minutes",
		Short: "Transcribe meetings and generate minutes",
		Long:  "A CLI tool that transcribes meeting recordings with a hosted multimodal model, generates structured meeting minutes, and keeps a searchable local history.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewNewCmd(deps))
	rootCmd.AddCommand(NewLiveCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewEditCmd(deps))
	rootCmd.AddCommand(NewRegenCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
