package cli

import (
	"github.com/muhammadidrees/raseed/internal/logger"
	"github.com/muhammadidrees/raseed/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive terminal user interface for raseed.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	// Console logs would tear the alt screen
	if !appInstance.Config.Log.ToFile() {
		logger.Silence()
	}
	return tui.Run(appInstance)
}
