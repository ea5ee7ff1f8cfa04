package cli

import (
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "raseed",
	Short: "A CLI invoice generator for freelancers",
	Long: `Raseed keeps a single invoice draft together with your personal,
company and bank details, and turns it into PDF, text or HTML invoices.

By default, running raseed without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(personalCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}
