package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/muhammadidrees/raseed/internal/service"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [invoice|all]",
	Short: "Reset the stored drafts",
	Long: `Reset the stored drafts. By default resets only the invoice draft.

Examples:
  raseed reset            # Fresh invoice dated today, details are kept
  raseed reset all        # Wipe everything: invoice, personal, company, bank`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{service.ResetInvoice, service.ResetAll},
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := service.ResetInvoice
		if len(args) == 1 {
			scope = args[0]
		}

		message := "This will replace the invoice draft with a fresh one. Continue?"
		if scope == service.ResetAll {
			message = "This will delete ALL drafts (invoice, personal, company, bank). Continue?"
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(message) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.Reset(cmd.Context(), scope); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Drafts have been reset.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
