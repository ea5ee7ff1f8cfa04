package cli

import (
	"fmt"

	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Preview, edit and generate the invoice",
	Long:  `Show the invoice preview, change the date and payment terms, and generate files.`,
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the invoice preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if err := appInstance.InvoiceService.Render(ctx, out, "txt"); err != nil {
			return explainIncomplete(out, err)
		}
		return nil
	},
}

var invoiceGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the invoice to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = appInstance.Config.Invoice.DefaultFormat
		}
		output, _ := cmd.Flags().GetString("output")

		path, err := appInstance.InvoiceService.Generate(ctx, format, output)
		if err != nil {
			return explainIncomplete(cmd.OutOrStdout(), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice written to %s\n", path)
		return nil
	},
}

var invoiceSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the invoice date or payment terms",
	Long: `Change the invoice date or payment terms.

Terms: due_on_receipt, net_15, net_30, net_60, custom.
Custom terms need --custom-days between 1 and 365.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}
		data := record.Invoice

		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			data.Date = date
		}

		terms := data.Terms
		if cmd.Flags().Changed("terms") {
			termsStr, _ := cmd.Flags().GetString("terms")
			terms, err = domain.ParsePaymentTerms(termsStr)
			if err != nil {
				return err
			}
		}

		customDays := data.CustomDays
		if cmd.Flags().Changed("custom-days") {
			days, _ := cmd.Flags().GetInt("custom-days")
			customDays = &days
		}
		data.SetTerms(terms, customDays)

		if err := appInstance.InvoiceService.SaveInvoiceData(ctx, &data); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice %s dated %s, %s (due %s)\n",
			derivation.GenerateInvoiceNumber(data.Date),
			derivation.FormatDate(data.Date),
			derivation.DescribeTerms(data.Terms, data.CustomDays),
			derivation.FormatDate(derivation.ResolveDueDate(data.Date, data.Terms, data.CustomDays)),
		)
		return nil
	},
}

func init() {
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceGenerateCmd)
	invoiceCmd.AddCommand(invoiceSetCmd)

	// Generate flags
	invoiceGenerateCmd.Flags().StringP("format", "f", "", "Output format: pdf, txt or html (defaults to config)")
	invoiceGenerateCmd.Flags().StringP("output", "o", "", "Output file (defaults to the configured output directory)")

	// Set flags
	invoiceSetCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD or 'today')")
	invoiceSetCmd.Flags().String("terms", "", "Payment terms")
	invoiceSetCmd.Flags().Int("custom-days", 0, "Days until due for custom terms")
}
