package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/spf13/cobra"
)

var personalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Manage your personal details",
}

var personalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your personal details",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := appInstance.InvoiceService.Record(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		p := record.Personal
		printField(out, "Name", p.Name)
		printField(out, "Email", p.Email)
		printField(out, "Tax ID", p.TaxID)
		printAddress(out, p.Address)
		printMissing(out, p.Check())
		return nil
	},
}

var personalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your personal details",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}

		p := record.Personal
		stringFlag(cmd, "name", &p.Name)
		stringFlag(cmd, "email", &p.Email)
		stringFlag(cmd, "tax-id", &p.TaxID)
		applyAddressFlags(cmd, &p.Address)

		if err := appInstance.InvoiceService.SavePersonal(ctx, &p); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Personal details saved")
		printMissing(cmd.OutOrStdout(), p.Check())
		return nil
	},
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage the billed company",
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the billed company",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := appInstance.InvoiceService.Record(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printField(out, "Name", record.Company.Name)
		printAddress(out, record.Company.Address)
		printMissing(out, record.Company.Check())
		return nil
	},
}

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the billed company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}

		c := record.Company
		stringFlag(cmd, "name", &c.Name)
		applyAddressFlags(cmd, &c.Address)

		if err := appInstance.InvoiceService.SaveCompany(ctx, &c); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Company saved")
		printMissing(cmd.OutOrStdout(), c.Check())
		return nil
	},
}

var companyPresetCmd = &cobra.Command{
	Use:   "preset [slug]",
	Short: "Fill the company from a configured preset",
	Long: `Fill the company from a configured preset.

Run without arguments to list the available presets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			slugs := appInstance.Config.PresetSlugs()
			if len(slugs) == 0 {
				fmt.Fprintln(out, "No company presets configured")
				return nil
			}
			for _, slug := range slugs {
				preset, _ := appInstance.Config.CompanyPreset(slug)
				fmt.Fprintf(out, "%-15s %s\n", slug, preset.Name)
			}
			return nil
		}

		company, err := appInstance.InvoiceService.ApplyCompanyPreset(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✓ Company set to %s\n", company.Name)
		return nil
	},
}

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the bank account shown for payment",
}

var bankShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the bank account",
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := appInstance.InvoiceService.Record(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		b := record.Bank
		printField(out, "Bank", b.Name)
		printField(out, "Account title", b.AccountTitle)
		printField(out, "IBAN", b.IBAN)
		printField(out, "BIC", b.BIC)
		printMissing(out, b.Check())
		return nil
	},
}

var bankSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the bank account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}

		b := record.Bank
		stringFlag(cmd, "name", &b.Name)
		stringFlag(cmd, "account-title", &b.AccountTitle)
		stringFlag(cmd, "iban", &b.IBAN)
		stringFlag(cmd, "bic", &b.BIC)
		b.IBAN = strings.ToUpper(strings.ReplaceAll(b.IBAN, " ", ""))

		if err := appInstance.InvoiceService.SaveBank(ctx, &b); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Bank account saved")
		printMissing(cmd.OutOrStdout(), b.Check())
		return nil
	},
}

func printField(w io.Writer, label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(w, "%-14s %s\n", label+":", value)
}

func printAddress(w io.Writer, a domain.Address) {
	printField(w, "Street", a.Street)
	printField(w, "City", a.City)
	printField(w, "Zip", a.Zip)
}

func init() {
	personalCmd.AddCommand(personalShowCmd)
	personalCmd.AddCommand(personalSetCmd)
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companySetCmd)
	companyCmd.AddCommand(companyPresetCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankSetCmd)

	// Personal flags
	personalSetCmd.Flags().String("name", "", "Your name")
	personalSetCmd.Flags().String("email", "", "Your email")
	personalSetCmd.Flags().String("tax-id", "", "Your tax ID")
	addAddressFlags(personalSetCmd)

	// Company flags
	companySetCmd.Flags().String("name", "", "Company name")
	addAddressFlags(companySetCmd)

	// Bank flags
	bankSetCmd.Flags().String("name", "", "Bank name")
	bankSetCmd.Flags().String("account-title", "", "Account holder")
	bankSetCmd.Flags().String("iban", "", "IBAN")
	bankSetCmd.Flags().String("bic", "", "BIC")
}
