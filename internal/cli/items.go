package cli

import (
	"fmt"

	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage invoice line items",
	Long:  `List, add, edit, and remove the line items of the invoice draft.`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List line items with totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		inv, err := appInstance.InvoiceService.Derive(cmd.Context())
		if err != nil {
			return err
		}

		// Print table header
		fmt.Fprintf(out, "%-9s %-36s %8s %12s %12s\n", "Key", "Description", "Qty", "Price", "Total")
		fmt.Fprintln(out, "-------------------------------------------------------------------------------")

		for _, line := range inv.Lines {
			fmt.Fprintf(out, "%-9s %-36s %8s %12s %12s\n",
				shortKey(line.Key),
				truncate(line.Description, 36),
				line.Quantity.String(),
				derivation.FormatNumber(line.UnitPrice),
				derivation.FormatNumber(line.LineTotal),
			)
		}

		fmt.Fprintln(out, "-------------------------------------------------------------------------------")
		fmt.Fprintf(out, "%67s %12s\n", "Subtotal", derivation.FormatNumber(inv.Subtotal))
		if inv.ShowTax {
			fmt.Fprintf(out, "%67s %12s\n", inv.TaxLabel(), derivation.FormatNumber(inv.Tax))
		}
		fmt.Fprintf(out, "%67s %12s\n", "Total", derivation.FormatAmount(inv.Total))
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a line item",
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		qty, _ := cmd.Flags().GetFloat64("qty")
		price, _ := cmd.Flags().GetFloat64("price")

		item, err := appInstance.InvoiceService.AddItem(cmd.Context(), description, qty, price)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Item added: %s (key %s)\n", item.Description, shortKey(item.Key))
		return nil
	},
}

var itemsEditCmd = &cobra.Command{
	Use:   "edit [key]",
	Short: "Edit a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}
		key, err := resolveItemKey(record.Invoice.Items, args[0])
		if err != nil {
			return err
		}
		item := *record.Invoice.FindItem(key)

		stringFlag(cmd, "description", &item.Description)
		if cmd.Flags().Changed("qty") {
			item.Quantity, _ = cmd.Flags().GetFloat64("qty")
		}
		if cmd.Flags().Changed("price") {
			item.Price, _ = cmd.Flags().GetFloat64("price")
		}

		if err := appInstance.InvoiceService.UpdateItem(ctx, item); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Item updated: %s\n", shortKey(item.Key))
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:   "remove [key]",
	Short: "Remove a line item (the first item stays)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		record, err := appInstance.InvoiceService.Record(ctx)
		if err != nil {
			return err
		}
		key, err := resolveItemKey(record.Invoice.Items, args[0])
		if err != nil {
			return err
		}

		if err := appInstance.InvoiceService.RemoveItem(ctx, key); err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Item removed: %s\n", shortKey(key))
		return nil
	},
}

func init() {
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsEditCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)

	// Add flags
	itemsAddCmd.Flags().StringP("description", "d", "", "Item description")
	itemsAddCmd.Flags().Float64P("qty", "q", 1, "Quantity")
	itemsAddCmd.Flags().Float64P("price", "p", 0, "Unit price")

	// Edit flags
	itemsEditCmd.Flags().StringP("description", "d", "", "New description")
	itemsEditCmd.Flags().Float64P("qty", "q", 0, "New quantity")
	itemsEditCmd.Flags().Float64P("price", "p", 0, "New unit price")
}
