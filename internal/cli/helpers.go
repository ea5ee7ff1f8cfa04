package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/service"
	"github.com/spf13/cobra"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// parseDate parses a YYYY-MM-DD date, or "today"
func parseDate(s string) (time.Time, error) {
	if s == "today" {
		return domain.DateOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected format: YYYY-MM-DD or 'today'")
	}
	return t, nil
}

// resolveItemKey finds the item whose key equals or uniquely starts with prefix
func resolveItemKey(items []domain.LineItem, prefix string) (string, error) {
	var matches []string
	for _, item := range items {
		if item.Key == prefix {
			return item.Key, nil
		}
		if strings.HasPrefix(item.Key, prefix) {
			matches = append(matches, item.Key)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", service.ErrItemNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item key %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// shortKey shortens an item key for table output
func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}

// stringFlag copies a flag into dst only when the user set it
func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = strings.TrimSpace(v)
	}
}

func addAddressFlags(cmd *cobra.Command) {
	cmd.Flags().String("street", "", "Street address")
	cmd.Flags().String("city", "", "City")
	cmd.Flags().String("zip", "", "Postal code")
}

func applyAddressFlags(cmd *cobra.Command, addr *domain.Address) {
	stringFlag(cmd, "street", &addr.Street)
	stringFlag(cmd, "city", &addr.City)
	stringFlag(cmd, "zip", &addr.Zip)
}

// printMissing lists the fields that block a preview, if any
func printMissing(w io.Writer, v domain.Violations) {
	if v.Empty() {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Missing before an invoice can be generated:")
	for _, field := range v.Fields() {
		fmt.Fprintf(w, "  - %s (%s)\n", field, v[field])
	}
}

// explainIncomplete turns an incomplete-record error into a readable list
func explainIncomplete(w io.Writer, err error) error {
	var incomplete *service.IncompleteError
	if errors.As(err, &incomplete) {
		printMissing(w, incomplete.Violations)
		return service.ErrIncompleteRecord
	}
	return err
}
