// file: cmd/autofill.go
// version: 1.0.0
// guid: d62b0f4e-8a13-4c97-a5e2-0b7f3c9d1a86

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/spf13/cobra"
)

func newAutofillCmd(cfg *config.Config) *cobra.Command {
	var title, author string

	autofillCmd := &cobra.Command{
		Use:   "autofill",
		Short: "Run one autofill lookup and print the JSON result",
		Long: `Run the same summary and cover lookups as POST /api/autofill once and
print the combined result as JSON on stdout.`,
		Example: `  bookstreamer autofill --title "Dune" --author "Frank Herbert"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}

			agg, err := newAggregator(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			result, err := agg.Autofill(cmd.Context(), title, author)
			if err != nil {
				return fmt.Errorf("autofill failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	autofillCmd.Flags().StringVar(&title, "title", "", "book title (required)")
	autofillCmd.Flags().StringVar(&author, "author", "", "book author")

	return autofillCmd
}
