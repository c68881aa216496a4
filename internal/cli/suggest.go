package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/api"
	"github.com/contractlens/contractlens/internal/contracts"
)

// NewSuggestCmd creates the suggest command, the autocomplete endpoints on the
// command line.
func NewSuggestCmd() *cobra.Command {
	var (
		party bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Autocomplete contracting parties or search terms",
		Long: fmt.Sprintf(`Prints autocomplete suggestions for text. Text shorter than %d characters
returns nothing and sends no request.`, api.MinAutocompleteLength),
		Example: `  contractlens suggest ayunt --party
  contractlens suggest limpieza --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if party {
				names, err := catalog.ContractingPartySuggestions(ctx, args[0])
				if err != nil {
					return fmt.Errorf("fetching suggestions: %w", err)
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			var suggestions []contracts.Suggestion
			suggestions, err = catalog.GlobalSuggestions(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("fetching suggestions: %w", err)
			}
			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			for _, s := range suggestions {
				fmt.Fprintf(tw, "%s\t%s\n", s.Value, s.Type)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&party, "party", false, "suggest contracting party names")
	cmd.Flags().IntVar(&limit, "limit", api.DefaultSuggestionLimit, "maximum suggestions (global search only)")

	return cmd
}
