package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/internal/tui"
)

// Show output formats.
const (
	showText     = "text"
	showMarkdown = "markdown"
	showJSON     = "json"
)

// NewShowCmd creates the show command for a single contract.
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contract",
		Long:  "Fetches a contract by its UUID and renders it as formatted text, raw Markdown or JSON.",
		Example: `  contractlens show 0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e01
  contractlens show 0b6f1f4e-4a4c-4f1e-9d53-1a7f0c1d2e01 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid contract id %q: %w", args[0], err)
			}
			switch output {
			case showText, showMarkdown, showJSON:
			default:
				return fmt.Errorf("unknown output format %q: use text, markdown or json", output)
			}

			catalog, err := newCatalog(cmd)
			if err != nil {
				return err
			}
			c, err := catalog.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching contract %s: %w", id, err)
			}

			out := cmd.OutOrStdout()
			switch output {
			case showJSON:
				return writeJSON(out, c)
			case showMarkdown:
				_, err = fmt.Fprint(out, tui.ContractMarkdown(c))
				return err
			}

			style := tui.MarkdownStyleAuto
			if outputMode(cmd) == tui.OutputModePlain {
				style = tui.MarkdownStylePlain
			}
			rendered, err := tui.RenderMarkdown(tui.ContractMarkdown(c), terminalWidth(), style)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", showText, "output format: text, markdown or json")

	return cmd
}
