package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/contractlens/contractlens/internal/tui"
)

const defaultTermWidth = 100

// outputMode resolves the terminal capabilities for cmd, honouring --plain.
func outputMode(cmd *cobra.Command) tui.OutputMode {
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain, false)
}

// terminalWidth returns the stdout width, or a default when stdout is not a terminal.
func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return defaultTermWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
