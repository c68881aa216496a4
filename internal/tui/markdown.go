package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/contractlens/contractlens/internal/amount"
	"github.com/contractlens/contractlens/internal/contracts"
	"github.com/contractlens/contractlens/internal/labels"
	"github.com/contractlens/contractlens/internal/regions"
)

// Glamour styles.
const (
	MarkdownStyleAuto  = "auto"
	MarkdownStylePlain = "notty"
)

const minWrap = 40

// ContractMarkdown renders a record as a Markdown document.
func ContractMarkdown(c contracts.Contract) string {
	var b strings.Builder

	title := c.Title
	if title == "" {
		title = "(sin título)"
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	b.WriteString("| Campo | Valor |\n|---|---|\n")
	row := func(k, v string) {
		if v == "" {
			return
		}
		fmt.Fprintf(&b, "| %s | %s |\n", k, escapeMarkdown(v))
	}
	row("Organismo", c.ContractingPartyName)
	row("Importe", amount.Display(amount.Best(c)))
	if v, ok := amount.Best(c); ok {
		row("Tramo", amount.Classify(v).Label())
	}
	row("Importe total", optionalAmount(c.TotalAmount))
	row("Importe sin impuestos", optionalAmount(c.TaxExclusiveAmount))
	row("Valor estimado", optionalAmount(c.EstimatedAmount))
	if c.Status != "" {
		row("Estado", labels.Resolve(labels.Status, c.Status))
	}
	if c.TypeCode != "" {
		row("Tipo", labels.Resolve(labels.Type, c.TypeCode))
	}
	if c.Source != "" {
		row("Origen", labels.Resolve(labels.Source, c.Source))
	}
	if c.CountrySubentity != "" {
		row("Región", regions.Canonical(c.CountrySubentity))
	}
	row("NUTS", c.NUTSCode)
	row("CPV", c.CPVCode)
	if c.UpdatedAt != nil && !c.UpdatedAt.IsZero() {
		row("Actualizado", c.UpdatedAt.Format("2/1/2006 15:04"))
	}
	row("Expediente", c.FolderID)
	if c.ID != uuid.Nil {
		row("ID", c.ID.String())
	}

	if summary := amount.PlainText(c.Summary); summary != "" {
		fmt.Fprintf(&b, "\n## Resumen\n\n%s\n", escapeMarkdown(summary))
	}
	if c.Link != "" {
		fmt.Fprintf(&b, "\n[Ver en la Plataforma de Contratación](%s)\n", c.Link)
	}
	return b.String()
}

func optionalAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return amount.FormatEUR(*v)
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")
	return r.Replace(s)
}

// RenderMarkdown renders md for a terminal of the given width. style is a glamour
// standard style name; MarkdownStyleAuto detects the terminal background.
func RenderMarkdown(md string, width int, style string) (string, error) {
	if width < minWrap {
		width = minWrap
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == MarkdownStyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
