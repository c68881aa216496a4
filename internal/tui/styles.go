package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	ColorAccent  = lipgloss.Color("39")
	ColorSubtle  = lipgloss.Color("241")
	ColorBorder  = lipgloss.Color("240")
	ColorOK      = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lipgloss styles are package-level by convention.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorSubtle)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	OKStyle      = lipgloss.NewStyle().Foreground(ColorOK)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	PageStyle        = lipgloss.NewStyle().Padding(0, 1)
)

// TierStyle colors a choropleth tier swatch with the given hex color.
func TierStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
