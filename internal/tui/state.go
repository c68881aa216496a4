package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ViewState is the screen the browser shows.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateError
	ViewStateQuitting
)

// OutputMode is how much terminal capability output may assume.
type OutputMode int

// Output modes.
const (
	OutputModePlain OutputMode = iota
	OutputModeStyled
	OutputModeInteractive
)

// DetectOutputMode picks the richest mode the environment supports. forcePlain and
// noColor come from flags; NO_COLOR and TERM=dumb are honoured too.
func DetectOutputMode(forcePlain, noColor bool) OutputMode {
	if forcePlain || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if os.Getenv("CI") != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// Key names.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keySlash    = "/"
	keyNext     = "n"
	keyPrev     = "p"
	keyRight    = "right"
	keyLeft     = "left"
	keyPgDown   = "pgdown"
	keyPgUp     = "pgup"
	keyHome     = "home"
	keyEnd      = "end"
	keyFirst    = "g"
	keyLast     = "G"
	keyReload   = "r"
	keyClear    = "c"
	keyExport   = "x"
	keyBigger   = "+"
	keySmaller  = "-"
	keyHelp     = "?"
	keyFilterT  = "T"
	keyFilterO  = "O"
	keyFilterS  = "S"
	keyFilterR  = "R"
	keySortT    = "t"
	keySortO    = "o"
	keySortD    = "d"
	keySortA    = "a"
	keySortE    = "e"
	keySortS    = "s"
	keyNextItem = "down"
	keyPrevItem = "up"
)

// LoadingState is the spinner shown while a request is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a spinner with the default message.
func NewLoadingState() *LoadingState {
	return &LoadingState{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(HeaderStyle)),
		message: "Cargando contratos...",
	}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and message.
func (l *LoadingState) View() string {
	return l.spinner.View() + " " + l.message
}

// RenderLoading renders a loading line; a nil state renders plain text.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return "Cargando..."
	}
	return l.View()
}
