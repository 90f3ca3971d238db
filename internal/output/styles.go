package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether styled output should be emitted.
// Styling is disabled when stdout is not a terminal or NO_COLOR is set.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// ColorSuccess colors text green
func ColorSuccess(text string) string {
	if !colorEnabled() {
		return text
	}
	return successStyle.Render(text)
}

// ColorWarn colors text yellow
func ColorWarn(text string) string {
	if !colorEnabled() {
		return text
	}
	return warnStyle.Render(text)
}

// ColorError colors text red
func ColorError(text string) string {
	if !colorEnabled() {
		return text
	}
	return errorStyle.Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	if !colorEnabled() {
		return text
	}
	return dimStyle.Render(text)
}

// ColorTool styles a tool name for progress lines
func ColorTool(text string) string {
	if !colorEnabled() {
		return text
	}
	return toolStyle.Render(text)
}
