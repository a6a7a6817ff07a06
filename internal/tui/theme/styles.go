// Package theme holds the lipgloss palette and shared styles for the
// browser TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal-compatible color constants using ANSI standard colors
const (
	ColorWhite        = "#FFFFFF" // primary text
	ColorBrightBlack  = "#808080" // secondary text
	ColorBrightBlue   = "#5C7CFA" // primary accent
	ColorBrightGreen  = "#51CF66" // success
	ColorBrightYellow = "#FFD43B" // warning / prompts
	ColorBrightRed    = "#FF6B6B" // error
	ColorFileLoaded   = "#74C0FC" // cached thumbnails
)

// TitleStyle renders screen headings
var TitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightBlue)).
	Bold(true)

// LabelStyle renders field labels
var LabelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightBlack))

// SelectedStyle highlights the file under the cursor
var SelectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(lipgloss.Color(ColorBrightBlue)).
	Bold(true)

// LoadedStyle marks files whose thumbnail is cached
var LoadedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorFileLoaded))

// PendingStyle marks files still waiting on the worker
var PendingStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightBlack))

// ErrorStyle renders error messages
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightRed)).
	Bold(true)

// StatusStyle renders the footer status line
var StatusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightBlack))

// DialogStyle frames confirmation prompts
func DialogStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBrightBlue)).
		Padding(1, 2)
}

// PromptStyle renders the question line inside a dialog
var PromptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(ColorBrightYellow)).
	Bold(true)
