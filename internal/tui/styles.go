package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	// Transcript styles
	InputLineStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	SystemMessageStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	StatusBusyStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderError(err string) string {
	return ErrorMessageStyle.Render("error: " + err)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpStyle.Render(description)
}
