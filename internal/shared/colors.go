// Package shared provides colours and styles shared by cc-prompt commands.
package shared

import (
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha colours.
var (
	Red     = lipgloss.Color("#f38ba8")
	Sky     = lipgloss.Color("#89dceb")
	Mauve   = lipgloss.Color("#cba6f7")
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#7f849c")
)

// Styles for command output.
var (
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	MutedStyle = lipgloss.NewStyle().Foreground(Overlay)
)
