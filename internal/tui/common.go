// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key binding constants.
const (
	KeyCtrlC = "ctrl+c"
	KeyTab   = "tab"
	KeyUp    = "up"
	KeyDown  = "down"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model and attaches bridge so
// background work can reach it. Without a TTY it prints guidance instead.
func Run(m tea.Model, bridge *Bridge) error {
	if !IsTTY() {
		return NewFallbackRunner(os.Stdout).Run()
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	bridge.Attach(p.Send)
	_, err := p.Run()
	return err
}
