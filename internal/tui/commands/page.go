// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/tui"
)

// Operation names carried by OperationDoneMsg.
const (
	OpStart      = "start"
	OpGenerate   = "generate"
	OpGallery    = "gallery"
	OpToggle     = "toggle"
	OpRegenerate = "regenerate"
	OpDelete     = "delete"
)

// The controller renders through the Bridge while these run; the returned
// OperationDoneMsg only tells the app a request finished.

// StartCmd runs the page load sequence.
func StartCmd(c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return tui.OperationDoneMsg{Op: OpStart, Err: c.Start(context.Background())}
	}
}

// GenerateCmd analyzes text.
func GenerateCmd(c *controller.Controller, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Generate(context.Background(), text)
		return tui.OperationDoneMsg{Op: OpGenerate, Err: err}
	}
}

// LoadGalleryCmd reloads the gallery.
func LoadGalleryCmd(c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return tui.OperationDoneMsg{Op: OpGallery, Err: c.LoadGallery(context.Background())}
	}
}

// ToggleGalleryCmd opens or closes the gallery.
func ToggleGalleryCmd(c *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return tui.OperationDoneMsg{Op: OpToggle, Err: c.ToggleGallery(context.Background())}
	}
}

// RegenerateCmd generates p's text again.
func RegenerateCmd(c *controller.Controller, p palette.Palette) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Regenerate(context.Background(), p)
		return tui.OperationDoneMsg{Op: OpRegenerate, Err: err}
	}
}

// DeleteCmd deletes a stored palette.
func DeleteCmd(c *controller.Controller, id palette.ID) tea.Cmd {
	return func() tea.Msg {
		return tui.OperationDoneMsg{Op: OpDelete, Err: c.Delete(context.Background(), id)}
	}
}
