package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/palette"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateLogin ViewState = iota
	StatePage
)

// Model holds state shared by every view.
type Model struct {
	// State management
	State ViewState

	// Configuration
	Cfg  *config.Config
	Home string

	// Signed-in user, zero when logged out
	User palette.User

	// Last notice from the session guard, shown on the login view
	Notice string

	// Requests in flight; the spinner runs while > 0
	Busy    int
	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config, home string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		State:   StateLogin,
		Cfg:     cfg,
		Home:    home,
		Spinner: sp,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
