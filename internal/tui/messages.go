package tui

import (
	"time"

	"github.com/hueful/hueful/internal/palette"
)

// ============================================================================
// Navigation Messages
// ============================================================================

// RedirectLoginMsg moves the app to the login view. Sent by the session
// guard whenever the session ends.
type RedirectLoginMsg struct{}

// NoticeMsg is a transient notice, such as the session-expired message.
type NoticeMsg struct {
	Text string
}

// LoginSuccessMsg signals that credentials were accepted and stored.
type LoginSuccessMsg struct {
	User palette.User
}

// LoginErrorMsg signals a failed login attempt.
type LoginErrorMsg struct {
	Err error
}

// ============================================================================
// Page Messages (sent by the controller through the Bridge)
// ============================================================================

// StatusMsg replaces the status line.
type StatusMsg struct {
	Text    string
	IsError bool
	Hints   []string
}

// PaletteMsg carries a freshly generated palette.
type PaletteMsg struct {
	Result palette.AnalysisResult
}

// DetailsScheduleMsg asks the app to show the details popup after Delay and
// hide it Duration later.
type DetailsScheduleMsg struct {
	Result   palette.AnalysisResult
	Delay    time.Duration
	Duration time.Duration
}

// ShowDetailsMsg and HideDetailsMsg carry the schedule sequence so a stale
// timer cannot hide a newer popup.
type ShowDetailsMsg struct{ Seq int }

// HideDetailsMsg hides the details popup scheduled under Seq.
type HideDetailsMsg struct{ Seq int }

// GalleryMsg carries loaded gallery palettes.
type GalleryMsg struct {
	Palettes []palette.Palette
}

// GalleryEmptyMsg signals a successful load with no palettes.
type GalleryEmptyMsg struct{}

// GalleryErrorMsg signals a failed gallery load.
type GalleryErrorMsg struct {
	Text string
}

// GalleryVisibleMsg opens or closes the gallery panel.
type GalleryVisibleMsg struct {
	Visible bool
}

// AlertMsg is a modal message the user dismisses with any key.
type AlertMsg struct {
	Text string
}

// SetInputMsg replaces the compose input text.
type SetInputMsg struct {
	Text string
}

// ============================================================================
// Command Results
// ============================================================================

// OperationDoneMsg signals that a background controller call returned.
type OperationDoneMsg struct {
	Op  string
	Err error
}

// ClipboardMsg reports a copy-to-clipboard attempt.
type ClipboardMsg struct {
	Color string
	Err   error
}

// ExportedMsg reports a PNG export.
type ExportedMsg struct {
	Path string
	Err  error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}

// AlertTimeoutMsg dismisses the alert shown under Seq.
type AlertTimeoutMsg struct{ Seq int }
