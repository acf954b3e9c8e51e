// Package session implements the session guard: it owns the stored bearer
// token and user profile, gates access, and attaches credentials to every
// outbound request.
package session

import (
	"errors"

	"github.com/hueful/hueful/internal/palette"
)

// Storage keys. Token and user are always written and cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var (
	// ErrUnauthenticated is returned when no token is present at call time.
	// No request is sent.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the server answers 401.
	ErrSessionExpired = errors.New("session expired")
)

// ExpiredNotice is shown to the user when the server rejects the token.
const ExpiredNotice = "Session expired. Please log in again."

// Session is the credential and identity held for the current user.
type Session struct {
	Token string
	User  palette.User
}

// Navigator moves the user to the login view.
type Navigator interface {
	RedirectToLogin()
}

// Notifier surfaces a user-facing notice.
type Notifier interface {
	Notify(message string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

// RedirectToLogin calls f.
func (f NavigatorFunc) RedirectToLogin() { f() }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(string)

// Notify calls f.
func (f NotifierFunc) Notify(message string) { f(message) }

// IsSessionError reports whether err ended the session. Callers skip inline
// error rendering for these because the guard already redirected.
func IsSessionError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrSessionExpired)
}
