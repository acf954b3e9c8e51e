package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/storage"
)

// Options configures a Guard. Zero values are usable: http.DefaultClient,
// no navigation, no notices, no local expiry check.
type Options struct {
	HTTPClient  *http.Client
	Navigator   Navigator
	Notifier    Notifier
	Logger      *log.Logger
	CheckExpiry bool
	Now         func() time.Time
}

// Guard holds the current session and wraps outbound requests with it.
// It never retries; every failure is either a navigation or a returned error.
type Guard struct {
	store       storage.Store
	client      *http.Client
	nav         Navigator
	notifier    Notifier
	logger      *log.Logger
	checkExpiry bool
	now         func() time.Time
}

// NewGuard creates a Guard over store.
func NewGuard(store storage.Store, opts Options) *Guard {
	g := &Guard{
		store:       store,
		client:      opts.HTTPClient,
		nav:         opts.Navigator,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
		checkExpiry: opts.CheckExpiry,
		now:         opts.Now,
	}
	if g.client == nil {
		g.client = http.DefaultClient
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// SetNavigator replaces the navigator. Used by surfaces that are built after
// the guard, such as the TUI program.
func (g *Guard) SetNavigator(nav Navigator) { g.nav = nav }

// SetNotifier replaces the notifier.
func (g *Guard) SetNotifier(n Notifier) { g.notifier = n }

func (g *Guard) get(key string) string {
	v, ok, err := g.store.Get(key)
	if err != nil || !ok {
		return ""
	}
	return v
}

// IsAuthenticated reports whether both a token and a user record are stored.
// Neither signature nor expiry is checked here.
func (g *Guard) IsAuthenticated() bool {
	return g.get(KeyToken) != "" && g.get(KeyUser) != ""
}

// Token returns the stored bearer token, or "".
func (g *Guard) Token() string {
	return g.get(KeyToken)
}

// User parses the stored user record. A missing or malformed record yields false.
func (g *Guard) User() (palette.User, bool) {
	raw := g.get(KeyUser)
	if raw == "" {
		return palette.User{}, false
	}
	var u palette.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return palette.User{}, false
	}
	return u, true
}

// Current returns the full session when authenticated.
func (g *Guard) Current() (Session, bool) {
	if !g.IsAuthenticated() {
		return Session{}, false
	}
	u, ok := g.User()
	if !ok {
		return Session{}, false
	}
	return Session{Token: g.Token(), User: u}, true
}

// Save stores token and user together.
func (g *Guard) Save(token string, user palette.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("save session: empty token")
	}
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("save session: user has no username")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save session: marshal user: %w", err)
	}
	if err := g.store.SetMany(map[string]string{KeyToken: token, KeyUser: string(data)}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	g.logger.Record(log.LogEvent{Event: log.EventSessionSaved, Username: user.Username})
	return nil
}

// Clear removes both session fields without navigating.
func (g *Guard) Clear() error {
	if err := g.store.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Logout clears the session and navigates to login. Safe to call repeatedly.
func (g *Guard) Logout() error {
	err := g.Clear()
	event := log.LogEvent{Event: log.EventSessionCleared}
	if err != nil {
		event.Error = err.Error()
	}
	g.logger.Record(event)
	if g.nav != nil {
		g.nav.RedirectToLogin()
	}
	return err
}

// RequireAuth redirects to login and returns false when not authenticated.
func (g *Guard) RequireAuth() bool {
	if !g.IsAuthenticated() {
		if g.nav != nil {
			g.nav.RedirectToLogin()
		}
		return false
	}
	return true
}

// HasRole reports whether the stored user has role.
func (g *Guard) HasRole(role palette.Role) bool {
	u, ok := g.User()
	return ok && u.Role == role
}

// IsAdmin reports whether the stored user is an admin.
func (g *Guard) IsAdmin() bool {
	return g.HasRole(palette.RoleAdmin)
}

// AuthHeaders returns the default headers for an authenticated request.
func (g *Guard) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+g.Token())
	h.Set("Content-Type", "application/json")
	return h
}

// Do sends req with the bearer token and a JSON content type. Headers already
// on req win over those defaults. Without a token the session is torn down
// and ErrUnauthenticated returned before anything is sent. A 401 response
// surfaces ExpiredNotice, tears the session down and returns
// ErrSessionExpired. Every other response is returned untouched.
func (g *Guard) Do(req *http.Request) (*http.Response, error) {
	token := g.Token()
	if token == "" {
		return nil, g.endSession(ErrUnauthenticated)
	}
	if g.checkExpiry {
		if claims, err := ParseClaims(token); err == nil && claims.Expired(g.now()) {
			return nil, g.endSession(fmt.Errorf("token expired at %s: %w", claims.ExpiresAt.Format(time.RFC3339), ErrUnauthenticated))
		}
	}

	headers := g.AuthHeaders()
	for k, v := range req.Header {
		headers[k] = v
	}
	if headers.Get("X-Request-ID") == "" {
		headers.Set("X-Request-ID", uuid.NewString())
	}
	out := req.Clone(req.Context())
	out.Header = headers

	requestID := headers.Get("X-Request-ID")
	g.logger.Record(log.LogEvent{
		Event:     log.EventRequestSent,
		RequestID: requestID,
		Method:    out.Method,
		URL:       out.URL.String(),
	})

	start := g.now()
	resp, err := g.client.Do(out)
	if err != nil {
		g.logger.Record(log.LogEvent{
			Event:     log.EventRequestFailed,
			RequestID: requestID,
			URL:       out.URL.String(),
			Error:     err.Error(),
		})
		return nil, err
	}
	g.logger.Record(log.LogEvent{
		Event:      log.EventResponseReceived,
		RequestID:  requestID,
		URL:        out.URL.String(),
		Status:     resp.StatusCode,
		DurationMs: g.now().Sub(start).Milliseconds(),
	})

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if g.notifier != nil {
			g.notifier.Notify(ExpiredNotice)
		}
		return nil, g.endSession(ErrSessionExpired)
	}

	return resp, nil
}

// endSession logs out and returns cause, joined with the storage error if
// the session could not be cleared.
func (g *Guard) endSession(cause error) error {
	if err := g.Logout(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
