// Package api is the typed client for the palette backend. Every payload is
// validated at this boundary; callers never see half-decoded responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
)

// Doer sends authenticated requests. *session.Guard satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// Method is the analysis method sent with every analyze request.
	Method string
	// Timeout bounds unauthenticated calls. Zero waits forever.
	Timeout time.Duration
	// HTTPClient is used for health and login. Defaults to a client with Timeout.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to the palette backend.
type Client struct {
	baseURL string
	method  string
	auth    Doer
	plain   *http.Client
	logger  *log.Logger
}

// DefaultMethod is the analysis method used when none is configured.
const DefaultMethod = "hybrid"

// New creates a Client. auth carries the session; health and login bypass it.
func New(auth Doer, opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		method:  opts.Method,
		auth:    auth,
		plain:   opts.HTTPClient,
		logger:  opts.Logger,
	}
	if c.method == "" {
		c.method = DefaultMethod
	}
	if c.plain == nil {
		c.plain = &http.Client{Timeout: opts.Timeout}
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// WithMethod returns a copy of c that sends method with analyze requests.
func (c *Client) WithMethod(method string) *Client {
	cp := *c
	cp.method = method
	return &cp
}

// HealthStatus is the liveness probe response.
type HealthStatus struct {
	Status   string `json:"status"`
	Security string `json:"security,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthStatus) Healthy() bool { return h.Status == "healthy" }

// GalleryPage is a page of stored palettes, newest first.
type GalleryPage struct {
	Total    int               `json:"total"`
	Palettes []palette.Palette `json:"palettes"`
}

// LoginResult is the token issued by POST /token.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        palette.User `json:"user"`
}

// Stats are the backend-wide counters returned by GET /stats.
type Stats struct {
	TotalPalettes int    `json:"total_palettes"`
	TotalUsers    int    `json:"total_users"`
	APIVersion    string `json:"api_version"`
	Security      string `json:"security,omitempty"`
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

// Analyze submits text and returns the generated palette.
func (c *Client) Analyze(ctx context.Context, text string) (*palette.AnalysisResult, error) {
	body, err := json.Marshal(analyzeRequest{Text: text, Method: c.method})
	if err != nil {
		return nil, fmt.Errorf("encoding analyze request: %w", err)
	}
	var result palette.AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/analyze", bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, &MalformedResponseError{Endpoint: "/analyze", Err: err}
	}
	c.logger.Record(log.LogEvent{
		Event:  log.EventPaletteGenerated,
		Colors: result.Colors,
		Data:   map[string]interface{}{"confidence": result.Confidence, "method": result.MethodUsed},
	})
	return &result, nil
}

// Gallery lists stored palettes. limit <= 0 leaves the server default.
func (c *Client) Gallery(ctx context.Context, limit int) (*GalleryPage, error) {
	path := "/gallery"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var page GalleryPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	if page.Palettes == nil {
		page.Palettes = []palette.Palette{}
	}
	for i, p := range page.Palettes {
		if p.ID == "" {
			return nil, &MalformedResponseError{Endpoint: "/gallery", Err: fmt.Errorf("palette %d has no id", i)}
		}
	}
	c.logger.Record(log.LogEvent{Event: log.EventGalleryLoaded, Count: len(page.Palettes)})
	return &page, nil
}

// DeletePalette removes a stored palette.
func (c *Client) DeletePalette(ctx context.Context, id palette.ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("delete palette: empty id")
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/palettes/"+url.PathEscape(string(id)), nil, nil); err != nil {
		return err
	}
	c.logger.Record(log.LogEvent{Event: log.EventPaletteDeleted, PaletteID: string(id)})
	return nil
}

// Me fetches the authenticated user's profile from the server.
func (c *Client) Me(ctx context.Context) (*palette.User, error) {
	var u palette.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	if u.Username == "" {
		return nil, &MalformedResponseError{Endpoint: "/users/me", Err: errors.New("missing username")}
	}
	return &u, nil
}

// Stats fetches backend counters. The server restricts it by role.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.doJSON(ctx, http.MethodGet, "/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Health probes the backend without credentials.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("building health request: %w", err)
	}
	var h HealthStatus
	if err := c.exchange(c.plain, req, "/health", &h); err != nil {
		c.logger.Record(log.LogEvent{Event: log.EventBackendUnreachable, URL: c.baseURL, Error: err.Error()})
		return nil, err
	}
	if h.Healthy() {
		c.logger.Record(log.LogEvent{Event: log.EventBackendHealthy, URL: c.baseURL})
	} else {
		c.logger.Record(log.LogEvent{Event: log.EventBackendUnreachable, URL: c.baseURL, Reason: h.Status})
	}
	return &h, nil
}

// Login exchanges credentials for a token. The form encoding matches the
// backend's OAuth2 password flow.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res LoginResult
	if err := c.exchange(c.plain, req, "/token", &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, &MalformedResponseError{Endpoint: "/token", Err: errors.New("missing access_token")}
	}
	if res.User.Username == "" {
		res.User.Username = username
	}
	if res.User.Role == "" {
		res.User.Role = palette.RoleUser
	}
	return &res, nil
}

// doJSON sends an authenticated request and decodes a 2xx body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	return c.exchange(c.auth, req, endpoint, out)
}

// exchange runs req through d and decodes the result. Session errors from
// the guard pass through unwrapped so callers can match them.
func (c *Client) exchange(d Doer, req *http.Request, endpoint string, out interface{}) error {
	resp, err := d.Do(req)
	if err != nil {
		if session.IsSessionError(err) {
			return err
		}
		return &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: req.URL.String(), Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &MalformedResponseError{Endpoint: endpoint, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return nil
}
