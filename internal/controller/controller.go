// Package controller drives one page session: it checks the session, probes
// the backend, generates palettes and manages the gallery. All output goes
// through a View so the same flow serves the TUI and one-shot commands.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
)

// State is the page lifecycle state.
type State int

const (
	StateInit State = iota
	StateReady
	StateGenerating
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReady:
		return "ready"
	case StateGenerating:
		return "generating"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Detail popup timing.
const (
	DetailsDelay    = time.Second
	DetailsDuration = 10 * time.Second
)

// User-facing messages.
const (
	MsgEmptyInput     = "Please write something to analyze."
	MsgAnalyzing      = "Analyzing emotions..."
	MsgReady          = "Connected. Write how you feel and generate a palette."
	MsgGenerated      = "Palette generated."
	MsgDeleteFallback = "Could not delete palette"
	MsgDeleteFailed   = "Could not delete the palette"
)

var (
	// ErrEmptyInput is returned when the submitted text is blank.
	ErrEmptyInput = errors.New("empty input")
	// ErrBackendUnhealthy is returned when /health answers with a status
	// other than "healthy".
	ErrBackendUnhealthy = errors.New("backend unhealthy")
)

// View is the surface the controller renders into.
type View interface {
	ShowStatus(msg string, isError bool, hints []string)
	RenderPalette(res palette.AnalysisResult)
	ScheduleDetails(res palette.AnalysisResult, delay, duration time.Duration)
	RenderGallery(palettes []palette.Palette)
	ShowGalleryEmpty()
	ShowGalleryError(msg string)
	SetGalleryVisible(visible bool)
	Alert(msg string)
	SetInput(text string)
}

// Backend is the subset of *api.Client the controller calls.
type Backend interface {
	BaseURL() string
	Health(ctx context.Context) (*api.HealthStatus, error)
	Analyze(ctx context.Context, text string) (*palette.AnalysisResult, error)
	Gallery(ctx context.Context, limit int) (*api.GalleryPage, error)
	DeletePalette(ctx context.Context, id palette.ID) error
}

// Gate is the subset of *session.Guard the controller needs.
type Gate interface {
	RequireAuth() bool
}

// Options configures a Controller.
type Options struct {
	GalleryLimit int
	Logger       *log.Logger
}

// Controller orchestrates one page session. Methods may be called from
// several goroutines; overlapping requests are not cancelled and the last
// response to arrive is what the view shows.
type Controller struct {
	gate    Gate
	backend Backend
	view    View
	logger  *log.Logger
	limit   int

	mu             sync.Mutex
	state          State
	galleryVisible bool
	palettes       []palette.Palette
	last           *palette.AnalysisResult
}

// New creates a Controller in StateInit.
func New(gate Gate, backend Backend, view View, opts Options) *Controller {
	return &Controller{
		gate:    gate,
		backend: backend,
		view:    view,
		logger:  opts.Logger,
		limit:   opts.GalleryLimit,
		state:   StateInit,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// GalleryVisible reports whether the gallery panel is open.
func (c *Controller) GalleryVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.galleryVisible
}

// Palettes returns the palettes from the last successful gallery load.
func (c *Controller) Palettes() []palette.Palette {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]palette.Palette, len(c.palettes))
	copy(out, c.palettes)
	return out
}

// Last returns the most recently generated palette, if any.
func (c *Controller) Last() (palette.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return palette.AnalysisResult{}, false
	}
	return *c.last, true
}

// Start runs the load sequence: session check, liveness probe, gallery.
// The gallery panel starts closed.
func (c *Controller) Start(ctx context.Context) error {
	if !c.gate.RequireAuth() {
		c.setState(StateTerminated)
		return session.ErrUnauthenticated
	}
	c.mu.Lock()
	c.state = StateReady
	c.galleryVisible = false
	c.mu.Unlock()

	h, err := c.backend.Health(ctx)
	if err != nil {
		c.view.ShowStatus(api.UserMessage(err), true, c.hints(err))
		return err
	}
	if !h.Healthy() {
		c.view.ShowStatus(fmt.Sprintf("Backend reported status %q", h.Status), true, []string{
			fmt.Sprintf("Check the backend at %s", c.backend.BaseURL()),
		})
		return ErrBackendUnhealthy
	}

	c.view.ShowStatus(MsgReady, false, nil)
	if err := c.LoadGallery(ctx); err != nil && session.IsSessionError(err) {
		return err
	}
	return nil
}

// Generate analyzes text and renders the resulting palette. Blank text is
// rejected without a request.
func (c *Controller) Generate(ctx context.Context, text string) (*palette.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.view.Alert(MsgEmptyInput)
		return nil, ErrEmptyInput
	}

	c.setState(StateGenerating)
	c.view.ShowStatus(MsgAnalyzing, false, nil)

	res, err := c.backend.Analyze(ctx, text)
	if err != nil {
		if session.IsSessionError(err) {
			c.setState(StateTerminated)
			return nil, err
		}
		c.setState(StateReady)
		c.recordFailure("/analyze", err)
		c.view.ShowStatus(api.UserMessage(err), true, c.hints(err))
		return nil, err
	}

	c.mu.Lock()
	c.state = StateReady
	c.last = res
	c.mu.Unlock()

	c.view.RenderPalette(*res)
	c.view.ShowStatus(MsgGenerated, false, nil)
	c.view.ScheduleDetails(*res, DetailsDelay, DetailsDuration)

	if err := c.LoadGallery(ctx); err != nil && session.IsSessionError(err) {
		return res, err
	}
	return res, nil
}

// LoadGallery fetches and renders the gallery.
func (c *Controller) LoadGallery(ctx context.Context) error {
	page, err := c.backend.Gallery(ctx, c.limit)
	if err != nil {
		if session.IsSessionError(err) {
			c.setState(StateTerminated)
			return err
		}
		c.recordFailure("/gallery", err)
		c.view.ShowGalleryError(api.UserMessage(err))
		return err
	}

	c.mu.Lock()
	c.palettes = page.Palettes
	c.mu.Unlock()

	if len(page.Palettes) == 0 {
		c.view.ShowGalleryEmpty()
		return nil
	}
	c.view.RenderGallery(page.Palettes)
	return nil
}

// ToggleGallery opens or closes the gallery, loading it on open.
func (c *Controller) ToggleGallery(ctx context.Context) error {
	c.mu.Lock()
	c.galleryVisible = !c.galleryVisible
	visible := c.galleryVisible
	c.mu.Unlock()

	c.view.SetGalleryVisible(visible)
	if !visible {
		return nil
	}
	return c.LoadGallery(ctx)
}

// Regenerate refills the input with p's text, closes the gallery and
// generates again.
func (c *Controller) Regenerate(ctx context.Context, p palette.Palette) (*palette.AnalysisResult, error) {
	c.view.SetInput(p.InputText)

	c.mu.Lock()
	wasOpen := c.galleryVisible
	c.galleryVisible = false
	c.mu.Unlock()
	if wasOpen {
		c.view.SetGalleryVisible(false)
	}
	return c.Generate(ctx, p.InputText)
}

// Delete removes a palette and refreshes the gallery on success. Failures
// are alerted and leave the gallery as it was.
func (c *Controller) Delete(ctx context.Context, id palette.ID) error {
	err := c.backend.DeletePalette(ctx, id)
	if err == nil {
		return c.LoadGallery(ctx)
	}
	if session.IsSessionError(err) {
		c.setState(StateTerminated)
		return err
	}

	c.recordFailure("/palettes/"+string(id), err)
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.FromServer:
			c.view.Alert(reqErr.Detail)
			return err
		case reqErr.JSONBody:
			c.view.Alert(MsgDeleteFallback)
			return err
		}
	}
	c.view.Alert(MsgDeleteFailed)
	return err
}

// hints never comes back empty so a failed status line always points
// somewhere.
func (c *Controller) hints(err error) []string {
	if h := api.Hints(err, c.backend.BaseURL()); len(h) > 0 {
		return h
	}
	return []string{fmt.Sprintf("Check the backend at %s", c.backend.BaseURL())}
}

func (c *Controller) recordFailure(endpoint string, err error) {
	event := log.LogEvent{Event: log.EventRequestFailed, URL: endpoint, Error: err.Error()}
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		event.Status = reqErr.Status
	}
	c.logger.Record(event)
}
