package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/palette"
)

// Bridge turns controller and session callbacks into Bubble Tea messages.
// It is created before the program exists; messages sent before Attach are
// queued and delivered on attach.
type Bridge struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

// NewBridge returns an unattached Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a running program's Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		send(msg)
	}
}

// Send delivers msg to the program, or queues it until Attach.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.pending = append(b.pending, msg)
	}
	b.mu.Unlock()

	if send != nil {
		send(msg)
	}
}

// RedirectToLogin implements session.Navigator.
func (b *Bridge) RedirectToLogin() { b.Send(RedirectLoginMsg{}) }

// Notify implements session.Notifier.
func (b *Bridge) Notify(message string) { b.Send(NoticeMsg{Text: message}) }

// ShowStatus implements controller.View.
func (b *Bridge) ShowStatus(msg string, isError bool, hints []string) {
	b.Send(StatusMsg{Text: msg, IsError: isError, Hints: hints})
}

// RenderPalette implements controller.View.
func (b *Bridge) RenderPalette(res palette.AnalysisResult) {
	b.Send(PaletteMsg{Result: res})
}

// ScheduleDetails implements controller.View.
func (b *Bridge) ScheduleDetails(res palette.AnalysisResult, delay, duration time.Duration) {
	b.Send(DetailsScheduleMsg{Result: res, Delay: delay, Duration: duration})
}

// RenderGallery implements controller.View.
func (b *Bridge) RenderGallery(palettes []palette.Palette) {
	b.Send(GalleryMsg{Palettes: palettes})
}

// ShowGalleryEmpty implements controller.View.
func (b *Bridge) ShowGalleryEmpty() { b.Send(GalleryEmptyMsg{}) }

// ShowGalleryError implements controller.View.
func (b *Bridge) ShowGalleryError(msg string) { b.Send(GalleryErrorMsg{Text: msg}) }

// SetGalleryVisible implements controller.View.
func (b *Bridge) SetGalleryVisible(visible bool) { b.Send(GalleryVisibleMsg{Visible: visible}) }

// Alert implements controller.View.
func (b *Bridge) Alert(msg string) { b.Send(AlertMsg{Text: msg}) }

// SetInput implements controller.View.
func (b *Bridge) SetInput(text string) { b.Send(SetInputMsg{Text: text}) }
