// Package views provides TUI view components for the hueful page.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/render"
	"github.com/hueful/hueful/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitTextMsg is sent when the user submits text for analysis. The text is
// sent as typed; blank input is rejected downstream.
type SubmitTextMsg struct {
	Text string
}

// CopyColorMsg asks for a color to be copied to the clipboard.
type CopyColorMsg struct {
	Color string
}

// DownloadMsg asks for the current palette to be saved as a PNG.
type DownloadMsg struct {
	Colors []string
}

// ToggleGalleryMsg opens or closes the gallery.
type ToggleGalleryMsg struct{}

// LogoutMsg ends the session.
type LogoutMsg struct{}

// QuitMsg exits the program.
type QuitMsg struct{}

// ============================================================================
// ComposeModel
// ============================================================================

// ComposeModel is the main page: text input, generated palette, status line
// and the details popup.
type ComposeModel struct {
	textInput textinput.Model
	user      palette.User
	result    *palette.AnalysisResult
	selected  int
	details   *palette.AnalysisResult
	status    tui.StatusMsg
	busy      string
	width     int
	height    int

	// Ctrl+C confirmation state
	ctrlCPending bool
}

// NewComposeModel creates a ComposeModel for user with a random suggestion
// as placeholder.
func NewComposeModel(user palette.User, width, height int) ComposeModel {
	ti := textinput.New()
	ti.Placeholder = tui.Suggestion()
	ti.CharLimit = 2000
	ti.Width = width - 10 // Account for padding/borders
	ti.Focus()

	return ComposeModel{
		textInput: ti,
		user:      user,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the compose view.
func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Focused reports whether the text input has focus.
func (m ComposeModel) Focused() bool {
	return m.textInput.Focused()
}

// Selected returns the highlighted color, if a palette is shown.
func (m ComposeModel) Selected() (string, bool) {
	if m.result == nil || len(m.result.Colors) == 0 {
		return "", false
	}
	return m.result.Colors[m.selected], true
}

// SetStatus replaces the status line.
func (m *ComposeModel) SetStatus(s tui.StatusMsg) { m.status = s }

// SetResult shows a freshly generated palette and hides any stale popup.
func (m *ComposeModel) SetResult(res palette.AnalysisResult) {
	m.result = &res
	m.selected = 0
	m.details = nil
}

// ShowDetails opens the details popup.
func (m *ComposeModel) ShowDetails(res palette.AnalysisResult) { m.details = &res }

// HideDetails closes the details popup.
func (m *ComposeModel) HideDetails() { m.details = nil }

// SetInput replaces the input text.
func (m *ComposeModel) SetInput(text string) {
	m.textInput.SetValue(text)
	m.textInput.CursorEnd()
}

// SetBusy shows spinner next to the status line; "" clears it.
func (m *ComposeModel) SetBusy(spinner string) { m.busy = spinner }

// SetCtrlCPending syncs the Ctrl+C confirmation hint.
func (m *ComposeModel) SetCtrlCPending(p bool) { m.ctrlCPending = p }

// Update handles messages for the compose view.
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	var cmd tea.Cmd
	keys := tui.DefaultKeyMap

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.textInput.Focused() {
			switch {
			case key.Matches(msg, keys.Enter):
				text := m.textInput.Value()
				return m, func() tea.Msg { return SubmitTextMsg{Text: text} }
			case key.Matches(msg, keys.Escape):
				m.textInput.Blur()
				return m, nil
			}
			break
		}

		switch {
		case key.Matches(msg, keys.Focus), key.Matches(msg, keys.Enter):
			return m, m.textInput.Focus()
		case key.Matches(msg, keys.Left):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case key.Matches(msg, keys.Right):
			if m.result != nil && m.selected < len(m.result.Colors)-1 {
				m.selected++
			}
			return m, nil
		case key.Matches(msg, keys.Copy):
			if c, ok := m.Selected(); ok {
				return m, func() tea.Msg { return CopyColorMsg{Color: c} }
			}
			return m, nil
		case key.Matches(msg, keys.Download):
			if m.result != nil {
				colors := append([]string(nil), m.result.Colors...)
				return m, func() tea.Msg { return DownloadMsg{Colors: colors} }
			}
			return m, nil
		case key.Matches(msg, keys.Gallery):
			return m, func() tea.Msg { return ToggleGalleryMsg{} }
		case key.Matches(msg, keys.Logout):
			return m, func() tea.Msg { return LogoutMsg{} }
		case key.Matches(msg, keys.Quit):
			return m, func() tea.Msg { return QuitMsg{} }
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the compose view.
func (m ComposeModel) View() string {
	var b strings.Builder

	// Header
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.TitleStyle.Render("hueful"),
		"   ",
		render.UserBar(m.user),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("How do you feel?")
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.result != nil {
		b.WriteString(render.Result(*m.result, m.selected))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render(m.result.Meaning(m.selected)))
		b.WriteString("\n\n")
	}

	if m.details != nil {
		b.WriteString(tui.PopupStyle.Render(render.DetailsText(*m.details)))
		b.WriteString("\n\n")
	}

	if m.status.Text != "" {
		line := render.Status(m.status.Text, m.status.IsError, m.status.Hints)
		if m.busy != "" {
			line = m.busy + " " + line
		}
		b.WriteString(tui.StatusBarStyle.Render(line))
		b.WriteString("\n\n")
	}

	b.WriteString(tui.DimStyle.Render(m.footer()))

	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())

	return boxed
}

func (m ComposeModel) footer() string {
	if m.ctrlCPending {
		return "Press Ctrl+C again to exit"
	}
	if m.textInput.Focused() {
		return "Enter: Generate    Esc: Actions    Tab: Gallery    Ctrl+C: Exit"
	}
	return "i: Write    ←/→: Color    c: Copy    d: Save PNG    g: Gallery    L: Log out    q: Quit"
}
