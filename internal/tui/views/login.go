package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/tui"
)

// LoginSubmitMsg is sent when the user submits credentials.
type LoginSubmitMsg struct {
	Username string
	Password string
}

// LoginModel is the login screen.
type LoginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	notice   string
	baseURL  string
	Err      error
	busy     string
	width    int
	height   int

	// Ctrl+C confirmation state
	ctrlCPending bool
}

// NewLoginModel creates a LoginModel. notice is shown above the form, e.g.
// after the session expired.
func NewLoginModel(notice, baseURL string, width, height int) LoginModel {
	u := textinput.New()
	u.Placeholder = "username"
	u.CharLimit = 100
	u.Width = 40
	u.Focus()

	p := textinput.New()
	p.Placeholder = "password"
	p.CharLimit = 200
	p.Width = 40
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	return LoginModel{
		username: u,
		password: p,
		notice:   notice,
		baseURL:  baseURL,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetBusy shows spinner while a login request is in flight.
func (m *LoginModel) SetBusy(spinner string) { m.busy = spinner }

// SetCtrlCPending syncs the Ctrl+C confirmation hint.
func (m *LoginModel) SetCtrlCPending(p bool) { m.ctrlCPending = p }

func (m *LoginModel) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.password.Blur()
		return m.username.Focus()
	}
	m.username.Blur()
	return m.password.Focus()
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), msg.String() == tui.KeyUp, msg.String() == tui.KeyDown:
			return m, m.setFocus(1 - m.focus)
		case key.Matches(msg, keys.Enter):
			if m.focus == 0 {
				return m, m.setFocus(1)
			}
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()
			if username == "" || password == "" {
				m.Err = errMissingCredentials
				return m, nil
			}
			m.Err = nil
			return m, func() tea.Msg { return LoginSubmitMsg{Username: username, Password: password} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("hueful · log in"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(m.baseURL))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.busy != "" {
		b.WriteString(m.busy + " Signing in...")
		b.WriteString("\n\n")
	}
	if m.Err != nil {
		b.WriteString(tui.ErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	footer := "Tab: Switch field    Enter: Log in    Ctrl+C: Exit"
	if m.ctrlCPending {
		footer = "Press Ctrl+C again to exit"
	}
	b.WriteString(tui.DimStyle.Render(footer))

	boxWidth := 60
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

// SetNotice replaces the notice shown above the form.
func (m *LoginModel) SetNotice(notice string) { m.notice = notice }
