// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/tui"
	"github.com/hueful/hueful/internal/tui/commands"
	"github.com/hueful/hueful/internal/tui/views"
)

// alertTimeout dismisses an alert nobody acknowledged.
const alertTimeout = 8 * time.Second

// Deps are the collaborators the App drives. Controller and Guard must
// already render and navigate through Bridge.
type Deps struct {
	Cfg        *config.Config
	Home       string
	Guard      *session.Guard
	Client     *api.Client
	Controller *controller.Controller
	Bridge     *tui.Bridge
	Logger     *log.Logger
}

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model
	deps  Deps

	// View models
	loginView   views.LoginModel
	composeView views.ComposeModel
	galleryView views.GalleryModel

	galleryOpen bool

	alert    string
	alertSeq int

	details    palette.AnalysisResult
	detailsSeq int
	detailsFor time.Duration
}

// New creates a new App.
func New(deps Deps) *App {
	model := tui.NewModel(deps.Cfg, deps.Home)
	return &App{
		model: model,
		deps:  deps,
	}
}

// Init opens the page for a stored session and the login form otherwise.
func (a *App) Init() tea.Cmd {
	if u, ok := a.deps.Guard.User(); ok && a.deps.Guard.IsAuthenticated() {
		return a.enterPage(u)
	}
	return a.enterLogin()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// Only propagate to views that exist for the current state
		if a.model.State == tui.StateLogin {
			var cmd tea.Cmd
			a.loginView, cmd = a.loginView.Update(msg)
			return a, cmd
		}
		var c1, c2 tea.Cmd
		a.composeView, c1 = a.composeView.Update(msg)
		a.galleryView, c2 = a.galleryView.Update(msg)
		return a, tea.Batch(c1, c2)

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}
		if a.alert != "" {
			a.alert = ""
			return a, nil
		}
		if a.model.State == tui.StatePage && msg.String() == tui.KeyTab {
			return a, a.busy(commands.ToggleGalleryCmd(a.deps.Controller))
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		if a.model.Busy == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd

	case tui.OperationDoneMsg:
		a.done()
		return a, nil
	}

	if cmd, handled := a.handleSession(msg); handled {
		return a, cmd
	}
	if cmd, handled := a.handlePage(msg); handled {
		return a, cmd
	}
	if cmd, handled := a.handleIntent(msg); handled {
		return a, cmd
	}

	// Route remaining messages to the active view
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.StatePage:
		if a.galleryOpen {
			if _, isKey := msg.(tea.KeyMsg); isKey {
				a.galleryView, cmd = a.galleryView.Update(msg)
				return a, cmd
			}
		}
		a.composeView, cmd = a.composeView.Update(msg)
	}
	return a, cmd
}

// handleSession covers login, logout and guard navigation.
func (a *App) handleSession(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tui.NoticeMsg:
		a.model.Notice = msg.Text
		a.loginView.SetNotice(msg.Text)
		return nil, true

	case tui.RedirectLoginMsg:
		if a.model.State == tui.StateLogin {
			return nil, true
		}
		return a.enterLogin(), true

	case views.LoginSubmitMsg:
		a.loginView.Err = nil
		return a.busy(commands.LoginCmd(a.deps.Client, a.deps.Guard, msg.Username, msg.Password)), true

	case tui.LoginSuccessMsg:
		a.done()
		return a.enterPage(msg.User), true

	case tui.LoginErrorMsg:
		a.done()
		a.loginView.Err = errors.New(api.UserMessage(msg.Err))
		return nil, true

	case views.LogoutMsg:
		return commands.LogoutCmd(a.deps.Guard), true
	}
	return nil, false
}

// handlePage applies controller output delivered through the Bridge. Output
// that lands after the page closed is dropped.
func (a *App) handlePage(msg tea.Msg) (tea.Cmd, bool) {
	if a.model.State != tui.StatePage {
		switch msg.(type) {
		case tui.StatusMsg, tui.PaletteMsg, tui.DetailsScheduleMsg, tui.ShowDetailsMsg, tui.HideDetailsMsg,
			tui.GalleryMsg, tui.GalleryEmptyMsg, tui.GalleryErrorMsg, tui.GalleryVisibleMsg, tui.SetInputMsg:
			return nil, true
		}
	}
	switch msg := msg.(type) {
	case tui.StatusMsg:
		a.composeView.SetStatus(msg)
		return nil, true

	case tui.PaletteMsg:
		a.composeView.SetResult(msg.Result)
		return nil, true

	case tui.DetailsScheduleMsg:
		a.detailsSeq++
		seq := a.detailsSeq
		a.details = msg.Result
		a.detailsFor = msg.Duration
		return tea.Tick(msg.Delay, func(time.Time) tea.Msg { return tui.ShowDetailsMsg{Seq: seq} }), true

	case tui.ShowDetailsMsg:
		if msg.Seq != a.detailsSeq {
			return nil, true
		}
		a.composeView.ShowDetails(a.details)
		seq := msg.Seq
		return tea.Tick(a.detailsFor, func(time.Time) tea.Msg { return tui.HideDetailsMsg{Seq: seq} }), true

	case tui.HideDetailsMsg:
		if msg.Seq == a.detailsSeq {
			a.composeView.HideDetails()
		}
		return nil, true

	case tui.GalleryMsg:
		return a.galleryView.SetPalettes(msg.Palettes), true

	case tui.GalleryEmptyMsg:
		a.galleryView.SetEmpty()
		return nil, true

	case tui.GalleryErrorMsg:
		a.galleryView.SetError(msg.Text)
		return nil, true

	case tui.GalleryVisibleMsg:
		a.galleryOpen = msg.Visible
		return nil, true

	case tui.AlertMsg:
		a.alertSeq++
		seq := a.alertSeq
		a.alert = msg.Text
		return tea.Tick(alertTimeout, func(time.Time) tea.Msg { return tui.AlertTimeoutMsg{Seq: seq} }), true

	case tui.AlertTimeoutMsg:
		if msg.Seq == a.alertSeq {
			a.alert = ""
		}
		return nil, true

	case tui.SetInputMsg:
		a.composeView.SetInput(msg.Text)
		return nil, true

	case tui.ClipboardMsg:
		if msg.Err != nil {
			a.composeView.SetStatus(tui.StatusMsg{Text: "Could not copy: " + msg.Err.Error(), IsError: true})
		} else {
			a.composeView.SetStatus(tui.StatusMsg{Text: fmt.Sprintf("Copied %s", msg.Color)})
		}
		return nil, true

	case tui.ExportedMsg:
		if msg.Err != nil {
			a.composeView.SetStatus(tui.StatusMsg{Text: "Could not save palette: " + msg.Err.Error(), IsError: true})
		} else {
			a.composeView.SetStatus(tui.StatusMsg{Text: "Saved " + msg.Path})
		}
		return nil, true
	}
	return nil, false
}

// handleIntent turns view requests into controller calls.
func (a *App) handleIntent(msg tea.Msg) (tea.Cmd, bool) {
	c := a.deps.Controller
	switch msg := msg.(type) {
	case views.SubmitTextMsg:
		return a.busy(commands.GenerateCmd(c, msg.Text)), true
	case views.ToggleGalleryMsg:
		return a.busy(commands.ToggleGalleryCmd(c)), true
	case views.RegenerateMsg:
		return a.busy(commands.RegenerateCmd(c, msg.Palette)), true
	case views.DeletePaletteMsg:
		return a.busy(commands.DeleteCmd(c, msg.ID)), true
	case views.RefreshGalleryMsg:
		return a.busy(commands.LoadGalleryCmd(c)), true
	case views.CopyColorMsg:
		return commands.CopyColorCmd(msg.Color), true
	case views.DownloadMsg:
		return commands.ExportPNGCmd(a.model.Home, msg.Colors, a.deps.Logger), true
	case views.QuitMsg:
		return tea.Quit, true
	}
	return nil, false
}

// ============================================================================
// State Transitions
// ============================================================================

func (a *App) enterLogin() tea.Cmd {
	a.model.State = tui.StateLogin
	a.model.User = palette.User{}
	a.galleryOpen = false
	a.detailsSeq++
	a.loginView = views.NewLoginModel(a.model.Notice, a.deps.Client.BaseURL(), a.model.Width, a.model.Height)
	return a.loginView.Init()
}

func (a *App) enterPage(u palette.User) tea.Cmd {
	a.model.State = tui.StatePage
	a.model.User = u
	a.model.Notice = ""
	a.galleryOpen = false
	a.composeView = views.NewComposeModel(u, a.model.Width, a.model.Height)
	a.galleryView = views.NewGalleryModel(a.model.Width, a.model.Height)
	return tea.Batch(a.composeView.Init(), a.busy(commands.StartCmd(a.deps.Controller)))
}

// busy runs cmd with the spinner going until its result arrives.
func (a *App) busy(cmd tea.Cmd) tea.Cmd {
	a.model.Busy++
	if a.model.Busy == 1 {
		return tea.Batch(cmd, a.model.Spinner.Tick)
	}
	return cmd
}

func (a *App) done() {
	if a.model.Busy > 0 {
		a.model.Busy--
	}
}

// ============================================================================
// Rendering
// ============================================================================

// View renders the current application state.
func (a *App) View() string {
	spin := ""
	if a.model.Busy > 0 {
		spin = a.model.Spinner.View()
	}

	// Sync Ctrl+C pending state to views
	a.loginView.SetCtrlCPending(a.model.CtrlCPending)
	a.composeView.SetCtrlCPending(a.model.CtrlCPending)
	a.galleryView.SetCtrlCPending(a.model.CtrlCPending)

	var content string
	switch a.model.State {
	case tui.StateLogin:
		a.loginView.SetBusy(spin)
		content = a.loginView.View()
	case tui.StatePage:
		a.composeView.SetBusy(spin)
		if a.galleryOpen {
			content = a.galleryView.View()
		} else {
			content = a.composeView.View()
		}
	default:
		content = "Unknown state"
	}

	if a.alert != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", a.renderAlert())
	}
	return a.centerContent(content)
}

func (a *App) renderAlert() string {
	var b strings.Builder
	b.WriteString(tui.IconError + " " + a.alert)
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Press any key to dismiss"))
	return tui.PopupStyle.Render(b.String())
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
