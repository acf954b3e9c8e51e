package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/storage"
	"github.com/hueful/hueful/internal/testutil"
	"github.com/hueful/hueful/internal/tui"
	"github.com/hueful/hueful/internal/tui/commands"
)

const testToken = "tok-app"

type harness struct {
	app     *App
	guard   *session.Guard
	backend *testutil.Backend
	sent    []tea.Msg
}

func newHarness(t *testing.T, loggedIn bool) *harness {
	t.Helper()
	h := &harness{backend: testutil.NewBackend(t, testToken)}

	bridge := tui.NewBridge()
	bridge.Attach(func(msg tea.Msg) { h.sent = append(h.sent, msg) })

	h.guard = session.NewGuard(storage.NewMemoryStore(), session.Options{Navigator: bridge, Notifier: bridge})
	if loggedIn {
		if err := h.guard.Save(testToken, palette.User{Username: "alice", Role: palette.RoleUser}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	client := api.New(h.guard, api.Options{BaseURL: h.backend.URL})
	ctrl := controller.New(h.guard, client, bridge, controller.Options{GalleryLimit: 10})

	h.app = New(Deps{
		Cfg:        config.DefaultConfig(),
		Home:       t.TempDir(),
		Guard:      h.guard,
		Client:     client,
		Controller: ctrl,
		Bridge:     bridge,
	})
	return h
}

// deliver feeds every message the bridge collected back into the app.
func (h *harness) deliver() {
	pending := h.sent
	h.sent = nil
	for _, msg := range pending {
		h.app.Update(msg)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitWithoutSessionShowsLogin(t *testing.T) {
	h := newHarness(t, false)
	h.app.Init()
	if h.app.model.State != tui.StateLogin {
		t.Fatalf("state: got %v, want login", h.app.model.State)
	}
	if !strings.Contains(h.app.View(), "log in") {
		t.Errorf("login view not rendered:\n%s", h.app.View())
	}
}

func TestInitWithSessionOpensPage(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()
	if h.app.model.State != tui.StatePage {
		t.Fatalf("state: got %v, want page", h.app.model.State)
	}
	if h.app.model.Busy != 1 {
		t.Errorf("busy: got %d, want 1 while start runs", h.app.model.Busy)
	}
}

func TestLoginFlow(t *testing.T) {
	h := newHarness(t, false)
	h.app.Init()

	msg := commands.LoginCmd(h.app.deps.Client, h.guard, "alice", "secret")()
	if _, ok := msg.(tui.LoginSuccessMsg); !ok {
		t.Fatalf("LoginCmd: got %#v, want LoginSuccessMsg", msg)
	}
	h.app.Update(msg)
	if h.app.model.State != tui.StatePage {
		t.Fatalf("state after login: got %v, want page", h.app.model.State)
	}
	if !h.guard.IsAuthenticated() {
		t.Error("login should store the session")
	}
}

func TestLoginErrorShowsServerDetail(t *testing.T) {
	h := newHarness(t, false)
	h.app.Init()

	msg := commands.LoginCmd(h.app.deps.Client, h.guard, "alice", "wrong")()
	h.app.Update(msg)
	if h.app.model.State != tui.StateLogin {
		t.Fatalf("state: got %v, want login", h.app.model.State)
	}
	if !strings.Contains(h.app.View(), "Incorrect username or password") {
		t.Errorf("login error not shown:\n%s", h.app.View())
	}
}

func TestExpiredSessionReturnsToLoginWithNotice(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()
	h.backend.Respond("GET", "/gallery", 401, `{"detail":"expired"}`)

	h.app.Update(commands.LoadGalleryCmd(h.app.deps.Controller)())
	h.deliver()

	if h.app.model.State != tui.StateLogin {
		t.Fatalf("state: got %v, want login", h.app.model.State)
	}
	if !strings.Contains(h.app.View(), session.ExpiredNotice) {
		t.Errorf("expired notice not shown:\n%s", h.app.View())
	}
}

func TestGenerateRendersPalette(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()

	h.app.Update(commands.GenerateCmd(h.app.deps.Controller, "so happy")())
	h.deliver()

	view := h.app.View()
	if !strings.Contains(view, "#112233") {
		t.Errorf("palette not rendered:\n%s", view)
	}
	if !strings.Contains(view, controller.MsgGenerated) {
		t.Errorf("status not rendered:\n%s", view)
	}
}

func TestCtrlCNeedsTwoPresses(t *testing.T) {
	h := newHarness(t, false)
	h.app.Init()

	_, cmd := h.app.Update(key("ctrl+c"))
	if !h.app.model.CtrlCPending {
		t.Fatal("first Ctrl+C should arm the confirmation")
	}
	if cmd == nil {
		t.Fatal("first Ctrl+C should start the reset timer")
	}

	_, cmd = h.app.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("second Ctrl+C should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second Ctrl+C should return tea.Quit")
	}
}

func TestAlertDismissedByAnyKey(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()

	h.app.Update(tui.AlertMsg{Text: "Please write something to analyze."})
	if !strings.Contains(h.app.View(), "Please write something to analyze.") {
		t.Fatal("alert not shown")
	}
	h.app.Update(key("x"))
	if h.app.alert != "" {
		t.Error("any key should dismiss the alert")
	}
}

func TestStaleDetailsTimerIgnored(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()

	res := palette.AnalysisResult{Colors: []string{"#112233"}, Confidence: 0.5, EmotionDetails: palette.EmotionDetails{Harmony: "triadic"}}
	h.app.Update(tui.DetailsScheduleMsg{Result: res, Delay: time.Second, Duration: 10 * time.Second})
	h.app.Update(tui.ShowDetailsMsg{Seq: 1})
	if !strings.Contains(h.app.View(), "triadic") {
		t.Fatal("details popup not shown")
	}

	// A newer palette reschedules; the old hide timer must not close it.
	h.app.Update(tui.DetailsScheduleMsg{Result: res, Delay: time.Second, Duration: 10 * time.Second})
	h.app.Update(tui.ShowDetailsMsg{Seq: 2})
	h.app.Update(tui.HideDetailsMsg{Seq: 1})
	if !strings.Contains(h.app.View(), "triadic") {
		t.Error("stale hide closed the newer popup")
	}
	h.app.Update(tui.HideDetailsMsg{Seq: 2})
	if strings.Contains(h.app.View(), "triadic") {
		t.Error("popup should hide on its own timer")
	}
}

func TestGalleryToggleAndRegenerate(t *testing.T) {
	h := newHarness(t, true)
	h.app.Init()
	h.backend.SetPalettes(testutil.GalleryRow(4, "old feeling", "#abcdef", "positive"))

	h.app.Update(commands.ToggleGalleryCmd(h.app.deps.Controller)())
	h.deliver()
	if !h.app.galleryOpen {
		t.Fatal("gallery should be open")
	}
	if !strings.Contains(h.app.View(), "old feeling") {
		t.Errorf("gallery not rendered:\n%s", h.app.View())
	}

	p := h.app.deps.Controller.Palettes()[0]
	h.app.Update(commands.RegenerateCmd(h.app.deps.Controller, p)())
	h.deliver()
	if h.app.galleryOpen {
		t.Error("regenerate should close the gallery")
	}
	if !strings.Contains(h.app.View(), "old feeling") {
		t.Errorf("input should be refilled:\n%s", h.app.View())
	}
}

func TestPageOutputDroppedAfterLogout(t *testing.T) {
	h := newHarness(t, false)
	h.app.Init()

	h.app.Update(tui.GalleryMsg{Palettes: []palette.Palette{{ID: "1", InputText: "late"}}})
	h.app.Update(tui.StatusMsg{Text: "late status"})
	if strings.Contains(h.app.View(), "late") {
		t.Error("page output must not leak into the login view")
	}
}
