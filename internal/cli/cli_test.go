package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/export"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/storage"
	"github.com/hueful/hueful/internal/testutil"
)

const testToken = "tok-123"

// resetFlags restores every flag variable so tests do not leak into each other.
func resetFlags() {
	apiURLFlag = ""
	usernameFlag = ""
	yesFlag = false
	remoteFlag = false
	methodFlag = ""
	pngFlag = false
	limitFlag = 0
	outFlag = ""
	xlsxFlag = false
	longFlag = false
	forceFlag = false
	tailFlag = 20
	keepFlag = 0
	olderThanFlag = 30
	dryRunFlag = false
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// setup starts a fake backend and a home whose config points at it.
func setup(t *testing.T) (*testutil.Backend, string) {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	backend := testutil.NewBackend(t, testToken)
	home := testutil.TempHome(t, map[string]string{
		"config.yaml": testutil.ConfigYAML(backend.URL),
	})
	return backend, home
}

func openGuard(t *testing.T, home string) *session.Guard {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(home, "session.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return session.NewGuard(store, session.Options{})
}

func seedSession(t *testing.T, home string) {
	t.Helper()
	user := palette.User{Username: "alice", FullName: "Alice Liddell", Role: palette.RoleUser}
	if err := openGuard(t, home).Save(testToken, user); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestAnalyzePrintsPalette(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)

	out, _, err := run(t, "", "analyze", "I", "feel", "great")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"#112233", "#778899", "87.0%", "joy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !bytes.Contains(backend.LastBody("POST", "/analyze"), []byte(`"text":"I feel great"`)) {
		t.Errorf("analyze body: got %s", backend.LastBody("POST", "/analyze"))
	}
}

func TestAnalyzeMethodFlag(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)

	if _, _, err := run(t, "", "analyze", "--method", "vader", "calm"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !bytes.Contains(backend.LastBody("POST", "/analyze"), []byte(`"method":"vader"`)) {
		t.Errorf("analyze body: got %s", backend.LastBody("POST", "/analyze"))
	}

	if _, _, err := run(t, "", "analyze", "--method", "magic", "calm"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestAnalyzeWithoutSessionSendsNothing(t *testing.T) {
	backend, _ := setup(t)

	_, errOut, err := run(t, "", "analyze", "hello")
	if err == nil {
		t.Fatal("expected error without a session")
	}
	if got := backend.Total(); got != 0 {
		t.Errorf("requests sent: got %d, want 0", got)
	}
	if !strings.Contains(errOut, MsgLoginRequired) {
		t.Errorf("stderr: got %q, want login hint", errOut)
	}
}

func TestAnalyzeExpiredSessionIsCleared(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.Respond("POST", "/analyze", 401, `{"detail":"Could not validate credentials"}`)

	_, errOut, err := run(t, "", "analyze", "hello")
	if !session.IsSessionError(err) {
		t.Fatalf("got %v, want a session error", err)
	}
	if !strings.Contains(errOut, session.ExpiredNotice) {
		t.Errorf("stderr: got %q, want expiry notice", errOut)
	}
	if openGuard(t, home).IsAuthenticated() {
		t.Error("session should be cleared after 401")
	}
}

func TestGalleryListsPalettes(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(
		testutil.GalleryRow(2, "sunny day", "#ffcc00,#ff9900", "positive"),
		testutil.GalleryRow(1, "rainy", "#334455", "negative"),
	)

	out, _, err := run(t, "", "gallery", "--limit", "5")
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if !strings.Contains(out, "sunny day") || !strings.Contains(out, "rainy") {
		t.Errorf("gallery output:\n%s", out)
	}
	if got := backend.LastQuery("GET", "/gallery"); got != "limit=5" {
		t.Errorf("query: got %q, want %q", got, "limit=5")
	}
}

func TestGalleryLongShowsCards(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(testutil.GalleryRow(2, "sunny day", "#ffcc00,#ff9900", "positive"))

	out, _, err := run(t, "", "gallery", "--long")
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	for _, want := range []string{"#2\n", "sunny day", "emotion", "confidence"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGalleryEmpty(t *testing.T) {
	_, home := setup(t)
	seedSession(t, home)

	out, _, err := run(t, "", "gallery")
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if !strings.Contains(out, "No palettes") {
		t.Errorf("expected empty gallery message, got:\n%s", out)
	}
}

func TestGalleryExport(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(testutil.GalleryRow(7, "calm sea", "#0077be,#00a0b0", "neutral"))

	path := filepath.Join(t.TempDir(), "out.csv")
	out, _, err := run(t, "", "gallery", "--out", path)
	if err != nil {
		t.Fatalf("gallery export: %v", err)
	}
	if !strings.Contains(out, "Exported 1 palettes") {
		t.Errorf("output: %s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "calm sea") {
		t.Errorf("export content:\n%s", data)
	}
}

func TestDeleteNotFoundAlertsServerDetail(t *testing.T) {
	_, home := setup(t)
	seedSession(t, home)

	_, errOut, err := run(t, "y\n", "delete", "99")
	if err == nil {
		t.Fatal("expected error deleting a missing palette")
	}
	if !strings.Contains(errOut, "not found") {
		t.Errorf("stderr: got %q, want server detail", errOut)
	}
}

func TestDeleteSucceeds(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(testutil.GalleryRow(3, "gone soon", "#000000", "neutral"))

	out, _, err := run(t, "", "delete", "--yes", "3")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Deleted palette 3") {
		t.Errorf("output: %s", out)
	}
	if backend.Hits("GET", "/gallery") != 1 {
		t.Errorf("gallery reloads: got %d, want 1", backend.Hits("GET", "/gallery"))
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(testutil.GalleryRow(3, "keep me", "#000000", "neutral"))

	for _, answer := range []string{"n\n", "\n", ""} {
		out, _, err := run(t, answer, "delete", "3")
		if err != nil {
			t.Fatalf("delete (%q): %v", answer, err)
		}
		if !strings.Contains(out, "Delete palette 3? [y/N]") || !strings.Contains(out, "Aborted.") {
			t.Errorf("output (%q): %s", answer, out)
		}
	}
	if got := backend.Hits("DELETE", "/palettes/3"); got != 0 {
		t.Errorf("DELETE requests: got %d, want 0", got)
	}
}

func TestHealth(t *testing.T) {
	backend, _ := setup(t)

	out, _, err := run(t, "", "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "healthy") {
		t.Errorf("output: %s", out)
	}

	backend.SetHealth("degraded")
	if _, _, err := run(t, "", "health"); err == nil {
		t.Fatal("expected error for degraded backend")
	}
}

func TestLoginStoresSession(t *testing.T) {
	_, home := setup(t)

	out, _, err := run(t, "secret\n", "login", "--username", "alice")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as Alice Liddell") {
		t.Errorf("output: %s", out)
	}

	g := openGuard(t, home)
	if g.Token() != testToken {
		t.Errorf("token: got %q, want %q", g.Token(), testToken)
	}
	u, ok := g.User()
	if !ok || u.Username != "alice" {
		t.Errorf("user: got %+v, %v", u, ok)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, home := setup(t)

	_, _, err := run(t, "nope\n", "login", "-u", "alice")
	if err == nil || !strings.Contains(err.Error(), "Incorrect username or password") {
		t.Fatalf("got %v, want server detail", err)
	}
	if openGuard(t, home).IsAuthenticated() {
		t.Error("failed login must not store a session")
	}
}

func TestLogout(t *testing.T) {
	_, home := setup(t)
	seedSession(t, home)

	out, _, err := run(t, "n\n", "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Aborted") {
		t.Errorf("declined logout output: %s", out)
	}
	if !openGuard(t, home).IsAuthenticated() {
		t.Fatal("declined logout must keep the session")
	}

	if _, _, err := run(t, "", "logout", "--yes"); err != nil {
		t.Fatalf("logout --yes: %v", err)
	}
	if openGuard(t, home).IsAuthenticated() {
		t.Error("session should be cleared")
	}
}

func TestWhoamiRemote(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetUser(map[string]interface{}{"id": 1, "username": "alice", "full_name": "Alice L.", "role": "admin"})

	out, _, err := run(t, "", "whoami", "--remote")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Alice L.") || !strings.Contains(out, "Admin") {
		t.Errorf("output: %s", out)
	}
	if !strings.Contains(out, "opaque") {
		t.Errorf("non-JWT token should be reported opaque: %s", out)
	}
}

func TestStats(t *testing.T) {
	backend, home := setup(t)
	seedSession(t, home)
	backend.SetPalettes(testutil.GalleryRow(1, "a", "#111111", "neutral"))

	out, _, err := run(t, "", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Palettes:    1") || !strings.Contains(out, "2.0.0") {
		t.Errorf("output: %s", out)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	home := testutil.TempHome(t, nil)

	if _, _, err := run(t, "", "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, _, err := run(t, "", "config", "init"); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := run(t, "", "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestConfigShowAppliesAPIURLFlag(t *testing.T) {
	setup(t)

	out, _, err := run(t, "", "--api-url", "http://override:9000/", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "base_url: http://override:9000\n") {
		t.Errorf("output:\n%s", out)
	}
}

func TestFormatEvent(t *testing.T) {
	ev := log.LogEvent{
		Time:   time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local),
		Event:  log.EventResponseReceived,
		URL:    "http://localhost:8000/gallery",
		Status: 200,
	}
	got := formatEvent(ev)
	for _, want := range []string{"2024-05-01 10:30:00", "response_received", "/gallery", "status=200"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatEvent missing %q: %s", want, got)
		}
	}
}

func TestLogCommand(t *testing.T) {
	home := testutil.TempHome(t, nil)
	logger, err := log.NewLogger(home)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	for i := 0; i < 3; i++ {
		logger.Record(log.LogEvent{Event: log.EventGalleryLoaded, Count: i + 1})
	}

	out, _, err := run(t, "", "log", "-n", "2")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if strings.Contains(out, "count=1") || !strings.Contains(out, "count=3") {
		t.Errorf("log -n 2 output:\n%s", out)
	}
}

func TestExportsClean(t *testing.T) {
	home := testutil.TempHome(t, nil)
	dir := config.ExportsDir(home)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	now := time.Now()
	old := export.PNGName([]string{"#111111"}, now.AddDate(0, 0, -3))
	recent := export.PNGName([]string{"#222222"}, now)
	for _, name := range []string{old, recent} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, _, err := run(t, "", "exports", "clean", "--keep", "1", "--dry-run")
	if err != nil {
		t.Fatalf("exports clean --dry-run: %v", err)
	}
	if !strings.Contains(out, "Would remove "+old) {
		t.Errorf("dry-run output:\n%s", out)
	}

	if _, _, err := run(t, "", "exports", "clean", "--keep", "1"); err != nil {
		t.Fatalf("exports clean: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, old)); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed", old)
	}
	if _, err := os.Stat(filepath.Join(dir, recent)); err != nil {
		t.Errorf("expected %s to remain: %v", recent, err)
	}
}
