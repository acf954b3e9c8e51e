package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/palette"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func galleryWith(t *testing.T, palettes ...palette.Palette) GalleryModel {
	t.Helper()
	m := NewGalleryModel(100, 40)
	m.SetPalettes(palettes)
	return m
}

func TestGalleryDeleteNeedsConfirmation(t *testing.T) {
	m := galleryWith(t, palette.Palette{ID: "4", InputText: "stormy night", Colors: []string{"#112233"}})

	m, cmd := m.Update(runes("x"))
	if cmd != nil {
		t.Fatal("x alone must not delete")
	}
	if !strings.Contains(m.View(), `Delete "stormy night"?`) {
		t.Error("confirmation prompt should be shown")
	}

	m, cmd = m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("y should confirm the delete")
	}
	msg, ok := cmd().(DeletePaletteMsg)
	if !ok || msg.ID != "4" {
		t.Errorf("got %#v, want DeletePaletteMsg{ID: 4}", cmd())
	}
	if strings.Contains(m.View(), "Delete \"stormy night\"?") {
		t.Error("prompt should close after confirming")
	}
}

func TestGalleryDeleteCancelled(t *testing.T) {
	m := galleryWith(t, palette.Palette{ID: "4", InputText: "stormy night"})

	m, _ = m.Update(runes("x"))
	m, cmd := m.Update(runes("n"))
	if cmd != nil {
		t.Errorf("any key other than y cancels, got %#v", cmd())
	}
	if _, cmd = m.Update(runes("y")); cmd != nil {
		t.Error("y without a pending confirmation must not delete")
	}
}

func TestGalleryEnterRegenerates(t *testing.T) {
	m := galleryWith(t, palette.Palette{ID: "9", InputText: "calm sea"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(RegenerateMsg)
	if !ok || msg.Palette.ID != "9" {
		t.Errorf("got %#v, want RegenerateMsg for 9", cmd())
	}
}

func TestGalleryDeleteOnEmptyListDoesNothing(t *testing.T) {
	m := NewGalleryModel(100, 40)
	m.SetEmpty()

	m, _ = m.Update(runes("x"))
	if _, cmd := m.Update(runes("y")); cmd != nil {
		t.Error("nothing to delete in an empty gallery")
	}
}

func TestComposeSubmitsOnEnter(t *testing.T) {
	m := NewComposeModel(palette.User{Username: "alice"}, 80, 24)
	m.SetInput("a sunny morning")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SubmitTextMsg)
	if !ok || msg.Text != "a sunny morning" {
		t.Errorf("got %#v", cmd())
	}
}

// Blank input still reaches the controller, which alerts and sends
// nothing to the backend.
func TestComposeBlankSubmitIsPassedThrough(t *testing.T) {
	m := NewComposeModel(palette.User{Username: "alice"}, 80, 24)
	m.SetInput("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(SubmitTextMsg); !ok || msg.Text != "   " {
		t.Errorf("got %#v", cmd())
	}
}

func TestComposeActionsNeedBlurredInput(t *testing.T) {
	m := NewComposeModel(palette.User{Username: "alice"}, 80, 24)

	m, _ = m.Update(runes("g"))
	if m.textInput.Value() != "g" {
		t.Fatalf("typing while focused should edit the text, got %q", m.textInput.Value())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Focused() {
		t.Fatal("esc should blur the input")
	}
	_, cmd := m.Update(runes("g"))
	if cmd == nil {
		t.Fatal("g should toggle the gallery")
	}
	if _, ok := cmd().(ToggleGalleryMsg); !ok {
		t.Errorf("got %#v, want ToggleGalleryMsg", cmd())
	}
}

func TestComposeSelectionWithoutPalette(t *testing.T) {
	m := NewComposeModel(palette.User{Username: "alice"}, 80, 24)
	if _, ok := m.Selected(); ok {
		t.Error("no color selected before a palette is generated")
	}

	m.SetResult(palette.AnalysisResult{Colors: []string{"#111111", "#222222"}})
	m.textInput.Blur()
	m, _ = m.Update(runes("l"))
	if c, ok := m.Selected(); !ok || c != "#222222" {
		t.Errorf("Selected: got %q, %v", c, ok)
	}
}
