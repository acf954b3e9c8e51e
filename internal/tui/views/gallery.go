package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/render"
	"github.com/hueful/hueful/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// RegenerateMsg is sent when the user picks a palette to generate again.
type RegenerateMsg struct {
	Palette palette.Palette
}

// DeletePaletteMsg is sent when the user confirms a delete.
type DeletePaletteMsg struct {
	ID palette.ID
}

// RefreshGalleryMsg asks for the gallery to be reloaded.
type RefreshGalleryMsg struct{}

// ============================================================================
// PaletteItem
// ============================================================================

// PaletteItem implements list.Item for the gallery list.
type PaletteItem struct {
	palette palette.Palette
}

// NewPaletteItem creates a new PaletteItem.
func NewPaletteItem(p palette.Palette) PaletteItem {
	return PaletteItem{palette: p}
}

// Title returns the quoted input text.
func (i PaletteItem) Title() string {
	return fmt.Sprintf("%q", i.palette.InputText)
}

// Description returns swatches, emotion, confidence and date.
func (i PaletteItem) Description() string {
	return fmt.Sprintf("%s  %s · %s · %s · %s",
		render.MiniSwatches(i.palette.Colors),
		render.Emotion(i.palette),
		render.Score(i.palette.ConfidenceScore),
		render.Intensity(i.palette),
		render.Date(i.palette.CreatedAt.Time),
	)
}

// FilterValue returns the value used for filtering in the list.
func (i PaletteItem) FilterValue() string {
	return i.palette.InputText
}

// ============================================================================
// GalleryModel
// ============================================================================

// GalleryModel is the view model for the gallery panel.
type GalleryModel struct {
	list       list.Model
	empty      bool
	errText    string
	loaded     bool
	confirming bool
	width      int
	height     int

	// Ctrl+C confirmation state
	ctrlCPending bool
}

// maxGalleryWidth is the maximum width for the gallery box.
const maxGalleryWidth = 110

// maxListHeight is the maximum height for the palette list.
const maxListHeight = 18

// NewGalleryModel creates an empty GalleryModel.
func NewGalleryModel(width, height int) GalleryModel {
	contentWidth := maxGalleryWidth - 8
	if width-8 < contentWidth {
		contentWidth = width - 8
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	// Configure list delegate for better display
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(tui.SelectedStyle.GetForeground()).
		Bold(tui.SelectedStyle.GetBold()).
		BorderForeground(tui.SelectedStyle.GetForeground())
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(nil, delegate, contentWidth, maxListHeight)
	l.Title = "Gallery"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return GalleryModel{
		list:   l,
		width:  width,
		height: height,
	}
}

// SetPalettes replaces the listed palettes, keeping the cursor in range.
func (m *GalleryModel) SetPalettes(palettes []palette.Palette) tea.Cmd {
	items := make([]list.Item, len(palettes))
	for i, p := range palettes {
		items[i] = PaletteItem{palette: p}
	}
	m.loaded = true
	m.empty = false
	m.errText = ""
	m.confirming = false
	return m.list.SetItems(items)
}

// SetEmpty shows the "no palettes yet" placeholder.
func (m *GalleryModel) SetEmpty() {
	m.loaded = true
	m.empty = true
	m.errText = ""
	m.confirming = false
	m.list.SetItems(nil)
}

// SetError shows a load failure in place of the list.
func (m *GalleryModel) SetError(text string) {
	m.loaded = true
	m.errText = text
	m.confirming = false
}

// SetCtrlCPending syncs the Ctrl+C confirmation hint.
func (m *GalleryModel) SetCtrlCPending(p bool) { m.ctrlCPending = p }

func (m GalleryModel) selected() (palette.Palette, bool) {
	item, ok := m.list.SelectedItem().(PaletteItem)
	if !ok {
		return palette.Palette{}, false
	}
	return item.palette, true
}

// Update handles messages for the gallery view.
func (m GalleryModel) Update(msg tea.Msg) (GalleryModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if key.Matches(msg, keys.Confirm) {
				if p, ok := m.selected(); ok {
					return m, func() tea.Msg { return DeletePaletteMsg{ID: p.ID} }
				}
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Enter):
			if p, ok := m.selected(); ok {
				return m, func() tea.Msg { return RegenerateMsg{Palette: p} }
			}
			return m, nil
		case key.Matches(msg, keys.Delete):
			if _, ok := m.selected(); ok {
				m.confirming = true
			}
			return m, nil
		case key.Matches(msg, keys.Refresh):
			return m, func() tea.Msg { return RefreshGalleryMsg{} }
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Gallery):
			return m, func() tea.Msg { return ToggleGalleryMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := maxGalleryWidth - 8
		if msg.Width-8 < w {
			w = msg.Width - 8
		}
		m.list.SetSize(w, maxListHeight)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the gallery view.
func (m GalleryModel) View() string {
	var b strings.Builder

	switch {
	case !m.loaded:
		b.WriteString(tui.TitleStyle.Render("Gallery"))
		b.WriteString("\n\n")
		b.WriteString(tui.IconBusy + " " + tui.DimStyle.Render("Loading palettes..."))
	case m.errText != "":
		b.WriteString(tui.TitleStyle.Render("Gallery"))
		b.WriteString("\n\n")
		b.WriteString(tui.ErrorStyle.Render("Could not load the gallery: " + m.errText))
	case m.empty:
		b.WriteString(tui.TitleStyle.Render("Gallery"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(render.EmptyGallery))
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n\n")

	if m.confirming {
		if p, ok := m.selected(); ok {
			b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("Delete %q? y to confirm, any other key to cancel", p.InputText)))
			b.WriteString("\n\n")
		}
	}

	footer := "Enter: Regenerate    x: Delete    r: Refresh    Esc: Close    Ctrl+C: Exit"
	if m.ctrlCPending {
		footer = "Press Ctrl+C again to exit"
	}
	b.WriteString(tui.DimStyle.Render(footer))

	boxWidth := maxGalleryWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}
