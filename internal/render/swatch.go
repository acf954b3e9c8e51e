package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/palette"
)

// SwatchWidth is the width of a full-size swatch in cells.
const SwatchWidth = 9

func swatchStyle(hex string, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Background(lipgloss.Color(palette.Normalize(hex))).
		Foreground(lipgloss.Color(palette.Contrast(hex)))
}

// Swatch renders one color block. selected marks it with a caret under the label.
func Swatch(hex string, selected bool) string {
	block := swatchStyle(hex, SwatchWidth).Render(strings.Repeat(" ", SwatchWidth))
	label := lipgloss.NewStyle().Width(SwatchWidth).Align(lipgloss.Center).Render(strings.ToUpper(hex))
	parts := []string{block, block, label}
	if selected {
		parts = append(parts, lipgloss.NewStyle().Width(SwatchWidth).Align(lipgloss.Center).Render("^"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// Swatches renders colors side by side with hex labels beneath. selected is
// the index to mark, or -1.
func Swatches(colors []string, selected int) string {
	if len(colors) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(colors)*2)
	for i, c := range colors {
		if i > 0 {
			blocks = append(blocks, " ")
		}
		blocks = append(blocks, Swatch(c, i == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// MiniSwatches renders a compact strip for gallery cards.
func MiniSwatches(colors []string) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(swatchStyle(c, 3).Render("   "))
	}
	return b.String()
}
