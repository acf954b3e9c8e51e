// Package render formats palettes, gallery cards and status lines for the
// terminal. Output is plain text styled with lipgloss; without a color
// profile the styles collapse to the bare text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/palette"
)

// Fallback labels for fields the backend may omit.
const (
	UnknownEmotion     = "unknown emotion"
	UnknownMethod      = "unknown method"
	DefaultIntensity   = "medium"
	DefaultTemperature = "neutral"
	DefaultHarmony     = "basic"
	DefaultDescription = "Dynamically generated palette"
	NotAvailable       = "N/A"
	DateLayout         = "Jan 2, 2006 15:04"
	EmptyGallery       = "No palettes yet. Write something and generate your first one."
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	quoteStyle  = lipgloss.NewStyle().Italic(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	adminBadge  = lipgloss.NewStyle().Background(lipgloss.Color("#EF4444")).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	userBadge   = lipgloss.NewStyle().Background(lipgloss.Color("#374151")).Foreground(lipgloss.Color("#E5E7EB")).Padding(0, 1)
	errorLine   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	okLine      = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// Confidence formats a fraction as a percentage with one decimal.
func Confidence(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Score formats an optional confidence, "N/A" when absent.
func Score(s palette.Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return Confidence(s.Value)
}

// Emotion returns emotion_type, then sentiment_label, then a placeholder.
func Emotion(p palette.Palette) string {
	if e := strings.TrimSpace(p.Emotion()); e != "" {
		return e
	}
	return UnknownEmotion
}

// Method returns the analysis method or a placeholder.
func Method(p palette.Palette) string {
	if m := strings.TrimSpace(p.AnalysisMethod); m != "" {
		return m
	}
	return UnknownMethod
}

// Intensity returns the intensity or "medium".
func Intensity(p palette.Palette) string {
	if i := strings.TrimSpace(p.Intensity); i != "" {
		return i
	}
	return DefaultIntensity
}

// Date formats t in the local zone.
func Date(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.Local().Format(DateLayout)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
