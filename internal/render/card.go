package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hueful/hueful/internal/palette"
)

// Card renders a gallery entry.
func Card(p palette.Palette) string {
	lines := []string{
		MiniSwatches(p.Colors),
		quoteStyle.Render(fmt.Sprintf("%q", p.InputText)),
		fmt.Sprintf("%s %s  %s %s", labelStyle.Render("emotion"), Emotion(p), labelStyle.Render("method"), Method(p)),
		fmt.Sprintf("%s %s  %s %s", labelStyle.Render("confidence"), Score(p.ConfidenceScore), labelStyle.Render("intensity"), Intensity(p)),
		labelStyle.Render(Date(p.CreatedAt.Time)),
	}
	return strings.Join(lines, "\n")
}

// CardLine renders a gallery entry on one line, for non-interactive output.
func CardLine(p palette.Palette) string {
	return fmt.Sprintf("#%-5s %s  %-10s %-8s %s  %q",
		p.ID, MiniSwatches(p.Colors), Emotion(p), Score(p.ConfidenceScore), Date(p.CreatedAt.Time), p.InputText)
}

// DetailsView holds the resolved fields of the details popup.
type DetailsView struct {
	Emotion     string
	Confidence  string
	Temperature string
	Harmony     string
	Description string
	Meanings    string
}

// Details resolves popup fields with their fallbacks.
func Details(res palette.AnalysisResult) DetailsView {
	var meanings []string
	for _, m := range res.EmotionDetails.ColorMeanings {
		if m = strings.TrimSpace(m); m != "" {
			meanings = append(meanings, m)
		}
	}
	emotion := res.EmotionDetails.Emotion
	if emotion == "" {
		emotion = res.Sentiment
	}
	return DetailsView{
		Emotion:     orDefault(emotion, UnknownEmotion),
		Confidence:  Confidence(res.Confidence),
		Temperature: orDefault(res.EmotionDetails.Temperature, DefaultTemperature),
		Harmony:     orDefault(res.EmotionDetails.Harmony, DefaultHarmony),
		Description: orDefault(res.EmotionDetails.Description, DefaultDescription),
		Meanings:    strings.Join(meanings, ", "),
	}
}

// DetailsText renders the details popup body.
func DetailsText(res palette.AnalysisResult) string {
	d := Details(res)
	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s (%s)", d.Emotion, d.Confidence)),
		fmt.Sprintf("%s %s", labelStyle.Render("temperature"), d.Temperature),
		fmt.Sprintf("%s %s", labelStyle.Render("harmony"), d.Harmony),
		d.Description,
	}
	if d.Meanings != "" {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("meanings"), d.Meanings))
	}
	return strings.Join(lines, "\n")
}

// Result renders a generated palette: swatches then a summary line.
func Result(res palette.AnalysisResult, selected int) string {
	summary := fmt.Sprintf("%s %s", labelStyle.Render("confidence"), Confidence(res.Confidence))
	return lipgloss.JoinVertical(lipgloss.Left, Swatches(res.Colors, selected), "", summary)
}

// RoleBadge renders the Admin/User badge.
func RoleBadge(role palette.Role) string {
	if role == palette.RoleAdmin {
		return adminBadge.Render("Admin")
	}
	return userBadge.Render("User")
}

// UserBar renders the signed-in user with a role badge.
func UserBar(u palette.User) string {
	return fmt.Sprintf("%s %s", u.DisplayName(), RoleBadge(u.Role))
}

// Status renders a status message, red when isError, with hint lines below.
func Status(msg string, isError bool, hints []string) string {
	style := okLine
	if isError {
		style = errorLine
	}
	lines := []string{style.Render(msg)}
	for _, h := range hints {
		lines = append(lines, labelStyle.Render("  - "+h))
	}
	return strings.Join(lines, "\n")
}
