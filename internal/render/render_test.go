package render

import (
	"strings"
	"testing"
	"time"

	"github.com/hueful/hueful/internal/palette"
)

func TestConfidence(t *testing.T) {
	cases := map[float64]string{
		0.87:  "87.0%",
		1:     "100.0%",
		0:     "0.0%",
		0.123: "12.3%",
	}
	for in, want := range cases {
		if got := Confidence(in); got != want {
			t.Errorf("Confidence(%v): got %q, want %q", in, got, want)
		}
	}
}

func TestScoreAbsent(t *testing.T) {
	if got := Score(palette.Score{}); got != NotAvailable {
		t.Errorf("got %q, want %q", got, NotAvailable)
	}
	if got := Score(palette.NewScore(0.5)); got != "50.0%" {
		t.Errorf("got %q, want 50.0%%", got)
	}
}

func TestCardFallbacks(t *testing.T) {
	p := palette.Palette{ID: "1", InputText: "hello", Colors: palette.ColorList{"#111111"}}
	if Emotion(p) != UnknownEmotion {
		t.Errorf("Emotion: got %q", Emotion(p))
	}
	if Method(p) != UnknownMethod {
		t.Errorf("Method: got %q", Method(p))
	}
	if Intensity(p) != DefaultIntensity {
		t.Errorf("Intensity: got %q", Intensity(p))
	}

	p.SentimentLabel = "positive"
	if Emotion(p) != "positive" {
		t.Errorf("Emotion should fall back to sentiment_label, got %q", Emotion(p))
	}
	p.EmotionType = "joy"
	if Emotion(p) != "joy" {
		t.Errorf("Emotion should prefer emotion_type, got %q", Emotion(p))
	}
}

func TestCardContents(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	p := palette.Palette{
		ID:              "9",
		InputText:       "rainy afternoon",
		Colors:          palette.SplitColors("#445566, #778899"),
		SentimentLabel:  "sad",
		ConfidenceScore: palette.NewScore(0.6),
		CreatedAt:       palette.Timestamp{Time: created},
	}
	card := Card(p)
	for _, want := range []string{`"rainy afternoon"`, "sad", UnknownMethod, "60.0%", DefaultIntensity, "May 1, 2024 10:30"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestDetailsFallbacks(t *testing.T) {
	d := Details(palette.AnalysisResult{Colors: []string{"#111111"}, Confidence: 0.5})
	if d.Temperature != DefaultTemperature || d.Harmony != DefaultHarmony || d.Description != DefaultDescription {
		t.Errorf("fallbacks: got %+v", d)
	}
	if d.Emotion != UnknownEmotion || d.Meanings != "" {
		t.Errorf("emotion/meanings: got %+v", d)
	}
}

func TestDetailsMeanings(t *testing.T) {
	res := palette.AnalysisResult{
		Colors:     []string{"#111111", "#222222"},
		Confidence: 0.87,
		EmotionDetails: palette.EmotionDetails{
			Emotion:       "joy",
			Temperature:   "warm",
			ColorMeanings: []string{"energy", " ", "warmth"},
		},
	}
	d := Details(res)
	if d.Meanings != "energy, warmth" {
		t.Errorf("Meanings: got %q", d.Meanings)
	}
	text := DetailsText(res)
	for _, want := range []string{"joy", "87.0%", "warm", "energy, warmth"} {
		if !strings.Contains(text, want) {
			t.Errorf("details missing %q:\n%s", want, text)
		}
	}
}

func TestSwatchesLabelEveryColor(t *testing.T) {
	colors := []string{"#112233", "#445566", "#778899"}
	out := Swatches(colors, -1)
	for _, c := range colors {
		if strings.Count(out, strings.ToUpper(c)) != 1 {
			t.Errorf("expected one label for %s:\n%s", c, out)
		}
	}
	if Swatches(nil, -1) != "" {
		t.Error("no colors should render nothing")
	}
}

func TestUserBar(t *testing.T) {
	admin := UserBar(palette.User{Username: "root", Role: palette.RoleAdmin})
	if !strings.Contains(admin, "root") || !strings.Contains(admin, "Admin") {
		t.Errorf("admin bar: %q", admin)
	}
	user := UserBar(palette.User{Username: "alice", FullName: "Alice Liddell", Role: palette.RoleUser})
	if !strings.Contains(user, "Alice Liddell") || !strings.Contains(user, "User") {
		t.Errorf("user bar: %q", user)
	}
}

func TestStatusHints(t *testing.T) {
	out := Status("Cannot connect to the server", true, []string{"Make sure the backend is running"})
	if !strings.Contains(out, "Cannot connect") || !strings.Contains(out, "backend is running") {
		t.Errorf("status: %q", out)
	}
}
