package palette

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSplitColorsTrimsWhitespace(t *testing.T) {
	got := SplitColors("#fff, #000,#123456")
	want := ColorList{"#fff", "#000", "#123456"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitColors: got %#v, want %#v", got, want)
	}
}

func TestSplitColorsDropsEmptySegments(t *testing.T) {
	if got := SplitColors(""); len(got) != 0 {
		t.Errorf("empty input: got %#v, want none", got)
	}
	if got := SplitColors("#abc,, ,#def,"); !reflect.DeepEqual(got, ColorList{"#abc", "#def"}) {
		t.Errorf("got %#v", got)
	}
}

func TestPaletteDecodesGalleryRow(t *testing.T) {
	raw := `{
		"id": 42,
		"input_text": "calm evening",
		"colors": "#fff, #000,#123456",
		"sentiment_label": "positive",
		"confidence_score": "0.873",
		"created_at": "2024-05-01T18:30:00.123456"
	}`

	var p Palette
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != "42" {
		t.Errorf("ID: got %q, want %q", p.ID, "42")
	}
	if !reflect.DeepEqual([]string(p.Colors), []string{"#fff", "#000", "#123456"}) {
		t.Errorf("Colors: got %#v", p.Colors)
	}
	if !p.ConfidenceScore.Valid || p.ConfidenceScore.Value != 0.873 {
		t.Errorf("ConfidenceScore: got %+v", p.ConfidenceScore)
	}
	if p.Emotion() != "positive" {
		t.Errorf("Emotion fallback: got %q, want %q", p.Emotion(), "positive")
	}
	want := time.Date(2024, 5, 1, 18, 30, 0, 123456000, time.UTC)
	if !p.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt: got %v, want %v", p.CreatedAt.Time, want)
	}
}

func TestColorListAcceptsArray(t *testing.T) {
	var c ColorList
	if err := json.Unmarshal([]byte(`[" #111111 ", "#222222"]`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(c, ColorList{"#111111", "#222222"}) {
		t.Errorf("got %#v", c)
	}
	if err := json.Unmarshal([]byte(`17`), &c); err == nil {
		t.Error("expected error for numeric colors")
	}
}

func TestColorListMarshalsWireForm(t *testing.T) {
	data, err := json.Marshal(ColorList{"#fff", "#000"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"#fff,#000"` {
		t.Errorf("got %s", data)
	}
}

func TestScoreVariants(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		value float64
	}{
		{`0.5`, true, 0.5},
		{`"0.25"`, true, 0.25},
		{`""`, false, 0},
		{`null`, false, 0},
	}
	for _, tc := range cases {
		var s Score
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if s.Valid != tc.valid || s.Value != tc.value {
			t.Errorf("%s: got %+v", tc.in, s)
		}
	}

	var s Score
	if err := json.Unmarshal([]byte(`"high"`), &s); err == nil {
		t.Error("expected error for non-numeric score")
	}
}

func TestIDAcceptsStringAndNumber(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`"abc-1"`), &id); err != nil || id != "abc-1" {
		t.Errorf("string id: got %q, %v", id, err)
	}
	if err := json.Unmarshal([]byte(`7`), &id); err != nil || id != "7" {
		t.Errorf("numeric id: got %q, %v", id, err)
	}
}

func TestTimestampWithOffset(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-05-01T18:30:00+02:00"`), &ts); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if ts.UTC().Hour() != 16 {
		t.Errorf("hour in UTC: got %d, want 16", ts.UTC().Hour())
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	ok := AnalysisResult{Colors: []string{"#112233", "#445566", "#778899"}, Confidence: 0.87}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid result: %v", err)
	}

	if err := (AnalysisResult{Confidence: 0.5}).Validate(); !errors.Is(err, ErrNoColors) {
		t.Errorf("missing colors: got %v, want ErrNoColors", err)
	}
	if err := (AnalysisResult{Colors: []string{"blue"}}).Validate(); err == nil {
		t.Error("expected error for non-hex color")
	}
	if err := (AnalysisResult{Colors: []string{"#fff"}, Confidence: 1.5}).Validate(); err == nil {
		t.Error("expected error for confidence above 1")
	}
}

func TestMeaningFallback(t *testing.T) {
	r := AnalysisResult{
		Colors:         []string{"#111111", "#222222"},
		EmotionDetails: EmotionDetails{ColorMeanings: []string{"calm"}},
	}
	if r.Meaning(0) != "calm" {
		t.Errorf("Meaning(0): got %q", r.Meaning(0))
	}
	if r.Meaning(1) != "Unique color" {
		t.Errorf("Meaning(1): got %q", r.Meaning(1))
	}
}

func TestUserDisplayName(t *testing.T) {
	if (User{Username: "alice"}).DisplayName() != "alice" {
		t.Error("expected username fallback")
	}
	if (User{Username: "alice", FullName: "Alice Liddell"}).DisplayName() != "Alice Liddell" {
		t.Error("expected full name")
	}
}
