// Package palette defines the palette and analysis types exchanged with the
// backend, including its wire quirks.
package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the profile stored alongside the bearer token.
type User struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// DisplayName prefers the full name.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Username
}

// ID identifies a stored palette. The backend sends integers; strings are
// accepted too so the client never depends on the numeric form.
type ID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("palette id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ColorList is an ordered list of hex colors. On the wire the gallery sends
// it as one comma-joined string ("#fff, #000,#123456"); a JSON array is
// accepted as well.
type ColorList []string

// SplitColors splits the comma-joined wire form, trimming whitespace and
// dropping empty segments.
func SplitColors(s string) ColorList {
	parts := strings.Split(s, ",")
	out := make(ColorList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String renders the comma-joined wire form.
func (c ColorList) String() string {
	return strings.Join(c, ",")
}

// UnmarshalJSON accepts a comma-joined string, an array of strings, or null.
func (c *ColorList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = SplitColors(s)
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("colors: %w", err)
		}
		out := make(ColorList, 0, len(items))
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				out = append(out, it)
			}
		}
		*c = out
		return nil
	default:
		return fmt.Errorf("colors: unexpected JSON %s", string(data))
	}
}

// MarshalJSON writes the comma-joined wire form.
func (c ColorList) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Score is an optional fraction in [0,1]. The backend stores it as text, so
// numbers, numeric strings and null are all accepted.
type Score struct {
	Value float64
	Valid bool
}

// NewScore returns a valid Score.
func NewScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

// UnmarshalJSON accepts a number, a numeric string, an empty string or null.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*s = Score{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("confidence score %q: %w", raw, err)
	}
	*s = NewScore(v)
	return nil
}

// MarshalJSON writes a number or null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Timestamp parses the backend's ISO-8601 timestamps, which may omit the
// zone offset. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts an ISO-8601 string or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

// MarshalJSON writes RFC 3339 or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Palette is a stored palette as listed by the gallery.
type Palette struct {
	ID              ID        `json:"id"`
	InputText       string    `json:"input_text"`
	Colors          ColorList `json:"colors"`
	EmotionType     string    `json:"emotion_type,omitempty"`
	SentimentLabel  string    `json:"sentiment_label,omitempty"`
	AnalysisMethod  string    `json:"analysis_method,omitempty"`
	ConfidenceScore Score     `json:"confidence_score"`
	Intensity       string    `json:"intensity,omitempty"`
	CreatedAt       Timestamp `json:"created_at"`
}

// Emotion returns emotion_type, falling back to sentiment_label.
func (p Palette) Emotion() string {
	if p.EmotionType != "" {
		return p.EmotionType
	}
	return p.SentimentLabel
}

// EmotionDetails describes the emotion behind a generated palette.
type EmotionDetails struct {
	Emotion       string   `json:"emotion,omitempty"`
	Temperature   string   `json:"temperature,omitempty"`
	Harmony       string   `json:"harmony,omitempty"`
	Description   string   `json:"description,omitempty"`
	Mood          string   `json:"mood,omitempty"`
	Energy        string   `json:"energy,omitempty"`
	ColorMeanings []string `json:"color_meanings,omitempty"`
}

// AnalysisResult is the response to an analyze request.
type AnalysisResult struct {
	Colors         []string       `json:"colors"`
	Confidence     float64        `json:"confidence"`
	EmotionDetails EmotionDetails `json:"emotion_details"`
	Sentiment      string         `json:"sentiment,omitempty"`
	Polarity       float64        `json:"polarity,omitempty"`
	Intensity      string         `json:"intensity,omitempty"`
	MethodUsed     string         `json:"method_used,omitempty"`
	OriginalText   string         `json:"original_text,omitempty"`
}

// ErrNoColors reports an analysis response without a usable color list.
var ErrNoColors = errors.New("no valid colors received")

// Validate checks the fields rendering depends on.
func (r AnalysisResult) Validate() error {
	if len(r.Colors) == 0 {
		return ErrNoColors
	}
	for i, c := range r.Colors {
		if _, err := ParseHex(c); err != nil {
			return fmt.Errorf("color %d: %w", i, err)
		}
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", r.Confidence)
	}
	return nil
}

// Meaning returns the meaning of the i-th color, if the backend gave one.
func (r AnalysisResult) Meaning(i int) string {
	if i >= 0 && i < len(r.EmotionDetails.ColorMeanings) {
		if m := strings.TrimSpace(r.EmotionDetails.ColorMeanings[i]); m != "" {
			return m
		}
	}
	return "Unique color"
}
