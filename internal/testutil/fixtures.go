// Package testutil provides test helper utilities for hueful tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempHome creates a temporary hueful home holding the given files and
// points HUEFUL_HOME at it for the rest of the test.
// Files is a map of relative path -> content. Directories are created as needed.
func TempHome(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	t.Setenv("HUEFUL_HOME", dir)
	return dir
}

// ConfigYAML returns a config.yaml pointing at baseURL.
func ConfigYAML(baseURL string) string {
	return "version: 1\napi:\n  base_url: " + baseURL + "\n  analysis_method: hybrid\n  gallery_limit: 50\n"
}

// JoyResult is an analyze response with three colors and 0.87 confidence.
const JoyResult = `{
  "colors": ["#112233", "#445566", "#778899"],
  "confidence": 0.87,
  "emotion_details": {"emotion": "joy"},
  "sentiment": "positive",
  "method_used": "hybrid"
}`

// GalleryRow returns a gallery row in the backend's wire shape: colors as
// one comma-joined string and confidence_score as text.
func GalleryRow(id int, text, colors, label string) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"input_text":       text,
		"colors":           colors,
		"sentiment_label":  label,
		"confidence_score": "0.75",
		"created_at":       "2024-05-01T10:30:00",
	}
}
