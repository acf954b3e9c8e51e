package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rgb" or "#rrggbb", with or without the leading '#'.
func ParseHex(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return c, nil
}

// Normalize returns the lowercase six-digit form, or s unchanged if it does
// not parse.
func Normalize(s string) string {
	c, err := ParseHex(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

// Contrast picks black or white text for a swatch of color s.
func Contrast(s string) string {
	c, err := ParseHex(s)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
