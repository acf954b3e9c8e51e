package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hueful/hueful/internal/palette"
)

// Stripe dimensions of an exported palette image.
const (
	StripeWidth  = 120
	StripeHeight = 200
)

// PalettePNG writes colors as vertical stripes to path.
func PalettePNG(path string, colors []string) error {
	if len(colors) == 0 {
		return palette.ErrNoColors
	}
	img := image.NewRGBA(image.Rect(0, 0, StripeWidth*len(colors), StripeHeight))
	for i, c := range colors {
		col, err := palette.ParseHex(c)
		if err != nil {
			return err
		}
		rect := image.Rect(i*StripeWidth, 0, (i+1)*StripeWidth, StripeHeight)
		draw.Draw(img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}

// PNGName returns a file name for a palette exported at t.
func PNGName(colors []string, t time.Time) string {
	first := "palette"
	if len(colors) > 0 {
		first = strings.TrimPrefix(palette.Normalize(colors[0]), "#")
	}
	return fmt.Sprintf("palette-%s-%s.png", first, t.Format("20060102-150405"))
}
