package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/render"
)

// printView renders controller output as plain lines for one-shot commands.
// Gallery rows are printed only when listGallery is set, as one line each or
// as cards when long is set. Details appear
// immediately instead of on a timer.
type printView struct {
	out         io.Writer
	errOut      io.Writer
	listGallery bool
	long        bool
}

func (v *printView) ShowStatus(msg string, isError bool, hints []string) {
	if isError {
		fmt.Fprintln(v.errOut, render.Status(msg, true, hints))
		return
	}
	fmt.Fprintln(v.out, render.Status(msg, false, nil))
}

func (v *printView) RenderPalette(res palette.AnalysisResult) {
	fmt.Fprintln(v.out, render.Result(res, -1))
}

func (v *printView) ScheduleDetails(res palette.AnalysisResult, _, _ time.Duration) {
	fmt.Fprintln(v.out)
	fmt.Fprintln(v.out, render.DetailsText(res))
}

func (v *printView) RenderGallery(palettes []palette.Palette) {
	if !v.listGallery {
		return
	}
	for i, p := range palettes {
		if !v.long {
			fmt.Fprintln(v.out, render.CardLine(p))
			continue
		}
		if i > 0 {
			fmt.Fprintln(v.out)
		}
		fmt.Fprintf(v.out, "#%s\n%s\n", p.ID, render.Card(p))
	}
}

func (v *printView) ShowGalleryEmpty() {
	if v.listGallery {
		fmt.Fprintln(v.out, render.EmptyGallery)
	}
}

func (v *printView) ShowGalleryError(msg string) {
	fmt.Fprintln(v.errOut, render.Status("Could not load the gallery: "+msg, true, nil))
}

func (v *printView) SetGalleryVisible(bool) {}

func (v *printView) Alert(msg string) {
	fmt.Fprintln(v.errOut, render.Status(msg, true, nil))
}

func (v *printView) SetInput(string) {}
