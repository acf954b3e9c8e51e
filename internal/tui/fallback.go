package tui

import (
	"fmt"
	"io"
)

// FallbackRunner handles non-TTY execution by guiding users to the
// one-shot commands.
type FallbackRunner struct {
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner writing to out.
func NewFallbackRunner(out io.Writer) *FallbackRunner {
	return &FallbackRunner{out: out}
}

// Run prints the non-interactive equivalents of the page actions.
func (f *FallbackRunner) Run() error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")
	fmt.Fprintln(f.out, "Use the one-shot commands instead:")
	fmt.Fprintln(f.out, "  hueful login                 sign in")
	fmt.Fprintln(f.out, "  hueful analyze \"<text>\"      generate a palette")
	fmt.Fprintln(f.out, "  hueful gallery               list saved palettes")
	fmt.Fprintln(f.out, "  hueful delete <id>           delete a palette")
	return nil
}
