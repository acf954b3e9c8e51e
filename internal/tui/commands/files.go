package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/export"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/tui"
)

// CopyColorCmd copies hex to the system clipboard.
func CopyColorCmd(hex string) tea.Cmd {
	return func() tea.Msg {
		return tui.ClipboardMsg{Color: hex, Err: clipboard.WriteAll(hex)}
	}
}

// ExportPNGCmd saves colors as a striped PNG in the exports directory.
func ExportPNGCmd(home string, colors []string, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		dir := config.ExportsDir(home)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return tui.ExportedMsg{Err: fmt.Errorf("creating export directory: %w", err)}
		}
		path := filepath.Join(dir, export.PNGName(colors, time.Now()))
		if err := export.PalettePNG(path, colors); err != nil {
			return tui.ExportedMsg{Err: err}
		}
		logger.Record(log.LogEvent{Event: log.EventExported, URL: path, Colors: colors})
		return tui.ExportedMsg{Path: path}
	}
}
