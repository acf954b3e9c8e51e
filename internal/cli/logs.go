// logs.go implements "hueful log", printing recent diagnostic events.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/log"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent diagnostic events",
	Long:  `Print the most recent entries of ~/.hueful/log.jsonl, oldest first.`,
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var tailFlag int

func init() {
	logCmd.Flags().IntVarP(&tailFlag, "lines", "n", 20, "Number of events to show (0 = all)")
}

func runLog(cmd *cobra.Command, args []string) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	logger, err := log.NewLogger(home)
	if err != nil {
		return err
	}

	events, err := logger.Tail(tailFlag)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events logged yet.")
		return nil
	}
	for _, ev := range events {
		fmt.Fprintln(out, formatEvent(ev))
	}
	return nil
}

// formatEvent renders one event as a single line.
func formatEvent(ev log.LogEvent) string {
	parts := []string{ev.Time.Local().Format("2006-01-02 15:04:05"), fmt.Sprintf("%-19s", ev.Event)}
	if ev.Method != "" {
		parts = append(parts, ev.Method)
	}
	if ev.URL != "" {
		parts = append(parts, ev.URL)
	}
	if ev.Status != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", ev.Status))
	}
	if ev.DurationMs != 0 {
		parts = append(parts, fmt.Sprintf("%dms", ev.DurationMs))
	}
	if ev.Username != "" {
		parts = append(parts, "user="+ev.Username)
	}
	if ev.PaletteID != "" {
		parts = append(parts, "palette="+ev.PaletteID)
	}
	if len(ev.Colors) > 0 {
		parts = append(parts, strings.Join(ev.Colors, ","))
	}
	if ev.Count != 0 {
		parts = append(parts, fmt.Sprintf("count=%d", ev.Count))
	}
	if ev.Reason != "" {
		parts = append(parts, "reason="+ev.Reason)
	}
	if ev.Error != "" {
		parts = append(parts, "error="+ev.Error)
	}
	return strings.Join(parts, "  ")
}
