// backend.go implements "hueful health" and "hueful stats".
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/tui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backend-wide counters",
	Long:  `Show palette and user totals. The backend may restrict this to admins.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runHealth(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	h, err := e.client.Health(context.Background())
	if err != nil {
		return reportAPIError(cmd.ErrOrStderr(), err, e.cfg.API.BaseURL)
	}
	if !h.Healthy() {
		fmt.Fprintf(out, "%s %s reported status %q\n", tui.IconError, e.cfg.API.BaseURL, h.Status)
		return shown(controller.ErrBackendUnhealthy)
	}
	fmt.Fprintf(out, "%s %s is %s\n", tui.IconOK, e.cfg.API.BaseURL, h.Status)
	if h.Security != "" {
		fmt.Fprintf(out, "  security: %s\n", h.Security)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.guard.RequireAuth() {
		return shown(fmt.Errorf("not logged in"))
	}

	s, err := e.client.Stats(context.Background())
	if err != nil {
		return reportAPIError(cmd.ErrOrStderr(), err, e.cfg.API.BaseURL)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Palettes:    %d\n", s.TotalPalettes)
	fmt.Fprintf(out, "Users:       %d\n", s.TotalUsers)
	if s.APIVersion != "" {
		fmt.Fprintf(out, "API version: %s\n", s.APIVersion)
	}
	if s.Security != "" {
		fmt.Fprintf(out, "Security:    %s\n", s.Security)
	}
	return nil
}
