// Package cli defines Cobra command definitions for the hueful CLI.
// This file contains the root command, version flag, and the TUI launch.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/tui"
	"github.com/hueful/hueful/internal/tui/app"
)

var (
	apiURLFlag string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "hueful",
	Short: "Turn how you feel into a color palette",
	Long: `hueful is a terminal client for the emotional palette API.
Write a few words, get a palette generated from their emotional tone,
and browse or prune your saved palettes.

Run without a subcommand to open the interactive page.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPage,
}

func runPage(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	bridge := tui.NewBridge()
	e.guard.SetNavigator(bridge)
	e.guard.SetNotifier(bridge)
	ctrl := controller.New(e.guard, e.client, bridge, controller.Options{
		GalleryLimit: e.cfg.API.GalleryLimit,
		Logger:       e.logger,
	})

	tuiApp := app.New(app.Deps{
		Cfg:        e.cfg,
		Home:       e.home,
		Guard:      e.guard,
		Client:     e.client,
		Controller: ctrl,
		Bridge:     bridge,
		Logger:     e.logger,
	})
	return tui.Run(tuiApp, bridge)
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Session errors and controller failures were already shown.
		var shown *shownError
		if !session.IsSessionError(err) && !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL (overrides config and HUEFUL_API_URL)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportsCmd)
}
