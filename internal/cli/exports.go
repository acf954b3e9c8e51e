// exports.go implements "hueful exports" for saved palette images.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/cleanup"
	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/render"
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List palette images saved from the page",
	Args:  cobra.NoArgs,
	RunE:  runExports,
}

var exportsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old palette images",
	Long: `Remove palette images saved with the page's download key.

By default, removes images older than 30 days.
Use --keep to keep only the N most recent images instead.
Use --dry-run to preview what would be removed.`,
	Args: cobra.NoArgs,
	RunE: runExportsClean,
}

var (
	keepFlag      int
	olderThanFlag int
	dryRunFlag    bool
)

func init() {
	exportsCleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N images (0 = use age-based cleanup)")
	exportsCleanCmd.Flags().IntVar(&olderThanFlag, "older-than", 30, "Remove images older than this many days")
	exportsCleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
	exportsCmd.AddCommand(exportsCleanCmd)
}

func runExports(cmd *cobra.Command, args []string) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	dir := config.ExportsDir(home)

	exports, err := cleanup.List(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(exports) == 0 {
		fmt.Fprintf(out, "No images in %s\n", dir)
		return nil
	}
	for _, e := range exports {
		fmt.Fprintf(out, "%-18s  %s\n", render.Date(e.Created), e.Name)
	}
	return nil
}

func runExportsClean(cmd *cobra.Command, args []string) error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	dir := config.ExportsDir(home)

	var pruned []string
	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(dir, keepFlag, dryRunFlag)
	} else {
		maxAge := olderThanFlag
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(dir, maxAge, dryRunFlag)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pruned) == 0 {
		fmt.Fprintln(out, "Nothing to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}
	for _, name := range pruned {
		fmt.Fprintf(out, "  %s %s\n", verb, name)
	}
	fmt.Fprintf(out, "%s %d image(s).\n", verb, len(pruned))
	return nil
}
