// palette.go implements "hueful analyze", "hueful gallery" and "hueful delete".
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/controller"
	"github.com/hueful/hueful/internal/export"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/palette"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Generate a palette from text",
	Long: `Analyze the emotional tone of text and print the generated palette.
The palette is saved to your gallery by the backend.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "List saved palettes",
	Long: `List saved palettes, newest first. With --out the list is exported
instead; the file extension picks the format (.xlsx or .csv).`,
	Args: cobra.NoArgs,
	RunE: runGallery,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved palette",
	Long: `Delete a saved palette by id. Asks for confirmation unless --yes is
given.`,
	Args: cobra.ExactArgs(1),
	RunE:  runDelete,
}

var (
	methodFlag string
	pngFlag    bool
	limitFlag  int
	outFlag    string
	xlsxFlag   bool
	longFlag   bool
)

// DefaultXLSXName is the export file written by gallery --xlsx.
const DefaultXLSXName = "hueful-gallery.xlsx"

func init() {
	analyzeCmd.Flags().StringVar(&methodFlag, "method", "", "Analysis method: hybrid, textblob, vader (default from config)")
	analyzeCmd.Flags().BoolVar(&pngFlag, "png", false, "Also save the palette as a PNG in the current directory")

	galleryCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum palettes to fetch (default from config)")
	galleryCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Export to a .xlsx or .csv file")
	galleryCmd.Flags().BoolVar(&xlsxFlag, "xlsx", false, "Export to "+DefaultXLSXName)
	galleryCmd.Flags().BoolVarP(&longFlag, "long", "l", false, "Show each palette as a multi-line card")

	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not ask for confirmation")
}

// newPage builds a controller rendering into a printView.
func newPage(cmd *cobra.Command, e *env, listGallery bool) *controller.Controller {
	limit := e.cfg.API.GalleryLimit
	if limitFlag > 0 {
		limit = limitFlag
	}
	view := &printView{
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		listGallery: listGallery,
		long:        longFlag,
	}
	return controller.New(e.guard, e.client, view, controller.Options{
		GalleryLimit: limit,
		Logger:       e.logger,
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if methodFlag != "" {
		if err := validateMethod(methodFlag); err != nil {
			return err
		}
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if methodFlag != "" {
		e.cfg.API.AnalysisMethod = methodFlag
		e.client = e.client.WithMethod(methodFlag)
	}

	if !e.guard.RequireAuth() {
		return shown(fmt.Errorf("not logged in"))
	}

	page := newPage(cmd, e, false)
	res, err := page.Generate(context.Background(), strings.Join(args, " "))
	if err != nil {
		return shown(err)
	}

	if pngFlag {
		path := export.PNGName(res.Colors, time.Now())
		if err := export.PalettePNG(path, res.Colors); err != nil {
			return err
		}
		e.logger.Record(log.LogEvent{Event: log.EventExported, URL: path, Colors: res.Colors})
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved %s\n", path)
	}
	return nil
}

func validateMethod(m string) error {
	switch m {
	case "hybrid", "textblob", "vader":
		return nil
	default:
		return fmt.Errorf("unknown analysis method %q (want hybrid, textblob or vader)", m)
	}
}

func runGallery(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.guard.RequireAuth() {
		return shown(fmt.Errorf("not logged in"))
	}

	out := outFlag
	if out == "" && xlsxFlag {
		out = DefaultXLSXName
	}

	page := newPage(cmd, e, out == "")
	if err := page.LoadGallery(context.Background()); err != nil {
		return shown(err)
	}
	if out == "" {
		return nil
	}

	palettes := page.Palettes()
	if err := export.Gallery(out, palettes); err != nil {
		return err
	}
	e.logger.Record(log.LogEvent{Event: log.EventExported, URL: out, Count: len(palettes)})
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d palettes to %s\n", len(palettes), filepath.Clean(out))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := palette.ID(strings.TrimSpace(args[0]))
	if id == "" {
		return fmt.Errorf("palette id is required")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.guard.RequireAuth() {
		return shown(fmt.Errorf("not logged in"))
	}
	if !yesFlag && !confirm(cmd, fmt.Sprintf("Delete palette %s?", id)) {
		return nil
	}

	page := newPage(cmd, e, false)
	if err := page.Delete(context.Background(), id); err != nil {
		return shown(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted palette %s\n", id)
	return nil
}
