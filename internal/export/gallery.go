// Package export writes palettes to files: the gallery as a spreadsheet or
// CSV, a single palette as a PNG strip.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hueful/hueful/internal/palette"
	"github.com/hueful/hueful/internal/render"
)

const sheet = "Gallery"

var galleryHeader = []string{"id", "input_text", "emotion", "method", "confidence", "intensity", "created_at", "colors"}

func galleryRecord(p palette.Palette) []string {
	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return []string{
		string(p.ID),
		p.InputText,
		render.Emotion(p),
		render.Method(p),
		render.Score(p.ConfidenceScore),
		render.Intensity(p),
		created,
		p.Colors.String(),
	}
}

// Gallery writes palettes to path. The format follows the extension:
// .xlsx or .csv.
func Gallery(path string, palettes []palette.Palette) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, palettes)
	case ".csv":
		return writeCSV(path, palettes)
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

func writeCSV(path string, palettes []palette.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(galleryHeader); err != nil {
		return err
	}
	for _, p := range palettes {
		if err := w.Write(galleryRecord(p)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeXLSX writes one row per palette; each color also gets its own cell
// filled with that color after the fixed columns.
func writeXLSX(path string, palettes []palette.Palette) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("opening stream writer: %w", err)
	}

	header := make([]interface{}, len(galleryHeader))
	for i, h := range galleryHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	styles := make(map[string]int)
	fill := func(hex string) (int, error) {
		key := palette.Normalize(hex)
		if id, ok := styles[key]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(key, "#")}},
			Font: &excelize.Font{Color: strings.TrimPrefix(palette.Contrast(hex), "#")},
		})
		if err != nil {
			return 0, err
		}
		styles[key] = id
		return id, nil
	}

	for i, p := range palettes {
		rec := galleryRecord(p)
		row := make([]interface{}, 0, len(rec)+len(p.Colors))
		for _, v := range rec {
			row = append(row, v)
		}
		for _, c := range p.Colors {
			if _, err := palette.ParseHex(c); err != nil {
				row = append(row, c)
				continue
			}
			id, err := fill(c)
			if err != nil {
				return fmt.Errorf("styling color %s: %w", c, err)
			}
			row = append(row, excelize.Cell{StyleID: id, Value: c})
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
