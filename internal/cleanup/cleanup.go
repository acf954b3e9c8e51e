// Package cleanup implements pruning of exported palette images.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// exportTimestampLayout is the timestamp suffix of export file names,
// e.g. palette-abcdef-20240102-030405.png.
const exportTimestampLayout = "20060102-150405"

// Export is a palette image found in the exports directory.
type Export struct {
	Name    string
	Created time.Time
}

// ExportTime parses the creation time encoded in an export file name.
func ExportTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, "palette-") || !strings.HasSuffix(name, ".png") {
		return time.Time{}, false
	}
	base := strings.TrimSuffix(name, ".png")
	if len(base) < len(exportTimestampLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(exportTimestampLayout, base[len(base)-len(exportTimestampLayout):], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// List returns the exports in dir, oldest first. A missing dir is empty.
func List(dir string) ([]Export, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading exports directory: %w", err)
	}

	var exports []Export
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Skip files that don't match the export name format.
		if t, ok := ExportTime(entry.Name()); ok {
			exports = append(exports, Export{Name: entry.Name(), Created: t})
		}
	}

	sort.SliceStable(exports, func(i, j int) bool {
		return exports[i].Created.Before(exports[j].Created)
	})
	return exports, nil
}

// PruneByAge removes exports older than maxAgeDays.
// If dryRun is true, no files are deleted; the function only returns
// the names that would be removed. Returns the list of pruned file names.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]string, error) {
	exports, err := List(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var old []string
	for _, e := range exports {
		if e.Created.Before(cutoff) {
			old = append(old, e.Name)
		}
	}
	return remove(dir, old, dryRun)
}

// PruneKeepRecent removes all exports except the most recent keep.
// A negative keep is treated as zero. If dryRun is true, no files are
// deleted. Returns the list of pruned names.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	exports, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(exports) <= keep {
		return nil, nil
	}

	var old []string
	for _, e := range exports[:len(exports)-keep] {
		old = append(old, e.Name)
	}
	return remove(dir, old, dryRun)
}

func remove(dir string, names []string, dryRun bool) ([]string, error) {
	var pruned []string
	for _, name := range names {
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", name, err)
			}
		}
		pruned = append(pruned, name)
	}
	return pruned, nil
}
