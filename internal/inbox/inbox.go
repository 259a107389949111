// Package inbox finds exports dropped into the workspace for import.
//
// Files live at import/<entity>/<family>/<name>.txt (or .csv). After a
// successful import they move to import/processed/<entity>/<family>/.
package inbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// importDir is the subdirectory for pending exports.
const importDir = "import"

// processedDirName is the subdirectory of importDir for imported exports.
const processedDirName = "processed"

var extensions = map[string]bool{".txt": true, ".csv": true}

// Item is an export waiting in the inbox. Family is taken from the
// directory name unvalidated, so a misnamed directory surfaces as an
// unknown-family import error instead of being skipped.
type Item struct {
	Entity string
	Family model.Family
	Name   string
	Path   string
	Size   int64
}

// Rel returns the item path relative to the workspace root.
func (it Item) Rel() string {
	return filepath.ToSlash(filepath.Join(importDir, it.Entity, filepath.Base(filepath.Dir(it.Path)), it.Name))
}

// Scan returns the exports under <repoRoot>/import/, sorted by entity,
// family and file name.
func Scan(repoRoot string) ([]Item, error) {
	root := filepath.Join(repoRoot, importDir)
	entities, err := readDirs(root)
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var items []Item
	for _, entity := range entities {
		if entity == processedDirName {
			continue
		}
		families, err := readDirs(filepath.Join(root, entity))
		if err != nil {
			return nil, fmt.Errorf("reading import dir: %w", err)
		}
		for _, family := range families {
			dir := filepath.Join(root, entity, family)
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", dir, err)
			}
			for _, e := range entries {
				if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				if !extensions[strings.ToLower(filepath.Ext(e.Name()))] {
					continue
				}
				info, err := e.Info()
				if err != nil {
					return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
				}
				items = append(items, Item{
					Entity: entity,
					Family: model.Family(strings.ToLower(family)),
					Name:   e.Name(),
					Path:   filepath.Join(dir, e.Name()),
					Size:   info.Size(),
				})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// readDirs lists the subdirectory names of dir. A missing dir has none.
func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// MarkProcessed moves an item to import/processed/<entity>/<family>/ and
// returns its new path. An existing file of the same name is kept; the
// moved file gets a numeric suffix instead.
func MarkProcessed(repoRoot string, it Item) (string, error) {
	dstDir := filepath.Join(repoRoot, importDir, processedDirName, it.Entity, string(it.Family))
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, it.Name)
	ext := filepath.Ext(it.Name)
	base := strings.TrimSuffix(it.Name, ext)
	for n := 2; exists(dst); n++ {
		dst = filepath.Join(dstDir, base+"-"+strconv.Itoa(n)+ext)
	}
	if err := os.Rename(it.Path, dst); err != nil {
		return "", fmt.Errorf("moving %s to processed: %w", it.Name, err)
	}
	return dst, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
