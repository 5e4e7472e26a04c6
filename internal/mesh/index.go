package mesh

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestName is the file name batch runs write next to their output.
const ManifestName = "manifest.json"

// Discover walks dir and returns every *.json scene file, sorted by path.
// Unreadable entries and batch manifests are skipped.
func Discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), ManifestName) {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
