package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	DefaultPrefix = "chexbert_labeled_"
	VisualPrefix  = "visualchexbert_labeled_"
	DefaultSuffix = ".csv"
)

// DiscoverRuns lists the regular files in dir whose names carry prefix and
// suffix, sorted by name.
func DiscoverRuns(dir, prefix, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read run directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	slices.Sort(paths)

	return paths, nil
}
