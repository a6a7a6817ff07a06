package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Snapshot is the ordered set of eligible file paths found on the most
// recent directory scan. It is immutable once built; a rescan produces
// a fresh one.
type Snapshot struct {
	paths []string
	set   map[string]struct{}
}

// Scan lists dir, keeps regular files whose extension is in exts, and
// when search is non-empty keeps only files whose base name contains
// every whitespace-separated term (case-insensitive). Paths come back
// sorted by name so repeated scans of an unchanged directory agree.
func Scan(dir string, exts []string, search string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Snapshot{}, err
	}

	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	terms := strings.Fields(strings.ToLower(search))

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := allowed[strings.ToLower(filepath.Ext(name))]; !ok {
			logrus.Debugf("Skipping %s due to extension", name)
			continue
		}
		if !matchesTerms(name, terms) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)

	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return Snapshot{paths: paths, set: set}, nil
}

// matchesTerms requires every term to appear in the lowercased name
func matchesTerms(name string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, term := range terms {
		if !strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

// Len returns the number of eligible files
func (s Snapshot) Len() int {
	return len(s.paths)
}

// Contains reports whether path survived the scan
func (s Snapshot) Contains(path string) bool {
	_, ok := s.set[path]
	return ok
}

// Paths returns the full ordered listing
func (s Snapshot) Paths() []string {
	return s.paths
}

// Page returns the nth page of the listing. Out-of-range pages are
// empty, not an error.
func (s Snapshot) Page(n, perPage int) []string {
	if n < 0 || perPage <= 0 {
		return nil
	}
	start := n * perPage
	if start >= len(s.paths) {
		return nil
	}
	end := start + perPage
	if end > len(s.paths) {
		end = len(s.paths)
	}
	return s.paths[start:end]
}

// Pages returns how many pages the listing spans
func (s Snapshot) Pages(perPage int) int {
	if perPage <= 0 || len(s.paths) == 0 {
		return 1
	}
	return (len(s.paths) + perPage - 1) / perPage
}
