// Package suggest offers "did you mean" candidates for paths that do not
// exist, by fuzzy matching the first missing component against the
// entries of its nearest existing ancestor.
package suggest

import (
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"
)

// ForMissing returns up to limit existing paths that resemble path.
// Returns nil when path exists, no ancestor can be listed, or nothing
// matches.
func ForMissing(path string, limit int) []string {
	if limit <= 0 || path == "" {
		return nil
	}

	path = filepath.Clean(path)
	if _, err := os.Lstat(path); err == nil {
		return nil
	}

	missing := filepath.Base(path)
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			return nil
		}
		missing = filepath.Base(parent)
		parent = next
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	// Matches come back sorted by score, best first
	matches := fuzzy.Find(missing, names)
	var out []string
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, filepath.Join(parent, m.Str))
	}
	return out
}
