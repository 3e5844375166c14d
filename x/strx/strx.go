package strx

import (
	"path/filepath"
	"strings"
)

// Coalesce returns the first non-empty string, or "" if there is none.
func Coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Stem returns the last element of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
