package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters report files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the files whose base name matches pattern.
// Supports patterns like "*-junit.xml" or "*smoke*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		name := filepath.Base(file)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		if !strings.ContainsAny(pattern, "*?") {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, file)
			}
			continue
		}

		// "*a*b*" style patterns: every literal part must appear, in order
		if matchParts(name, strings.Split(pattern, "*")) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}

func matchParts(name string, parts []string) bool {
	found := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		i := strings.Index(name, part)
		if i < 0 {
			return false
		}
		name = name[i+len(part):]
		found = true
	}
	return found
}
