package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scanner expands report glob patterns into report files
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns the absolute, symlink-resolved paths of the files matching the
// patterns, in pattern order, without duplicates. Patterns support "**".
// Matches under a skipped directory are dropped unless the pattern names it.
func (s *Scanner) Scan(patterns ...string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error matching %s: %w", pattern, err)
		}

		for _, match := range matches {
			if s.skipped(pattern, match) {
				continue
			}
			path, err := realpath(match)
			if err != nil {
				return nil, err
			}
			if seen[path] {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}

	return files, nil
}

func (s *Scanner) skipped(pattern, match string) bool {
	segments := strings.Split(filepath.ToSlash(filepath.Dir(match)), "/")
	named := strings.Split(filepath.ToSlash(pattern), "/")
	for _, seg := range segments {
		if !s.skipDirs[seg] && !(strings.HasPrefix(seg, ".") && seg != "." && seg != "..") {
			continue
		}
		if !contains(named, seg) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func realpath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("error resolving %s: %w", path, err)
	}
	return resolved, nil
}
