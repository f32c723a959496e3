package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			files:    []string{"unit.xml", "smoke-junit.xml", "e2e.xml"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			files:    []string{"unit.xml", "smoke-junit.xml", "e2e-junit.xml"},
			pattern:  "*-junit.xml",
			expected: 2,
		},
		{
			name:     "wildcard pattern matches substring",
			files:    []string{"unit.xml", "smoke-junit.xml", "smoke-xunit.xml", "e2e.xml"},
			pattern:  "*smoke*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			files:    []string{"unit.xml", "smoke-junit.xml", "e2e.xml"},
			pattern:  "smoke",
			expected: 1,
		},
		{
			name:     "no matches",
			files:    []string{"unit.xml", "e2e.xml"},
			pattern:  "*cucumber*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			files:    []string{"/ci/out/unit.xml", "/ci/out/e2e.xml"},
			pattern:  "*unit.xml",
			expected: 1,
		},
		{
			name:     "parts must appear in order",
			files:    []string{"smoke-e2e.xml", "e2e-smoke.xml"},
			pattern:  "*smoke*e2e*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.files, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty file list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.xml")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("only wildcards", func(t *testing.T) {
		result := filter.FilterByName([]string{"a.xml", "b.xml"}, "**")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})
}
