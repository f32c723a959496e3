package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tqc/internal/domain"
)

func sampleReport() *domain.BatchReport {
	return &domain.BatchReport{
		ID:           "b1",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		XMLFiles:     []string{"/r/a.xml", "/r/b.xml"},
		EvidenceRoot: "/e",
		Resolved:     []string{"/e/Login.feature/Login -- in.png", "/e/Login.feature/Login -- out.png", "/tmp/run.log"},
		Unresolved:   []string{"/e/missing.png"},
		FileErrors:   []domain.FileError{{Path: "/r/b.xml", Message: "malformed XML"}},
	}
}

func TestFormatter_PrintReportText(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf).PrintReport(sampleReport(), FormatText))
	out := buf.String()

	assert.Contains(t, out, "Attachment Resolution")
	assert.Contains(t, out, "Login.feature")
	assert.Contains(t, out, "Login -- out.png")
	assert.Contains(t, out, "/tmp")
	assert.Contains(t, out, "Unresolved attachments:")
	assert.Contains(t, out, "/e/missing.png")
	assert.Contains(t, out, "/r/b.xml: malformed XML")
}

func TestFormatter_PrintReportStructured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(&buf).PrintReport(sampleReport(), FormatJSON))

		var decoded domain.BatchReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "b1", decoded.ID)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(&buf).PrintReport(sampleReport(), FormatYAML))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "b1", decoded["id"])
		assert.Len(t, decoded["unresolved"], 1)
	})

	t.Run("unknown", func(t *testing.T) {
		err := NewFormatter(&bytes.Buffer{}).PrintReport(sampleReport(), "xml")
		assert.Error(t, err)
	})
}

func TestFormatter_PrintHistory(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.PrintHistory(nil)
	assert.Contains(t, buf.String(), "No batches recorded")

	buf.Reset()
	f.PrintHistory([]domain.BatchSummary{sampleReport().Summary()})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "b1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "…6789", truncate("0123456789", 5))
}
