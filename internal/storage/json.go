package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tqc/internal/domain"
)

// Save writes the batch report to the configured JSON output file.
func (s *JSONStorage) Save(report *domain.BatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch report: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// write then rename so a reader never sees a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return nil
}

// Load reads the last batch report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.BatchReport, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch report: %w", err)
	}
	var report domain.BatchReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse batch report: %w", err)
	}
	return &report, nil
}
