package storage

import (
	"tqc/internal/config"
	"tqc/internal/domain"
)

// Storage persists and loads the last batch report (e.g. for the attachments viewer).
type Storage interface {
	Save(report *domain.BatchReport) error
	Load() (*domain.BatchReport, error)
}

// JSONStorage stores the report in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
