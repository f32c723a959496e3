package history

import (
	"context"

	"tqc/internal/domain"
)

// Recorder keeps a ledger of processed batches
type Recorder interface {
	Record(ctx context.Context, report *domain.BatchReport) error
	Recent(ctx context.Context, limit int) ([]domain.BatchSummary, error)
	Close() error
}
