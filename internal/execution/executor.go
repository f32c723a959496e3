package execution

import (
	"context"
	"time"

	"tqc/internal/domain"
)

// Executor parses report files and returns one result per file, in input order
type Executor interface {
	Execute(ctx context.Context, files []string) ([]domain.ParsedReport, time.Duration, error)
}

// Progress receives updates while files are processed
type Progress interface {
	Update(completed, parsed, failed int)
	Finish()
}
