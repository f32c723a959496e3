package execution

import (
	"tqc/internal/domain"
	"tqc/internal/parser"
)

// Runner parses a single report file
type Runner struct {
	parser parser.Parser
}

// NewRunner creates a new Runner
func NewRunner(p parser.Parser) *Runner {
	return &Runner{parser: p}
}

// Run parses the report at path. Failures are carried in the result, not returned.
func (r *Runner) Run(path string) domain.ParsedReport {
	records, err := r.parser.Parse(path)
	return domain.ParsedReport{
		Path:    path,
		Records: records,
		Err:     err,
	}
}
