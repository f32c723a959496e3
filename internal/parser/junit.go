package parser

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tqc/internal/domain"
	"tqc/internal/logging"
)

const (
	systemOut = "system-out"
	systemErr = "system-err"
)

// Normalizer flattens a decoded report into test-case records
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logging.OrNop(logger)}
}

// Normalize returns the test cases of the document in document order. A
// document that matches no known shape yields no records; the mismatch is
// logged, never returned.
func (n *Normalizer) Normalize(root *Node) (records []domain.TestCaseRecord) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("failed to normalize report", zap.Any("panic", r))
			records = nil
		}
	}()

	shape, source, err := inspect(root)
	if err != nil {
		n.logger.Warn("skipping report", zap.Error(err))
		return nil
	}
	n.logger.Debug("report shape detected", zap.Stringer("shape", shape))

	for _, tc := range source.testcases() {
		records = append(records, domain.TestCaseRecord{
			Classname: tc.Attr("classname"),
			Name:      tc.Attr("name"),
			SystemOut: tc.ChildText(systemOut),
			SystemErr: tc.ChildText(systemErr),
		})
	}
	return records
}

// JUnitParser parses JUnit/XUnit XML report files
type JUnitParser struct {
	logger *zap.Logger
}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser(logger *zap.Logger) *JUnitParser {
	return &JUnitParser{logger: logging.OrNop(logger)}
}

// Parse reads the file and normalizes its test cases
func (p *JUnitParser) Parse(path string) ([]domain.TestCaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading report %s: %w", path, err)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	logger := p.logger.With(zap.String("path", path))
	records := NewNormalizer(logger).Normalize(root)
	logger.Debug("report parsed", zap.Int("testcases", len(records)))
	return records, nil
}
