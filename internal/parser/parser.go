package parser

import "tqc/internal/domain"

// Parser turns a test report file into normalized test-case records
type Parser interface {
	Parse(path string) ([]domain.TestCaseRecord, error)
}
