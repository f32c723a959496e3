package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchReport is the persisted outcome of one resolve/upload batch
type BatchReport struct {
	ID           string      `json:"id" yaml:"id"`
	CreatedAt    time.Time   `json:"created_at" yaml:"created_at"`
	XMLFiles     []string    `json:"xml_files" yaml:"xml_files"`
	EvidenceRoot string      `json:"evidence_root,omitempty" yaml:"evidence_root,omitempty"`
	Resolved     []string    `json:"resolved" yaml:"resolved"`
	Unresolved   []string    `json:"unresolved" yaml:"unresolved"`
	FileErrors   []FileError `json:"file_errors,omitempty" yaml:"file_errors,omitempty"`
	Uploaded     bool        `json:"uploaded" yaml:"uploaded"`
}

// NewBatchReport snapshots a resolution. res may be nil when no evidence
// directory was given.
func NewBatchReport(xmlFiles []string, evidenceRoot string, res *AttachmentResolution) *BatchReport {
	report := &BatchReport{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		XMLFiles:     append([]string(nil), xmlFiles...),
		EvidenceRoot: evidenceRoot,
		Resolved:     []string{},
		Unresolved:   []string{},
	}
	if res != nil {
		report.Resolved = res.Resolved()
		report.Unresolved = res.Unresolved()
		report.FileErrors = res.FileErrors()
	}
	return report
}

// BatchSummary is a row of the batch history ledger
type BatchSummary struct {
	ID         string
	CreatedAt  time.Time
	XMLFiles   int
	Resolved   int
	Unresolved int
	FileErrors int
	Uploaded   bool
}

// Summary condenses the report into a ledger row
func (b *BatchReport) Summary() BatchSummary {
	return BatchSummary{
		ID:         b.ID,
		CreatedAt:  b.CreatedAt,
		XMLFiles:   len(b.XMLFiles),
		Resolved:   len(b.Resolved),
		Unresolved: len(b.Unresolved),
		FileErrors: len(b.FileErrors),
		Uploaded:   b.Uploaded,
	}
}
