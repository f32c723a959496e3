package ui

import "tqc/internal/domain"

// Viewer displays a batch report in an interactive TUI
type Viewer interface {
	View(report *domain.BatchReport) error
}
