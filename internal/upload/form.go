package upload

import (
	"errors"
	"strconv"

	"tqc/internal/domain"
)

var (
	// ErrNoFiles is returned when there is no report to upload
	ErrNoFiles = errors.New("no matching files")
	// ErrPlanRequired is returned when the upload has no target plan
	ErrPlanRequired = errors.New(`plan is required. Try adding "--plan_id=<number>"`)
)

// Request describes one test run upload
type Request struct {
	PlanID          int
	MilestoneID     int
	RunName         string
	CreateManualRun bool
	XMLFiles        []string
	// Resolution is nil when no evidence directory was given
	Resolution *domain.AttachmentResolution
}

// Part is one multipart form field: either a plain value or a file to stream
type Part struct {
	Field string
	Value string
	File  string
}

// BuildForm lays out the form fields for req. A lone report without a
// resolution goes into "file"; otherwise every report and resolved
// attachment is sent as "files[]".
func BuildForm(req Request) ([]Part, error) {
	var parts []Part

	if req.RunName != "" {
		parts = append(parts, Part{Field: "run_name", Value: req.RunName})
	}
	if req.CreateManualRun {
		parts = append(parts, Part{Field: "create_manual_run", Value: "1"})
	}

	switch {
	case len(req.XMLFiles) > 1 || req.Resolution != nil:
		if len(req.XMLFiles) == 0 {
			return nil, ErrNoFiles
		}
		for _, f := range req.XMLFiles {
			parts = append(parts, Part{Field: "files[]", File: f})
		}
		if req.Resolution != nil {
			for _, f := range req.Resolution.Resolved() {
				parts = append(parts, Part{Field: "files[]", File: f})
			}
		}
	case len(req.XMLFiles) == 1:
		parts = append(parts, Part{Field: "file", File: req.XMLFiles[0]})
	default:
		return nil, ErrNoFiles
	}

	if req.MilestoneID > 0 {
		parts = append(parts, Part{Field: "milestone_id", Value: strconv.Itoa(req.MilestoneID)})
	}
	return parts, nil
}
