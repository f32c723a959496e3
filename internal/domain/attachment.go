package domain

// AttachmentCandidate is an evidence file found on disk, keyed by the suite and
// case identity encoded in its file name ("<suite> -- <case>.png").
type AttachmentCandidate struct {
	TestsuiteID string `json:"testsuite_id"`
	TestcaseID  string `json:"testcase_id"`
	Path        string `json:"path"`
}

// FileError records a report file that could not be processed
type FileError struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}
