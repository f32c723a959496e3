package domain

import "sync"

// AttachmentResolution accumulates the attachments of one upload batch.
// Both sets keep insertion order and never hold duplicates; a path is never
// resolved and unresolved at the same time. Safe for concurrent use.
type AttachmentResolution struct {
	mu         sync.Mutex
	resolved   []string
	unresolved []string
	seen       map[string]bool // true = resolved, false = unresolved
	fileErrors []FileError
}

// NewAttachmentResolution creates an empty resolution
func NewAttachmentResolution() *AttachmentResolution {
	return &AttachmentResolution{seen: make(map[string]bool)}
}

// AddResolved adds path to the resolved set. It reports whether the set changed.
// A path previously recorded as unresolved is moved over.
func (r *AttachmentResolution) AddResolved(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved, ok := r.seen[path]
	if ok && resolved {
		return false
	}
	if ok {
		r.unresolved = remove(r.unresolved, path)
	}
	r.seen[path] = true
	r.resolved = append(r.resolved, path)
	return true
}

// AddUnresolved adds path to the unresolved set unless it is already known.
func (r *AttachmentResolution) AddUnresolved(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[path]; ok {
		return false
	}
	r.seen[path] = false
	r.unresolved = append(r.unresolved, path)
	return true
}

// AddFileError records a per-file failure without touching the attachment sets
func (r *AttachmentResolution) AddFileError(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileErrors = append(r.fileErrors, FileError{Path: path, Message: err.Error()})
}

// Resolved returns a copy of the resolved paths in insertion order
func (r *AttachmentResolution) Resolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.resolved...)
}

// Unresolved returns a copy of the unresolved paths in insertion order
func (r *AttachmentResolution) Unresolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.unresolved...)
}

// FileErrors returns the per-file failures recorded so far
func (r *AttachmentResolution) FileErrors() []FileError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FileError(nil), r.fileErrors...)
}

// Empty reports whether nothing was resolved or left unresolved
func (r *AttachmentResolution) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolved) == 0 && len(r.unresolved) == 0
}

func remove(list []string, path string) []string {
	for i, p := range list {
		if p == path {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
