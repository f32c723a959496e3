// Package marker finds inline attachment markers that test frameworks print
// into test names and captured output, e.g. "[[ATTACHMENT|shots/login.png]]".
package marker

import "regexp"

// attachmentPattern tolerates repeated opening brackets. The path is anything
// up to the first "]]" on the same line, so the first marker of a line wins.
var attachmentPattern = regexp.MustCompile(`\[+ATTACHMENT\|([^\r\n]+?)\]\]`)

// Extractor finds an attachment reference in free text
type Extractor interface {
	Extract(text string) (string, bool)
}

// AttachmentExtractor matches the [ATTACHMENT|<path>]] marker
type AttachmentExtractor struct{}

// NewAttachmentExtractor creates a new AttachmentExtractor
func NewAttachmentExtractor() *AttachmentExtractor {
	return &AttachmentExtractor{}
}

// Extract returns the path of the first marker in text
func (AttachmentExtractor) Extract(text string) (string, bool) {
	return Extract(text)
}

// Extract returns the path of the first marker in text
func Extract(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	m := attachmentPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
