package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "empty", text: "", found: false},
		{name: "no marker", text: "user logs in", found: false},
		{name: "single bracket", text: "[ATTACHMENT|evidence/shot1.png]]", want: "evidence/shot1.png", found: true},
		{name: "double bracket", text: "[[ATTACHMENT|evidence/shot1.png]]", want: "evidence/shot1.png", found: true},
		{name: "embedded in name", text: "checkout works [[ATTACHMENT|out/cart.jpg]] (retry 1)", want: "out/cart.jpg", found: true},
		{name: "absolute path", text: "[[ATTACHMENT|/tmp/run/log.txt]]", want: "/tmp/run/log.txt", found: true},
		{name: "mp3 extension", text: "[[ATTACHMENT|audio/clip.mp3]]", want: "audio/clip.mp3", found: true},
		{name: "extension ending in a digit", text: "[ATTACHMENT|video.mp4]]", want: "video.mp4", found: true},
		{name: "uppercase extension", text: "[[ATTACHMENT|shots/Login.PNG]]", want: "shots/Login.PNG", found: true},
		{name: "no extension", text: "[[ATTACHMENT|logs/console]]", want: "logs/console", found: true},
		{name: "single bracket inside path", text: "[[ATTACHMENT|a]b.png]]", want: "a]b.png", found: true},
		{name: "empty path", text: "[[ATTACHMENT|]]", found: false},
		{name: "partial keyword", text: "[[TACH|one.png]]", found: false},
		{name: "lowercase keyword", text: "[[attachment|one.png]]", found: false},
		{name: "marker on a later line", text: "starting\nsaved [[ATTACHMENT|a/b.png]]\ndone", want: "a/b.png", found: true},
		{name: "first of two markers", text: "[[ATTACHMENT|one.png]] [[ATTACHMENT|two.png]]", want: "one.png", found: true},
		{name: "unterminated", text: "[[ATTACHMENT|one.png]", found: false},
		{name: "marker split across lines", text: "[[ATTACHMENT|one\n.png]]", found: false},
		{name: "missing pipe", text: "[[ATTACHMENT one.png]]", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttachmentExtractor(t *testing.T) {
	var extractor Extractor = NewAttachmentExtractor()
	got, ok := extractor.Extract("[[ATTACHMENT|x/y.log]]")
	assert.True(t, ok)
	assert.Equal(t, "x/y.log", got)
}
