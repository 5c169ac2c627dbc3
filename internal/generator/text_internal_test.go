package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitStripInvalidChars(t *testing.T) {
	tests := map[string]struct {
		input         string
		isHTMLEncoded bool
		want          string
	}{
		"plain text": {
			input: "Simple description",
			want:  "Simple description",
		},
		"fractions removed": {
			input: "A ¼ inch, ½ size and ¾ length",
			want:  "A  inch,  size and  length",
		},
		"whitespace only untouched": {
			input:         "  \t ",
			isHTMLEncoded: true,
			want:          "  \t ",
		},
		"encoded fractions removed": {
			input:         "Size &frac12; &amp; more",
			isHTMLEncoded: true,
			want:          "Size  &amp; more",
		},
		"markup encoded again": {
			input:         "<p>Fast ¾</p>",
			isHTMLEncoded: true,
			want:          "&lt;p&gt;Fast &lt;/p&gt;",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripInvalidChars(tt.input, tt.isHTMLEncoded), "should strip invalid characters")
		})
	}
}

func TestUnitTruncate(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"short": {
			input: "Short name",
			want:  "Short name",
		},
		"exactly max": {
			input: strings.Repeat("a", maxTitleLength),
			want:  strings.Repeat("a", maxTitleLength),
		},
		"too long": {
			input: strings.Repeat("a", maxTitleLength+5),
			want:  strings.Repeat("a", maxTitleLength),
		},
		"multibyte characters counted once": {
			input: strings.Repeat("ż", maxTitleLength+1),
			want:  strings.Repeat("ż", maxTitleLength),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, maxTitleLength), "should truncate to max characters")
		})
	}
}
