package generator

import (
	"html"
	"strings"
	"unicode/utf8"
)

const maxTitleLength = 70

var invalidCharsReplacer = strings.NewReplacer("¼", "", "½", "", "¾", "")

// stripInvalidChars removes ¼, ½ and ¾ left by legacy encodings.
// HTML encoded input is decoded before stripping and encoded again afterwards.
func stripInvalidChars(input string, isHTMLEncoded bool) string {
	if strings.TrimSpace(input) == "" {
		return input
	}

	if isHTMLEncoded {
		input = html.UnescapeString(input)
	}

	input = invalidCharsReplacer.Replace(input)

	if isHTMLEncoded {
		input = html.EscapeString(input)
	}

	return input
}

// truncate cuts s to at most max characters.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	return string([]rune(s)[:max])
}
