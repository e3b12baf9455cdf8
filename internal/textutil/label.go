package textutil

import (
	"strings"
	"unicode"
)

// CleanLabel makes a stage name safe to print on one terminal line. Control
// characters are dropped, whitespace runs (including newlines and tabs) become
// a single space and the result is trimmed.
func CleanLabel(value string) string {
	var b strings.Builder
	space := false
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsControl(r), r == unicode.ReplacementChar:
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
