package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeText drops NUL bytes, invalid UTF-8 and non-printing controls.
// Newlines and tabs are kept; other whitespace controls (form feed, vertical
// tab, the 0x1c-0x1f separators) become a space so adjacent words stay apart.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if isSeparator(ch) {
			r = append(r, ' ')
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

func isSeparator(ch rune) bool {
	return unicode.IsSpace(ch) || (ch >= 0x1c && ch <= 0x1f)
}
