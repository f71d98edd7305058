package httpclient

import "unicode/utf8"

// Truncate shortens s to at most max bytes plus "...", cutting on a rune
// boundary so the result stays valid UTF-8.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
