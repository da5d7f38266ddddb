package scan

import "unicode/utf8"

// ellipsis is appended by Truncate. Three ASCII dots, matching what the
// history file has always stored.
const ellipsis = "..."

// Truncate keeps the first n runes of s and appends an ellipsis when s is
// longer than n. The limit excludes the ellipsis itself.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return prefix(s, n) + ellipsis
}

// prefix returns the first n runes of s with no marker.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
