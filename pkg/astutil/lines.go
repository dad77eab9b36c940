package astutil

import "strings"

// LineOf converts a byte offset into a 1-based line number by counting
// newlines strictly before it. Offset 0 is line 1; an offset past the end
// of source is clamped to the source's last line.
func LineOf(offset int, source string) int {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	return 1 + strings.Count(source[:offset], "\n")
}
