package htmlutil

import "strings"

// NormalizeID trims surrounding whitespace from a tracking identifier. It
// reports false when nothing is left, in which case callers write nothing.
func NormalizeID(raw string) (string, bool) {
	id := strings.TrimSpace(raw)
	return id, id != ""
}
