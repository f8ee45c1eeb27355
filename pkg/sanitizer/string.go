// Package sanitizer normalizes free-text input before validation so that
// stray whitespace never produces spurious duplicates or validation noise.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses interior
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans venue, section and setting names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLabel cleans sport labels into a canonical lowercase form.
func NormalizeLabel(label string) string {
	return strings.ToLower(TrimAndNormalize(label))
}

// NormalizeReason cleans blackout reasons and booking notes.
func NormalizeReason(reason string) string {
	return TrimAndNormalize(reason)
}
