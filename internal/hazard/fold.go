package hazard

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes text for keyword comparison: NFKC width/compatibility
// normalization followed by Unicode case folding and space trimming.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// Casers keep state; one per call keeps Fold safe for concurrent use.
	return strings.TrimSpace(cases.Fold().String(norm.NFKC.String(s)))
}

// containsAny reports whether folded text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
