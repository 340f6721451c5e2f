package inspector

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/safeaudit-core/internal/hazard"
)

// NormalizeName groups spelling variants of one person: "Kim Min-su",
// "KIM MINSU" and "kim.minsu" all normalize to "kimminsu"
func NormalizeName(name string) string {
	folded := hazard.Fold(name)
	if folded == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
