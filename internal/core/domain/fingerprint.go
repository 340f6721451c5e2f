package domain

import (
	"sort"
	"strings"
)

// Fingerprint encodes a checklist as its sorted id:value pairs so identical
// checklists compare equal regardless of item order. An empty checklist has
// an empty fingerprint.
func Fingerprint(items []ChecklistItem) string {
	if len(items) == 0 {
		return ""
	}
	pairs := make([]string, len(items))
	for i, item := range items {
		pairs[i] = strings.ToLower(strings.TrimSpace(item.ID)) + ":" + string(item.Value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}
