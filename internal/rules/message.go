package rules

import "strings"

// Message layout shared by every stage so clients can render guidance the same way.
const (
	RecommendationSeparator = "\n\nRecommendation: "
	ReferencePrefix         = "[Ref: "
	ReferenceSuffix         = "]"
)

// FormatMessage joins an issue body with its recommendation and rule reference
func FormatMessage(body, recommendation, ref string) string {
	var b strings.Builder
	b.WriteString(body)
	if recommendation != "" {
		b.WriteString(RecommendationSeparator)
		b.WriteString(recommendation)
	}
	if ref != "" {
		b.WriteString(" ")
		b.WriteString(ReferencePrefix)
		b.WriteString(ref)
		b.WriteString(ReferenceSuffix)
	}
	return b.String()
}

// SplitMessage is the inverse of FormatMessage. Messages without the
// separator come back whole as the body.
func SplitMessage(msg string) (body, recommendation, ref string) {
	body = msg
	if i := strings.LastIndex(body, ReferencePrefix); i >= 0 && strings.HasSuffix(body, ReferenceSuffix) {
		ref = body[i+len(ReferencePrefix) : len(body)-len(ReferenceSuffix)]
		body = strings.TrimSuffix(body[:i], " ")
	}
	if i := strings.Index(body, RecommendationSeparator); i >= 0 {
		recommendation = body[i+len(RecommendationSeparator):]
		body = body[:i]
	}
	return body, recommendation, ref
}
