package predict

import "strings"

// NormalizeSymptoms splits comma-separated free text into symptom tokens:
// trimmed, lower-cased, inner spaces replaced by underscores. Empty entries
// are dropped.
func NormalizeSymptoms(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tok := NormalizeSymptom(part); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func NormalizeSymptom(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
