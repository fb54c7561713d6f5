// Package skills provides skill-label normalization, the reference skill
// vocabulary and vocabulary-constrained skill extraction.
package skills

import (
	"strings"
)

// Delimiter separates skills when a skill list is stored as a single string.
const Delimiter = ","

// Normalize converts a raw skills value into an ordered list of trimmed,
// non-empty labels. It accepts a []string, a []any holding strings, or a
// single comma-delimited string. Any other shape yields an empty list.
// Duplicates are kept; callers decide their own dedup policy.
func Normalize(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return Clean(strings.Split(v, Delimiter))
	case []string:
		return Clean(v)
	case []any:
		labels := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			labels = append(labels, s)
		}
		return Clean(labels)
	default:
		return []string{}
	}
}

// Clean trims every label and drops the ones that end up empty.
func Clean(labels []string) []string {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		cleaned = append(cleaned, label)
	}
	return cleaned
}

// Join renders labels as a single delimited string that Normalize reads back.
func Join(labels []string) string {
	return strings.Join(labels, Delimiter)
}

// Fold returns the case-insensitive matching key for a label.
func Fold(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// DedupFold removes case-insensitive duplicates, keeping the first occurrence.
func DedupFold(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		key := Fold(label)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, label)
	}
	return result
}

// DedupExact removes exact-string duplicates, keeping the first occurrence.
func DedupExact(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, exists := seen[label]; exists {
			continue
		}
		seen[label] = struct{}{}
		result = append(result, label)
	}
	return result
}

// aliases maps common spelling variants to the label used in the vocabulary.
var aliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"js":         "JavaScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"postgres":   "PostgreSQL",
	"mongo":      "MongoDB",
	"tf":         "TensorFlow",
	"sklearn":    "Scikit-learn",
	"ml":         "Machine Learning",
	"ai":         "Artificial Intelligence",
	"gcp":        "Google Cloud",
	"nextjs":     "Next.js",
	"nuxtjs":     "Nuxt.js",
	"expressjs":  "Express",
	"express.js": "Express",
}

// Canonical resolves known aliases ("golang", "k8s") to their vocabulary
// spelling. Unknown labels are returned trimmed and otherwise untouched.
func Canonical(label string) string {
	trimmed := strings.TrimSpace(label)
	if canonical, ok := aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
