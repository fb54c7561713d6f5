package skills

import (
	_ "embed"
	"fmt"
	"iter"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Vocabulary is an immutable, ordered list of known skill labels.
// It is safe for concurrent use.
type Vocabulary struct {
	labels []string
	index  map[string]int // folded label -> position
}

// vocabularyFile is the on-disk YAML layout: labels grouped by category.
type vocabularyFile struct {
	Categories []struct {
		Name   string   `yaml:"name"`
		Skills []string `yaml:"skills"`
	} `yaml:"categories"`
}

// NewVocabulary builds a vocabulary from labels, trimming them and dropping
// empty and case-insensitive duplicate entries. Order is preserved.
func NewVocabulary(labels []string) *Vocabulary {
	cleaned := DedupFold(Clean(labels))
	index := make(map[string]int, len(cleaned))
	for i, label := range cleaned {
		index[Fold(label)] = i
	}
	return &Vocabulary{labels: cleaned, index: index}
}

// DefaultVocabulary returns the built-in reference vocabulary.
func DefaultVocabulary() *Vocabulary {
	vocab, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return vocab
}

// LoadVocabulary reads a vocabulary YAML file from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary parses vocabulary YAML. Categories are flattened in file order.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary YAML: %w", err)
	}

	var labels []string
	for _, category := range file.Categories {
		labels = append(labels, category.Skills...)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("vocabulary contains no skills")
	}

	return NewVocabulary(labels), nil
}

// Len returns the number of labels.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.labels)
}

// Labels returns a copy of the labels in vocabulary order.
func (v *Vocabulary) Labels() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.labels)
}

// All iterates the labels in vocabulary order.
func (v *Vocabulary) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if v == nil {
			return
		}
		for _, label := range v.labels {
			if !yield(label) {
				return
			}
		}
	}
}

// Lookup returns the vocabulary spelling of label, matched case-insensitively
// after alias resolution.
func (v *Vocabulary) Lookup(label string) (string, bool) {
	if v == nil {
		return "", false
	}
	if i, ok := v.index[Fold(label)]; ok {
		return v.labels[i], true
	}
	if i, ok := v.index[Fold(Canonical(label))]; ok {
		return v.labels[i], true
	}
	return "", false
}
