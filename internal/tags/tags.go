// Package tags implements the skill tag input: an ordered, case-insensitively
// unique collection of skill labels bound to a text field with prefix
// autocomplete over a reference vocabulary.
//
// A TagInput holds no UI state beyond the raw field text and whether the
// suggestion panel is open, so HTTP handlers and the terminal editor drive
// the same logic.
package tags

import (
	"iter"
	"slices"
	"strings"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
)

// Commit keys, spelled the way bubbletea reports them.
const (
	KeyEnter = "enter"
	KeyComma = ","
	KeySpace = " "
)

// TagInput is owned by a single edit session and is not safe for concurrent use.
type TagInput struct {
	vocab *skills.Vocabulary
	tags  []string
	text  string
	open  bool
}

// New creates an empty TagInput suggesting from vocab. A nil vocabulary
// yields no suggestions.
func New(vocab *skills.Vocabulary) *TagInput {
	return &TagInput{vocab: vocab, tags: []string{}}
}

// Suggest yields vocabulary labels that start with the trimmed query
// (case-insensitive) and are not already tagged, in vocabulary order.
// An empty query yields nothing. The sequence reads the collection at
// iteration time and can be ranged over repeatedly.
func (t *TagInput) Suggest(query string) iter.Seq[string] {
	prefix := skills.Fold(query)
	return func(yield func(string) bool) {
		if prefix == "" {
			return
		}
		for label := range t.vocab.All() {
			if !strings.HasPrefix(strings.ToLower(label), prefix) || t.Has(label) {
				continue
			}
			if !yield(label) {
				return
			}
		}
	}
}

// Has reports whether label is already tagged, ignoring case and
// surrounding space.
func (t *TagInput) Has(label string) bool {
	return t.indexOf(label) >= 0
}

func (t *TagInput) indexOf(label string) int {
	label = strings.TrimSpace(label)
	return slices.IndexFunc(t.tags, func(tag string) bool {
		return strings.EqualFold(tag, label)
	})
}

// Commit appends the trimmed label. Empty labels and case-insensitive
// duplicates are ignored; the result reports whether a tag was added.
func (t *TagInput) Commit(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" || t.Has(label) {
		return false
	}
	t.tags = append(t.tags, label)
	return true
}

// Remove deletes the tag at index. Out-of-range indexes are ignored.
func (t *TagInput) Remove(index int) bool {
	if index < 0 || index >= len(t.tags) {
		return false
	}
	t.tags = slices.Delete(t.tags, index, index+1)
	return true
}

// Load replaces the collection with raw, which may be a []string, a []any
// of strings or a comma-delimited string. Labels are trimmed, empties are
// dropped and later case-insensitive duplicates are discarded. Any other
// shape leaves the collection empty.
func (t *TagInput) Load(raw any) {
	t.tags = skills.DedupFold(skills.Normalize(raw))
}

// Reset empties the collection and the field.
func (t *TagInput) Reset() {
	t.tags = []string{}
	t.text = ""
	t.open = false
}

// SetText records a change of the raw field text and opens the suggestion
// panel when there is anything to suggest.
func (t *TagInput) SetText(text string) {
	t.text = text
	t.open = false
	for range t.Suggest(text) {
		t.open = true
		break
	}
}

// Text returns the raw field text.
func (t *TagInput) Text() string { return t.text }

// SuggestionsOpen reports whether the suggestion panel is visible.
func (t *TagInput) SuggestionsOpen() bool { return t.open }

// Suggestions returns the panel contents, or nil while the panel is hidden.
func (t *TagInput) Suggestions() []string {
	if !t.open {
		return nil
	}
	return slices.Collect(t.Suggest(t.text))
}

// Pick handles a click on a suggestion: the label is committed, the field
// cleared and the panel hidden.
func (t *TagInput) Pick(label string) bool {
	added := t.Commit(label)
	t.text = ""
	t.open = false
	return added
}

// IsCommitKey reports whether key commits the field text.
func IsCommitKey(key string) bool {
	switch key {
	case KeyEnter, KeyComma, KeySpace:
		return true
	}
	return false
}

// HandleKey commits the trimmed field text when key is a commit key, then
// clears the field and hides the panel. It returns true when the key was
// consumed; the caller must then suppress the key's default action (form
// submission or inserting the character).
func (t *TagInput) HandleKey(key string) bool {
	if !IsCommitKey(key) {
		return false
	}
	t.Commit(t.text)
	t.text = ""
	t.open = false
	return true
}

// Tags returns a copy of the collection in insertion order.
func (t *TagInput) Tags() []string {
	return slices.Clone(t.tags)
}

// Len returns the number of tags.
func (t *TagInput) Len() int { return len(t.tags) }

// String returns the tags joined with the skill delimiter, a form Load
// reads back unchanged.
func (t *TagInput) String() string {
	return skills.Join(t.tags)
}
