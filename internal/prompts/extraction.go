// Package prompts embeds the messages sent to the model when a project
// description is tagged with vocabulary skills.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

//go:embed skills.json
var files embed.FS

const skillsFile = "skills.json"

// Placeholder names filled into Extraction.User.
const (
	VarVocabulary  = "Vocabulary"
	VarDescription = "Description"
)

// Extraction is the prompt set for one skill-tagging request: a system
// message, the user template and the nudge appended after a reply that
// was not a JSON array.
type Extraction struct {
	System string `json:"skill_extraction_system"`
	User   string `json:"skill_extraction_user"`
	Retry  string `json:"skill_extraction_retry"`
}

var (
	loadOnce   sync.Once
	extraction Extraction
	loadErr    error
)

// SkillExtraction returns the embedded extraction prompts. The file is
// decoded once; unknown keys, empty messages and a user template missing
// a placeholder are all errors.
func SkillExtraction() (Extraction, error) {
	loadOnce.Do(func() {
		extraction, loadErr = decodeExtraction(skillsFile)
	})
	return extraction, loadErr
}

func decodeExtraction(name string) (Extraction, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}

	var e Extraction
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return Extraction{}, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}
	if err := e.validate(); err != nil {
		return Extraction{}, fmt.Errorf("prompt file %s: %w", name, err)
	}
	return e, nil
}

func (e Extraction) validate() error {
	for field, text := range map[string]string{"system": e.System, "user": e.User, "retry": e.Retry} {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%s prompt is empty", field)
		}
	}
	vars := Placeholders(e.User)
	for _, want := range []string{VarVocabulary, VarDescription} {
		if !slices.Contains(vars, want) {
			return fmt.Errorf("user prompt lacks {{.%s}}", want)
		}
	}
	return nil
}

// Render joins the system message and the filled user template.
func (e Extraction) Render(vocabularyJSON, description string) string {
	return e.System + "\n\n" + Fill(e.User, map[string]string{
		VarVocabulary:  vocabularyJSON,
		VarDescription: description,
	})
}

var placeholderRE = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Placeholders lists the {{.Name}} variables of template in order of first
// appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderRE.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Fill substitutes {{.Name}} placeholders from vars in a single pass, so a
// project description containing braces is never expanded again. Unknown
// placeholders stay as written.
func Fill(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
