package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Lj07-coder/SkillDeck/internal/llm"
	"github.com/Lj07-coder/SkillDeck/internal/prompts"
)

// minExtractConfidence is the lowest LLM confidence accepted for a skill.
const minExtractConfidence = 0.5

// ExtractedSkill is one entry of the LLM extraction response.
type ExtractedSkill struct {
	SkillName  string  `json:"skill_name"`
	Confidence float64 `json:"confidence"`
}

// Extract suggests vocabulary skills for a project description.
// An unparseable answer is retried once. With a nil client, or when the
// model keeps failing, it falls back to MatchVocabulary.
func Extract(ctx context.Context, description string, vocab *Vocabulary, client llm.Client) []string {
	description = strings.TrimSpace(description)
	if description == "" || vocab.Len() == 0 {
		return []string{}
	}
	if client == nil {
		return MatchVocabulary(description, vocab)
	}

	prompt := buildExtractionPrompt(description, vocab)
	for attempt := 0; attempt < 2; attempt++ {
		response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
		if err != nil {
			log.Printf("[skills] LLM extraction failed, using vocabulary scan: %v", err)
			return MatchVocabulary(description, vocab)
		}

		extracted, err := parseExtractionResponse(response, vocab)
		if err == nil {
			return extracted
		}
		log.Printf("[skills] unparseable LLM response (attempt %d): %v", attempt+1, err)
		prompt = prompt + "\n\n" + retryPrompt()
	}
	return MatchVocabulary(description, vocab)
}

func retryPrompt() string {
	if p, err := prompts.SkillExtraction(); err == nil {
		return p.Retry
	}
	return "Answer again with only the JSON array."
}

// MatchVocabulary returns, in vocabulary order, every label that occurs in
// text as a standalone token (case-insensitive). Single-character labels
// such as "C" and "R" are skipped; they match too much prose.
func MatchVocabulary(text string, vocab *Vocabulary) []string {
	folded := strings.ToLower(text)
	matches := []string{}
	for label := range vocab.All() {
		if utf8.RuneCountInString(label) < 2 {
			continue
		}
		if containsToken(folded, strings.ToLower(label)) {
			matches = append(matches, label)
		}
	}
	return matches
}

// containsToken reports whether needle occurs in haystack bounded by
// non-alphanumeric characters (or the string edges).
func containsToken(haystack, needle string) bool {
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(needle)

		before, _ := utf8.DecodeLastRuneInString(haystack[:start])
		after, _ := utf8.DecodeRuneInString(haystack[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(haystack) || !isWordRune(after)) {
			return true
		}
		offset = start + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// buildExtractionPrompt creates the prompt for vocabulary-constrained extraction.
func buildExtractionPrompt(description string, vocab *Vocabulary) string {
	vocabJSON, _ := json.Marshal(vocab.Labels())

	set, err := prompts.SkillExtraction()
	if err != nil {
		log.Printf("[skills] using built-in prompt: %v", err)
		set = prompts.Extraction{
			System: "You tag software projects with skills.\nOnly use skills from the provided vocabulary. Respond in JSON format only.",
			User:   "Vocabulary: {{.Vocabulary}}\n\nProject description:\n{{.Description}}\n\n" +
				`Respond with a JSON array: [{"skill_name": "...", "confidence": 0.0-1.0}]`,
		}
	}
	return set.Render(string(vocabJSON), description)
}

// parseExtractionResponse keeps confident entries that resolve to a
// vocabulary label, de-duplicated in response order.
func parseExtractionResponse(response string, vocab *Vocabulary) ([]string, error) {
	response = llm.CleanJSONBlock(response)
	startIdx := strings.Index(response, "[")
	endIdx := strings.LastIndex(response, "]")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return nil, fmt.Errorf("no valid JSON array found in response")
	}

	var entries []ExtractedSkill
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &entries); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}

	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Confidence < minExtractConfidence {
			continue
		}
		label, ok := vocab.Lookup(entry.SkillName)
		if !ok {
			continue
		}
		labels = append(labels, label)
	}
	return DedupExact(labels), nil
}
