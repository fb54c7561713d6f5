package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/llm"
	"github.com/Lj07-coder/SkillDeck/internal/observability"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/tags"
)

var (
	suggestSelected    string
	suggestLimit       int
	suggestDescription string
	suggestUseLLM      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Suggest vocabulary skills",
	Long: `Autocomplete a skill prefix against the vocabulary, leaving out skills
already selected. With --description, propose skills for a project
description instead (Gemini with --llm, otherwise a vocabulary scan).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestSelected, "selected", "", "Comma-separated skills already chosen")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "Maximum number of suggestions")
	suggestCmd.Flags().StringVar(&suggestDescription, "description", "", "Project description to extract skills from")
	suggestCmd.Flags().BoolVar(&suggestUseLLM, "llm", false, "Use Gemini for --description (requires GEMINI_API_KEY)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && suggestDescription == "" {
		return fmt.Errorf("either a prefix or --description is required")
	}
	if suggestLimit < 1 {
		return fmt.Errorf("--limit must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())

	if suggestDescription != "" {
		var client llm.Client
		if suggestUseLLM {
			client = newLLMClient(cmd.Context(), cfg.LLM)
			if client == nil {
				log.Printf("[suggest] no LLM available; scanning the vocabulary")
			} else {
				defer func() { _ = client.Close() }()
			}
		}
		printer.PrintSkills("EXTRACTED SKILLS", skills.Extract(cmd.Context(), suggestDescription, vocab, client))
		return nil
	}

	input := tags.New(vocab)
	input.Load(suggestSelected)

	suggestions := []string{}
	for label := range input.Suggest(args[0]) {
		if len(suggestions) == suggestLimit {
			break
		}
		suggestions = append(suggestions, label)
	}
	printer.PrintSkills(fmt.Sprintf("SUGGESTIONS FOR %q", args[0]), suggestions)
	return nil
}
