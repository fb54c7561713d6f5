// Package main provides the skilldeck command: the HTTP API server plus
// terminal tools for importing, ranking and tagging portfolios.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/config"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "skilldeck",
	Short:        "SkillDeck portfolio server and tools",
	Long:         "SkillDeck hosts developer portfolios, ranks them by skill and offers skill tagging with vocabulary autocomplete.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to skilldeck.yaml (default: ./skilldeck.yaml or ~/.skilldeck/skilldeck.yaml)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadVocabulary returns the configured vocabulary, or the built-in one.
func loadVocabulary(cfg *config.Config) (*skills.Vocabulary, error) {
	if cfg.Skills.VocabularyPath == "" {
		return skills.DefaultVocabulary(), nil
	}
	return skills.LoadVocabulary(cfg.Skills.VocabularyPath)
}
