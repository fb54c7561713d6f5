package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/db"
	"github.com/Lj07-coder/SkillDeck/internal/observability"
	"github.com/Lj07-coder/SkillDeck/internal/portfolio"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

var (
	rankCatalog string
	rankSkills  string
	rankDetail  string
	rankJSON    bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank portfolios by skill",
	Long: `Rank portfolios against a comma-separated skill filter. Portfolios with
all selected skills come first, then those with some; portfolios with
none are left out. Without --catalog the database is used.`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankCatalog, "catalog", "c", "", "Read portfolios from a catalog JSON file instead of the database")
	rankCmd.Flags().StringVarP(&rankSkills, "skills", "s", "", "Comma-separated skills to filter by")
	rankCmd.Flags().StringVarP(&rankDetail, "detail", "d", "", "Show the expanded portfolio of this user ID or email")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	profiles, err := loadProfiles(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	if rankDetail != "" {
		profile := findProfile(profiles, rankDetail)
		if profile == nil {
			return fmt.Errorf("no portfolio found for %q", rankDetail)
		}
		detail := portfolio.Expand(*profile)
		if rankJSON {
			return writeJSON(cmd, detail)
		}
		printer.PrintDetail(&detail)
		return nil
	}

	selected := skills.DedupExact(skills.Normalize(rankSkills))
	results := portfolio.Rank(profiles, selected)
	if rankJSON {
		return writeJSON(cmd, results)
	}
	printer.PrintRanked(results, selected)
	return nil
}

// loadProfiles reads --catalog when set, otherwise the database.
func loadProfiles(ctx context.Context) ([]types.Profile, error) {
	if rankCatalog != "" {
		catalog, err := readCatalog(rankCatalog)
		if err != nil {
			return nil, err
		}
		return catalog.Profiles, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return portfolio.Load(ctx, database, cfg.Portfolio.LoadConcurrency)
}

// findProfile matches key against profile IDs, then emails (case-insensitive).
func findProfile(profiles []types.Profile, key string) *types.Profile {
	if id, err := uuid.Parse(key); err == nil {
		for i := range profiles {
			if profiles[i].ID == id {
				return &profiles[i]
			}
		}
	}
	email := db.NormalizeEmail(key)
	for i := range profiles {
		if strings.EqualFold(profiles[i].Email, email) {
			return &profiles[i]
		}
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
