package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/db"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <catalog.json>",
	Short: "Import profiles and projects from a catalog file",
	Long: `Validate a catalog JSON file and upsert its profiles by email. Each
imported profile's projects replace the ones already stored. Imported
accounts have no password until the user sets one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the catalog without writing to the database")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	catalog, err := readCatalog(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if importDryRun {
		_, _ = fmt.Fprintf(out, "Catalog is valid: %d profile(s), %d project(s)\n", len(catalog.Profiles), countProjects(catalog))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := db.Connect(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	result, err := database.ImportCatalog(cmd.Context(), catalog)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Imported %d profile(s), %d project(s)\n", result.Users, result.Projects)
	return nil
}
