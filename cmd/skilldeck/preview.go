package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/fetch"
	"github.com/Lj07-coder/SkillDeck/internal/observability"
)

var (
	previewBrowser bool
	previewJSON    bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Show the preview card of a project link",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewBrowser, "browser", false, "Render client-side pages in headless Chrome when the plain fetch has no title")
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "Print JSON instead of formatted text")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if _, err := fetch.ValidateURL(args[0]); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	preview, err := newPreviewer(cfg.Preview, previewBrowser).Preview(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch preview: %w", err)
	}
	if previewJSON {
		return writeJSON(cmd, preview)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintPreview(preview)
	return nil
}
