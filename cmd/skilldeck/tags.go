package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/tags"
	"github.com/Lj07-coder/SkillDeck/internal/tui"
)

// errTagsCancelled is returned when the editor is closed without saving.
var errTagsCancelled = errors.New("tag editing cancelled")

var (
	tagsInitial string
	tagsJSON    bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Edit a skill list interactively",
	Long: `Open a terminal tag editor with vocabulary autocomplete. Type to filter
suggestions, press enter, comma or space to add a skill, up/down to pick a
suggestion and backspace on an empty field to drop the last skill.
ctrl+s prints the list and exits; esc discards it.`,
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().StringVar(&tagsInitial, "initial", "", "Comma-separated skills to start with")
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Print the list as a JSON array")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}

	input := tags.New(vocab)
	input.Load(tagsInitial)
	editor := tui.NewTagEditor(tui.DefaultStyles(), "Skills", input)

	// The editor draws on stderr so the saved list can be piped.
	program := tea.NewProgram(editor,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("tag editor failed: %w", err)
	}

	labels, err := savedTags(final)
	if err != nil {
		return err
	}
	if tagsJSON {
		return writeJSON(cmd, labels)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), skills.Join(labels))
	return nil
}

// savedTags extracts the result of a finished editor session.
func savedTags(final tea.Model) ([]string, error) {
	editor, ok := final.(*tui.TagEditor)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if editor.Cancelled() || !editor.Done() {
		return nil, errTagsCancelled
	}
	return editor.Tags(), nil
}
