package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lj07-coder/SkillDeck/internal/tags"
)

// maxVisibleSuggestions caps the dropdown height.
const maxVisibleSuggestions = 6

// TagEditor is a Bubble Tea model that edits a skill tag list. Typing
// narrows the vocabulary suggestions; enter, comma or space commit the
// typed text, and up/down/tab walk the dropdown.
type TagEditor struct {
	styles    *StyleSet
	title     string
	input     *tags.TagInput
	text      textinput.Model
	cursor    int // highlighted suggestion, -1 for none
	done      bool
	cancelled bool
}

// NewTagEditor wraps input. Tags already loaded into input are kept.
func NewTagEditor(styles *StyleSet, title string, input *tags.TagInput) *TagEditor {
	if styles == nil {
		styles = DefaultStyles()
	}
	ti := textinput.New()
	ti.Placeholder = "type a skill"
	ti.Prompt = "› "
	ti.Focus()

	return &TagEditor{
		styles: styles,
		title:  title,
		input:  input,
		text:   ti,
		cursor: -1,
	}
}

// Tags returns the committed tags.
func (e *TagEditor) Tags() []string { return e.input.Tags() }

// Done reports whether the user saved the list.
func (e *TagEditor) Done() bool { return e.done }

// Cancelled reports whether the user abandoned the edit.
func (e *TagEditor) Cancelled() bool { return e.cancelled }

func (e *TagEditor) Init() tea.Cmd {
	return textinput.Blink
}

func (e *TagEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.text, cmd = e.text.Update(msg)
		return e, cmd
	}

	key := keyMsg.String()
	switch key {
	case "ctrl+c", "esc":
		e.cancelled = true
		return e, tea.Quit
	case "ctrl+s":
		if strings.TrimSpace(e.text.Value()) != "" {
			e.input.HandleKey(tags.KeyEnter)
		}
		e.done = true
		return e, tea.Quit
	case "down", "tab":
		e.moveCursor(1)
		return e, nil
	case "up", "shift+tab":
		e.moveCursor(-1)
		return e, nil
	case "backspace":
		if e.text.Value() == "" {
			if n := e.input.Len(); n > 0 {
				e.input.Remove(n - 1)
			}
			return e, nil
		}
	}

	if key == tags.KeyEnter && e.cursor >= 0 {
		suggestions := e.visibleSuggestions()
		if e.cursor < len(suggestions) {
			e.input.Pick(suggestions[e.cursor])
			e.clearText()
			return e, nil
		}
	}

	if e.input.HandleKey(key) {
		e.clearText()
		return e, nil
	}

	var cmd tea.Cmd
	e.text, cmd = e.text.Update(msg)
	e.input.SetText(e.text.Value())
	if e.cursor >= len(e.visibleSuggestions()) {
		e.cursor = -1
	}
	return e, cmd
}

func (e *TagEditor) moveCursor(delta int) {
	n := len(e.visibleSuggestions())
	if n == 0 {
		e.cursor = -1
		return
	}
	if e.cursor < 0 && delta < 0 {
		e.cursor = n - 1
		return
	}
	e.cursor = (e.cursor + delta + n) % n
}

func (e *TagEditor) clearText() {
	e.text.SetValue("")
	e.cursor = -1
}

func (e *TagEditor) visibleSuggestions() []string {
	suggestions := e.input.Suggestions()
	if len(suggestions) > maxVisibleSuggestions {
		suggestions = suggestions[:maxVisibleSuggestions]
	}
	return suggestions
}

func (e *TagEditor) View() string {
	var sb strings.Builder
	if e.title != "" {
		sb.WriteString(e.styles.Title.Render(e.title) + "\n\n")
	}

	if e.input.Len() == 0 {
		sb.WriteString(e.styles.Dim.Render("no skills yet") + "\n")
	} else {
		for _, tag := range e.input.Tags() {
			sb.WriteString(e.styles.Tag.Render(tag))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + e.text.View() + "\n")

	for i, suggestion := range e.visibleSuggestions() {
		if i == e.cursor {
			sb.WriteString(e.styles.Selected.Render("▸ "+suggestion) + "\n")
			continue
		}
		sb.WriteString(e.styles.Suggestion.Render(suggestion) + "\n")
	}

	sb.WriteString("\n" + e.help())
	return sb.String()
}

func (e *TagEditor) help() string {
	pairs := [][2]string{
		{"enter/,/space", "add"},
		{"↑/↓", "choose"},
		{"backspace", "remove last"},
		{"ctrl+s", "save"},
		{"esc", "cancel"},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, e.styles.KbdKey.Render(p[0])+" "+e.styles.KbdDesc.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}
