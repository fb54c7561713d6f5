// Package observability renders portfolio data for terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lj07-coder/SkillDeck/internal/fetch"
	"github.com/Lj07-coder/SkillDeck/internal/portfolio"
)

const (
	// boxWidth is the widest line allowed inside a box
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries to out. Styles are bound to out's
// renderer, so plain writers get plain text.
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		muted: r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

//nolint:errcheck // terminal output; nothing to recover
func (p *Printer) printBox(title, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = truncate(line, boxWidth)
	}
	body := p.title.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

// PrintRanked lists ranked portfolio cards with their relevance score.
func (p *Printer) PrintRanked(results []portfolio.ScoredProfile, selected []string) {
	var sb strings.Builder
	if len(selected) > 0 {
		fmt.Fprintf(&sb, "Filter: %s\n", strings.Join(selected, ", "))
	}
	fmt.Fprintf(&sb, "Portfolios: %d\n", len(results))

	for i, result := range results {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "#%d  %s", i+1, result.DisplayName)
		if len(selected) > 0 {
			fmt.Fprintf(&sb, "  [%s]", scoreLabel(result.Score))
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    %s · %s · %d project(s)\n", result.DisplayEmail, result.DisplayPhone, result.ProjectCount)
		if len(result.Skills) > 0 {
			fmt.Fprintf(&sb, "    Skills: %s\n", listHead(result.Skills, maxItemsToShow))
		}
	}

	p.printBox("PORTFOLIOS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDetail outputs the expanded view of one portfolio.
func (p *Printer) PrintDetail(detail *portfolio.Detail) {
	if detail == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:   %s\n", detail.Name)
	fmt.Fprintf(&sb, "Email:  %s\n", detail.Email)
	fmt.Fprintf(&sb, "Phone:  %s\n", detail.Phone)
	if detail.ResumeURL != "" {
		fmt.Fprintf(&sb, "Resume: %s\n", detail.ResumeURL)
	}
	fmt.Fprintf(&sb, "Skills: %s\n", detail.SkillsText)

	if len(detail.Achievements) > 0 {
		sb.WriteString("\nAchievements:\n")
		for _, a := range detail.Achievements {
			fmt.Fprintf(&sb, "  • %s\n", a)
		}
	}

	if len(detail.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		for _, project := range detail.Projects {
			fmt.Fprintf(&sb, "  • %s (%s)\n", project.Title, project.CompletionDate)
			fmt.Fprintf(&sb, "    %s\n", p.muted.Render("Tech: "+project.Technologies))
			fmt.Fprintf(&sb, "    %s\n", p.muted.Render("Type: "+project.Types))
			if project.Link != portfolio.NotAvailable {
				fmt.Fprintf(&sb, "    %s\n", project.Link)
			}
		}
	}

	p.printBox("PORTFOLIO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills prints a titled list of skill labels, one per line.
func (p *Printer) PrintSkills(title string, labels []string) {
	if len(labels) == 0 {
		p.printBox(title, p.muted.Render("(none)"))
		return
	}
	var sb strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&sb, "• %s\n", label)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs a link preview card.
func (p *Printer) PrintPreview(preview *fetch.Preview) {
	if preview == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(preview.Title + "\n")
	if preview.SiteName != "" {
		sb.WriteString(p.muted.Render(preview.SiteName) + "\n")
	}
	if preview.Description != "" {
		sb.WriteString("\n" + preview.Description + "\n")
	}
	sb.WriteString("\n" + preview.URL)
	if preview.ImageURL != "" {
		sb.WriteString("\nImage: " + preview.ImageURL)
	}

	p.printBox("LINK PREVIEW · "+strings.ToUpper(string(preview.Platform)), sb.String())
}

func scoreLabel(score int) string {
	switch score {
	case portfolio.ScoreFull:
		return "all skills"
	case portfolio.ScorePartial:
		return "some skills"
	default:
		return "unfiltered"
	}
}

func listHead(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(items[:n], ", "), len(items)-n)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
