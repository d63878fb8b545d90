package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/uniformal/unicheck/pkg/check"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	noticeStyle  = lipgloss.NewStyle().Faint(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)

	bandStyles = map[Band]lipgloss.Style{
		BandExcellent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		BandGood:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		BandNeedsWork: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// Renderer writes the human-readable uniformity report.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a [Renderer] writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the mosaic, the per-section table, the percentage line, and
// (below full uniformity) the issue listing. It returns the summary so the
// caller can map the score to an exit status.
func (r *Renderer) Render(result *check.Result) (Summary, error) {
	summary := Summarize(result)

	b := &strings.Builder{}

	fmt.Fprintln(b, titleStyle.Render("Uniformity report"))
	fmt.Fprintln(b)

	if summary.NoChecks {
		fmt.Fprintln(b, noticeStyle.Render("No checks configured."))
	} else {
		fmt.Fprintln(b, Mosaic(result.Cells))
		fmt.Fprintln(b)
		fmt.Fprintln(b, sectionTable(result.Sections))
		fmt.Fprintln(b)
		fmt.Fprintf(b, "Uniformity: %s\n",
			bandStyles[summary.Band].Render(
				fmt.Sprintf("%d%% (%s)", summary.Percentage, summary.Band),
			),
		)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(b, noticeStyle.Render(
			fmt.Sprintf("warning: %s: %s", warning.Section, warning.Message),
		))
	}

	if !summary.Passed() {
		renderIssues(b, result)
	}

	_, err := io.WriteString(r.w, b.String())
	if err != nil {
		return summary, fmt.Errorf("write report: %w", err)
	}

	return summary, nil
}

// sectionTable renders the per-section tally table.
func sectionTable(sections []check.SectionTally) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Passed", "Total", "Score"})

	for _, section := range sections {
		t.AppendRow(table.Row{
			section.Name,
			section.Tally.Passed,
			section.Tally.Total,
			fmt.Sprintf("%d%%", Percentage(section.Tally)),
		})
	}

	return t.Render()
}

// renderIssues lists every failing item: missing structure targets first,
// then pattern issues nested under their owning file.
func renderIssues(b *strings.Builder, result *check.Result) {
	if missing := result.Missing(); len(missing) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, sectionStyle.Render("Missing files/folders:"))

		for _, cr := range missing {
			fmt.Fprintf(b, "  %s %s/%s (%s)\n",
				failStyle.Render(cellFail), cr.Section, cr.Path, cr.Kind)
		}
	}

	if issues := result.Issues(); len(issues) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, sectionStyle.Render("Code pattern issues:"))

		for _, pr := range issues {
			fmt.Fprintf(b, "  %s/%s:\n", pr.Section, pr.File)

			for _, issue := range pr.Issues {
				fmt.Fprintf(b, "    %s %s\n", failStyle.Render(cellFail), issue)
			}
		}
	}
}

// ConsoleObserver prints a pass/fail line per check as it happens. It is the
// presentation half of the checkers' observer hook, enabled in verbose runs.
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver creates a [ConsoleObserver] writing to w.
func NewConsoleObserver(w io.Writer) *ConsoleObserver {
	return &ConsoleObserver{w: w}
}

func (o *ConsoleObserver) OnStructure(result check.CheckResult) {
	if result.Exists {
		fmt.Fprintf(o.w, "%s %s %s/%s\n",
			passStyle.Render(cellPass), result.Kind, result.Section, result.Path)
	} else {
		fmt.Fprintf(o.w, "%s %s %s/%s\n",
			failStyle.Render(cellFail), result.Kind, result.Section, result.Path)
	}
}

func (o *ConsoleObserver) OnPattern(result check.PatternResult) {
	if !result.HasIssues() {
		fmt.Fprintf(o.w, "%s %s %s/%s\n",
			passStyle.Render(cellPass), result.Label, result.Section, result.File)

		return
	}

	fmt.Fprintf(o.w, "%s %s %s/%s\n",
		failStyle.Render(cellFail), result.Label, result.Section, result.File)

	for _, issue := range result.Issues {
		fmt.Fprintf(o.w, "    %s\n", issue)
	}
}

func (o *ConsoleObserver) OnWarning(warning check.Warning) {
	fmt.Fprintf(o.w, "%s\n", noticeStyle.Render(
		fmt.Sprintf("warning: %s: %s", warning.Section, warning.Message),
	))
}
