package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// mosaicWidth is the number of cells per mosaic row.
const mosaicWidth = 20

const (
	cellPass = "■"
	cellFail = "□"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Mosaic renders the pass/fail grid: one cell per check in tally order,
// wrapping every 20 cells.
func Mosaic(cells []bool) string {
	if len(cells) == 0 {
		return ""
	}

	b := &strings.Builder{}

	for i, passed := range cells {
		if i > 0 && i%mosaicWidth == 0 {
			b.WriteString("\n")
		}

		if passed {
			b.WriteString(passStyle.Render(cellPass))
		} else {
			b.WriteString(failStyle.Render(cellFail))
		}

		if (i+1)%mosaicWidth != 0 {
			b.WriteString(" ")
		}
	}

	return b.String()
}
