// Package report turns check results into a rendered uniformity report.
//
// Aggregation ([Summarize]) is pure; rendering lives in [Renderer] and
// [JSONRenderer] so the tally logic stays independently testable.
package report

import (
	"math"

	"github.com/uniformal/unicheck/pkg/check"
)

// Band is the qualitative classification of a uniformity percentage.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good, improvements needed"
	BandNeedsWork Band = "needs work"
)

// Summary is the aggregated outcome of a run.
type Summary struct {
	Tally      check.Tally `json:"tally"`
	Percentage int         `json:"percentage"`
	Band       Band        `json:"band"`
	NoChecks   bool        `json:"noChecks,omitempty"`
}

// Passed reports whether the run reached full uniformity.
func (s Summary) Passed() bool {
	return s.Percentage == 100
}

// Percentage computes round(100 * passed / total). An empty tally reports
// 100: zero checks means zero failures, which keeps "total == passed iff
// 100%" true for every tally. Callers surface the empty case separately.
func Percentage(t check.Tally) int {
	if t.Total == 0 {
		return 100
	}

	return int(math.Round(float64(t.Passed) / float64(t.Total) * 100))
}

// Classify maps a percentage to its qualitative band: 90 and above is
// excellent, 70-89 good, everything below needs work.
func Classify(percentage int) Band {
	switch {
	case percentage >= 90:
		return BandExcellent
	case percentage >= 70:
		return BandGood
	default:
		return BandNeedsWork
	}
}

// Summarize aggregates a run result into a [Summary].
func Summarize(result *check.Result) Summary {
	percentage := Percentage(result.Tally)

	return Summary{
		Tally:      result.Tally,
		Percentage: percentage,
		Band:       Classify(percentage),
		NoChecks:   result.Tally.Total == 0,
	}
}
