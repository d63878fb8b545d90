package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uniformal/unicheck/pkg/check"
	"github.com/uniformal/unicheck/pkg/report"
)

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tally check.Tally
		want  int
	}{
		{name: "all passed", tally: check.Tally{Total: 4, Passed: 4}, want: 100},
		{name: "half passed", tally: check.Tally{Total: 2, Passed: 1}, want: 50},
		{name: "rounds down", tally: check.Tally{Total: 3, Passed: 1}, want: 33},
		{name: "rounds up", tally: check.Tally{Total: 3, Passed: 2}, want: 67},
		{name: "boundary 89", tally: check.Tally{Total: 100, Passed: 89}, want: 89},
		{name: "boundary 90", tally: check.Tally{Total: 100, Passed: 90}, want: 90},
		{name: "empty tally", tally: check.Tally{}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, report.Percentage(tt.tally))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want       report.Band
		percentage int
	}{
		{percentage: 100, want: report.BandExcellent},
		{percentage: 90, want: report.BandExcellent},
		{percentage: 89, want: report.BandGood},
		{percentage: 70, want: report.BandGood},
		{percentage: 69, want: report.BandNeedsWork},
		{percentage: 0, want: report.BandNeedsWork},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, report.Classify(tt.percentage))
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	result := &check.Result{Tally: check.Tally{Total: 2, Passed: 1}}

	summary := report.Summarize(result)
	assert.Equal(t, 50, summary.Percentage)
	assert.Equal(t, report.BandNeedsWork, summary.Band)
	assert.False(t, summary.Passed())
	assert.False(t, summary.NoChecks)

	empty := report.Summarize(&check.Result{})
	assert.Equal(t, 100, empty.Percentage)
	assert.True(t, empty.Passed())
	assert.True(t, empty.NoChecks)
}
