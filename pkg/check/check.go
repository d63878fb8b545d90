// Package check runs structure and pattern checks against a project tree.
//
// All run state lives in a [Session] created per invocation, so runs are
// composable and testable in isolation. Presentation is decoupled from the
// checks through the [Observer] interface.
package check

// Kind classifies a structure check target.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Tally counts checks performed and checks passed. Counts only ever
// increase, and a Tally belongs to exactly one run.
type Tally struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
}

// Record adds one check outcome to the tally.
func (t *Tally) Record(passed bool) {
	t.Total++
	if passed {
		t.Passed++
	}
}

// AllPassed reports whether every recorded check passed. It is true for an
// empty tally, matching the report's "no checks configured" fallback.
func (t Tally) AllPassed() bool {
	return t.Total == t.Passed
}

// CheckResult is the outcome of a single structure check.
type CheckResult struct {
	Section string `json:"section"`
	Kind    Kind   `json:"kind"`
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
}

// PatternResult is the outcome of all pattern checks against one file.
// An empty Issues list means every check on the file passed.
type PatternResult struct {
	Section string   `json:"section"`
	File    string   `json:"file"`
	Label   string   `json:"label"`
	Issues  []string `json:"issues,omitempty"`
}

// HasIssues reports whether any pattern check on the file failed.
func (pr PatternResult) HasIssues() bool {
	return len(pr.Issues) > 0
}

// Warning is a non-fatal condition that contributes no checks, such as a
// glob pattern matching zero files.
type Warning struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// SectionTally is the per-section portion of the run tally.
type SectionTally struct {
	Name  string `json:"name"`
	Tally Tally  `json:"tally"`
}

// Result is the complete outcome of one run.
type Result struct {
	Tally     Tally           `json:"tally"`
	Sections  []SectionTally  `json:"sections,omitempty"`
	Structure []CheckResult   `json:"structure,omitempty"`
	Patterns  []PatternResult `json:"patterns,omitempty"`
	Warnings  []Warning       `json:"warnings,omitempty"`
	Cells     []bool          `json:"-"` // Pass/fail per check, in tally order.
}

// Missing returns the structure checks whose target does not exist.
func (r *Result) Missing() []CheckResult {
	var missing []CheckResult

	for _, result := range r.Structure {
		if !result.Exists {
			missing = append(missing, result)
		}
	}

	return missing
}

// Issues returns the pattern results that recorded at least one issue.
func (r *Result) Issues() []PatternResult {
	var issues []PatternResult

	for _, result := range r.Patterns {
		if result.HasIssues() {
			issues = append(issues, result)
		}
	}

	return issues
}

// Observer receives check outcomes as they happen. Implementations must not
// mutate the session; they exist so presentation can follow the run without
// the checkers knowing about terminals.
type Observer interface {
	OnStructure(result CheckResult)
	OnPattern(result PatternResult)
	OnWarning(warning Warning)
}

type noopObserver struct{}

func (noopObserver) OnStructure(CheckResult) {}
func (noopObserver) OnPattern(PatternResult) {}
func (noopObserver) OnWarning(Warning)       {}
