package check

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
)

// Session owns all mutable state for one run: the tally, the result lists,
// and the current section counter. Create one per invocation with
// [NewSession] and discard it afterwards.
type Session struct {
	observer    Observer
	projectPath string
	result      Result
}

// SessionOpt configures a [Session].
type SessionOpt func(*Session)

// WithObserver registers an observer for per-check output.
func WithObserver(o Observer) SessionOpt {
	return func(s *Session) {
		s.observer = o
	}
}

// NewSession creates a [Session] for the project at projectPath.
func NewSession(projectPath string, opts ...SessionOpt) *Session {
	s := &Session{
		projectPath: projectPath,
		observer:    noopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes every check the rule set declares, section by section in
// declaration order (frontend first, structure before patterns), and
// returns the accumulated result.
func (s *Session) Run(ruleSet *rulesets.RuleSet) *Result {
	for _, section := range ruleSet.Sections() {
		s.CheckSection(section)
	}

	return s.Result()
}

// CheckSection runs all checks for one section against its base directory
// (<project>/<section name>).
func (s *Session) CheckSection(section rulesets.Section) {
	base := filepath.Join(s.projectPath, section.Name)

	s.result.Sections = append(s.result.Sections, SectionTally{Name: section.Name})

	slog.Debug("check section",
		slog.String("section", section.Name),
		slog.String("base", base),
	)

	if section.Rules.Structure != nil {
		s.checkStructure(section.Name, base, section.Rules.Structure)
	}
	if section.Rules.Patterns != nil {
		s.checkPatterns(section.Name, base, section.Rules.Patterns)
	}
}

// Result returns the accumulated result of the session.
func (s *Session) Result() *Result {
	return &s.result
}

// checkStructure performs the existence checks for a section, folders first,
// in declared order.
func (s *Session) checkStructure(section, base string, rules *rulesets.StructureRules) {
	for _, folder := range rules.RequiredFolders {
		s.checkPath(section, base, folder, KindFolder)
	}

	for _, file := range rules.RequiredFiles {
		s.checkPath(section, base, file, KindFile)
	}
}

func (s *Session) checkPath(section, base, path string, kind Kind) {
	target := filepath.Join(base, filepath.FromSlash(path))

	info, err := os.Stat(target)

	exists := err == nil
	if exists {
		if kind == KindFolder {
			exists = info.IsDir()
		} else {
			exists = info.Mode().IsRegular()
		}
	}

	result := CheckResult{
		Section: section,
		Kind:    kind,
		Path:    path,
		Exists:  exists,
	}

	s.record(exists)
	s.result.Structure = append(s.result.Structure, result)
	s.observer.OnStructure(result)
}

// record adds one check outcome to the run tally, the current section tally,
// and the mosaic cell list.
func (s *Session) record(passed bool) {
	s.result.Tally.Record(passed)
	s.result.Cells = append(s.result.Cells, passed)

	if n := len(s.result.Sections); n > 0 {
		s.result.Sections[n-1].Tally.Record(passed)
	}
}

func (s *Session) warn(section, message string) {
	warning := Warning{Section: section, Message: message}

	slog.Warn(message, slog.String("section", section))

	s.result.Warnings = append(s.result.Warnings, warning)
	s.observer.OnWarning(warning)
}
