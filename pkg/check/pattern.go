package check

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
)

const (
	// LabelAPIService marks results from the single-file rule.
	LabelAPIService = "api_service"
	// LabelContexts marks results from the glob rule.
	LabelContexts = "contexts"
)

// checkPatterns runs the pattern rules for a section against its base
// directory, single-file rule first.
func (s *Session) checkPatterns(section, base string, rules *rulesets.PatternRules) {
	if rules.APIService != nil {
		s.checkFileRule(section, base, rules.APIService)
	}
	if rules.Contexts != nil {
		s.checkGlobRule(section, base, rules.Contexts)
	}
}

// checkFileRule verifies the required and forbidden substrings of a single
// designated file. A missing or unreadable target counts as one failed
// check for the whole rule; no substring checks run in that case.
func (s *Session) checkFileRule(section, base string, rule *rulesets.FilePatternRule) {
	result := PatternResult{
		Section: section,
		File:    rule.File,
		Label:   LabelAPIService,
	}

	target := filepath.Join(base, filepath.FromSlash(rule.File))

	content, ok := s.readTarget(&result, target)
	if ok {
		s.checkContent(&result, content, rule.MustInclude, rule.CannotInclude)
	}

	s.result.Patterns = append(s.result.Patterns, result)
	s.observer.OnPattern(result)
}

// checkGlobRule verifies the required substrings of every file matched by
// the rule's glob pattern. Zero matches is a warning, not a failure.
func (s *Session) checkGlobRule(section, base string, rule *rulesets.GlobPatternRule) {
	pattern := filepath.Join(base, filepath.FromSlash(ExpandPattern(rule.Pattern)))

	matches, err := doublestar.Glob(pattern)
	if err != nil {
		s.warn(section, fmt.Sprintf("bad glob pattern %q: %v", rule.Pattern, err))

		return
	}

	files := regularFiles(matches)
	if len(files) == 0 {
		s.warn(section, fmt.Sprintf("no files match pattern %q", rule.Pattern))

		return
	}

	for _, file := range files {
		rel, err := filepath.Rel(base, file)
		if err != nil {
			rel = file
		}

		result := PatternResult{
			Section: section,
			File:    filepath.ToSlash(rel),
			Label:   LabelContexts,
		}

		content, ok := s.readTarget(&result, file)
		if ok {
			s.checkContent(&result, content, rule.MustInclude, nil)
		}

		s.result.Patterns = append(s.result.Patterns, result)
		s.observer.OnPattern(result)
	}
}

// readTarget reads the file backing a pattern result. On failure it records
// one failed check with an explanatory issue and reports false.
func (s *Session) readTarget(result *PatternResult, target string) (string, bool) {
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		s.record(false)
		result.Issues = append(result.Issues, "File not found")

		return "", false
	}

	content, err := os.ReadFile(target) //nolint:gosec // G304: Paths come from the rule set.
	if err != nil {
		s.record(false)
		result.Issues = append(result.Issues, fmt.Sprintf("Unreadable file: %v", err))

		return "", false
	}

	return string(content), true
}

// checkContent runs the substring checks for one file. Matching is literal
// and case-sensitive; every rule entry contributes exactly one check.
func (s *Session) checkContent(result *PatternResult, content string, mustInclude, cannotInclude []string) {
	for _, pattern := range mustInclude {
		found := strings.Contains(content, pattern)

		s.record(found)

		if !found {
			result.Issues = append(result.Issues, "Missing: "+pattern)
		}
	}

	for _, pattern := range cannotInclude {
		found := strings.Contains(content, pattern)

		s.record(!found)

		if found {
			result.Issues = append(result.Issues, "Found forbidden: "+pattern)
		}
	}
}

// ExpandPattern rewrites each single `*` in a rule pattern to the
// recursive `**/*`, so `src/contexts/*.js` also matches files in
// subdirectories. Patterns that already use `**` are left alone.
func ExpandPattern(pattern string) string {
	if strings.Contains(pattern, "**") {
		return pattern
	}

	return strings.ReplaceAll(pattern, "*", "**/*")
}

// regularFiles filters glob matches down to regular files, in sorted order
// so results are deterministic across platforms.
func regularFiles(matches []string) []string {
	var files []string

	for _, match := range matches {
		info, err := os.Stat(match)
		if err == nil && info.Mode().IsRegular() {
			files = append(files, match)
		}
	}

	sort.Strings(files)

	return files
}
