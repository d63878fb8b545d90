package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uniformal/unicheck/api"
	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
)

// GetRuleSetPath resolves the rule-set file for a run. The directory holding
// the unicheck executable is checked first, then the project root. Returns an
// empty string if no rule-set file exists in either place.
func GetRuleSetPath(projectPath string) string {
	var dirs []string

	exe, err := os.Executable()
	if err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	dirs = append(dirs, projectPath)

	return api.FindFile(dirs, rulesets.FileNames)
}

// NewRuleSetLoader creates a [Loader] for the rule-set file at path.
func NewRuleSetLoader(path string) (*Loader[*rulesets.RuleSet], error) {
	return NewLoaderFromFile(path, rulesets.New, rulesets.DefaultValidator)
}

// LoadRuleSet reads, schema-validates, and decodes the rule-set file at
// path. Any failure here is a configuration error: the caller must abort
// before running checks.
func LoadRuleSet(path string) (*rulesets.RuleSet, error) {
	loader, err := NewRuleSetLoader(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set %q: %w", path, err)
	}

	err = loader.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid rule set %q: %w", path, err)
	}

	ruleSet, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid rule set %q: %w", path, err)
	}

	err = ruleSet.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid rule set %q: %w", path, err)
	}

	return ruleSet, nil
}
