// Package rulesets provides the RuleSet configuration type for unicheck.
package rulesets

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/uniformal/unicheck/api"
	"github.com/uniformal/unicheck/api/v1beta1"
	"github.com/uniformal/unicheck/pkg/schema"
)

//go:generate go run ../../../internal/schemagen/main.go -o rulesets.v1beta1.json

var (
	// FileNames contains the valid names for rule-set files.
	FileNames = []string{
		"unicheck.rules.yaml",
		"unicheck.rules.json",
	}

	//go:embed rules.yaml
	defaultRulesYAML []byte

	//go:embed rulesets.v1beta1.json
	schemaJSON []byte

	// DefaultValidator validates rule-set documents against the JSON schema.
	DefaultValidator = schema.MustNewValidator("/rulesets.v1beta1.json", schemaJSON)

	// ValidKinds contains the valid kind values for rule-set files.
	ValidKinds = []string{"RuleSet"}

	ErrInvalidRule = errors.New("invalid rule")

	// Compile-time interface checks.
	_ v1beta1.Object = (*RuleSet)(nil)
)

// RuleSet declares the uniformity rules for a two-part project. Each section
// is optional; an absent section contributes no checks.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type RuleSet struct {
	// Frontend holds the rules applied under <project>/frontend.
	Frontend *SectionRules `json:"frontend,omitempty" jsonschema:"title=Frontend Rules"`
	// Backend holds the rules applied under <project>/backend.
	Backend          *SectionRules `json:"backend,omitempty" jsonschema:"title=Backend Rules"`
	v1beta1.TypeMeta `json:",inline"`
}

// SectionRules describes the requirements for one project section.
type SectionRules struct {
	// Structure lists folders and files that must exist.
	Structure *StructureRules `json:"structure,omitempty" jsonschema:"title=Structure Rules"`
	// Patterns lists substring rules applied to source files.
	Patterns *PatternRules `json:"patterns,omitempty" jsonschema:"title=Pattern Rules"`
}

// StructureRules lists required folders and files, relative to the section
// base directory. Declared order is preserved, folders before files.
type StructureRules struct {
	// RequiredFolders are directories that must exist.
	RequiredFolders []string `json:"required_folders,omitempty" jsonschema:"title=Required Folders"`
	// RequiredFiles are regular files that must exist.
	RequiredFiles []string `json:"required_files,omitempty" jsonschema:"title=Required Files"`
}

// PatternRules groups the substring rules for a section.
type PatternRules struct {
	// APIService checks a single designated file.
	APIService *FilePatternRule `json:"api_service,omitempty" jsonschema:"title=API Service Rule"`
	// Contexts checks every file matched by a glob pattern.
	Contexts *GlobPatternRule `json:"contexts,omitempty" jsonschema:"title=Contexts Rule"`
}

// FilePatternRule checks one file for required and forbidden substrings.
// Matching is literal and case-sensitive.
type FilePatternRule struct {
	// File is the path of the target file, relative to the section base.
	File string `json:"file" jsonschema:"title=Target File"`
	// MustInclude lists substrings the file content must contain.
	MustInclude []string `json:"must_include,omitempty" jsonschema:"title=Required Substrings"`
	// CannotInclude lists substrings the file content must not contain.
	CannotInclude []string `json:"cannot_include,omitempty" jsonschema:"title=Forbidden Substrings"`
}

// GlobPatternRule checks every file matched by Pattern for required
// substrings. A `*` in the pattern descends into subdirectories.
type GlobPatternRule struct {
	// Pattern is a glob expression, relative to the section base.
	Pattern string `json:"pattern" jsonschema:"title=Glob Pattern"`
	// MustInclude lists substrings each matched file must contain.
	MustInclude []string `json:"must_include,omitempty" jsonschema:"title=Required Substrings"`
}

// Section pairs a section name with its rules, for ordered iteration.
type Section struct {
	Rules *SectionRules
	Name  string
}

// New creates an empty [RuleSet] with populated type metadata.
func New() *RuleSet {
	rs := &RuleSet{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       "RuleSet",
		},
	}
	rs.EnsureDefaults()

	return rs
}

// Default returns the embedded default rule set.
func Default() (*RuleSet, error) {
	rs := New()

	dec := yaml.NewDecoder(bytes.NewReader(defaultRulesYAML))

	err := dec.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("decode embedded rules: %w", err)
	}

	rs.EnsureDefaults()

	return rs, nil
}

// EnsureDefaults initializes metadata fields to their default values.
func (rs *RuleSet) EnsureDefaults() {
	if rs.APIVersion == "" {
		rs.APIVersion = v1beta1.APIVersion
	}
	if rs.Kind == "" {
		rs.Kind = "RuleSet"
	}
}

// Sections returns the declared sections in checking order, frontend first.
// Absent sections are omitted.
func (rs *RuleSet) Sections() []Section {
	var sections []Section

	if rs.Frontend != nil {
		sections = append(sections, Section{Name: "frontend", Rules: rs.Frontend})
	}
	if rs.Backend != nil {
		sections = append(sections, Section{Name: "backend", Rules: rs.Backend})
	}

	return sections
}

// Validate applies the semantic checks the JSON schema cannot express:
// every declared path must be relative and must stay inside the section.
func (rs *RuleSet) Validate() error {
	for _, section := range rs.Sections() {
		err := section.Rules.validate()
		if err != nil {
			return fmt.Errorf("section %q: %w", section.Name, err)
		}
	}

	return nil
}

func (sr *SectionRules) validate() error {
	if sr.Structure != nil {
		for _, path := range sr.Structure.RequiredFolders {
			err := validateRelPath(path)
			if err != nil {
				return fmt.Errorf("required folder %q: %w", path, err)
			}
		}

		for _, path := range sr.Structure.RequiredFiles {
			err := validateRelPath(path)
			if err != nil {
				return fmt.Errorf("required file %q: %w", path, err)
			}
		}
	}

	if sr.Patterns != nil {
		if sr.Patterns.APIService != nil {
			err := validateRelPath(sr.Patterns.APIService.File)
			if err != nil {
				return fmt.Errorf("api_service file %q: %w", sr.Patterns.APIService.File, err)
			}
		}

		if sr.Patterns.Contexts != nil {
			err := validateRelPath(sr.Patterns.Contexts.Pattern)
			if err != nil {
				return fmt.Errorf("contexts pattern %q: %w", sr.Patterns.Contexts.Pattern, err)
			}
		}
	}

	return nil
}

func validateRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidRule)
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("%w: path is absolute", ErrInvalidRule)
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return fmt.Errorf("%w: path escapes the section directory", ErrInvalidRule)
	}

	return nil
}

func (rs RuleSet) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the rule set to YAML.
func (rs RuleSet) MarshalYAML() ([]byte, error) {
	type alias RuleSet

	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b, yaml.Indent(2))
	defer enc.Close() //nolint:errcheck // Encoding happens in Encode.

	err := enc.Encode(alias(rs))
	if err != nil {
		return nil, fmt.Errorf("marshal rule set: %w", err)
	}

	return b.Bytes(), nil
}

// WriteDefault writes the embedded default rules.yaml to the specified path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultRulesYAML, force, "rule set")
	if err != nil {
		return fmt.Errorf("write default rule set: %w", err)
	}

	return nil
}
