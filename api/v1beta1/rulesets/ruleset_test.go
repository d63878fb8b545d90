package rulesets_test

import (
	"bytes"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformal/unicheck/api/v1beta1"
	"github.com/uniformal/unicheck/api/v1beta1/rulesets"
)

func TestNew(t *testing.T) {
	t.Parallel()

	rs := rulesets.New()
	assert.Equal(t, v1beta1.APIVersion, rs.GetAPIVersion())
	assert.Equal(t, "RuleSet", rs.GetKind())
	assert.Empty(t, rs.Sections())
}

func TestDefault(t *testing.T) {
	t.Parallel()

	rs, err := rulesets.Default()
	require.NoError(t, err)
	require.NoError(t, rs.Validate())

	sections := rs.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "frontend", sections[0].Name)
	assert.Equal(t, "backend", sections[1].Name)

	frontend := sections[0].Rules
	require.NotNil(t, frontend.Structure)
	assert.Contains(t, frontend.Structure.RequiredFolders, "src/components")

	require.NotNil(t, frontend.Patterns)
	require.NotNil(t, frontend.Patterns.APIService)
	assert.Contains(t, frontend.Patterns.APIService.MustInclude, "axios")
	assert.Contains(t, frontend.Patterns.APIService.CannotInclude, "fetch(")

	require.NotNil(t, frontend.Patterns.Contexts)
	assert.Equal(t, "src/contexts/*.js", frontend.Patterns.Contexts.Pattern)
}

func TestRuleSet_Sections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleSet *rulesets.RuleSet
		name    string
		want    []string
	}{
		{
			name:    "empty rule set",
			ruleSet: &rulesets.RuleSet{},
			want:    nil,
		},
		{
			name:    "backend only",
			ruleSet: &rulesets.RuleSet{Backend: &rulesets.SectionRules{}},
			want:    []string{"backend"},
		},
		{
			name: "both sections, frontend first",
			ruleSet: &rulesets.RuleSet{
				Backend:  &rulesets.SectionRules{},
				Frontend: &rulesets.SectionRules{},
			},
			want: []string{"frontend", "backend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var names []string
			for _, section := range tt.ruleSet.Sections() {
				names = append(names, section.Name)
			}

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRuleSet_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errMsg  string
		section rulesets.SectionRules
		wantErr bool
	}{
		{
			name: "valid relative paths",
			section: rulesets.SectionRules{
				Structure: &rulesets.StructureRules{
					RequiredFolders: []string{"src/components"},
					RequiredFiles:   []string{"package.json"},
				},
				Patterns: &rulesets.PatternRules{
					APIService: &rulesets.FilePatternRule{File: "src/services/api.js"},
					Contexts:   &rulesets.GlobPatternRule{Pattern: "src/contexts/*.js"},
				},
			},
		},
		{
			name: "absolute folder path",
			section: rulesets.SectionRules{
				Structure: &rulesets.StructureRules{RequiredFolders: []string{"/etc"}},
			},
			wantErr: true,
			errMsg:  "path is absolute",
		},
		{
			name: "escaping file path",
			section: rulesets.SectionRules{
				Structure: &rulesets.StructureRules{RequiredFiles: []string{"../secrets.env"}},
			},
			wantErr: true,
			errMsg:  "escapes the section directory",
		},
		{
			name: "empty pattern",
			section: rulesets.SectionRules{
				Patterns: &rulesets.PatternRules{Contexts: &rulesets.GlobPatternRule{}},
			},
			wantErr: true,
			errMsg:  "path is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rs := &rulesets.RuleSet{Frontend: &tt.section}

			err := rs.Validate()

			if tt.wantErr {
				require.ErrorIs(t, err, rulesets.ErrInvalidRule)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultValidator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid document",
			data: `
frontend:
  structure:
    required_folders: [src/components]
  patterns:
    api_service:
      file: src/services/api.js
      must_include: [axios]
`,
		},
		{
			name: "valid json document",
			data: `{"backend": {"structure": {"required_files": ["package.json"]}}}`,
		},
		{
			name: "unrecognized section",
			data: `
middleware:
  structure:
    required_folders: [src]
`,
			wantErr: true,
		},
		{
			name: "missing glob pattern",
			data: `
frontend:
  patterns:
    contexts:
      must_include: [createContext]
`,
			wantErr: true,
		},
		{
			name:    "wrong kind",
			data:    `{"kind": "Configuration"}`,
			wantErr: true,
		},
		{
			name: "folder list with non-string entry",
			data: `
backend:
  structure:
    required_folders: [src, 42]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var doc any

			dec := yaml.NewDecoder(bytes.NewReader([]byte(tt.data)))
			require.NoError(t, dec.Decode(&doc))

			err := rulesets.DefaultValidator.Validate(doc)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRuleSet_MarshalYAML(t *testing.T) {
	t.Parallel()

	rs := rulesets.New()
	rs.Frontend = &rulesets.SectionRules{
		Structure: &rulesets.StructureRules{RequiredFiles: []string{"package.json"}},
	}

	b, err := rs.MarshalYAML()
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "kind: RuleSet")
	assert.Contains(t, out, "required_files:")
	assert.Contains(t, out, "package.json")
}
