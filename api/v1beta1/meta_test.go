package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformal/unicheck/api/v1beta1"
)

func TestTypeMeta(t *testing.T) {
	t.Parallel()

	tm := v1beta1.TypeMeta{
		APIVersion: v1beta1.APIVersion,
		Kind:       "RuleSet",
	}

	assert.Equal(t, "unicheck.uniformal.dev/v1beta1", tm.GetAPIVersion())
	assert.Equal(t, "RuleSet", tm.GetKind())
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
	jss.Properties.Set("apiVersion", &jsonschema.Schema{Type: "string"})
	jss.Properties.Set("kind", &jsonschema.Schema{Type: "string"})

	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{"RuleSet"})

	apiVersion, ok := jss.Properties.Get("apiVersion")
	require.True(t, ok)
	require.Len(t, apiVersion.OneOf, 1)
	assert.Equal(t, v1beta1.APIVersion, apiVersion.OneOf[0].Const)

	kind, ok := jss.Properties.Get("kind")
	require.True(t, ok)
	require.Len(t, kind.OneOf, 1)
	assert.Equal(t, "RuleSet", kind.OneOf[0].Const)
}

func TestExtendSchemaWithEnums_MissingProperty(t *testing.T) {
	t.Parallel()

	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}

	assert.Panics(t, func() {
		v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, []string{"RuleSet"})
	})
}
