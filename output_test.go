package jsonschema

import (
	"testing"

	"github.com/kaptinlin/go-i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFlagOnlyReportsValidity(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "integer"
	}`)

	instance, err := FromValue("not an integer")
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	out := Render(result, OutputFlag, nil)
	flag, ok := out.(Flag)
	require.True(t, ok)
	assert.False(t, flag.Valid)
}

func TestRenderBasicFlattensFailuresOnly(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"a": {"type": "string"},
			"b": {"type": "integer"}
		}
	}`)

	instance, err := FromValue(map[string]any{"a": 1, "b": "x"})
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	out := Render(result, OutputBasic, nil)
	unit, ok := out.(Unit)
	require.True(t, ok)
	assert.False(t, unit.Valid)
	assert.NotEmpty(t, unit.Details)
	for _, d := range unit.Details {
		assert.False(t, d.Valid)
	}
}

func TestRenderBasicOnValidResultHasNoDetails(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string"
	}`)

	instance, err := FromValue("ok")
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	out := Render(result, OutputBasic, nil)
	unit, ok := out.(Unit)
	require.True(t, ok)
	assert.True(t, unit.Valid)
	assert.Empty(t, unit.Details)
}

func TestRenderDetailedOmitsDiscardedBranches(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"if": {"type": "string"},
		"then": {"minLength": 10}
	}`)

	instance, err := FromValue(42)
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	out := Render(result, OutputDetailed, nil)
	unit, ok := out.(Unit)
	require.True(t, ok)
	assert.True(t, unit.Valid)
	assert.Empty(t, unit.Details)
}

func TestRenderFallsBackToVerboseForUnknownFormat(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string"
	}`)
	instance, err := FromValue("ok")
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	out := Render(result, OutputFormat("nonexistent"), nil)
	unit, ok := out.(Unit)
	require.True(t, ok)
	assert.True(t, unit.Valid)
}

func TestRegisterOutputFormatAddsCustomShape(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "string"
	}`)
	instance, err := FromValue("ok")
	require.NoError(t, err)
	result := schema.Evaluate(instance)

	RegisterOutputFormat(OutputFormat("valid-only"), func(r *Result, _ *i18n.Localizer) any {
		return r.IsValid()
	})

	out := Render(result, OutputFormat("valid-only"), nil)
	valid, ok := out.(bool)
	require.True(t, ok)
	assert.True(t, valid)
}
