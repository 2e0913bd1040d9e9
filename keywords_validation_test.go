package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeAcceptsNumberForIntegerInstance(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "number"
	}`)

	instance, err := FromValue(3)
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(instance).IsValid())
}

func TestTypeArrayAcceptsAnyListedType(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": ["string", "null"]
	}`)

	s, err := FromValue("x")
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(s).IsValid())

	n, err := FromValue(nil)
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(n).IsValid())

	num, err := FromValue(1)
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(num).IsValid())
}

func TestEnumMatchesByJSONEquality(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"enum": [1, "two", null]
	}`)

	one, err := FromValue(1)
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(one).IsValid())

	three, err := FromValue(3)
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(three).IsValid())
}

func TestConstRequiresExactEquality(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"const": {"a": 1}
	}`)

	good, err := FromValue(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(good).IsValid())

	bad, err := FromValue(map[string]any{"a": 2})
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(bad).IsValid())
}

func TestExclusiveBoundsAreStrict(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"exclusiveMinimum": 0,
		"exclusiveMaximum": 10
	}`

	assert.False(t, evalJSON(t, catalog, schemaJSON, `0`).IsValid())
	assert.True(t, evalJSON(t, catalog, schemaJSON, `5`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `10`).IsValid())
}

func TestMultipleOfUsesExactArithmetic(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"multipleOf": 0.1
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `0.3`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `0.35`).IsValid())
}

func TestMinMaxLengthCountRunes(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"minLength": 2,
		"maxLength": 2
	}`)

	ascii, err := FromValue("ab")
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(ascii).IsValid())

	multibyte, err := FromValue("日本")
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(multibyte).IsValid())

	tooLong, err := FromValue("abc")
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(tooLong).IsValid())
}

func TestPatternRejectsNonMatchingString(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"pattern": "^[a-z]+$"
	}`)

	good, err := FromValue("abc")
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(good).IsValid())

	bad, err := FromValue("ABC")
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(bad).IsValid())
}
