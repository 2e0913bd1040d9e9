package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaDataKeywordsAreAnnotationOnlyAndNeverFailValidation(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "A thing",
		"description": "describes the thing",
		"default": 42,
		"deprecated": true,
		"readOnly": true,
		"writeOnly": false,
		"examples": [1, 2, 3],
		"$comment": "internal note",
		"type": "integer"
	}`)

	instance, err := FromValue(7)
	require.NoError(t, err)
	result := schema.Evaluate(instance)
	assert.True(t, result.IsValid())

	title, ok := result.Annotation("title")
	require.True(t, ok)
	assert.Equal(t, "A thing", title)

	def, ok := result.Annotation("default")
	require.True(t, ok)
	defNum, ok := def.(*Number)
	require.True(t, ok)
	assert.Equal(t, "42", defNum.String())

	deprecated, ok := result.Annotation("deprecated")
	require.True(t, ok)
	assert.Equal(t, true, deprecated)

	examples, ok := result.Annotation("examples")
	require.True(t, ok)
	assert.Len(t, examples, 3)
}

func TestMetaDataKeywordsDoNotBlockInvalidInstances(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "must still fail on type mismatch",
		"type": "integer"
	}`)

	instance, err := FromValue("not an integer")
	require.NoError(t, err)
	assert.False(t, schema.Evaluate(instance).IsValid())
}

func TestExampleExtensionKeywordIsAnnotationOnly(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"example": {"sample": true},
		"type": "object"
	}`)

	instance, err := FromValue(map[string]any{"anything": 1})
	require.NoError(t, err)
	result := schema.Evaluate(instance)
	assert.True(t, result.IsValid())

	example, ok := result.Annotation("example")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"sample": true}, example)
}
