package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixItemsAppliesPositionallyThenItemsTakesRest(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `["a", 1, true, false]`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `["a", 1, "not bool"]`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `[1, "a"]`).IsValid())
}

func TestMinMaxItems(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"minItems": 1,
		"maxItems": 2
	}`

	assert.False(t, evalJSON(t, catalog, schemaJSON, `[]`).IsValid())
	assert.True(t, evalJSON(t, catalog, schemaJSON, `[1]`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `[1, 2, 3]`).IsValid())
}

func TestUniqueItemsUsesJSONEqualityNotIdentity(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"uniqueItems": true
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `[1, 2, 3]`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `[1, 1.0]`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `[{"a": 1}, {"a": 1}]`).IsValid())
}

func TestContainsAnnotationIsMatchCount(t *testing.T) {
	catalog := NewCatalog()
	schema := compileTestSchema(t, catalog, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"contains": {"type": "string"}
	}`)

	instance, err := FromValue([]any{"x", "y", 1})
	require.NoError(t, err)
	result := schema.Evaluate(instance)
	require.True(t, result.IsValid())

	count, ok := result.Annotation("contains")
	require.True(t, ok)
	assert.Equal(t, 2, count)
}

func TestUniqueItemsDisabledAllowsDuplicates(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"uniqueItems": false
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `[1, 1, 1]`).IsValid())
}
