package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdditionalPropertiesExcludesNamesAndPatternsCovered(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"properties": {"name": {"type": "string"}},
		"patternProperties": {"^x-": true},
		"additionalProperties": false
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `{"name": "a", "x-foo": 1}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"name": "a", "other": 1}`).IsValid())
}

func TestPropertyNamesAppliesToEveryKey(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"propertyNames": {"pattern": "^[a-z]+$"}
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `{"abc": 1}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"ABC": 1}`).IsValid())
}

func TestRequiredListsMissingProperties(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"required": ["a", "b"]
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `{"a": 1, "b": 2}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"a": 1}`).IsValid())
}

func TestDependentRequiredOnlyTriggersWhenKeyPresent(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"dependentRequired": {"creditCard": ["billingAddress"]}
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `{}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"creditCard": "1234"}`).IsValid())
	assert.True(t, evalJSON(t, catalog, schemaJSON, `{"creditCard": "1234", "billingAddress": "x"}`).IsValid())
}

func TestMinMaxProperties(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"minProperties": 1,
		"maxProperties": 2
	}`

	assert.False(t, evalJSON(t, catalog, schemaJSON, `{}`).IsValid())
	assert.True(t, evalJSON(t, catalog, schemaJSON, `{"a": 1}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"a": 1, "b": 2, "c": 3}`).IsValid())
}

func TestDependentSchemasAppliesOnlyWhenTriggerPresent(t *testing.T) {
	catalog := NewCatalog()
	schemaJSON := `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"dependentSchemas": {
			"creditCard": {"required": ["billingAddress"]}
		}
	}`

	assert.True(t, evalJSON(t, catalog, schemaJSON, `{}`).IsValid())
	assert.False(t, evalJSON(t, catalog, schemaJSON, `{"creditCard": "1234"}`).IsValid())
}
