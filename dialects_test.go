package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialectResolvesClassesFromVocabularies(t *testing.T) {
	catalog := NewCatalog()

	d, ok := catalog.Dialect(Schema201912URI)
	require.True(t, ok)
	assert.Equal(t, Schema201912URI, d.SchemaURI)

	_, ok = d.classByName("type")
	assert.True(t, ok)
	_, ok = d.classByName("properties")
	assert.True(t, ok)
	_, ok = d.classByName("format")
	assert.True(t, ok)
	_, ok = d.classByName("example")
	assert.True(t, ok)
	_, ok = d.classByName("no-such-keyword")
	assert.False(t, ok)
}

func TestNewDialect201909IncludesUnevaluatedInApplicator(t *testing.T) {
	catalog := NewCatalog()

	d, ok := catalog.Dialect(Schema201909URI)
	require.True(t, ok)

	_, ok = d.classByName("unevaluatedItems")
	assert.True(t, ok)
	_, ok = d.classByName("unevaluatedProperties")
	assert.True(t, ok)
}

func TestNewDialectFailsOnUnknownRequiredVocabulary(t *testing.T) {
	catalog := NewCatalog()
	_, err := newDialect("https://example.com/custom-dialect",
		[]string{"https://example.com/no-such-vocab"},
		[]bool{true}, catalog)
	assert.Error(t, err)
}

func TestNewDialectSkipsUnknownOptionalVocabulary(t *testing.T) {
	catalog := NewCatalog()
	d, err := newDialect("https://example.com/custom-dialect",
		[]string{vocab201912Validation, "https://example.com/no-such-vocab"},
		[]bool{true, false}, catalog)
	require.NoError(t, err)

	_, ok := d.classByName("type")
	assert.True(t, ok)
}

func TestRegisterVocabularyMakesItResolvable(t *testing.T) {
	catalog := NewCatalog()
	v := &Vocabulary{URI: "https://example.com/my-vocab", Classes: []KeywordClass{exampleClass{}}}
	catalog.RegisterVocabulary(v)

	got, ok := catalog.Vocabulary("https://example.com/my-vocab")
	require.True(t, ok)
	assert.Same(t, v, got)
}

func TestDeclOrderKeepsClassOrderWithinVocabulary(t *testing.T) {
	catalog := NewCatalog()
	d, ok := catalog.Dialect(Schema201912URI)
	require.True(t, ok)

	typeIdx, maxIdx := -1, -1
	for i, name := range d.declOrder {
		if name == "type" {
			typeIdx = i
		}
		if name == "maximum" {
			maxIdx = i
		}
	}
	require.GreaterOrEqual(t, typeIdx, 0)
	require.GreaterOrEqual(t, maxIdx, 0)
	assert.Less(t, typeIdx, maxIdx)
}
