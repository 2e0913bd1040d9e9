package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClass struct {
	name    string
	depends []string
}

func (s stubClass) Name() string                                        { return s.name }
func (s stubClass) AppliesTo() []Kind                                    { return nil }
func (s stubClass) DependsOn() []string                                  { return s.depends }
func (s stubClass) Bind(_ *CompileContext, _ *Node) (Handler, error)     { return nil, nil }

func TestSortKeywordsRespectsDependencies(t *testing.T) {
	present := map[string]KeywordClass{
		"unevaluatedProperties": stubClass{name: "unevaluatedProperties", depends: []string{"properties", "patternProperties"}},
		"properties":            stubClass{name: "properties"},
		"patternProperties":     stubClass{name: "patternProperties"},
	}
	declOrder := []string{"properties", "patternProperties", "unevaluatedProperties"}

	ordered, err := sortKeywords(present, declOrder)
	require.NoError(t, err)

	idx := make(map[string]int, len(ordered))
	for i, name := range ordered {
		idx[name] = i
	}
	assert.Less(t, idx["properties"], idx["unevaluatedProperties"])
	assert.Less(t, idx["patternProperties"], idx["unevaluatedProperties"])
}

func TestSortKeywordsBreaksTiesByDeclarationOrder(t *testing.T) {
	present := map[string]KeywordClass{
		"b": stubClass{name: "b"},
		"a": stubClass{name: "a"},
	}
	ordered, err := sortKeywords(present, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ordered)
}

func TestSortKeywordsDetectsCycle(t *testing.T) {
	present := map[string]KeywordClass{
		"a": stubClass{name: "a", depends: []string{"b"}},
		"b": stubClass{name: "b", depends: []string{"a"}},
	}
	_, err := sortKeywords(present, []string{"a", "b"})
	require.Error(t, err)
}

func TestActiveClassesSkipsUnknownOptionalVocabulary(t *testing.T) {
	catalog := NewCatalog()
	classes, err := activeClasses(catalog, []string{"https://example.com/vocab/unknown"}, []bool{false})
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestActiveClassesFailsOnUnknownRequiredVocabulary(t *testing.T) {
	catalog := NewCatalog()
	_, err := activeClasses(catalog, []string{"https://example.com/vocab/unknown"}, []bool{true})
	require.Error(t, err)
}

func TestAppliesToKindTreatsIntegerAndNumberAsCompatible(t *testing.T) {
	assert.True(t, appliesToKind(minimumClass{}, KindInteger))
	assert.True(t, appliesToKind(minimumClass{}, KindNumber))
	assert.False(t, appliesToKind(minimumClass{}, KindString))
}
