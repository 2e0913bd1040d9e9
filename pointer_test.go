package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointerDecodesEscapes(t *testing.T) {
	p, err := ParsePointer("/a~1b/c~0d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "c~d"}, p.Tokens())
}

func TestParsePointerRejectsMissingLeadingSlash(t *testing.T) {
	_, err := ParsePointer("a/b")
	require.Error(t, err)
}

func TestPointerStringEscapesBackToWireForm(t *testing.T) {
	p := NewPointer("a/b", "c~d")
	assert.Equal(t, "/a~1b/c~0d", p.String())
}

func TestPointerURIFragmentPercentEncodes(t *testing.T) {
	p := NewPointer("a b")
	assert.Equal(t, "/a%20b", p.URIFragment())
}

func TestPointerEvaluateWalksObjectsAndArrays(t *testing.T) {
	node, err := Load([]byte(`{"a": [{"b": "hit"}]}`))
	require.NoError(t, err)

	p, err := ParsePointer("/a/0/b")
	require.NoError(t, err)

	got, err := p.Evaluate(node)
	require.NoError(t, err)
	assert.Equal(t, "hit", got.Str())
}

func TestPointerEvaluateMissingSegmentErrors(t *testing.T) {
	node, err := Load([]byte(`{"a": 1}`))
	require.NoError(t, err)

	p, err := ParsePointer("/b")
	require.NoError(t, err)

	_, err = p.Evaluate(node)
	require.Error(t, err)
}

func TestPointerParentDropsLastToken(t *testing.T) {
	p := NewPointer("a", "b")
	assert.Equal(t, "/a", p.Parent().String())
	assert.Equal(t, "", RootPointer.Parent().String())
}

func TestRootPointerIsEmpty(t *testing.T) {
	assert.True(t, RootPointer.IsEmpty())
	assert.Equal(t, "", RootPointer.String())
}
