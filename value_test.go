package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreservesMemberOrderAndNumericKind(t *testing.T) {
	node, err := Load([]byte(`{"b": 1, "a": 2.5, "c": [1, 2.0, "x"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "c"}, node.Keys())

	a, ok := node.Member("a")
	require.True(t, ok)
	assert.Equal(t, KindNumber, a.Kind())

	b, ok := node.Member("b")
	require.True(t, ok)
	assert.Equal(t, KindInteger, b.Kind())

	c, ok := node.Member("c")
	require.True(t, ok)
	assert.Equal(t, KindInteger, c.Element(0).Kind())
	assert.Equal(t, KindNumber, c.Element(1).Kind())
}

func TestNodePathIsCachedAndRecomputedAfterMutation(t *testing.T) {
	node, err := Load([]byte(`{"items": [{"name": "a"}, {"name": "b"}]}`))
	require.NoError(t, err)

	items, _ := node.Member("items")
	second := items.Element(1)
	assert.Equal(t, "/items/1", second.Path().String())

	require.NoError(t, items.Delete("0"))
	assert.Equal(t, "/items/0", second.Path().String())
}

func TestEqualComparesNumbersByValueNotKind(t *testing.T) {
	intNode, err := Load([]byte(`1`))
	require.NoError(t, err)
	floatNode, err := Load([]byte(`1.0`))
	require.NoError(t, err)

	assert.True(t, Equal(intNode, floatNode))
}

func TestEqualComparesObjectsByKeySetIgnoringOrder(t *testing.T) {
	a, err := Load([]byte(`{"x": 1, "y": 2}`))
	require.NoError(t, err)
	b, err := Load([]byte(`{"y": 2, "x": 1}`))
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
}

func TestEqualRejectsArraysOfDifferentOrder(t *testing.T) {
	a, err := Load([]byte(`[1, 2]`))
	require.NoError(t, err)
	b, err := Load([]byte(`[2, 1]`))
	require.NoError(t, err)

	assert.False(t, Equal(a, b))
}

func TestFromValueRoundTripsThroughValue(t *testing.T) {
	node, err := FromValue(map[string]any{"a": []any{1, "two", nil, true}})
	require.NoError(t, err)

	back := node.Value()
	m, ok := back.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "a")
}

func TestLoadYAMLLiftsDecodedValue(t *testing.T) {
	node, err := LoadYAML([]byte("name: widget\ncount: 3\n"))
	require.NoError(t, err)

	name, ok := node.Member("name")
	require.True(t, ok)
	assert.Equal(t, "widget", name.Str())
}
