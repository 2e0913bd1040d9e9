package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRootWithNoIDGetsFreshUUIDURN(t *testing.T) {
	res, err := classify(true, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Register)
	require.NotNil(t, res.PropertyURI)
	assert.Equal(t, "urn", res.PropertyURI.Scheme())
}

func TestClassifyRootWithAbsoluteIDRegistersAsIs(t *testing.T) {
	id := MustParseURI("http://example.com/schema")
	res, err := classify(true, id, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Register)
	assert.Equal(t, "http://example.com/schema", res.PropertyURI.String())
}

func TestClassifyNonRootWithNoIDInheritsParent(t *testing.T) {
	base := MustParseURI("http://example.com/schema")
	pointerURI := base.Copy("/properties/name", true)
	res, err := classify(false, nil, base, pointerURI)
	require.NoError(t, err)
	assert.False(t, res.Register)
	assert.Equal(t, pointerURI.String(), res.PropertyURI.String())
	assert.Equal(t, base.String(), res.BaseURI.String())
}

func TestClassifyPlainNameFragmentAtRootRegistersAdditionalURI(t *testing.T) {
	id := MustParseURI("http://example.com/schema#foo")
	res, err := classify(true, id, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.Register)
	assert.Equal(t, "http://example.com/schema", res.PropertyURI.String())
	require.Len(t, res.AdditionalURIs, 1)
	assert.Equal(t, "http://example.com/schema#foo", res.AdditionalURIs[0].String())
}

func TestClassifyJSONPointerFragmentNeverRegisters(t *testing.T) {
	id := MustParseURI("http://example.com/schema#/$defs/foo")
	res, err := classify(false, id, nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Register)
	assert.Equal(t, "http://example.com/schema", res.BaseURI.String())
}

func TestNewRootResourceRegistersInCatalog(t *testing.T) {
	catalog := NewCatalog()
	node, err := Load([]byte(`{"$id": "http://example.com/schema"}`))
	require.NoError(t, err)

	res, err := newRootResource(catalog, DefaultCacheID, node, MustParseURI("http://example.com/schema"))
	require.NoError(t, err)

	got, ok := catalog.GetResource(DefaultCacheID, MustParseURI("http://example.com/schema"))
	require.True(t, ok)
	assert.Same(t, res, got)
}

func TestResourcePointerURIDerivesFromRoot(t *testing.T) {
	catalog := NewCatalog()
	node, err := Load([]byte(`{"$id": "http://example.com/schema", "properties": {"name": {"type": "string"}}}`))
	require.NoError(t, err)

	root, err := newRootResource(catalog, DefaultCacheID, node, MustParseURI("http://example.com/schema"))
	require.NoError(t, err)

	props, _ := node.Member("properties")
	name, _ := props.Member("name")
	child, err := newChildResource(root, name, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/schema#/properties/name", child.PointerURI().String())
}

func TestAddResourceRejectsConflictingRootURI(t *testing.T) {
	catalog := NewCatalog()
	nodeA, err := Load([]byte(`{"$id": "http://example.com/schema"}`))
	require.NoError(t, err)
	nodeB, err := Load([]byte(`{"$id": "http://example.com/schema"}`))
	require.NoError(t, err)

	_, err = newRootResource(catalog, DefaultCacheID, nodeA, MustParseURI("http://example.com/schema"))
	require.NoError(t, err)

	_, err = newRootResource(catalog, DefaultCacheID, nodeB, MustParseURI("http://example.com/schema"))
	require.Error(t, err)
}
