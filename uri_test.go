package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURIDistinguishesNoFragmentFromEmptyFragment(t *testing.T) {
	noFrag, err := ParseURI("http://example.com/schema")
	require.NoError(t, err)
	_, has := noFrag.Fragment()
	assert.False(t, has)

	emptyFrag, err := ParseURI("http://example.com/schema#")
	require.NoError(t, err)
	frag, has := emptyFrag.Fragment()
	assert.True(t, has)
	assert.Equal(t, "", frag)
}

func TestURIResolveAgainstBase(t *testing.T) {
	base := MustParseURI("http://example.com/a/b/")
	rel := MustParseURI("c")

	resolved := rel.Resolve(base)
	assert.Equal(t, "http://example.com/a/b/c", resolved.String())
}

func TestURIResolveWithNilBaseReturnsSelf(t *testing.T) {
	abs := MustParseURI("http://example.com/schema")
	assert.Equal(t, abs, abs.Resolve(nil))
}

func TestURIWithoutFragmentStripsFragment(t *testing.T) {
	u := MustParseURI("http://example.com/schema#/a/b")
	stripped := u.WithoutFragment()
	_, has := stripped.Fragment()
	assert.False(t, has)
	assert.Equal(t, "http://example.com/schema", stripped.String())
}

func TestURICopyReplacesFragment(t *testing.T) {
	u := MustParseURI("http://example.com/schema")
	withAnchor := u.Copy("foo", true)
	frag, has := withAnchor.Fragment()
	assert.True(t, has)
	assert.Equal(t, "foo", frag)
}

func TestURIEqualComparesNormalizedForm(t *testing.T) {
	a := MustParseURI("http://example.com/schema#")
	b, err := ParseURI("http://example.com/schema#")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestURIHasAbsoluteBase(t *testing.T) {
	abs := MustParseURI("http://example.com/schema")
	assert.True(t, abs.HasAbsoluteBase())

	withFrag := MustParseURI("http://example.com/schema#x")
	assert.False(t, withFrag.HasAbsoluteBase())

	rel := MustParseURI("schema.json")
	assert.False(t, rel.HasAbsoluteBase())
}
