package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFromStringTracksIntegerLiteral(t *testing.T) {
	n, err := NewNumberFromString("42")
	require.NoError(t, err)
	assert.True(t, n.IsInteger())

	f, err := NewNumberFromString("42.0")
	require.NoError(t, err)
	assert.False(t, f.IsInteger())
}

func TestNumberCmpIsExact(t *testing.T) {
	a, err := NewNumberFromString("0.1")
	require.NoError(t, err)
	b, err := NewNumberFromString("0.1")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Cmp(b))
}

func TestIsMultipleOfUsesExactRationalDivision(t *testing.T) {
	n, err := NewNumberFromString("0.3")
	require.NoError(t, err)
	divisor, err := NewNumberFromString("0.1")
	require.NoError(t, err)
	assert.True(t, n.IsMultipleOf(divisor))
}

func TestIsMultipleOfByZeroIsFalse(t *testing.T) {
	n := NewNumberFromInt(4)
	zero := NewNumberFromInt(0)
	assert.False(t, n.IsMultipleOf(zero))
}

func TestNumberStringTrimsTrailingZeros(t *testing.T) {
	n, err := NewNumberFromString("1.500")
	require.NoError(t, err)
	assert.Equal(t, "1.5", n.String())

	i := NewNumberFromInt(7)
	assert.Equal(t, "7", i.String())
}
