package jsonschema

import (
	"math/big"
	"strings"
)

// Number is the exact-rational number model used throughout the evaluator.
// Values are always kept as a big.Rat so that multipleOf and range checks
// never suffer IEEE-754 drift; isInteger records whether the literal, as
// written, had no fractional part or exponent, which is what `type:
// "integer"` consults.
//
// Ported from the teacher's Rat wrapper (rat.go), generalized to also track
// integer-ness the way utils.go's getDataType did with a second pass over
// big.Int/big.Float.
type Number struct {
	rat       *big.Rat
	isInteger bool
}

// NewNumberFromString parses a JSON number literal, preserving whether it
// was written as an integer (no '.', 'e' or 'E').
func NewNumberFromString(literal string) (*Number, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(literal); !ok {
		return nil, &JSONError{Op: "parse number", Err: ErrUnsupportedValueType}
	}
	isInt := !strings.ContainsAny(literal, ".eE")
	return &Number{rat: r, isInteger: isInt}, nil
}

// NewNumberFromFloat builds a Number from a plain Go float64/int, used when
// constructing schemas or instances from in-memory values rather than
// parsed JSON text.
func NewNumberFromFloat(f float64) *Number {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		r = new(big.Rat)
	}
	return &Number{rat: r, isInteger: r.IsInt()}
}

// NewNumberFromInt builds an integer Number.
func NewNumberFromInt(i int64) *Number {
	return &Number{rat: new(big.Rat).SetInt64(i), isInteger: true}
}

// IsInteger reports whether the number should be treated as a JSON Schema "integer".
func (n *Number) IsInteger() bool { return n.isInteger }

// Rat returns the underlying exact rational value.
func (n *Number) Rat() *big.Rat { return n.rat }

// Float64 returns an approximate float64, for annotations/output only —
// never for comparisons, which must go through Rat().
func (n *Number) Float64() float64 {
	f, _ := n.rat.Float64()
	return f
}

// Cmp compares two numbers exactly.
func (n *Number) Cmp(other *Number) int { return n.rat.Cmp(other.rat) }

// IsMultipleOf reports whether n is an exact multiple of divisor, using
// exact rational division rather than floating point (spec.md §4.A).
func (n *Number) IsMultipleOf(divisor *Number) bool {
	if divisor.rat.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(n.rat, divisor.rat)
	return quotient.IsInt()
}

// String formats the number the way JSON output should render it: a plain
// integer string when IsInt, else a trimmed decimal expansion. Ported from
// the teacher's FormatRat.
func (n *Number) String() string {
	if n.rat.IsInt() {
		return n.rat.Num().String()
	}
	dec := n.rat.FloatString(20)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}
