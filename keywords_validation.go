package jsonschema

import (
	"regexp"
	"strings"
)

func kindName(k Kind) string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// typeClass implements the `type` assertion, ported from the teacher's
// evaluateType (type.go), generalized so "number" also accepts integers
// per the JSON Schema spec's type-lattice rule.
type typeClass struct{}

func (typeClass) Name() string        { return "type" }
func (typeClass) AppliesTo() []Kind   { return nil }
func (typeClass) DependsOn() []string { return nil }
func (typeClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	var names []string
	switch value.Kind() {
	case KindString:
		names = []string{value.Str()}
	case KindArray:
		for _, el := range value.Elements() {
			if el.Kind() != KindString {
				return nil, &JSONSchemaError{Keyword: "type", Err: ErrInvalidKeywordValue}
			}
			names = append(names, el.Str())
		}
	default:
		return nil, &JSONSchemaError{Keyword: "type", Err: ErrInvalidKeywordValue}
	}
	return &typeHandler{names: names}, nil
}

type typeHandler struct{ names []string }

func (h *typeHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	actual := kindName(instance.Kind())
	for _, want := range h.names {
		if want == actual {
			return
		}
		if want == "number" && actual == "integer" {
			return
		}
	}
	result.Fail("type", "type", "value must be of type {expected}, got {actual}",
		map[string]any{"expected": strings.Join(h.names, ", "), "actual": actual})
}

type enumClass struct{}

func (enumClass) Name() string        { return "enum" }
func (enumClass) AppliesTo() []Kind   { return nil }
func (enumClass) DependsOn() []string { return nil }
func (enumClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindArray {
		return nil, &JSONSchemaError{Keyword: "enum", Err: ErrInvalidKeywordValue}
	}
	return &enumHandler{values: value.Elements()}, nil
}

type enumHandler struct{ values []*Node }

func (h *enumHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	for _, v := range h.values {
		if Equal(instance, v) {
			return
		}
	}
	result.Fail("enum", "enum", "value must be one of the enumerated values", nil)
}

type constClass struct{}

func (constClass) Name() string        { return "const" }
func (constClass) AppliesTo() []Kind   { return nil }
func (constClass) DependsOn() []string { return nil }
func (constClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	return &constHandler{value: value}, nil
}

type constHandler struct{ value *Node }

func (h *constHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if !Equal(instance, h.value) {
		result.Fail("const", "const", "value must equal the constant value", nil)
	}
}

var numericKinds = []Kind{KindInteger, KindNumber}

func bindNumberCompare(keyword string, value *Node) (*Number, error) {
	if value.Kind() != KindInteger && value.Kind() != KindNumber {
		return nil, &JSONSchemaError{Keyword: keyword, Err: ErrInvalidKeywordValue}
	}
	return value.Number(), nil
}

type minimumClass struct{}

func (minimumClass) Name() string        { return "minimum" }
func (minimumClass) AppliesTo() []Kind   { return numericKinds }
func (minimumClass) DependsOn() []string { return nil }
func (minimumClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := bindNumberCompare("minimum", value)
	if err != nil {
		return nil, err
	}
	return &minimumHandler{bound: n}, nil
}

type minimumHandler struct{ bound *Number }

func (h *minimumHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Number().Cmp(h.bound) < 0 {
		result.Fail("minimum", "minimum", "{value} is less than the minimum of {minimum}",
			map[string]any{"value": instance.Number().String(), "minimum": h.bound.String()})
	}
}

type maximumClass struct{}

func (maximumClass) Name() string        { return "maximum" }
func (maximumClass) AppliesTo() []Kind   { return numericKinds }
func (maximumClass) DependsOn() []string { return nil }
func (maximumClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := bindNumberCompare("maximum", value)
	if err != nil {
		return nil, err
	}
	return &maximumHandler{bound: n}, nil
}

type maximumHandler struct{ bound *Number }

func (h *maximumHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Number().Cmp(h.bound) > 0 {
		result.Fail("maximum", "maximum", "{value} is greater than the maximum of {maximum}",
			map[string]any{"value": instance.Number().String(), "maximum": h.bound.String()})
	}
}

type exclusiveMinimumClass struct{}

func (exclusiveMinimumClass) Name() string        { return "exclusiveMinimum" }
func (exclusiveMinimumClass) AppliesTo() []Kind   { return numericKinds }
func (exclusiveMinimumClass) DependsOn() []string { return nil }
func (exclusiveMinimumClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := bindNumberCompare("exclusiveMinimum", value)
	if err != nil {
		return nil, err
	}
	return &exclusiveMinimumHandler{bound: n}, nil
}

type exclusiveMinimumHandler struct{ bound *Number }

func (h *exclusiveMinimumHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Number().Cmp(h.bound) <= 0 {
		result.Fail("exclusiveMinimum", "exclusiveMinimum", "{value} must be strictly greater than {minimum}",
			map[string]any{"value": instance.Number().String(), "minimum": h.bound.String()})
	}
}

type exclusiveMaximumClass struct{}

func (exclusiveMaximumClass) Name() string        { return "exclusiveMaximum" }
func (exclusiveMaximumClass) AppliesTo() []Kind   { return numericKinds }
func (exclusiveMaximumClass) DependsOn() []string { return nil }
func (exclusiveMaximumClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := bindNumberCompare("exclusiveMaximum", value)
	if err != nil {
		return nil, err
	}
	return &exclusiveMaximumHandler{bound: n}, nil
}

type exclusiveMaximumHandler struct{ bound *Number }

func (h *exclusiveMaximumHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Number().Cmp(h.bound) >= 0 {
		result.Fail("exclusiveMaximum", "exclusiveMaximum", "{value} must be strictly less than {maximum}",
			map[string]any{"value": instance.Number().String(), "maximum": h.bound.String()})
	}
}

type multipleOfClass struct{}

func (multipleOfClass) Name() string        { return "multipleOf" }
func (multipleOfClass) AppliesTo() []Kind   { return numericKinds }
func (multipleOfClass) DependsOn() []string { return nil }
func (multipleOfClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := bindNumberCompare("multipleOf", value)
	if err != nil {
		return nil, err
	}
	return &multipleOfHandler{divisor: n}, nil
}

type multipleOfHandler struct{ divisor *Number }

// Evaluate uses exact rational division (spec.md §4.A/§9 "Number model")
// so results never drift the way IEEE-754 float division would.
func (h *multipleOfHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if !instance.Number().IsMultipleOf(h.divisor) {
		result.Fail("multipleOf", "multipleOf", "{value} is not a multiple of {multipleOf}",
			map[string]any{"value": instance.Number().String(), "multipleOf": h.divisor.String()})
	}
}

var stringKinds = []Kind{KindString}

// runeLen counts Unicode code points, per the JSON Schema spec's
// "minLength/maxLength count the number of Unicode code points" rule.
func runeLen(s string) int { return len([]rune(s)) }

type minLengthClass struct{}

func (minLengthClass) Name() string        { return "minLength" }
func (minLengthClass) AppliesTo() []Kind   { return stringKinds }
func (minLengthClass) DependsOn() []string { return nil }
func (minLengthClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("minLength", value)
	if err != nil {
		return nil, err
	}
	return &minLengthHandler{min: n}, nil
}

type minLengthHandler struct{ min int }

func (h *minLengthHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if n := runeLen(instance.Str()); n < h.min {
		result.Fail("minLength", "minLength", "string length {length} is less than minLength {minLength}",
			map[string]any{"length": n, "minLength": h.min})
	}
}

type maxLengthClass struct{}

func (maxLengthClass) Name() string        { return "maxLength" }
func (maxLengthClass) AppliesTo() []Kind   { return stringKinds }
func (maxLengthClass) DependsOn() []string { return nil }
func (maxLengthClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("maxLength", value)
	if err != nil {
		return nil, err
	}
	return &maxLengthHandler{max: n}, nil
}

type maxLengthHandler struct{ max int }

func (h *maxLengthHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if n := runeLen(instance.Str()); n > h.max {
		result.Fail("maxLength", "maxLength", "string length {length} is greater than maxLength {maxLength}",
			map[string]any{"length": n, "maxLength": h.max})
	}
}

type patternClass struct{}

func (patternClass) Name() string        { return "pattern" }
func (patternClass) AppliesTo() []Kind   { return stringKinds }
func (patternClass) DependsOn() []string { return nil }
func (patternClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindString {
		return nil, &JSONSchemaError{Keyword: "pattern", Err: ErrInvalidKeywordValue}
	}
	re, err := regexp.Compile(value.Str())
	if err != nil {
		return nil, &JSONSchemaError{Keyword: "pattern", Err: ErrInvalidKeywordValue}
	}
	return &patternHandler{re: re, raw: value.Str()}, nil
}

type patternHandler struct {
	re  *regexp.Regexp
	raw string
}

func (h *patternHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if !h.re.MatchString(instance.Str()) {
		result.Fail("pattern", "pattern", "string does not match pattern {pattern}", map[string]any{"pattern": h.raw})
	}
}
