package jsonschema

import "regexp"

var objectKinds = []Kind{KindObject}

type propertiesClass struct{}

func (propertiesClass) Name() string        { return "properties" }
func (propertiesClass) AppliesTo() []Kind   { return objectKinds }
func (propertiesClass) DependsOn() []string { return nil }
func (propertiesClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindObject {
		return nil, &JSONSchemaError{Keyword: "properties", Err: ErrInvalidKeywordValue}
	}
	h := &propertiesHandler{subs: make(map[string]*Schema)}
	for _, key := range value.Keys() {
		member, _ := value.Member(key)
		sub, err := ctx.CompileSub(member)
		if err != nil {
			return nil, err
		}
		h.subs[key] = sub
	}
	return h, nil
}

type propertiesHandler struct{ subs map[string]*Schema }

func (h *propertiesHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	var matched []string
	for _, key := range instance.Keys() {
		sub, ok := h.subs[key]
		if !ok {
			continue
		}
		member, _ := instance.Member(key)
		child := engine.Eval(sub, member, result.EvaluationPath+"/properties/"+key, schemaLocationOf(sub), result.InstanceLocation+"/"+key)
		result.AddDetail(child)
		matched = append(matched, key)
	}
	result.AddAnnotation("properties", matched)
}

type patternPropertiesClass struct{}

func (patternPropertiesClass) Name() string        { return "patternProperties" }
func (patternPropertiesClass) AppliesTo() []Kind   { return objectKinds }
func (patternPropertiesClass) DependsOn() []string { return nil }
func (patternPropertiesClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindObject {
		return nil, &JSONSchemaError{Keyword: "patternProperties", Err: ErrInvalidKeywordValue}
	}
	h := &patternPropertiesHandler{}
	for _, key := range value.Keys() {
		re, err := regexp.Compile(key)
		if err != nil {
			return nil, &JSONSchemaError{Keyword: "patternProperties", Err: ErrInvalidKeywordValue}
		}
		member, _ := value.Member(key)
		sub, err := ctx.CompileSub(member)
		if err != nil {
			return nil, err
		}
		h.entries = append(h.entries, patternEntry{re: re, sub: sub})
	}
	return h, nil
}

type patternEntry struct {
	re  *regexp.Regexp
	sub *Schema
}

type patternPropertiesHandler struct{ entries []patternEntry }

func (h *patternPropertiesHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	var matched []string
	for _, key := range instance.Keys() {
		member, _ := instance.Member(key)
		for _, e := range h.entries {
			if !e.re.MatchString(key) {
				continue
			}
			child := engine.Eval(e.sub, member, result.EvaluationPath+"/patternProperties/"+key, schemaLocationOf(e.sub), result.InstanceLocation+"/"+key)
			result.AddDetail(child)
			matched = append(matched, key)
		}
	}
	result.AddAnnotation("patternProperties", matched)
}

type additionalPropertiesClass struct{}

func (additionalPropertiesClass) Name() string        { return "additionalProperties" }
func (additionalPropertiesClass) AppliesTo() []Kind   { return objectKinds }
func (additionalPropertiesClass) DependsOn() []string { return []string{"properties", "patternProperties"} }
func (additionalPropertiesClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &additionalPropertiesHandler{sub: sub}, nil
}

type additionalPropertiesHandler struct{ sub *Schema }

func (h *additionalPropertiesHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	coveredByProps := coveredByNameKeyword(result, "properties")
	coveredByPatterns := coveredByNameKeyword(result, "patternProperties")
	var matched []string
	for _, key := range instance.Keys() {
		if coveredByProps[key] || coveredByPatterns[key] {
			continue
		}
		member, _ := instance.Member(key)
		child := engine.Eval(h.sub, member, result.EvaluationPath+"/additionalProperties", schemaLocationOf(h.sub), result.InstanceLocation+"/"+key)
		result.AddDetail(child)
		matched = append(matched, key)
	}
	result.AddAnnotation("additionalProperties", matched)
}

func coveredByNameKeyword(result *Result, keyword string) map[string]bool {
	set := make(map[string]bool)
	if v, ok := result.Annotation(keyword); ok {
		if names, ok := v.([]string); ok {
			for _, n := range names {
				set[n] = true
			}
		}
	}
	return set
}

type propertyNamesClass struct{}

func (propertyNamesClass) Name() string        { return "propertyNames" }
func (propertyNamesClass) AppliesTo() []Kind   { return objectKinds }
func (propertyNamesClass) DependsOn() []string { return nil }
func (propertyNamesClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &propertyNamesHandler{sub: sub}, nil
}

type propertyNamesHandler struct{ sub *Schema }

func (h *propertyNamesHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	for _, key := range instance.Keys() {
		nameNode := NewString(key)
		child := engine.Eval(h.sub, nameNode, result.EvaluationPath+"/propertyNames", schemaLocationOf(h.sub), result.InstanceLocation+"/"+key)
		child.Discard()
		result.AddDetail(child)
		if !child.IsValid() {
			result.Fail("propertyNames", "propertyNames", "property name {property} is invalid", map[string]any{"property": key})
		}
	}
}

type requiredClass struct{}

func (requiredClass) Name() string        { return "required" }
func (requiredClass) AppliesTo() []Kind   { return objectKinds }
func (requiredClass) DependsOn() []string { return nil }
func (requiredClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindArray {
		return nil, &JSONSchemaError{Keyword: "required", Err: ErrInvalidKeywordValue}
	}
	names := make([]string, value.Len())
	for i, el := range value.Elements() {
		names[i] = el.Str()
	}
	return &requiredHandler{names: names}, nil
}

type requiredHandler struct{ names []string }

func (h *requiredHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	for _, name := range h.names {
		if _, ok := instance.Member(name); !ok {
			result.Fail("required", "required", "missing required property {property}", map[string]any{"property": name})
		}
	}
}

type dependentRequiredClass struct{}

func (dependentRequiredClass) Name() string        { return "dependentRequired" }
func (dependentRequiredClass) AppliesTo() []Kind   { return objectKinds }
func (dependentRequiredClass) DependsOn() []string { return nil }
func (dependentRequiredClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindObject {
		return nil, &JSONSchemaError{Keyword: "dependentRequired", Err: ErrInvalidKeywordValue}
	}
	deps := make(map[string][]string)
	for _, key := range value.Keys() {
		member, _ := value.Member(key)
		if member.Kind() != KindArray {
			return nil, &JSONSchemaError{Keyword: "dependentRequired", Err: ErrInvalidKeywordValue}
		}
		names := make([]string, member.Len())
		for i, el := range member.Elements() {
			names[i] = el.Str()
		}
		deps[key] = names
	}
	return &dependentRequiredHandler{deps: deps}, nil
}

type dependentRequiredHandler struct{ deps map[string][]string }

func (h *dependentRequiredHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	for trigger, required := range h.deps {
		if _, ok := instance.Member(trigger); !ok {
			continue
		}
		for _, name := range required {
			if _, ok := instance.Member(name); !ok {
				result.Fail("dependentRequired", "dependentRequired", "property {property} requires {dependency} to also be present",
					map[string]any{"property": trigger, "dependency": name})
			}
		}
	}
}

type minPropertiesClass struct{}

func (minPropertiesClass) Name() string        { return "minProperties" }
func (minPropertiesClass) AppliesTo() []Kind   { return objectKinds }
func (minPropertiesClass) DependsOn() []string { return nil }
func (minPropertiesClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("minProperties", value)
	if err != nil {
		return nil, err
	}
	return &minPropertiesHandler{min: n}, nil
}

type minPropertiesHandler struct{ min int }

func (h *minPropertiesHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	if instance.Len() < h.min {
		result.Fail("minProperties", "minProperties", "object has {count} properties, fewer than minProperties {minProperties}",
			map[string]any{"count": instance.Len(), "minProperties": h.min})
	}
}

type maxPropertiesClass struct{}

func (maxPropertiesClass) Name() string        { return "maxProperties" }
func (maxPropertiesClass) AppliesTo() []Kind   { return objectKinds }
func (maxPropertiesClass) DependsOn() []string { return nil }
func (maxPropertiesClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("maxProperties", value)
	if err != nil {
		return nil, err
	}
	return &maxPropertiesHandler{max: n}, nil
}

type maxPropertiesHandler struct{ max int }

func (h *maxPropertiesHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	if instance.Len() > h.max {
		result.Fail("maxProperties", "maxProperties", "object has {count} properties, more than maxProperties {maxProperties}",
			map[string]any{"count": instance.Len(), "maxProperties": h.max})
	}
}

// unevaluatedPropertiesClass mirrors unevaluatedItemsClass's sibling-union
// rule for object member names (spec.md §4.G).
type unevaluatedPropertiesClass struct{}

func (unevaluatedPropertiesClass) Name() string      { return "unevaluatedProperties" }
func (unevaluatedPropertiesClass) AppliesTo() []Kind { return objectKinds }
func (unevaluatedPropertiesClass) DependsOn() []string {
	return []string{"properties", "patternProperties", "additionalProperties", "allOf", "anyOf", "oneOf", "if", "dependentSchemas", "$ref", "$dynamicRef", "$recursiveRef"}
}
func (unevaluatedPropertiesClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &unevaluatedPropertiesHandler{sub: sub}, nil
}

type unevaluatedPropertiesHandler struct{ sub *Schema }

func (h *unevaluatedPropertiesHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	set := collectEvaluatedProperties(result, result.InstanceLocation)
	var matched []string
	for _, key := range instance.Keys() {
		if set[key] {
			continue
		}
		member, _ := instance.Member(key)
		child := engine.Eval(h.sub, member, result.EvaluationPath+"/unevaluatedProperties", schemaLocationOf(h.sub), result.InstanceLocation+"/"+key)
		result.AddDetail(child)
		if !child.IsValid() {
			result.Fail("unevaluatedProperties", "unevaluatedProperties", "unevaluated property {property} is not allowed",
				map[string]any{"property": key})
		}
		matched = append(matched, key)
	}
	result.AddAnnotation("unevaluatedProperties", matched)
}

func collectEvaluatedProperties(result *Result, instanceLoc string) map[string]bool {
	set := make(map[string]bool)
	for _, keyword := range []string{"properties", "patternProperties", "additionalProperties", "unevaluatedProperties"} {
		if v, ok := result.Annotation(keyword); ok {
			if names, ok := v.([]string); ok {
				for _, n := range names {
					set[n] = true
				}
			}
		}
	}
	for _, child := range result.Details {
		if child.InstanceLocation != instanceLoc {
			continue
		}
		for k := range collectEvaluatedProperties(child, instanceLoc) {
			set[k] = true
		}
	}
	return set
}
