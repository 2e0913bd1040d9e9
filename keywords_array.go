package jsonschema

var arrayKinds = []Kind{KindArray}

// prefixItemsClass binds `prefixItems` (2020-12's tuple-typing keyword,
// replacing draft-07's array-form `items`).
type prefixItemsClass struct{}

func (prefixItemsClass) Name() string        { return "prefixItems" }
func (prefixItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (prefixItemsClass) DependsOn() []string { return nil }
func (prefixItemsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	subs, err := compileSchemaArray(ctx, value)
	if err != nil {
		return nil, err
	}
	return &prefixItemsHandler{subs: subs}, nil
}

type prefixItemsHandler struct{ subs []*Schema }

func (h *prefixItemsHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	n := len(h.subs)
	if instance.Len() < n {
		n = instance.Len()
	}
	for i := 0; i < n; i++ {
		child := engine.Eval(h.subs[i], instance.Element(i),
			childPath(result, "prefixItems", i), schemaLocationOf(h.subs[i]), result.InstanceLocation+"/"+itoaIndex(i))
		result.AddDetail(child)
	}
	result.AddAnnotation("prefixItems", n-1) // largest index evaluated, -1 if none
}

// itemsClass binds `items`, applying to every array element beyond any
// prefixItems coverage (2020-12 semantics: `items` is always single-schema;
// the teacher's draft-07-era array-form `items` is out of scope for 2019-
// 09/2020-12 dialects, which this rework targets exclusively).
type itemsClass struct{}

func (itemsClass) Name() string        { return "items" }
func (itemsClass) AppliesTo() []Kind   { return arrayKinds }
func (itemsClass) DependsOn() []string { return []string{"prefixItems"} }
func (itemsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &itemsHandler{sub: sub}, nil
}

type itemsHandler struct{ sub *Schema }

func (h *itemsHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	start := 0
	if n, ok := result.Annotation("prefixItems"); ok {
		if idx, ok := n.(int); ok {
			start = idx + 1
		}
	}
	any := false
	for i := start; i < instance.Len(); i++ {
		child := engine.Eval(h.sub, instance.Element(i),
			result.EvaluationPath+"/items", schemaLocationOf(h.sub), result.InstanceLocation+"/"+itoaIndex(i))
		result.AddDetail(child)
		any = true
	}
	if start < instance.Len() || any {
		result.AddAnnotation("items", true)
	}
}

type containsClass struct{}

func (containsClass) Name() string        { return "contains" }
func (containsClass) AppliesTo() []Kind   { return arrayKinds }
func (containsClass) DependsOn() []string { return nil }
func (containsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	h := &containsHandler{sub: sub, minContains: 1}
	if mc, ok := ctx.Schema.Node.Member("minContains"); ok && mc.Kind() == KindInteger {
		h.minContains = int(mc.Number().Rat().Num().Int64())
	}
	if mc, ok := ctx.Schema.Node.Member("maxContains"); ok && mc.Kind() == KindInteger {
		v := int(mc.Number().Rat().Num().Int64())
		h.maxContains = &v
	}
	return h, nil
}

type containsHandler struct {
	sub                    *Schema
	minContains            int
	maxContains            *int
}

// Evaluate records, as its annotation, the count of matching elements
// (spec.md §4.G "contains: Annotation = count of matching elements;
// minContains: 0 can satisfy contains even when no element matches"). The
// matched indices themselves are kept only as internal bookkeeping for
// unevaluatedItems' sibling-visibility computation, not as the reported
// annotation value.
func (h *containsHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	var matched []int
	for i := 0; i < instance.Len(); i++ {
		child := engine.Eval(h.sub, instance.Element(i),
			result.EvaluationPath+"/contains", schemaLocationOf(h.sub), result.InstanceLocation+"/"+itoaIndex(i))
		child.Discard()
		if child.IsValid() {
			matched = append(matched, i)
		}
	}
	result.setInternal("containsIndices", matched)
	result.AddAnnotation("contains", len(matched))
	if len(matched) < h.minContains {
		result.Fail("contains", "minContains", "array has {matched} matching items, fewer than minContains {minContains}",
			map[string]any{"matched": len(matched), "minContains": h.minContains})
	}
	if h.maxContains != nil && len(matched) > *h.maxContains {
		result.Fail("contains", "maxContains", "array has {matched} matching items, more than maxContains {maxContains}",
			map[string]any{"matched": len(matched), "maxContains": *h.maxContains})
	}
}

type minItemsClass struct{}

func (minItemsClass) Name() string        { return "minItems" }
func (minItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (minItemsClass) DependsOn() []string { return nil }
func (minItemsClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("minItems", value)
	if err != nil {
		return nil, err
	}
	return &minItemsHandler{min: n}, nil
}

type minItemsHandler struct{ min int }

func (h *minItemsHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	if instance.Len() < h.min {
		result.Fail("minItems", "minItems", "array has {length} items, fewer than minItems {minItems}",
			map[string]any{"length": instance.Len(), "minItems": h.min})
	}
}

type maxItemsClass struct{}

func (maxItemsClass) Name() string        { return "maxItems" }
func (maxItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (maxItemsClass) DependsOn() []string { return nil }
func (maxItemsClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	n, err := requireNonNegativeInt("maxItems", value)
	if err != nil {
		return nil, err
	}
	return &maxItemsHandler{max: n}, nil
}

type maxItemsHandler struct{ max int }

func (h *maxItemsHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	if instance.Len() > h.max {
		result.Fail("maxItems", "maxItems", "array has {length} items, more than maxItems {maxItems}",
			map[string]any{"length": instance.Len(), "maxItems": h.max})
	}
}

type uniqueItemsClass struct{}

func (uniqueItemsClass) Name() string        { return "uniqueItems" }
func (uniqueItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (uniqueItemsClass) DependsOn() []string { return nil }
func (uniqueItemsClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindBool {
		return nil, &JSONSchemaError{Keyword: "uniqueItems", Err: ErrInvalidKeywordValue}
	}
	return &uniqueItemsHandler{enabled: value.Bool()}, nil
}

type uniqueItemsHandler struct{ enabled bool }

// Evaluate uses JSON equality, not structural identity, per spec.md §4.A
// ("Uniqueness tests use JSON equality").
func (h *uniqueItemsHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	if !h.enabled || instance.Kind() != KindArray {
		return
	}
	elems := instance.Elements()
	for i := 0; i < len(elems); i++ {
		for j := i + 1; j < len(elems); j++ {
			if Equal(elems[i], elems[j]) {
				result.Fail("uniqueItems", "uniqueItems", "array items at index {first} and {second} are duplicates",
					map[string]any{"first": i, "second": j})
				return
			}
		}
	}
}

// unevaluatedItemsClass implements spec.md §4.G's sibling-annotation union
// rule: an item is "evaluated" if prefixItems/items covered its index,
// contains matched it, or any same-instance applicator (allOf, anyOf,
// oneOf, if/then/else, dependentSchemas, $ref, $dynamicRef) did, directly
// or transitively.
type unevaluatedItemsClass struct{}

func (unevaluatedItemsClass) Name() string { return "unevaluatedItems" }
func (unevaluatedItemsClass) AppliesTo() []Kind { return arrayKinds }
func (unevaluatedItemsClass) DependsOn() []string {
	return []string{"prefixItems", "items", "additionalItems", "contains", "allOf", "anyOf", "oneOf", "if", "dependentSchemas", "$ref", "$dynamicRef", "$recursiveRef"}
}
func (unevaluatedItemsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &unevaluatedItemsHandler{sub: sub}, nil
}

type unevaluatedItemsHandler struct{ sub *Schema }

func (h *unevaluatedItemsHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	set := collectEvaluatedItems(result, result.InstanceLocation)
	any := false
	for i := 0; i < instance.Len(); i++ {
		if set.covers(i) {
			continue
		}
		child := engine.Eval(h.sub, instance.Element(i),
			result.EvaluationPath+"/unevaluatedItems", schemaLocationOf(h.sub), result.InstanceLocation+"/"+itoaIndex(i))
		result.AddDetail(child)
		if !child.IsValid() {
			result.Fail("unevaluatedItems", "unevaluatedItems", "unevaluated item at index {index} is not allowed",
				map[string]any{"index": i})
		}
		any = true
	}
	if any {
		result.AddAnnotation("unevaluatedItems", true)
	}
}

type evaluatedItemsSet struct {
	all         bool
	prefixCount int
	indices     map[int]bool
}

func (s evaluatedItemsSet) covers(i int) bool {
	if s.all || i <= s.prefixCount {
		return true
	}
	return s.indices[i]
}

func collectEvaluatedItems(result *Result, instanceLoc string) evaluatedItemsSet {
	set := evaluatedItemsSet{prefixCount: -1, indices: map[int]bool{}}
	if v, ok := result.Annotation("prefixItems"); ok {
		if n, ok := v.(int); ok && n > set.prefixCount {
			set.prefixCount = n
		}
	}
	if v, ok := result.Annotation("items"); ok {
		switch val := v.(type) {
		case bool:
			if val {
				set.all = true
			}
		case int:
			// 2019-09 legacy tuple-form items: val is the largest validated
			// index, same convention as prefixItems.
			if val > set.prefixCount {
				set.prefixCount = val
			}
		}
	}
	if v, ok := result.Annotation("additionalItems"); ok {
		if b, ok := v.(bool); ok && b {
			set.all = true
		}
	}
	if v, ok := result.Annotation("unevaluatedItems"); ok {
		if b, ok := v.(bool); ok && b {
			set.all = true
		}
	}
	if v, ok := result.internalValue("containsIndices"); ok {
		if idxs, ok := v.([]int); ok {
			for _, i := range idxs {
				set.indices[i] = true
			}
		}
	}
	for _, child := range result.Details {
		if child.InstanceLocation != instanceLoc {
			continue
		}
		sub := collectEvaluatedItems(child, instanceLoc)
		if sub.all {
			set.all = true
		}
		if sub.prefixCount > set.prefixCount {
			set.prefixCount = sub.prefixCount
		}
		for i := range sub.indices {
			set.indices[i] = true
		}
	}
	return set
}

func requireNonNegativeInt(keyword string, value *Node) (int, error) {
	if value.Kind() != KindInteger || value.Number().Rat().Sign() < 0 {
		return 0, &JSONSchemaError{Keyword: keyword, Err: ErrInvalidKeywordValue}
	}
	return int(value.Number().Rat().Num().Int64()), nil
}
