package jsonschema

// legacyItemsClass implements draft 2019-09's `items` keyword, which (unlike
// 2020-12's single-schema-only `items`) still accepts either a single
// schema applied to every element, or an array of schemas applied
// positionally (tuple validation), with `additionalItemsClass` covering
// whatever the tuple form didn't reach. Ported from
// _examples/original_source/jschon/vocabulary/legacy.py's
// ItemsKeyword_2019_09.
type legacyItemsClass struct{}

func (legacyItemsClass) Name() string        { return "items" }
func (legacyItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (legacyItemsClass) DependsOn() []string { return nil }
func (legacyItemsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() == KindArray {
		subs, err := compileSchemaArray(ctx, value)
		if err != nil {
			return nil, err
		}
		return &legacyItemsTupleHandler{subs: subs}, nil
	}
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &legacyItemsWholeHandler{sub: sub}, nil
}

// legacyItemsWholeHandler is the single-schema form: every element must
// satisfy the same schema, annotating "items" with true (legacy.py: "elif
// isinstance(self.json, JSONSchema)").
type legacyItemsWholeHandler struct{ sub *Schema }

func (h *legacyItemsWholeHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray || instance.Len() == 0 {
		return
	}
	for i := 0; i < instance.Len(); i++ {
		child := engine.Eval(h.sub, instance.Element(i),
			result.EvaluationPath+"/items", schemaLocationOf(h.sub), result.InstanceLocation+"/"+itoaIndex(i))
		result.AddDetail(child)
	}
	if result.IsValid() {
		result.AddAnnotation("items", true)
	}
}

// legacyItemsTupleHandler is the array form: schema i validates instance
// element i, for as many positions as both sequences cover. Annotates
// "items" with the largest validated index (-1 if none), the convention
// this repo's 2020-12 prefixItemsHandler also uses, so additionalItems and
// unevaluatedItems can read it the same way.
type legacyItemsTupleHandler struct{ subs []*Schema }

func (h *legacyItemsTupleHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray || instance.Len() == 0 {
		return
	}
	n := len(h.subs)
	if instance.Len() < n {
		n = instance.Len()
	}
	evalIndex := -1
	var errIndices []int
	for i := 0; i < n; i++ {
		child := engine.Eval(h.subs[i], instance.Element(i),
			childPath(result, "items", i), schemaLocationOf(h.subs[i]), result.InstanceLocation+"/"+itoaIndex(i))
		evalIndex = i
		if !child.IsValid() {
			errIndices = append(errIndices, i)
		}
		result.AddDetail(child)
	}
	if len(errIndices) > 0 {
		result.Fail("items", "items", "array elements at indices {indices} are invalid", map[string]any{"indices": errIndices})
		return
	}
	result.AddAnnotation("items", evalIndex)
}

// additionalItemsClass implements draft 2019-09's `additionalItems`,
// validating every element past the tuple form of a sibling `items` (ported
// from legacy.py's AdditionalItemsKeyword_2019_09). It is a no-op — not a
// failure — when `items` didn't run in tuple mode, since there is then
// nothing "additional" to speak of.
type additionalItemsClass struct{}

func (additionalItemsClass) Name() string        { return "additionalItems" }
func (additionalItemsClass) AppliesTo() []Kind   { return arrayKinds }
func (additionalItemsClass) DependsOn() []string { return []string{"items"} }
func (additionalItemsClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &additionalItemsHandler{sub: sub}, nil
}

type additionalItemsHandler struct{ sub *Schema }

func (h *additionalItemsHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindArray {
		return
	}
	itemsAnnotation, ok := result.Annotation("items")
	if !ok {
		return
	}
	lastTupleIndex, ok := itemsAnnotation.(int)
	if !ok {
		return
	}
	any := false
	for i := lastTupleIndex + 1; i < instance.Len(); i++ {
		child := engine.Eval(h.sub, instance.Element(i),
			result.EvaluationPath+"/additionalItems", schemaLocationOf(h.sub), result.InstanceLocation+"/"+itoaIndex(i))
		result.AddDetail(child)
		any = true
	}
	if any {
		result.AddAnnotation("additionalItems", true)
	}
}
