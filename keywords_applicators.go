package jsonschema

// Applicator keyword classes: allOf, anyOf, oneOf, not, if/then/else,
// dependentSchemas. Each keyword's subschema(s) are compiled eagerly at
// bind time (spec.md §4.F step 3 "Single/Array/Property-Map applicator
// shapes"); allOf/anyOf/oneOf/not evaluate every subschema they name,
// if/then/else runs `then` or `else` depending on the `if` probe, and
// dependentSchemas applies only the entries whose property is present, in
// the teacher's per-keyword-file style (allOf.go, anyOf.go,
// oneOf.go, not.go) generalized from static struct fields to compiled
// Schema lists.

type allOfClass struct{}

func (allOfClass) Name() string        { return "allOf" }
func (allOfClass) AppliesTo() []Kind   { return nil }
func (allOfClass) DependsOn() []string { return nil }
func (allOfClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	subs, err := compileSchemaArray(ctx, value)
	if err != nil {
		return nil, err
	}
	return &allOfHandler{subs: subs}, nil
}

type allOfHandler struct{ subs []*Schema }

func (h *allOfHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	for i, sub := range h.subs {
		child := engine.Eval(sub, instance, childPath(result, "allOf", i), schemaLocationOf(sub), result.InstanceLocation)
		result.AddDetail(child)
	}
}

type anyOfClass struct{}

func (anyOfClass) Name() string        { return "anyOf" }
func (anyOfClass) AppliesTo() []Kind   { return nil }
func (anyOfClass) DependsOn() []string { return nil }
func (anyOfClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	subs, err := compileSchemaArray(ctx, value)
	if err != nil {
		return nil, err
	}
	return &anyOfHandler{subs: subs}, nil
}

type anyOfHandler struct{ subs []*Schema }

func (h *anyOfHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	anyValid := false
	for i, sub := range h.subs {
		child := engine.Eval(sub, instance, childPath(result, "anyOf", i), schemaLocationOf(sub), result.InstanceLocation)
		if child.IsValid() {
			anyValid = true
		}
		result.AddDetail(child)
	}
	if !anyValid {
		result.Fail("anyOf", "anyOf", "value does not validate against any subschema of anyOf", nil)
	}
}

type oneOfClass struct{}

func (oneOfClass) Name() string        { return "oneOf" }
func (oneOfClass) AppliesTo() []Kind   { return nil }
func (oneOfClass) DependsOn() []string { return nil }
func (oneOfClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	subs, err := compileSchemaArray(ctx, value)
	if err != nil {
		return nil, err
	}
	return &oneOfHandler{subs: subs}, nil
}

type oneOfHandler struct{ subs []*Schema }

// Evaluate always runs every subschema unconditionally, per spec.md §4.G
// "oneOf: Evaluate all subschemas unconditionally; pass iff exactly one is
// valid." Non-winning children are attached but marked discard so their
// errors never surface in output, matching the if/then/else discard idiom.
func (h *oneOfHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	matched := 0
	children := make([]*Result, len(h.subs))
	for i, sub := range h.subs {
		child := engine.Eval(sub, instance, childPath(result, "oneOf", i), schemaLocationOf(sub), result.InstanceLocation)
		children[i] = child
		if child.IsValid() {
			matched++
		}
	}
	for _, child := range children {
		if matched != 1 {
			result.AddDetail(child)
		} else if !child.IsValid() {
			child.Discard()
			result.AddDetail(child)
		} else {
			result.AddDetail(child)
		}
	}
	if matched != 1 {
		result.Fail("oneOf", "oneOf", "value must validate against exactly one subschema of oneOf, matched {matched}",
			map[string]any{"matched": matched})
	}
}

type notClass struct{}

func (notClass) Name() string        { return "not" }
func (notClass) AppliesTo() []Kind   { return nil }
func (notClass) DependsOn() []string { return nil }
func (notClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &notHandler{sub: sub}, nil
}

type notHandler struct{ sub *Schema }

func (h *notHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	child := engine.Eval(h.sub, instance, result.EvaluationPath+"/not", schemaLocationOf(h.sub), result.InstanceLocation)
	child.Discard()
	result.AddDetail(child)
	if child.IsValid() {
		result.Fail("not", "not", "value must not validate against the subschema", nil)
	}
}

// ifThenElseClass binds `if`; `then`/`else` piggyback on the same handler
// since their application is conditioned on `if`'s outcome and they must
// not assert independently (spec.md §4.G "if ... do not assert validity
// even when they fail").
type ifThenElseClass struct{}

func (ifThenElseClass) Name() string        { return "if" }
func (ifThenElseClass) AppliesTo() []Kind   { return nil }
func (ifThenElseClass) DependsOn() []string { return nil }
func (ifThenElseClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	ifSub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	h := &ifThenElseHandler{ifSub: ifSub}
	if thenNode, ok := ctx.Schema.Node.Member("then"); ok {
		h.thenSub, err = ctx.CompileSub(thenNode)
		if err != nil {
			return nil, err
		}
	}
	if elseNode, ok := ctx.Schema.Node.Member("else"); ok {
		h.elseSub, err = ctx.CompileSub(elseNode)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

type ifThenElseHandler struct {
	ifSub, thenSub, elseSub *Schema
}

func (h *ifThenElseHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	ifResult := engine.Eval(h.ifSub, instance, result.EvaluationPath+"/if", schemaLocationOf(h.ifSub), result.InstanceLocation)
	ifResult.assert = false
	passed := ifResult.IsValid()
	if !passed {
		ifResult.Discard()
	}
	result.AddDetail(ifResult)

	var branch *Schema
	var label string
	if passed {
		branch, label = h.thenSub, "then"
	} else {
		branch, label = h.elseSub, "else"
	}
	if branch == nil {
		return
	}
	branchResult := engine.Eval(branch, instance, result.EvaluationPath+"/"+label, schemaLocationOf(branch), result.InstanceLocation)
	result.AddDetail(branchResult)
}

// then/else have no independent keyword class: they are structural siblings
// consumed by ifThenElseClass's Bind. The compiler must still recognize
// their names so they are excluded from "unrecognized keyword" handling;
// dialects.go registers thenElsePlaceholderClass for both under the core
// applicator vocabulary with AppliesTo()==nil and a DependsOn on "if" so
// sortKeywords places them after it even though they produce no handler of
// their own.
type thenElsePlaceholderClass struct{ name string }

func (c thenElsePlaceholderClass) Name() string        { return c.name }
func (thenElsePlaceholderClass) AppliesTo() []Kind     { return nil }
func (thenElsePlaceholderClass) DependsOn() []string   { return []string{"if"} }
func (thenElsePlaceholderClass) Bind(_ *CompileContext, _ *Node) (Handler, error) {
	return noopHandler{}, nil
}

type noopHandler struct{}

func (noopHandler) Evaluate(*Node, *Result, *Engine) {}

type dependentSchemasClass struct{}

func (dependentSchemasClass) Name() string        { return "dependentSchemas" }
func (dependentSchemasClass) AppliesTo() []Kind   { return []Kind{KindObject} }
func (dependentSchemasClass) DependsOn() []string { return nil }
func (dependentSchemasClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindObject {
		return nil, &JSONSchemaError{Keyword: "dependentSchemas", Err: ErrInvalidKeywordValue}
	}
	h := &dependentSchemasHandler{subs: make(map[string]*Schema)}
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

type dependentSchemasHandler struct{ subs map[string]*Schema }

func (h *dependentSchemasHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindObject {
		return
	}
	for _, key := range instance.Keys() {
		sub, ok := h.subs[key]
		if !ok {
			continue
		}
		child := engine.Eval(sub, instance, result.EvaluationPath+"/dependentSchemas/"+key, schemaLocationOf(sub), result.InstanceLocation)
		result.AddDetail(child)
	}
}

// compileSchemaArray compiles every element of an array-valued keyword into
// subschemas (the "Array applicator shape", spec.md §4.F step 3).
func compileSchemaArray(ctx *CompileContext, value *Node) ([]*Schema, error) {
	if value.Kind() != KindArray {
		return nil, &JSONSchemaError{Keyword: "", Err: ErrInvalidKeywordValue}
	}
	subs := make([]*Schema, value.Len())
	for i, el := range value.Elements() {
		sub, err := ctx.CompileSub(el)
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}

func childPath(result *Result, keyword string, index int) string {
	return result.EvaluationPath + "/" + keyword + "/" + itoaIndex(index)
}
