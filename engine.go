package jsonschema

// Engine drives one Evaluate call: it walks a compiled Schema tree against
// an instance, threading a dynamic scope stack so $dynamicRef/$recursiveRef
// can rebind to the outermost matching schema currently in scope (spec.md
// §4.G "dynamic scope"). A fresh Engine is built per top-level Evaluate call
// (spec.md §5 "fresh result tree and dynamic-scope stack per call"), so
// concurrent evaluations of the same compiled Schema never share mutable
// state.
type Engine struct {
	scope []*Schema
}

// newEngine starts an empty dynamic scope.
func newEngine() *Engine {
	return &Engine{}
}

// Eval evaluates schema against instance, returning a fresh Result node.
// Boolean schemas short-circuit: `true` always passes, `false` always fails
// with no handlers to run (spec.md §3 "Schema node").
func (e *Engine) Eval(schema *Schema, instance *Node, evalPath, schemaLoc, instanceLoc string) *Result {
	result := NewResult("", evalPath, schemaLoc, instanceLoc)
	if schema == nil {
		return result
	}
	if schema.IsBoolean() {
		if !*schema.boolValue {
			result.Fail("", "false-schema", "the boolean schema `false` never validates", nil)
		}
		return result
	}

	e.scope = append(e.scope, schema)
	defer func() { e.scope = e.scope[:len(e.scope)-1] }()

	kind := instance.Kind()
	for _, bh := range schema.handlers {
		if !appliesToKind(bh.Class, kind) {
			continue
		}
		bh.Handler.Evaluate(instance, result, e)
	}
	return result
}

// resolveDynamicAnchor scans the dynamic scope outermost-first (spec.md
// §4.G "$dynamicRef: rebind to the outermost schema in the current dynamic
// scope that declares a matching $dynamicAnchor"), returning the first
// scope entry whose resource declares the anchor, or nil if none does.
func (e *Engine) resolveDynamicAnchor(name string) *Schema {
	for _, s := range e.scope {
		if s.dynamicAnchor == name {
			return s
		}
		if s.resource == nil || s.resource.resourceRoot == nil {
			continue
		}
		anchorURI := s.resource.resourceRoot.baseURI.Copy(name, true)
		if res, ok := s.catalog.GetResource(s.cacheID, anchorURI); ok && res.schema != nil && res.schema.dynamicAnchor == name {
			return res.schema
		}
	}
	return nil
}

// resolveRecursiveAnchor scans the dynamic scope outermost-first for the
// first schema whose resource opted into $recursiveAnchor: true (spec.md
// §4.G "$recursiveRef: 2019-09's predecessor to $dynamicRef").
func (e *Engine) resolveRecursiveAnchor() *Schema {
	for _, s := range e.scope {
		if s.recursiveAnchor {
			return s
		}
	}
	return nil
}

// Evaluate is the public entry point: it runs a fresh Engine against
// instance, rooted at schema's own location (spec.md §6 "evaluate(schema,
// instance) -> Result").
func (s *Schema) Evaluate(instance *Node) *Result {
	engine := newEngine()
	evalPath := ""
	schemaLoc := schemaLocationOf(s)
	return engine.Eval(s, instance, evalPath, schemaLoc, "")
}
