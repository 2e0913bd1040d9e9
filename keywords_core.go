package jsonschema

import "strings"

// refHandler implements $ref, $dynamicRef and $recursiveRef. Static
// resolution happens at bind time (or is deferred to ctx.Catalog's
// ResolveReferences pass); dynamic rebinding, when applicable, happens at
// evaluation time against the engine's scope stack (spec.md §4.G).
type refHandler struct {
	keyword string
	ref     string
	catalog *Catalog
	cacheID string
	base    *URI

	target *Schema
}

func newRefKeyword(keyword string) KeywordClass { return refClass{keyword: keyword} }

type refClass struct{ keyword string }

func (c refClass) Name() string          { return c.keyword }
func (c refClass) AppliesTo() []Kind     { return nil }
func (c refClass) DependsOn() []string   { return nil }
func (c refClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindString {
		return nil, &JSONSchemaError{Keyword: c.keyword, Err: ErrInvalidKeywordValue}
	}
	h := &refHandler{
		keyword: c.keyword, ref: value.Str(),
		catalog: ctx.Catalog, cacheID: ctx.CacheID, base: ctx.BaseURI(),
	}
	target, err := resolveReference(ctx.Catalog, ctx.CacheID, ctx.BaseURI(), value.Str())
	if err != nil {
		return nil, err
	}
	if target == nil {
		ctx.Schema.deferred = append(ctx.Schema.deferred, h)
	} else {
		h.target = target
	}
	return h, nil
}

func (h *refHandler) resolve() {
	if h.target != nil {
		return
	}
	target, _ := resolveReference(h.catalog, h.cacheID, h.base, h.ref)
	h.target = target
}

// dynamicAnchorName returns the plain-name fragment of ref, if it has one
// suitable for $dynamicRef/$recursiveRef dynamic-scope rebinding (a
// fragment that is not a JSON Pointer).
func dynamicAnchorName(ref string) string {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ""
	}
	frag := ref[idx+1:]
	if frag == "" || strings.HasPrefix(frag, "/") {
		return ""
	}
	return frag
}

func (h *refHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	target := h.target
	if target == nil {
		target, _ = resolveReference(h.catalog, h.cacheID, h.base, h.ref)
	}
	if target == nil {
		result.Fail(h.keyword, "ref", "could not resolve reference {ref}", map[string]any{"ref": h.ref})
		return
	}

	switch h.keyword {
	case "$dynamicRef":
		if name := dynamicAnchorName(h.ref); name != "" && target.dynamicAnchor == name {
			if rebound := engine.resolveDynamicAnchor(name); rebound != nil {
				target = rebound
			}
		}
	case "$recursiveRef":
		if target.recursiveAnchor {
			if rebound := engine.resolveRecursiveAnchor(); rebound != nil {
				target = rebound
			}
		}
	}

	child := engine.Eval(target, instance, result.EvaluationPath+"/"+h.keyword, schemaLocationOf(target), result.InstanceLocation)
	result.AddDetail(child)
}

func schemaLocationOf(s *Schema) string {
	if s.URI() == nil {
		return ""
	}
	return s.URI().String()
}

// resolveReference resolves ref (absolute or relative) against base within
// cacheID, returning (nil, nil) if the target resource is not yet in the
// catalog (a deferred reference, per spec.md §4.F step 4).
func resolveReference(catalog *Catalog, cacheID string, base *URI, ref string) (*Schema, error) {
	parsed, err := ParseURI(ref)
	if err != nil {
		return nil, &URIError{Value: ref, Err: err}
	}
	resolved := parsed.Resolve(base)
	withoutFrag := resolved.WithoutFragment()

	frag, hasFrag := resolved.Fragment()
	if hasFrag && strings.HasPrefix(frag, "/") {
		rootRes, ok := catalog.GetResource(cacheID, withoutFrag)
		if !ok || rootRes.schema == nil {
			return nil, nil
		}
		ptr, err := ParsePointerFromFragment(frag)
		if err != nil {
			return nil, &JSONPointerError{Pointer: frag, Err: ErrInvalidPointerSyntax}
		}
		node, err := ptr.Evaluate(rootRes.schema.Node)
		if err != nil {
			return nil, nil
		}
		sub, ok := rootRes.schema.nodeIndex[node]
		if !ok {
			return nil, nil
		}
		return sub, nil
	}

	if hasFrag && frag == "" {
		resolved = withoutFrag // an empty fragment names the same resource as no fragment
	}
	res, ok := catalog.GetResource(cacheID, resolved)
	if !ok {
		return nil, nil
	}
	return res.schema, nil
}
