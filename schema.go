package jsonschema

// Schema is a compiled resource node whose type is object or boolean
// (spec.md §3 "Schema node"). The bound handler list, the resource's URIs,
// and the node index are fixed when compileSchemaNode returns; the one later
// write is Catalog.ResolveReferences filling in a deferred reference target.
// Evaluate writes nothing to a *Schema, so concurrent evaluations from
// multiple goroutines are safe (spec.md §5).
type Schema struct {
	Node     *Node
	resource *Resource
	catalog  *Catalog
	cacheID  string
	dialect  *Dialect

	boolValue *bool // non-nil for a boolean schema; handlers is empty in that case

	dynamicAnchor   string // "" if this schema carries no $dynamicAnchor
	recursiveAnchor bool   // 2019-09 $recursiveAnchor: true

	handlers []boundHandler
	index    map[string]*boundHandler

	deferred []*refHandler // unresolved $ref/$dynamicRef/$recursiveRef awaiting catalog.ResolveReferences

	nodeIndex map[*Node]*Schema // shared across one compiled document; maps raw node -> its compiled schema
}

type boundHandler struct {
	Keyword string
	Class   KeywordClass
	Handler Handler
}

// URI returns the schema's resource identity, or nil for a boolean schema.
func (s *Schema) URI() *URI {
	if s.resource == nil {
		return nil
	}
	return s.resource.URI()
}

// BaseURI returns the absolute URI used to resolve references within this schema.
func (s *Schema) BaseURI() *URI {
	if s.resource == nil {
		return nil
	}
	return s.resource.BaseURI()
}

// Dialect returns the metaschema-declared dialect active for this schema.
func (s *Schema) Dialect() *Dialect { return s.dialect }

// IsBoolean reports whether this is a `true`/`false` schema.
func (s *Schema) IsBoolean() bool { return s.boolValue != nil }

func (s *Schema) sibling(name string) *boundHandler {
	if s.index == nil {
		return nil
	}
	return s.index[name]
}

func (s *Schema) resolveDeferredRefs() {
	for _, rh := range s.deferred {
		rh.resolve()
	}
}

// CompileContext is threaded through KeywordClass.Bind calls, giving a
// handler everything it needs to recurse into subschemas and resolve
// references relative to the schema node currently being compiled (spec.md
// §9 "bind(parent_schema, value) → Handler").
type CompileContext struct {
	Catalog  *Catalog
	CacheID  string
	Dialect  *Dialect
	Resource *Resource
	Schema   *Schema

	rootIndex map[*Node]*Schema
}

// CompileSub compiles node as a subschema belonging to the same resource
// (or a new embedded resource, if node carries its own $id) as the current
// schema node.
func (ctx *CompileContext) CompileSub(node *Node) (*Schema, error) {
	return compileSchemaNode(ctx.Catalog, ctx.CacheID, node, ctx.Dialect, ctx.Resource, ctx.rootIndex)
}

// ResolveRef resolves a (possibly relative) reference string against the
// current schema's base URI, per spec.md §4.F step 4, returning the target
// Schema, or (nil, nil) if resolution must be deferred.
func (ctx *CompileContext) ResolveRef(ref string) (*Schema, error) {
	return resolveReference(ctx.Catalog, ctx.CacheID, ctx.BaseURI(), ref)
}

// BaseURI is a convenience accessor for the current compiling schema's base.
func (ctx *CompileContext) BaseURI() *URI { return ctx.Resource.BaseURI() }
