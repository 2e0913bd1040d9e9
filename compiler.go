package jsonschema

import "context"

// compileSchemaNode recursively compiles node into a *Schema, creating or
// joining resources per spec.md §4.C's classify table, resolving the
// effective dialect via `$schema`, and binding every present keyword in
// dependency order (spec.md §4.E/§4.F). rootIndex is shared by every Schema
// compiled from the same top-level document so $ref fragments shaped as a
// JSON Pointer can be resolved back to their compiled Schema (keywords_core.go
// resolveReference).
func compileSchemaNode(catalog *Catalog, cacheID string, node *Node, dialect *Dialect, parentResource *Resource, rootIndex map[*Node]*Schema) (*Schema, error) {
	if node.Kind() == KindBool {
		b := node.Bool()
		s := &Schema{Node: node, catalog: catalog, cacheID: cacheID, dialect: dialect, boolValue: &b, resource: parentResource, nodeIndex: rootIndex}
		if rootIndex != nil {
			rootIndex[node] = s
		}
		return s, nil
	}
	if node.Kind() != KindObject {
		return nil, &JSONSchemaError{Err: ErrNotASchema}
	}

	dialect, err := resolveDialect(catalog, node, dialect, parentResource)
	if err != nil {
		return nil, err
	}

	resource, err := joinOrCreateResource(catalog, cacheID, node, parentResource)
	if err != nil {
		return nil, err
	}

	s := &Schema{Node: node, resource: resource, catalog: catalog, cacheID: cacheID, dialect: dialect, nodeIndex: rootIndex}
	if rootIndex != nil {
		rootIndex[node] = s
	}
	resource.schema = s

	if anchor, ok := node.Member("$anchor"); ok && anchor.Kind() == KindString {
		if err := registerAnchor(catalog, cacheID, resource, anchor.Str()); err != nil {
			return nil, err
		}
	}
	if dynAnchor, ok := node.Member("$dynamicAnchor"); ok && dynAnchor.Kind() == KindString {
		s.dynamicAnchor = dynAnchor.Str()
		if err := registerAnchor(catalog, cacheID, resource, dynAnchor.Str()); err != nil {
			return nil, err
		}
	}
	if recAnchor, ok := node.Member("$recursiveAnchor"); ok && recAnchor.Kind() == KindBool {
		s.recursiveAnchor = recAnchor.Bool()
	}

	if err := compileDefs(catalog, cacheID, node, dialect, resource, rootIndex, "$defs"); err != nil {
		return nil, err
	}
	if err := compileDefs(catalog, cacheID, node, dialect, resource, rootIndex, "definitions"); err != nil {
		return nil, err
	}

	present := make(map[string]KeywordClass)
	for _, key := range node.Keys() {
		if isIdentifierKeyword(key) {
			continue
		}
		kc, ok := dialect.classByName(key)
		if !ok {
			continue // unrecognized keyword: ignored, per spec.md §4.F "unknown keywords are no-ops"
		}
		present[key] = kc
	}

	ordered, err := sortKeywords(present, dialect.declOrder)
	if err != nil {
		return nil, err
	}

	ctx := &CompileContext{Catalog: catalog, CacheID: cacheID, Dialect: dialect, Resource: resource, Schema: s, rootIndex: rootIndex}
	for _, name := range ordered {
		kc := present[name]
		value, _ := node.Member(name)
		handler, err := kc.Bind(ctx, value)
		if err != nil {
			return nil, err
		}
		bh := boundHandler{Keyword: name, Class: kc, Handler: handler}
		s.handlers = append(s.handlers, bh)
		if s.index == nil {
			s.index = make(map[string]*boundHandler)
		}
		s.index[name] = &s.handlers[len(s.handlers)-1]
	}

	if len(s.deferred) > 0 {
		for _, rh := range s.deferred {
			catalog.trackUnresolved(cacheID, mustParseRefURI(rh.ref, rh.base), s)
		}
	}

	return s, nil
}

func mustParseRefURI(ref string, base *URI) *URI {
	parsed, err := ParseURI(ref)
	if err != nil {
		return base
	}
	return parsed.Resolve(base)
}

// isIdentifierKeyword reports whether key is a resource/dialect-identifying
// keyword handled directly by the compiler rather than dispatched through
// the dialect's keyword table (spec.md §4.C/§4.D).
func isIdentifierKeyword(key string) bool {
	switch key {
	case "$id", "$anchor", "$dynamicAnchor", "$recursiveAnchor", "$schema", "$vocabulary", "$defs", "definitions":
		return true
	}
	return false
}

// resolveDialect honors a node-local `$schema` override (only meaningful at
// a resource boundary, but harmless to read uniformly), falling back to the
// ambient dialect inherited from the enclosing resource.
func resolveDialect(catalog *Catalog, node *Node, ambient *Dialect, parentResource *Resource) (*Dialect, error) {
	schemaNode, ok := node.Member("$schema")
	if !ok || schemaNode.Kind() != KindString {
		if ambient != nil {
			return ambient, nil
		}
		d, ok := catalog.Dialect(Schema201912URI)
		if !ok {
			return nil, &JSONSchemaError{Keyword: "$schema", Err: ErrMetaschemaNotFound}
		}
		return d, nil
	}
	d, ok := catalog.Dialect(schemaNode.Str())
	if !ok {
		return nil, &JSONSchemaError{Keyword: "$schema", Err: ErrMetaschemaNotFound}
	}
	return d, nil
}

// joinOrCreateResource decides, per spec.md §4.C, whether node starts a new
// resource (document root, or carries its own `$id`) or joins its parent's.
func joinOrCreateResource(catalog *Catalog, cacheID string, node *Node, parentResource *Resource) (*Resource, error) {
	idNode, hasID := node.Member("$id")
	var proposed *URI
	if hasID && idNode.Kind() == KindString {
		parsed, err := ParseURI(idNode.Str())
		if err != nil {
			return nil, &JSONSchemaError{Keyword: "$id", Err: &URIError{Value: idNode.Str(), Err: err}}
		}
		base := baseURIFor(parentResource)
		if base == nil && !parsed.IsAbsolute() {
			return nil, &JSONSchemaError{Keyword: "$id", Err: ErrRelativeIDWithNoBase}
		}
		proposed = parsed.Resolve(base)
	}

	switch {
	case parentResource == nil:
		return newRootResource(catalog, cacheID, node, proposed)
	case hasID:
		return newEmbeddedResource(parentResource, node, proposed)
	default:
		return newChildResource(parentResource, node, nil)
	}
}

// compileDefs eagerly compiles every member of a $defs/definitions
// container even though the container keyword itself has no handler: a
// $ref naming "#/$defs/foo" must still find a compiled Schema at that
// pointer path in rootIndex (spec.md §4.F step 4 "JSON-Pointer-fragment
// resolution targets any compiled node, not just applied subschemas").
func compileDefs(catalog *Catalog, cacheID string, node *Node, dialect *Dialect, resource *Resource, rootIndex map[*Node]*Schema, key string) error {
	defs, ok := node.Member(key)
	if !ok || defs.Kind() != KindObject {
		return nil
	}
	for _, name := range defs.Keys() {
		member, _ := defs.Member(name)
		if _, err := compileSchemaNode(catalog, cacheID, member, dialect, resource, rootIndex); err != nil {
			return err
		}
	}
	return nil
}

func baseURIFor(parentResource *Resource) *URI {
	if parentResource == nil {
		return nil
	}
	return parentResource.baseURI
}

// registerAnchor binds resource.baseURI + "#" + name to resource in the
// catalog, the plain-name-fragment alias $anchor/$dynamicAnchor declare
// (spec.md §4.C "other fragment" row).
func registerAnchor(catalog *Catalog, cacheID string, resource *Resource, name string) error {
	anchorURI := resource.baseURI.Copy(name, true)
	if err := catalog.addResource(cacheID, anchorURI, resource); err != nil {
		return err
	}
	resource.additionalURIs = append(resource.additionalURIs, anchorURI)
	return nil
}

// AddSchema compiles node as a new top-level document within cacheID and
// registers its resource(s) in the catalog (spec.md §6 add_schema).
func (c *Catalog) AddSchema(node *Node, cacheID string, dialect *Dialect) (*Schema, error) {
	if dialect == nil {
		var ok bool
		dialect, ok = c.Dialect(Schema201912URI)
		if !ok {
			return nil, &CatalogError{Op: "add schema", Err: ErrMetaschemaNotFound}
		}
	}
	rootIndex := make(map[*Node]*Schema)
	s, err := compileSchemaNode(c, cacheID, node, dialect, nil, rootIndex)
	if err != nil {
		return nil, &CatalogError{Op: "add schema", Err: err}
	}
	c.ResolveReferences(cacheID)
	return s, nil
}

// GetSchema fetches and compiles the document at uri (if not already
// cataloged) and returns the Schema registered at uri's exact location
// (spec.md §6 get_schema).
func (c *Catalog) GetSchema(ctx context.Context, uri *URI, cacheID string) (*Schema, error) {
	if res, ok := c.GetResource(cacheID, uri.WithoutFragment()); ok && res.schema != nil {
		target, err := resolveReference(c, cacheID, uri.WithoutFragment(), uri.String())
		if err != nil {
			return nil, err
		}
		if target != nil {
			return target, nil
		}
	}
	node, err := c.Fetch(ctx, uri.WithoutFragment())
	if err != nil {
		return nil, err
	}
	if _, err := c.AddSchema(node, cacheID, nil); err != nil {
		return nil, err
	}
	return resolveReference(c, cacheID, uri.WithoutFragment(), uri.String())
}
