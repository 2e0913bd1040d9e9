package jsonschema

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// ClassifyResult is the tuple {register?, property_uri, base_uri,
// additional_uris} spec.md §4.C's classify() produces for a proposed URI.
type ClassifyResult struct {
	Register       bool
	PropertyURI    *URI
	BaseURI        *URI
	AdditionalURIs []*URI
}

// classify implements the spec.md §4.C resource-identity table. proposed is
// the (already base-resolved) URI a caller wants to assign to a resource
// node; nil means "no uri offered" (the node has no $id of its own).
// inheritedBaseURI is the base the node would have absent any uri of its
// own; nodePointerURI is the node's derived pointer_uri.
func classify(isRoot bool, proposed *URI, inheritedBaseURI *URI, nodePointerURI *URI) (ClassifyResult, error) {
	if proposed == nil {
		if isRoot {
			fresh := newUUIDURN()
			return ClassifyResult{Register: true, PropertyURI: fresh, BaseURI: fresh}, nil
		}
		return ClassifyResult{Register: false, PropertyURI: nodePointerURI, BaseURI: inheritedBaseURI}, nil
	}

	frag, hasFrag := proposed.Fragment()
	switch {
	case !hasFrag:
		return ClassifyResult{Register: true, PropertyURI: proposed, BaseURI: proposed}, nil
	case frag == "":
		without := proposed.WithoutFragment()
		return ClassifyResult{Register: true, PropertyURI: without, BaseURI: without}, nil
	case strings.HasPrefix(frag, "/"):
		without := proposed.WithoutFragment()
		return ClassifyResult{Register: false, PropertyURI: proposed, BaseURI: without}, nil
	default: // plain-name ("other") fragment
		if isRoot {
			without := proposed.WithoutFragment()
			return ClassifyResult{
				Register: true, PropertyURI: without, BaseURI: without,
				AdditionalURIs: []*URI{proposed},
			}, nil
		}
		return ClassifyResult{Register: true, PropertyURI: proposed, BaseURI: inheritedBaseURI}, nil
	}
}

func newUUIDURN() *URI {
	var b [16]byte
	_, _ = rand.Read(b[:])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	s := fmt.Sprintf("urn:uuid:%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	return MustParseURI(s)
}

// Resource is a JSON node that additionally owns the four URI-valued slots
// spec.md §3 "Resource node" describes (uri, base_uri, pointer_uri,
// additional_uris) plus its resource-root/parent-in-resource links.
type Resource struct {
	Node *Node

	catalog *Catalog
	cacheID string

	uri            *URI
	baseURI        *URI
	additionalURIs []*URI

	resourceRoot     *Resource // self, if this node is a resource root
	parentInResource *Resource // nearest ancestor in the same resource; nil iff root

	schema *Schema // the compiled schema owning this resource, set when compilation of its node starts (before its keywords are bound)
}

// URI returns the resource's primary identity.
func (r *Resource) URI() *URI { return r.uri }

// BaseURI returns the absolute URI used to resolve relative references
// within this resource.
func (r *Resource) BaseURI() *URI { return r.baseURI }

// PointerURI derives base_uri + fragment = pointer from the resource root,
// per spec.md §3's invariant ("pointer_uri is derived, not stored").
func (r *Resource) PointerURI() *URI {
	root := r.resourceRoot
	if root == nil {
		root = r
	}
	rel := relativePointer(root.Node, r.Node)
	return root.baseURI.Copy(rel.URIFragment(), true)
}

// AdditionalURIs returns the extra registered identities for this resource
// (never containing a JSON-Pointer-fragment URI nor the primary uri).
func (r *Resource) AdditionalURIs() []*URI { return r.additionalURIs }

// IsRoot reports whether this resource is the root of its own containing
// resource (no parent-in-resource).
func (r *Resource) IsRoot() bool { return r.parentInResource == nil }

func relativePointer(root, node *Node) *Pointer {
	rootTokens := root.Path().Tokens()
	nodeTokens := node.Path().Tokens()
	if len(nodeTokens) < len(rootTokens) {
		return RootPointer
	}
	return NewPointer(nodeTokens[len(rootTokens):]...)
}

// newRootResource registers a fresh resource root in cacheID, classifying
// proposed (nil if the node carries no $id) against the document rules.
func newRootResource(catalog *Catalog, cacheID string, node *Node, proposed *URI) (*Resource, error) {
	res := &Resource{Node: node, catalog: catalog, cacheID: cacheID}
	res.resourceRoot = res
	cls, err := classify(true, proposed, nil, nil)
	if err != nil {
		return nil, err
	}
	res.uri = cls.PropertyURI
	res.baseURI = cls.BaseURI
	res.additionalURIs = cls.AdditionalURIs
	if cls.Register {
		if err := catalog.addResource(cacheID, res.uri, res); err != nil {
			return nil, err
		}
		for _, au := range cls.AdditionalURIs {
			if err := catalog.addResource(cacheID, au, res); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// newEmbeddedResource registers a resource root embedded within an existing
// document (a schema node carrying its own $id below the document root).
func newEmbeddedResource(parent *Resource, node *Node, proposed *URI) (*Resource, error) {
	res := &Resource{Node: node, catalog: parent.catalog, cacheID: parent.cacheID}
	res.resourceRoot = res
	cls, err := classify(true, proposed, nil, nil)
	if err != nil {
		return nil, err
	}
	res.uri = cls.PropertyURI
	res.baseURI = cls.BaseURI
	res.additionalURIs = cls.AdditionalURIs
	if cls.Register {
		if err := res.catalog.addResource(res.cacheID, res.uri, res); err != nil {
			return nil, err
		}
		for _, au := range cls.AdditionalURIs {
			if err := res.catalog.addResource(res.cacheID, au, res); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// newChildResource attaches node to the same resource as parent (no $id of
// its own, i.e. proposed is nil), or reclassifies it if proposed is given
// (e.g. a legacy plain-name anchor expressed via $id in non-root position).
func newChildResource(parent *Resource, node *Node, proposed *URI) (*Resource, error) {
	res := &Resource{
		Node: node, catalog: parent.catalog, cacheID: parent.cacheID,
		resourceRoot: parent.resourceRoot, parentInResource: parent,
	}
	pointerURI := res.PointerURI()
	cls, err := classify(false, proposed, parent.resourceRoot.baseURI, pointerURI)
	if err != nil {
		return nil, err
	}
	res.uri = cls.PropertyURI
	res.baseURI = cls.BaseURI
	res.additionalURIs = cls.AdditionalURIs
	if proposed != nil && !cls.BaseURI.Equal(parent.resourceRoot.baseURI) {
		if _, hasFrag := proposed.Fragment(); !hasFrag {
			return nil, &ResourceError{Op: "classify", Err: &BaseURIConflictError{
				URI: proposed.String(), RootURI: parent.resourceRoot.baseURI.String(),
			}}
		}
	}
	if cls.Register {
		if err := res.catalog.addResource(res.cacheID, res.uri, res); err != nil {
			return nil, err
		}
		for _, au := range cls.AdditionalURIs {
			if err := res.catalog.addResource(res.cacheID, au, res); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Reassign changes a resource root's primary uri: unregister the old uri,
// register the new one, and rewrite every in-resource descendant's derived
// pointer_uri (spec.md §4.C). Old additional_uris stay bound in the
// catalog — see DESIGN.md's Open Question decision.
func (r *Resource) Reassign(newURI *URI) error {
	if !r.IsRoot() {
		return &ResourceError{Op: "reassign", Err: &BaseURIConflictError{URI: newURI.String(), RootURI: r.resourceRoot.baseURI.String()}}
	}
	r.catalog.delResource(r.cacheID, r.uri)
	r.uri = newURI
	r.baseURI = newURI
	return r.catalog.addResource(r.cacheID, newURI, r)
}
