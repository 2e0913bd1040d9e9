package jsonschema

import (
	"errors"
	"fmt"
)

// === URI / JSON Pointer layer errors ===
var (
	// ErrInvalidURI is returned when a string cannot be parsed as a URI.
	ErrInvalidURI = errors.New("invalid uri")

	// ErrRelativeIDWithNoBase is returned when a relative $id is encountered
	// with no base URI to resolve it against.
	ErrRelativeIDWithNoBase = errors.New("relative $id with no base uri")

	// ErrInvalidPointerSyntax is returned when a JSON Pointer string is malformed.
	ErrInvalidPointerSyntax = errors.New("invalid json pointer syntax")

	// ErrPointerPastLeaf is returned when a JSON Pointer tries to descend past a scalar.
	ErrPointerPastLeaf = errors.New("json pointer evaluation past a leaf value")

	// ErrPointerSegmentNotFound is returned when a JSON Pointer segment has no target.
	ErrPointerSegmentNotFound = errors.New("json pointer segment not found")
)

// URIError wraps a malformed or unresolvable URI, per spec.md §7.
type URIError struct {
	Value string
	Err   error
}

func (e *URIError) Error() string { return fmt.Sprintf("uri error: %q: %v", e.Value, e.Err) }
func (e *URIError) Unwrap() error { return e.Err }

// JSONPointerError wraps a syntax or evaluation error at the pointer layer.
type JSONPointerError struct {
	Pointer string
	Err     error
}

func (e *JSONPointerError) Error() string {
	return fmt.Sprintf("json pointer error: %q: %v", e.Pointer, e.Err)
}
func (e *JSONPointerError) Unwrap() error { return e.Err }

// === JSON tree (component A) errors ===
var (
	// ErrNotIndexable is returned when indexing a scalar node.
	ErrNotIndexable = errors.New("cannot index a scalar json node")

	// ErrIndexOutOfRange is returned when an array index is out of bounds.
	ErrIndexOutOfRange = errors.New("array index out of range")

	// ErrPropertyNotFound is returned when an object member does not exist.
	ErrPropertyNotFound = errors.New("object property not found")

	// ErrUnsupportedValueType is returned when a plain Go value has no JSON representation.
	ErrUnsupportedValueType = errors.New("value has no json representation")
)

// JSONError reports misuse of the JSON tree model (spec.md §7).
type JSONError struct {
	Op  string
	Err error
}

func (e *JSONError) Error() string { return fmt.Sprintf("json: %s: %v", e.Op, e.Err) }
func (e *JSONError) Unwrap() error { return e.Err }

// === Resource layer errors ===

// BaseURIConflictError is returned when a non-root resource's uri disagrees
// with its resource root's base uri (spec.md §4.C).
type BaseURIConflictError struct {
	URI     string
	RootURI string
}

func (e *BaseURIConflictError) Error() string {
	return fmt.Sprintf("base uri conflict: %q does not share a base with resource root %q", e.URI, e.RootURI)
}

// DuplicateRootURIError is returned when two distinct resource roots in the
// same cache claim the same uri.
type DuplicateRootURIError struct {
	URI   string
	First string
	Other string
}

func (e *DuplicateRootURIError) Error() string {
	return fmt.Sprintf("duplicate resource root uri %q at %q and %q", e.URI, e.First, e.Other)
}

// DuplicateAnchorError is returned when an anchor name is declared twice
// within the same resource with different targets.
// Grounded on other_examples santhosh-tekuri-jsonschema root.go.
type DuplicateAnchorError struct {
	Anchor   string
	URI      string
	FirstPtr string
	OtherPtr string
}

func (e *DuplicateAnchorError) Error() string {
	return fmt.Sprintf("duplicate anchor %q in %q: %q and %q", e.Anchor, e.URI, e.FirstPtr, e.OtherPtr)
}

// AnchorNotFoundError is returned when a fragment names an anchor that was
// never declared in the target resource.
type AnchorNotFoundError struct {
	URI       string
	Reference string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor not found: %q in %q", e.Reference, e.URI)
}

// ResourceError reports URI classification conflicts and other resource
// layer misuse not covered by a more specific type (spec.md §7).
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string { return fmt.Sprintf("resource: %s: %v", e.Op, e.Err) }
func (e *ResourceError) Unwrap() error { return e.Err }

var (
	// ErrResourceNotReady is returned when a resource is read before registration completes.
	ErrResourceNotReady = errors.New("resource not ready")
)

// === Catalog errors ===

// CatalogError reports catalog-layer failures: unknown URIs, missing
// sources, loader failures, duplicate/invalid base URIs, missing
// metaschemas, or a cache-id already in use (spec.md §7).
type CatalogError struct {
	Op  string
	URI string
	Err error
}

func (e *CatalogError) Error() string {
	if e.URI != "" {
		return fmt.Sprintf("catalog: %s: %q: %v", e.Op, e.URI, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %v", e.Op, e.Err)
}
func (e *CatalogError) Unwrap() error { return e.Err }

var (
	// ErrNoSourceForURI is returned when no registered source can serve a URI.
	ErrNoSourceForURI = errors.New("no source registered for uri")

	// ErrInvalidBaseURI is returned when add_uri_source is given a malformed base URI.
	ErrInvalidBaseURI = errors.New("invalid base uri for source registration")

	// ErrUnknownVocabulary names an unregistered vocabulary uri. Catalog.Vocabulary
	// reports a miss with its boolean result instead of this value.
	ErrUnknownVocabulary = errors.New("unknown vocabulary")

	// ErrUnknownRequiredVocabulary is returned when a metaschema requires an unregistered vocabulary.
	ErrUnknownRequiredVocabulary = errors.New("unknown required vocabulary")

	// ErrMetaschemaNotFound is returned when a dialect's metaschema is unavailable and was not pre-created.
	ErrMetaschemaNotFound = errors.New("metaschema not found")

	// ErrMetaschemaInvalid is returned when a metaschema fails to validate against itself.
	ErrMetaschemaInvalid = errors.New("metaschema is not valid against itself")

	// ErrCacheIDInUse names a cache id that is already in use. A uri collision in
	// addResource is reported as DuplicateRootURIError or DuplicateAnchorError instead.
	ErrCacheIDInUse = errors.New("cache id already in use")

	// ErrSchemaNotFound names a schema missing from the cache. GetSchema reports a
	// uri no source can serve with ErrNoSourceForURI instead.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrUnresolvedReference names a $ref/$dynamicRef with no target. ResolveReferences
	// returns the unresolved uris as strings, and evaluation records a "ref" failure.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// === Schema compiler errors ===

// JSONSchemaError reports structural problems discovered during
// compilation: an invalid keyword value shape, an unknown required
// vocabulary, or a relative $id with no base (spec.md §7).
type JSONSchemaError struct {
	Location string
	Keyword  string
	Err      error
}

func (e *JSONSchemaError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("schema error at %q (keyword %q): %v", e.Location, e.Keyword, e.Err)
	}
	return fmt.Sprintf("schema error at %q: %v", e.Location, e.Err)
}
func (e *JSONSchemaError) Unwrap() error { return e.Err }

var (
	// ErrInvalidKeywordValue is returned when a keyword's value has the wrong shape for compilation to proceed.
	ErrInvalidKeywordValue = errors.New("invalid keyword value")

	// ErrNotASchema is returned when a value used as a schema is neither an object nor a boolean.
	ErrNotASchema = errors.New("value is not a valid schema (must be object or boolean)")

	// ErrCyclicVocabularyDependency is returned when keyword dependency sorting detects a cycle.
	ErrCyclicVocabularyDependency = errors.New("cyclic keyword dependency")
)
