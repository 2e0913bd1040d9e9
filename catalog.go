package jsonschema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultCacheID names the cache scope used when a caller does not supply
// one of its own. "__meta__" is reserved for metaschemas (spec.md §4.D).
const (
	DefaultCacheID = "default"
	MetaCacheID    = "__meta__"
)

// Source fetches the raw bytes backing a resource, given the path that
// remains after the matching base-URI prefix (spec.md §4.D's
// add_uri_source) has been stripped off the requested URI. Registered
// against a base URI prefix on a Catalog (spec.md §6 "Source adapters"),
// mirroring the teacher's Loaders map (compiler.go) generalized to carry a
// context and a prefix-relative path instead of a scheme.
type Source func(ctx context.Context, path string) ([]byte, error)

// sourceEntry pairs a registered base-URI prefix with its Source. prefix ""
// is the catch-all installed by add_uri_source(None, ...) (spec.md §4.D).
type sourceEntry struct {
	prefix string
	src    Source
}

// Catalog is the process-wide (or scope-wide) registry of resources,
// vocabularies and dialects: spec.md §4.D. Mutating operations take the
// write lock; evaluation-time lookups take the read lock, so concurrent
// Evaluate calls never block each other (teacher's compiler.go mu
// sync.RWMutex pattern, generalized from "compiled schema cache" to
// "resource catalog").
type Catalog struct {
	mu sync.RWMutex

	sources []sourceEntry // base-URI prefix -> loader, longest-prefix-wins at Fetch time

	resources map[string]map[string]*Resource // cacheID -> normalized uri -> resource
	rootURIs  map[string]map[string]string    // cacheID -> normalized root uri -> first-registering pointer (for DuplicateRootURIError)
	anchors   map[string]map[string]string    // cacheID -> "rootURI#anchor" -> first-registering pointer

	vocabularies map[string]*Vocabulary
	dialects     map[string]*Dialect

	formats         map[string]FormatValidator // format name -> validator, default set plus RegisterFormat additions
	assertedFormats map[string]bool            // format name -> assert failures instead of annotating only

	mediaTypes map[string]MediaTypeParser // media type name -> parser, default set plus RegisterMediaType additions

	unresolved map[string][]*Schema // cacheID+uri -> schemas awaiting that uri to appear
}

// NewCatalog constructs a Catalog holding no schema resources, seeded with
// the default format validators and media-type parsers, the catch-all
// HTTP(S) source, and the 2019-09/2020-12 dialects, the way the teacher's
// NewCompiler wires setupLoaders.
func NewCatalog() *Catalog {
	c := &Catalog{
		resources:    make(map[string]map[string]*Resource),
		rootURIs:     make(map[string]map[string]string),
		anchors:      make(map[string]map[string]string),
		vocabularies: make(map[string]*Vocabulary),
		dialects:     make(map[string]*Dialect),
		formats:      make(map[string]FormatValidator, len(defaultFormats)),
		unresolved:   make(map[string][]*Schema),
	}
	for name, fn := range defaultFormats {
		c.formats[name] = fn
	}
	c.mediaTypes = make(map[string]MediaTypeParser, len(defaultMediaTypes))
	for name, fn := range defaultMediaTypes {
		c.mediaTypes[name] = fn
	}
	c.setupDefaultSources()
	registerCoreDialects(c)
	return c
}

// RegisterFormat adds or overrides a named format validator (spec.md §6
// "custom format validators"), mirroring the teacher's
// Compiler.RegisterFormat.
func (c *Catalog) RegisterFormat(name string, fn FormatValidator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats[name] = fn
}

// AssertFormat switches a format name from annotation-only to assertion
// mode (spec.md §6 Configuration: "enabled format validators, default
// empty — when empty, format is annotation-only").
func (c *Catalog) AssertFormat(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.assertedFormats == nil {
		c.assertedFormats = make(map[string]bool)
	}
	c.assertedFormats[name] = true
}

func (c *Catalog) format(name string) (FormatValidator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.formats[name]
	return fn, ok
}

func (c *Catalog) formatAsserted(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.assertedFormats[name]
}

// RegisterMediaType adds or overrides a contentMediaType parser (spec.md §6
// "custom media type parsers"), mirroring the teacher's setupMediaTypes.
func (c *Catalog) RegisterMediaType(name string, fn MediaTypeParser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mediaTypes[name] = fn
}

func (c *Catalog) mediaType(name string) (MediaTypeParser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.mediaTypes[name]
	return fn, ok
}

// setupDefaultSources installs the catch-all http(s) loader (spec.md §6
// "the default http(s) loaders"), registered with no base-URI prefix
// (add_uri_source(None, ...)) so any absolute http(s) URL falls through to
// it when no more specific prefix has been registered.
func (c *Catalog) setupDefaultSources() {
	client := &http.Client{Timeout: 10 * time.Second}
	httpLoader := func(ctx context.Context, path string) ([]byte, error) {
		if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
			return nil, &CatalogError{Op: "fetch", URI: path, Err: ErrNoSourceForURI}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, &CatalogError{Op: "fetch", URI: path, Err: err}
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, &CatalogError{Op: "fetch", URI: path, Err: err}
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			return nil, &CatalogError{Op: "fetch", URI: path, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return io.ReadAll(resp.Body)
	}
	if err := c.AddSource("", httpLoader); err != nil {
		panic(err) // "" is always a valid catch-all prefix
	}
}

// AddSource registers the loader used to fetch resources whose absolute URI
// has baseURI as its longest-matching prefix (spec.md §4.D
// add_uri_source(base_uri | None, source)). baseURI, if non-empty, must be
// absolute, normalized, fragment-free, and end in "/"; an empty baseURI
// installs the catch-all consulted when no more specific prefix matches.
// Re-registering the same prefix overwrites it, last-writer-wins.
func (c *Catalog) AddSource(baseURI string, src Source) error {
	prefix := ""
	if baseURI != "" {
		u, err := ParseURI(baseURI)
		if err != nil {
			return &CatalogError{Op: "register source", URI: baseURI, Err: ErrInvalidBaseURI}
		}
		if !u.HasAbsoluteBase() {
			return &CatalogError{Op: "register source", URI: baseURI, Err: ErrInvalidBaseURI}
		}
		prefix = u.Normalized()
		if !strings.HasSuffix(prefix, "/") {
			return &CatalogError{Op: "register source", URI: baseURI, Err: ErrInvalidBaseURI}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.sources {
		if c.sources[i].prefix == prefix {
			c.sources[i].src = src
			return nil
		}
	}
	c.sources = append(c.sources, sourceEntry{prefix: prefix, src: src})
	return nil
}

// Fetch retrieves and parses the document at uri using the registered
// Source whose base-URI prefix is the longest one matching uri (spec.md §6
// load_json/load_yaml — "selects the source whose registered prefix is the
// longest one matching str(uri); delegates the remaining path").
func (c *Catalog) Fetch(ctx context.Context, uri *URI) (*Node, error) {
	full := uri.WithoutFragment().Normalized()

	c.mu.RLock()
	var best *sourceEntry
	for i := range c.sources {
		e := &c.sources[i]
		if !strings.HasPrefix(full, e.prefix) {
			continue
		}
		if best == nil || len(e.prefix) > len(best.prefix) {
			best = e
		}
	}
	c.mu.RUnlock()
	if best == nil {
		return nil, &CatalogError{Op: "fetch", URI: uri.String(), Err: ErrNoSourceForURI}
	}

	path := full[len(best.prefix):]
	data, err := best.src(ctx, path)
	if err != nil {
		return nil, &CatalogError{Op: "fetch", URI: uri.String(), Err: err}
	}
	return Load(data)
}

// cacheFor returns (creating if necessary) the per-cacheID resource map.
func (c *Catalog) cacheFor(cacheID string) map[string]*Resource {
	m, ok := c.resources[cacheID]
	if !ok {
		m = make(map[string]*Resource)
		c.resources[cacheID] = m
	}
	return m
}

// addResource registers res under uri within cacheID, refusing a collision
// with a different already-registered root (spec.md §4.D's
// DuplicateRootURIError / DuplicateAnchorError distinction: a second
// registration of the very same resource at the very same uri is a no-op,
// but a different resource claiming an already-bound uri is an error).
func (c *Catalog) addResource(cacheID string, uri *URI, res *Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.cacheFor(cacheID)
	key := uri.Normalized()
	if existing, ok := m[key]; ok {
		if existing == res {
			return nil
		}
		if _, hasFrag := uri.Fragment(); hasFrag {
			return &CatalogError{Op: "register", URI: key, Err: &DuplicateAnchorError{
				Anchor: key, URI: res.resourceRoot.baseURI.String(),
				FirstPtr: existing.Node.Path().String(), OtherPtr: res.Node.Path().String(),
			}}
		}
		return &CatalogError{Op: "register", URI: key, Err: &DuplicateRootURIError{
			URI: key, First: existing.Node.Path().String(), Other: res.Node.Path().String(),
		}}
	}
	m[key] = res
	return nil
}

func (c *Catalog) delResource(cacheID string, uri *URI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cacheFor(cacheID), uri.Normalized())
}

// GetResource looks up a previously registered resource by exact (already
// resolved, normalized) URI.
func (c *Catalog) GetResource(cacheID string, uri *URI) (*Resource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.resources[cacheID][uri.Normalized()]
	return res, ok
}

// Vocabulary looks up a registered vocabulary by its identifying URI.
func (c *Catalog) Vocabulary(uri string) (*Vocabulary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vocabularies[uri]
	return v, ok
}

// RegisterVocabulary binds uri to a set of keyword classes (spec.md §4.E
// create_vocabulary). Re-registering the same uri overwrites it, matching
// the teacher's RegisterFormat/RegisterLoader "last writer wins" idiom.
func (c *Catalog) RegisterVocabulary(v *Vocabulary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vocabularies[v.URI] = v
}

// Dialect looks up a registered dialect (metaschema) by its $schema URI.
func (c *Catalog) Dialect(uri string) (*Dialect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.dialects[uri]
	return d, ok
}

// RegisterDialect registers a metaschema's vocabulary declarations in the
// catalog's dialect map, keyed by its $schema URI and kept apart from the
// per-cacheID schema resources, so dialect resolution never collides with
// them (spec.md §4.D's cache-scoping rule).
func (c *Catalog) RegisterDialect(d *Dialect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialects[d.SchemaURI] = d
}

// trackUnresolved records that schema still has an unresolved reference to
// uri within cacheID, so a later addResource for that uri can retry it
// (ported from the teacher's Compiler.trackUnresolvedReferences).
func (c *Catalog) trackUnresolved(cacheID string, uri *URI, schema *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheID + "\x00" + uri.Normalized()
	for _, existing := range c.unresolved[key] {
		if existing == schema {
			return
		}
	}
	c.unresolved[key] = append(c.unresolved[key], schema)
}

// ResolveReferences retries every deferred $ref/$dynamicRef resolution
// queued against cacheID (spec.md §4.D resolve_references), returning the
// URIs that remain unresolved after the pass.
func (c *Catalog) ResolveReferences(cacheID string) []string {
	c.mu.Lock()
	var retry []*Schema
	var stillUnresolved []string
	for key, schemas := range c.unresolved {
		if !hasCachePrefix(key, cacheID) {
			continue
		}
		uriPart := key[len(cacheID)+1:]
		lookup := uriPart
		if i := strings.IndexByte(uriPart, '#'); i >= 0 && (i == len(uriPart)-1 || uriPart[i+1] == '/') {
			lookup = uriPart[:i] // empty and JSON-pointer fragments are registered under their document's uri
		}
		if _, ok := c.resources[cacheID][lookup]; ok {
			retry = append(retry, schemas...)
			delete(c.unresolved, key)
		} else {
			stillUnresolved = append(stillUnresolved, uriPart)
		}
	}
	c.mu.Unlock()

	for _, s := range retry {
		s.resolveDeferredRefs()
	}
	return stillUnresolved
}

func hasCachePrefix(key, cacheID string) bool {
	return len(key) > len(cacheID) && key[:len(cacheID)] == cacheID && key[len(cacheID)] == 0
}
