package jsonschema

import (
	"net/url"
	"strings"
)

// URI is a normalized RFC 3986 value with the operations spec.md §3/§4.B
// require. Resolution is delegated to stdlib net/url (ResolveReference
// already implements RFC 3986 §5) — the teacher itself has no third-party
// URI library and resolves references with net/url directly (utils.go's
// resolveRelativeURI), so this mirrors the teacher's own idiom rather than
// reaching past it.
type URI struct {
	u           *url.URL
	hasFragment bool // distinguishes "no fragment" (nil) from "" (empty fragment)
}

// ParseURI parses s as a URI-reference (absolute or relative).
func ParseURI(s string) (*URI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, &URIError{Value: s, Err: err}
	}
	return &URI{u: u, hasFragment: strings.Contains(s, "#")}, nil
}

// MustParseURI is a convenience wrapper for compile-time-known literals,
// grounded on the teacher's habit of ignoring parse errors for constants it
// controls (e.g. its hardcoded dialect metaschema URIs).
func MustParseURI(s string) *URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Scheme returns the URI scheme ("" if none).
func (u *URI) Scheme() string { return u.u.Scheme }

// HasAbsoluteBase reports whether the URI has a scheme and no fragment
// ambiguity — i.e. it can serve as a base URI on its own (spec.md §3).
func (u *URI) HasAbsoluteBase() bool {
	return u.u.Scheme != "" && !u.hasFragment
}

// IsAbsolute reports whether the URI has a scheme (ignoring fragment).
func (u *URI) IsAbsolute() bool { return u.u.Scheme != "" }

// Fragment returns (fragment, true) if a fragment is present (possibly
// empty string), or ("", false) if there is no fragment at all — the
// None-vs-empty-string distinction spec.md §4.B calls out.
func (u *URI) Fragment() (string, bool) {
	if !u.hasFragment {
		return "", false
	}
	return u.u.Fragment, true
}

// WithoutFragment returns a copy of u with no fragment at all.
func (u *URI) WithoutFragment() *URI {
	cp := *u.u
	cp.Fragment = ""
	cp.RawFragment = ""
	return &URI{u: &cp, hasFragment: false}
}

// Copy returns a copy of u with its fragment replaced. Passing hasFragment
// false strips the fragment entirely.
func (u *URI) Copy(fragment string, hasFragment bool) *URI {
	cp := *u.u
	if hasFragment {
		cp.Fragment = fragment
	} else {
		cp.Fragment = ""
		cp.RawFragment = ""
	}
	return &URI{u: &cp, hasFragment: hasFragment}
}

// Resolve resolves u, which may be relative, against base per RFC 3986 §5.
func (u *URI) Resolve(base *URI) *URI {
	if base == nil {
		return u
	}
	resolved := base.u.ResolveReference(u.u)
	return &URI{u: resolved, hasFragment: u.hasFragment}
}

// String renders the normalized URI (empty fragment renders as a trailing "#").
func (u *URI) String() string {
	s := u.u.String()
	if u.hasFragment && u.u.Fragment == "" && !strings.HasSuffix(s, "#") {
		s += "#"
	}
	return s
}

// Normalized returns the canonical string identity used for equality and
// catalog hashing (spec.md §3 "Normalized form is the canonical identity").
func (u *URI) Normalized() string { return u.String() }

// Equal compares two URIs by normalized string identity.
func (u *URI) Equal(other *URI) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Normalized() == other.Normalized()
}

// splitURIFragment separates a raw reference string into its base and
// fragment parts, also reporting whether a fragment was present at all
// (vs. a "" empty-fragment). Mirrors the teacher's splitRef (utils.go) but
// preserves the None/"" distinction the teacher's string-based model drops.
func splitURIFragment(ref string) (base string, fragment string, hasFragment bool) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ref, "", false
	}
	return ref[:idx], ref[idx+1:], true
}
