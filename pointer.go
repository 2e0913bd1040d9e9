package jsonschema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Pointer is an ordered sequence of decoded JSON Pointer segments
// (spec.md §3 "JSON Pointer"). An empty Pointer addresses the document root.
type Pointer struct {
	tokens []string
}

// RootPointer is the empty pointer, addressing the document root.
var RootPointer = &Pointer{}

// ParsePointer parses a JSON Pointer string ("" or starting with "/") into
// its decoded segments. Segment parsing (the ~0/~1 escapes) is delegated to
// the teacher's own jsonpointer dependency (see ref.go's resolveJSONPointer).
func ParsePointer(s string) (*Pointer, error) {
	if s == "" {
		return &Pointer{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, &JSONPointerError{Pointer: s, Err: ErrInvalidPointerSyntax}
	}
	tokens := jsonpointer.Parse(s)
	return &Pointer{tokens: tokens}, nil
}

// ParsePointerFromFragment parses the decoded form of a URI fragment (the
// part after '#', already percent-decoded) as a JSON Pointer.
func ParsePointerFromFragment(fragment string) (*Pointer, error) {
	return ParsePointer(fragment)
}

// NewPointer builds a pointer from already-decoded segments.
func NewPointer(tokens ...string) *Pointer {
	return &Pointer{tokens: append([]string(nil), tokens...)}
}

// Tokens returns the decoded segments.
func (p *Pointer) Tokens() []string {
	if p == nil {
		return nil
	}
	return p.tokens
}

// IsEmpty reports whether the pointer addresses the document root.
func (p *Pointer) IsEmpty() bool { return p == nil || len(p.tokens) == 0 }

// Append returns a new pointer with token appended.
func (p *Pointer) Append(token string) *Pointer {
	tokens := append(append([]string(nil), p.Tokens()...), token)
	return &Pointer{tokens: tokens}
}

// Parent returns the pointer with its last token removed, or RootPointer.
func (p *Pointer) Parent() *Pointer {
	if p.IsEmpty() {
		return RootPointer
	}
	return &Pointer{tokens: p.tokens[:len(p.tokens)-1]}
}

// String renders the pointer per RFC 6901 ("/a/b/0").
func (p *Pointer) String() string {
	if p.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteByte('/')
		b.WriteString(escapePointerToken(t))
	}
	return b.String()
}

// URIFragment renders the pointer as a percent-encoded URI fragment
// (without the leading '#'), per spec.md §3's uri_fragment() encoder.
func (p *Pointer) URIFragment() string {
	if p.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(escapePointerToken(t)))
	}
	return b.String()
}

func escapePointerToken(t string) string {
	t = strings.ReplaceAll(t, "~", "~0")
	t = strings.ReplaceAll(t, "/", "~1")
	return t
}

// Evaluate walks root following the pointer's segments, returning the
// addressed node or an error if a segment is missing or a leaf is reached
// before the pointer is exhausted (spec.md §3/§4.B).
func (p *Pointer) Evaluate(root *Node) (*Node, error) {
	cur := root
	for i, tok := range p.Tokens() {
		switch cur.Kind() {
		case KindObject:
			child, ok := cur.Member(tok)
			if !ok {
				return nil, &JSONPointerError{Pointer: p.String(), Err: ErrPointerSegmentNotFound}
			}
			cur = child
		case KindArray:
			idx, err := arrayIndex(tok, cur.Len())
			if err != nil {
				return nil, &JSONPointerError{Pointer: p.String(), Err: err}
			}
			cur = cur.Element(idx)
		default:
			if i < len(p.Tokens()) {
				return nil, &JSONPointerError{Pointer: p.String(), Err: ErrPointerPastLeaf}
			}
		}
	}
	return cur, nil
}

func arrayIndex(tok string, length int) (int, error) {
	if tok == "-" {
		return -1, ErrPointerSegmentNotFound
	}
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return -1, ErrInvalidPointerSyntax
	}
	idx, err := strconv.Atoi(tok)
	if err != nil || idx < 0 || idx >= length {
		return -1, ErrPointerSegmentNotFound
	}
	return idx, nil
}
