package jsonschema

import (
	"bytes"
	"math/big"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-yaml"
)

// Kind tags the six JSON value shapes plus the integer/fractional split
// that JSON Schema's "type" keyword needs (spec.md §3 "JSON node").
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindNumber // fractional; see Node.Number() for the unified numeric view
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node is the in-memory JSON model: a tagged value with a parent/key
// back-reference and a cached JSON Pointer path (spec.md §3/§4.A).
type Node struct {
	kind Kind

	boolVal bool
	numVal  *Number
	strVal  string
	arrVal  []*Node
	objKeys []string
	objVal  map[string]*Node

	parent    *Node
	key       string // array index as decimal string, or object member name
	pathCache *Pointer
	pathDirty bool
}

// Kind reports the node's JSON Schema type tag.
func (n *Node) Kind() Kind { return n.kind }

// IsNull, Bool, Str, Number, Len, Member, Element, Keys, Elements are the
// read accessors; they panic-free no-op on mismatched kinds (mirrors the
// teacher's tolerant getDataType-style accessors in utils.go).
func (n *Node) IsNull() bool   { return n.kind == KindNull }
func (n *Node) Bool() bool     { return n.boolVal }
func (n *Node) Str() string    { return n.strVal }
func (n *Node) Number() *Number { return n.numVal }

func (n *Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.arrVal)
	case KindObject:
		return len(n.objKeys)
	default:
		return 0
	}
}

func (n *Node) Element(i int) *Node {
	if n.kind != KindArray || i < 0 || i >= len(n.arrVal) {
		return nil
	}
	return n.arrVal[i]
}

func (n *Node) Elements() []*Node { return n.arrVal }

func (n *Node) Member(key string) (*Node, bool) {
	if n.kind != KindObject {
		return nil, false
	}
	v, ok := n.objVal[key]
	return v, ok
}

// Keys returns object member names in insertion order.
func (n *Node) Keys() []string {
	if n.kind != KindObject {
		return nil
	}
	return n.objKeys
}

// Parent returns the enclosing node, or nil at the document root.
func (n *Node) Parent() *Node { return n.parent }

// Key returns this node's index within its parent (array index as a
// decimal string, or object member name); "" at the document root.
func (n *Node) Key() string { return n.key }

// Path returns the cached JSON Pointer from the document root to this node
// (spec.md §3 invariant (i)), recomputing it if a preceding mutation
// invalidated the cache.
func (n *Node) Path() *Pointer {
	if n.pathCache != nil && !n.pathDirty {
		return n.pathCache
	}
	var tokens []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		tokens = append([]string{cur.key}, tokens...)
	}
	n.pathCache = NewPointer(tokens...)
	n.pathDirty = false
	return n.pathCache
}

// invalidatePath marks this node's and all descendants' cached paths dirty;
// called after any mutation that changes this node's position.
func (n *Node) invalidatePath() {
	n.pathDirty = true
	switch n.kind {
	case KindArray:
		for _, c := range n.arrVal {
			c.invalidatePath()
		}
	case KindObject:
		for _, k := range n.objKeys {
			n.objVal[k].invalidatePath()
		}
	}
}

// === Construction ===

func newScalar(kind Kind) *Node { return &Node{kind: kind} }

// NewNull, NewBool, NewString, NewInteger, NewNumber construct detached
// scalar nodes for in-memory schema/instance construction.
func NewNull() *Node { return newScalar(KindNull) }
func NewBool(b bool) *Node {
	n := newScalar(KindBool)
	n.boolVal = b
	return n
}
func NewString(s string) *Node {
	n := newScalar(KindString)
	n.strVal = s
	return n
}
func NewInteger(i int64) *Node {
	n := newScalar(KindInteger)
	n.numVal = NewNumberFromInt(i)
	return n
}
func NewNumber(f float64) *Node {
	num := NewNumberFromFloat(f)
	n := newScalar(kindForNumber(num))
	n.numVal = num
	return n
}

func kindForNumber(num *Number) Kind {
	if num.IsInteger() {
		return KindInteger
	}
	return KindNumber
}

// NewArray builds an array node, attaching children and assigning indices.
func NewArray(children ...*Node) *Node {
	n := &Node{kind: KindArray, arrVal: make([]*Node, 0, len(children))}
	for _, c := range children {
		n.appendElement(c)
	}
	return n
}

// NewObject builds an object node from ordered key/value pairs.
func NewObject(keys []string, values []*Node) *Node {
	n := &Node{kind: KindObject, objVal: make(map[string]*Node, len(keys))}
	for i, k := range keys {
		n.appendMember(k, values[i])
	}
	return n
}

func (n *Node) appendElement(child *Node) {
	idx := len(n.arrVal)
	child.parent = n
	child.key = itoaIndex(idx)
	n.arrVal = append(n.arrVal, child)
}

func (n *Node) appendMember(key string, child *Node) {
	if _, exists := n.objVal[key]; !exists {
		n.objKeys = append(n.objKeys, key)
	}
	child.parent = n
	child.key = key
	n.objVal[key] = child
}

func itoaIndex(i int) string {
	return big.NewInt(int64(i)).String()
}

// === Mutation (spec.md §4.A) ===

// Set replaces an object member's value (or appends it if new), invalidating
// caches on the old and new subtree.
func (n *Node) Set(key string, value *Node) error {
	if n.kind != KindObject {
		return &JSONError{Op: "set", Err: ErrNotIndexable}
	}
	if old, ok := n.objVal[key]; ok {
		old.parent = nil
		old.invalidatePath()
	}
	n.appendMember(key, value)
	n.invalidatePath()
	return nil
}

// Insert adds an element at index i of an array node, shifting and re-keying
// subsequent siblings (spec.md §3 "deletion from an array re-keys
// siblings and invalidates their cached paths" — insertion is symmetric).
func (n *Node) Insert(i int, value *Node) error {
	if n.kind != KindArray {
		return &JSONError{Op: "insert", Err: ErrNotIndexable}
	}
	if i < 0 || i > len(n.arrVal) {
		return &JSONError{Op: "insert", Err: ErrIndexOutOfRange}
	}
	n.arrVal = append(n.arrVal, nil)
	copy(n.arrVal[i+1:], n.arrVal[i:])
	n.arrVal[i] = value
	value.parent = n
	n.reindexFrom(i)
	n.invalidatePath()
	return nil
}

// Delete removes an object member or array element.
func (n *Node) Delete(key string) error {
	switch n.kind {
	case KindObject:
		child, ok := n.objVal[key]
		if !ok {
			return &JSONError{Op: "delete", Err: ErrPropertyNotFound}
		}
		child.parent = nil
		delete(n.objVal, key)
		for i, k := range n.objKeys {
			if k == key {
				n.objKeys = append(n.objKeys[:i], n.objKeys[i+1:]...)
				break
			}
		}
		return nil
	case KindArray:
		idx, err := arrayIndex(key, len(n.arrVal))
		if err != nil {
			return &JSONError{Op: "delete", Err: ErrIndexOutOfRange}
		}
		n.arrVal[idx].parent = nil
		n.arrVal = append(n.arrVal[:idx], n.arrVal[idx+1:]...)
		n.reindexFrom(idx)
		n.invalidatePath()
		return nil
	default:
		return &JSONError{Op: "delete", Err: ErrNotIndexable}
	}
}

func (n *Node) reindexFrom(i int) {
	for j := i; j < len(n.arrVal); j++ {
		n.arrVal[j].key = itoaIndex(j)
	}
}

// === Equality (spec.md §4.A: "RFC 8259 equality, numbers compared by value") ===

// Equal implements JSON equality: numbers compare by exact value regardless
// of integer/fractional kind (1 == 1.0), objects compare as key sets
// regardless of member order, arrays compare element-wise in order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a.kind {
	case KindInteger, KindNumber:
		if b.kind != KindInteger && b.kind != KindNumber {
			return false
		}
		return a.numVal.Cmp(b.numVal) == 0
	case KindNull:
		return b.kind == KindNull
	case KindBool:
		return b.kind == KindBool && a.boolVal == b.boolVal
	case KindString:
		return b.kind == KindString && a.strVal == b.strVal
	case KindArray:
		if b.kind != KindArray || len(a.arrVal) != len(b.arrVal) {
			return false
		}
		for i := range a.arrVal {
			if !Equal(a.arrVal[i], b.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if b.kind != KindObject || len(a.objKeys) != len(b.objKeys) {
			return false
		}
		for k, av := range a.objVal {
			bv, ok := b.objVal[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// === Round trip (spec.md §4.A "value (lazy round-trip to plain value)") ===

// Value converts the node tree to plain Go values (map[string]any,
// []any, string, bool, nil, and *Number for numbers), suitable for
// re-serialization or for handing to the teacher's own JSON stack.
func (n *Node) Value() any {
	switch n.kind {
	case KindNull:
		return nil
	case KindBool:
		return n.boolVal
	case KindInteger, KindNumber:
		return n.numVal
	case KindString:
		return n.strVal
	case KindArray:
		out := make([]any, len(n.arrVal))
		for i, c := range n.arrVal {
			out[i] = c.Value()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.objKeys))
		for _, k := range n.objKeys {
			out[k] = n.objVal[k].Value()
		}
		return out
	default:
		return nil
	}
}

// EqualValue reports deep-equality against a plain Go literal, by first
// lifting it to a Node; a literal FromValue cannot lift compares unequal.
func (n *Node) EqualValue(v any) bool {
	other, err := FromValue(v)
	if err != nil {
		return false
	}
	return Equal(n, other)
}

// === Loading ===

// Load parses JSON source bytes into a Node tree using the teacher's own
// JSON stack (go-json-experiment/json + jsontext), preserving object member
// order and the integer/fractional distinction from the literal text.
func Load(source []byte) (*Node, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(source))
	n, err := decodeValue(dec)
	if err != nil {
		return nil, &JSONError{Op: "load", Err: err}
	}
	return n, nil
}

// LoadYAML parses YAML source bytes (schemas or instances authored as
// YAML) via the teacher's goccy/go-yaml dependency, then lifts the decoded
// value into a Node tree with FromValue.
func LoadYAML(source []byte) (*Node, error) {
	var raw any
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, &JSONError{Op: "load yaml", Err: err}
	}
	return FromValue(raw)
}

func decodeValue(dec *jsontext.Decoder) (*Node, error) {
	switch dec.PeekKind() {
	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		obj := &Node{kind: KindObject, objVal: make(map[string]*Node)}
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			child, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.appendMember(keyTok.String(), child)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		arr := &Node{kind: KindArray}
		for dec.PeekKind() != ']' {
			child, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr.appendElement(child)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	case '"':
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return nil, err
		}
		return NewString(s), nil
	case '0':
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		num, err := NewNumberFromString(string(val))
		if err != nil {
			return nil, err
		}
		return &Node{kind: kindForNumber(num), numVal: num}, nil
	case 't', 'f':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		return NewBool(tok.Bool()), nil
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return NewNull(), nil
	default:
		return nil, ErrUnsupportedValueType
	}
}

// FromValue lifts a plain Go value (as produced by json.Unmarshal into
// `any`, or goccy/go-yaml's Unmarshal, or hand-built literals) into a Node
// tree. Object member order follows Go map iteration when the source is a
// map[string]any — callers that need a guaranteed input order should build
// via NewObject or Load instead (spec.md §3 notes this as the documented
// trade-off of constructing from already-decoded Go values).
func FromValue(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case *Number:
		return &Node{kind: kindForNumber(val), numVal: val}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &Node{kind: KindInteger, numVal: NewNumberFromInt(reflectToInt64(val))}, nil
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case []any:
		arr := &Node{kind: KindArray}
		for _, e := range val {
			child, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			arr.appendElement(child)
		}
		return arr, nil
	case map[string]any:
		obj := &Node{kind: KindObject, objVal: make(map[string]*Node)}
		for k, e := range val {
			child, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			obj.appendMember(k, child)
		}
		return obj, nil
	default:
		return nil, &JSONError{Op: "from value", Err: ErrUnsupportedValueType}
	}
}

func fromFloat(f float64) (*Node, error) {
	num := NewNumberFromFloat(f)
	return &Node{kind: kindForNumber(num), numVal: num}, nil
}

func reflectToInt64(v any) int64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	default:
		return 0
	}
}
