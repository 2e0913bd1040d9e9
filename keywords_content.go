package jsonschema

import (
	"encoding/base64"
	"encoding/xml"
	"io"
	"strings"
)

// MediaTypeParser decodes raw bytes (already content-decoded, if
// contentEncoding applied) into a Node tree, so contentSchema can evaluate
// against structured content instead of a bare string (spec.md §3
// "contentSchema evaluates the decoded, parsed value"). Grounded on the
// teacher's compiler.go setupMediaTypes, generalized from a fixed method
// table to a Catalog-registered map the way RegisterFormat is.
type MediaTypeParser func(data []byte) (*Node, error)

var defaultMediaTypes = map[string]MediaTypeParser{
	"application/json": Load,
	"application/yaml": LoadYAML,
	"application/xml":  parseXML,
}

// parseXML lifts an XML document into a Node tree: each element becomes an
// object node keyed by attribute names (prefixed "@"), child element names
// (repeated children collapse into an array), and "#text" for leaf
// character data. This is a structural approximation, not a faithful XML
// information-set model — good enough for contentSchema validation, which
// only cares about the shape JSON Schema keywords can constrain.
func parseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return NewNull(), nil
		}
		if err != nil {
			return nil, &JSONError{Op: "parse xml", Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeXMLElement(dec, start)
		}
	}
}

func decodeXMLElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	var keys []string
	values := map[string]*Node{}
	var text strings.Builder

	put := func(key string, child *Node) {
		if existing, ok := values[key]; ok {
			if existing.Kind() == KindArray {
				existing.appendElement(child)
				return
			}
			arr := NewArray(existing, child)
			values[key] = arr
			return
		}
		keys = append(keys, key)
		values[key] = child
	}

	for _, attr := range start.Attr {
		put("@"+attr.Name.Local, NewString(attr.Value))
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &JSONError{Op: "parse xml", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeXMLElement(dec, t)
			if err != nil {
				return nil, err
			}
			put(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if strings.TrimSpace(text.String()) != "" {
				put("#text", NewString(strings.TrimSpace(text.String())))
			}
			return NewObject(keys, valuesInOrder(keys, values)), nil
		}
	}
}

func valuesInOrder(keys []string, values map[string]*Node) []*Node {
	out := make([]*Node, len(keys))
	for i, k := range keys {
		out[i] = values[k]
	}
	return out
}

// ContentDecoder decodes a string instance's textual encoding into raw
// bytes (e.g. base64) before a media-type parser or contentSchema runs.
type ContentDecoder func(s string) ([]byte, error)

var defaultContentEncodings = map[string]ContentDecoder{
	"base64": func(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) },
}

type contentEncodingClass struct{}

func (contentEncodingClass) Name() string        { return "contentEncoding" }
func (contentEncodingClass) AppliesTo() []Kind   { return stringKinds }
func (contentEncodingClass) DependsOn() []string { return nil }
func (contentEncodingClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindString {
		return nil, &JSONSchemaError{Keyword: "contentEncoding", Err: ErrInvalidKeywordValue}
	}
	return &contentEncodingHandler{name: value.Str()}, nil
}

type contentEncodingHandler struct{ name string }

// Evaluate is annotation-only, per the spec's content vocabulary: a failed
// decode is surfaced only indirectly, through contentSchema finding no
// parseable value.
func (h *contentEncodingHandler) Evaluate(_ *Node, result *Result, _ *Engine) {
	result.AddAnnotation("contentEncoding", h.name)
}

type contentMediaTypeClass struct{}

func (contentMediaTypeClass) Name() string        { return "contentMediaType" }
func (contentMediaTypeClass) AppliesTo() []Kind   { return stringKinds }
func (contentMediaTypeClass) DependsOn() []string { return []string{"contentEncoding"} }
func (contentMediaTypeClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindString {
		return nil, &JSONSchemaError{Keyword: "contentMediaType", Err: ErrInvalidKeywordValue}
	}
	return &contentMediaTypeHandler{name: value.Str()}, nil
}

type contentMediaTypeHandler struct{ name string }

func (h *contentMediaTypeHandler) Evaluate(_ *Node, result *Result, _ *Engine) {
	result.AddAnnotation("contentMediaType", h.name)
}

type contentSchemaClass struct{}

func (contentSchemaClass) Name() string        { return "contentSchema" }
func (contentSchemaClass) AppliesTo() []Kind   { return stringKinds }
func (contentSchemaClass) DependsOn() []string { return []string{"contentEncoding", "contentMediaType"} }
func (contentSchemaClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	sub, err := ctx.CompileSub(value)
	if err != nil {
		return nil, err
	}
	return &contentSchemaHandler{sub: sub, catalog: ctx.Catalog}, nil
}

type contentSchemaHandler struct {
	sub     *Schema
	catalog *Catalog
}

// Evaluate decodes and parses the string instance per any contentEncoding/
// contentMediaType annotated earlier on this same shared Result, then
// evaluates the subschema against the decoded value. Decode or parse
// failure is reported as a contentSchema error, since there is nothing
// meaningful to validate the subschema against.
func (h *contentSchemaHandler) Evaluate(instance *Node, result *Result, engine *Engine) {
	if instance.Kind() != KindString {
		return
	}
	raw := []byte(instance.Str())
	if enc, ok := result.Annotation("contentEncoding"); ok {
		if name, ok := enc.(string); ok {
			if decode, known := defaultContentEncodings[name]; known {
				decoded, err := decode(instance.Str())
				if err != nil {
					result.Fail("contentSchema", "contentEncoding", "value is not validly {encoding}-encoded",
						map[string]any{"encoding": name})
					return
				}
				raw = decoded
			}
		}
	}

	parser := defaultMediaTypes["application/json"]
	if mt, ok := result.Annotation("contentMediaType"); ok {
		if name, ok := mt.(string); ok {
			if p, known := h.catalog.mediaType(name); known {
				parser = p
			}
		}
	}

	decoded, err := parser(raw)
	if err != nil {
		result.Fail("contentSchema", "contentMediaType", "content could not be parsed", nil)
		return
	}
	child := engine.Eval(h.sub, decoded, result.EvaluationPath+"/contentSchema", schemaLocationOf(h.sub), result.InstanceLocation)
	result.AddDetail(child)
}
