package jsonschema

// annotationClass implements the meta-data vocabulary's pure-annotation
// keywords (title, description, default, deprecated, readOnly, writeOnly,
// examples): they never affect validity, only surface their literal value
// back through the result tree (spec.md §4.E "meta-data vocabulary").
type annotationClass struct{ name string }

func (c annotationClass) Name() string          { return c.name }
func (annotationClass) AppliesTo() []Kind       { return nil }
func (annotationClass) DependsOn() []string     { return nil }
func (c annotationClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	return &annotationHandler{name: c.name, value: value}, nil
}

type annotationHandler struct {
	name  string
	value *Node
}

func (h *annotationHandler) Evaluate(_ *Node, result *Result, _ *Engine) {
	result.AddAnnotation(h.name, h.value.Value())
}

func newMetaDataClasses() []KeywordClass {
	names := []string{"title", "description", "default", "deprecated", "readOnly", "writeOnly", "examples", "$comment"}
	classes := make([]KeywordClass, len(names))
	for i, n := range names {
		classes[i] = annotationClass{name: n}
	}
	return classes
}

// exampleClass is the single keyword of the repo's own extension
// vocabulary (SPEC_FULL.md §3.E "x-examples"): a non-standard sibling of
// the meta-data vocabulary's `examples`, demonstrating how a catalog can
// register a custom vocabulary URI and have the dialect dispatch table
// pick it up the same way it does the core vocabularies.
type exampleClass struct{}

func (exampleClass) Name() string        { return "example" }
func (exampleClass) AppliesTo() []Kind   { return nil }
func (exampleClass) DependsOn() []string { return nil }
func (exampleClass) Bind(_ *CompileContext, value *Node) (Handler, error) {
	return &annotationHandler{name: "example", value: value}, nil
}

// ExtensionVocabularyURI identifies the custom `example` keyword vocabulary
// a dialect may opt into via $vocabulary (not part of any official draft).
const ExtensionVocabularyURI = "https://go-jsonschema.local/vocab/x-examples"
