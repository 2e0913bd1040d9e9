package jsonschema

import "sort"

// KeywordClass is a schema keyword's compile-time description: its name,
// the instance kinds it applies to, the other keywords (within the same
// schema object) it must be processed after, and how to bind a literal
// value from the schema document into a runnable Handler (spec.md §4.E/§9
// "tagged variant... bind/apply").
type KeywordClass interface {
	Name() string
	AppliesTo() []Kind // nil means "all kinds"
	DependsOn() []string
	Bind(ctx *CompileContext, value *Node) (Handler, error)
}

// Handler is the compiled, runnable form of a keyword occurrence within one
// schema object.
type Handler interface {
	// Evaluate applies the handler to instance, recording pass/fail and any
	// annotation on result, and may recurse into the engine for subschemas.
	Evaluate(instance *Node, result *Result, engine *Engine)
}

// Vocabulary is a named set of keyword classes (spec.md §4.E). A
// metaschema's $vocabulary object selects which vocabularies are active.
type Vocabulary struct {
	URI     string
	Classes []KeywordClass
}

func (v *Vocabulary) classByName(name string) (KeywordClass, bool) {
	for _, kc := range v.Classes {
		if kc.Name() == name {
			return kc, true
		}
	}
	return nil, false
}

// activeClasses resolves the ordered (vocabulary-declaration-order,
// class-declaration-order-within-vocabulary) list of keyword classes for a
// dialect whose $vocabulary selects the given vocabulary URIs, in the order
// they were declared. Unknown required vocabularies are fatal; unknown
// optional ones are skipped (spec.md §4.E).
func activeClasses(catalog *Catalog, vocabURIs []string, required []bool) ([]KeywordClass, error) {
	var classes []KeywordClass
	for i, uri := range vocabURIs {
		v, ok := catalog.Vocabulary(uri)
		if !ok {
			if required[i] {
				return nil, &JSONSchemaError{Keyword: "$vocabulary", Err: ErrUnknownRequiredVocabulary}
			}
			continue
		}
		classes = append(classes, v.Classes...)
	}
	return classes, nil
}

// sortKeywords topologically sorts the keyword names present in a schema
// object, using declOrder (the dialect's vocabulary-declaration order) to
// break ties deterministically (spec.md §4.E "Dispatch rule").
func sortKeywords(present map[string]KeywordClass, declOrder []string) ([]string, error) {
	rank := make(map[string]int, len(declOrder))
	for i, name := range declOrder {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}

	names := make([]string, 0, len(present))
	indeg := make(map[string]int, len(present))
	adj := make(map[string][]string)
	for name := range present {
		indeg[name] = 0
		names = append(names, name)
	}
	for name, kc := range present {
		for _, dep := range kc.DependsOn() {
			if _, ok := present[dep]; !ok {
				continue
			}
			adj[dep] = append(adj[dep], name)
			indeg[name]++
		}
	}

	sort.Slice(names, func(i, j int) bool { return rank[names[i]] < rank[names[j]] })

	var ready []string
	for _, n := range names {
		if indeg[n] == 0 {
			ready = append(ready, n)
		}
	}

	var out []string
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return rank[ready[i]] < rank[ready[j]] })
		next := ready[0]
		ready = ready[1:]
		out = append(out, next)
		for _, dependent := range adj[next] {
			indeg[dependent]--
			if indeg[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	if len(out) != len(present) {
		return nil, &JSONSchemaError{Keyword: "", Err: ErrCyclicVocabularyDependency}
	}
	return out, nil
}

// appliesToKind reports whether a keyword class applies to an instance of
// the given kind (nil AppliesTo means "all kinds").
func appliesToKind(kc KeywordClass, k Kind) bool {
	kinds := kc.AppliesTo()
	if kinds == nil {
		return true
	}
	for _, want := range kinds {
		if want == k {
			return true
		}
		if want == KindInteger && k == KindNumber {
			return true
		}
		if want == KindNumber && k == KindInteger {
			return true
		}
	}
	return false
}
