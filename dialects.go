package jsonschema

// Dialect binds a `$schema` URI to the ordered set of active keyword
// classes a schema resource declaring that URI should dispatch against
// (spec.md §4.E "dialect: the resolved set of active keyword classes for a
// given $vocabulary declaration"). declOrder preserves the vocabularies'
// declaration order so sortKeywords can break compile-time ties the same
// way across every schema object compiled under this dialect.
type Dialect struct {
	SchemaURI string
	VocabURIs []string
	Required  []bool

	classes   map[string]KeywordClass
	declOrder []string
}

func newDialect(schemaURI string, vocabURIs []string, required []bool, catalog *Catalog) (*Dialect, error) {
	classes, err := activeClasses(catalog, vocabURIs, required)
	if err != nil {
		return nil, err
	}
	d := &Dialect{
		SchemaURI: schemaURI, VocabURIs: vocabURIs, Required: required,
		classes: make(map[string]KeywordClass, len(classes)),
	}
	for _, kc := range classes {
		d.classes[kc.Name()] = kc
		d.declOrder = append(d.declOrder, kc.Name())
	}
	return d, nil
}

func (d *Dialect) classByName(name string) (KeywordClass, bool) {
	kc, ok := d.classes[name]
	return kc, ok
}

// Well-known vocabulary URIs for the two dialects this rework targets
// (spec.md §2 "2019-09 and 2020-12"), matching the URIs the draft
// specifications themselves assign.
const (
	vocab201912Core            = "https://json-schema.org/draft/2020-12/vocab/core"
	vocab201912Applicator      = "https://json-schema.org/draft/2020-12/vocab/applicator"
	vocab201912Unevaluated     = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	vocab201912Validation      = "https://json-schema.org/draft/2020-12/vocab/validation"
	vocab201912MetaData        = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	vocab201912FormatAnnot     = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	vocab201912FormatAssert    = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	vocab201912Content         = "https://json-schema.org/draft/2020-12/vocab/content"

	vocab201909Core       = "https://json-schema.org/draft/2019-09/vocab/core"
	vocab201909Applicator = "https://json-schema.org/draft/2019-09/vocab/applicator"
	vocab201909Validation = "https://json-schema.org/draft/2019-09/vocab/validation"
	vocab201909MetaData   = "https://json-schema.org/draft/2019-09/vocab/meta-data"
	vocab201909Format     = "https://json-schema.org/draft/2019-09/vocab/format"
	vocab201909Content    = "https://json-schema.org/draft/2019-09/vocab/content"

	Schema201912URI = "https://json-schema.org/draft/2020-12/schema"
	Schema201909URI = "https://json-schema.org/draft/2019-09/schema"
)

func coreKeywordClasses() []KeywordClass {
	return []KeywordClass{newRefKeyword("$ref"), newRefKeyword("$dynamicRef"), newRefKeyword("$recursiveRef")}
}

// sharedApplicatorKeywordClasses are the applicator-vocabulary keywords
// identical across 2019-09 and 2020-12; each dialect adds its own array-item
// keywords on top (2020-12's prefixItems/items vs. 2019-09's legacy
// items/additionalItems — spec.md §9, resolved per
// _examples/original_source/jschon/vocabulary/legacy.py).
func sharedApplicatorKeywordClasses() []KeywordClass {
	return []KeywordClass{
		allOfClass{}, anyOfClass{}, oneOfClass{}, notClass{},
		ifThenElseClass{}, thenElsePlaceholderClass{name: "then"}, thenElsePlaceholderClass{name: "else"},
		dependentSchemasClass{},
		propertiesClass{}, patternPropertiesClass{}, additionalPropertiesClass{}, propertyNamesClass{},
		containsClass{},
	}
}

// applicatorKeywordClasses201912 wires 2020-12's single-schema-only `items`
// plus its `prefixItems` tuple-typing companion.
func applicatorKeywordClasses201912() []KeywordClass {
	return append(sharedApplicatorKeywordClasses(), prefixItemsClass{}, itemsClass{})
}

// applicatorKeywordClasses201909 wires 2019-09's legacy `items` (single
// schema or tuple-array form) plus `additionalItems`, and folds in
// unevaluatedItems/unevaluatedProperties (2019-09 has no separate
// "unevaluated" vocabulary — they live in the applicator vocabulary itself).
func applicatorKeywordClasses201909() []KeywordClass {
	classes := append(sharedApplicatorKeywordClasses(), legacyItemsClass{}, additionalItemsClass{})
	return append(classes, unevaluatedItemsClass{}, unevaluatedPropertiesClass{})
}

func validationKeywordClasses() []KeywordClass {
	return []KeywordClass{
		typeClass{}, enumClass{}, constClass{},
		multipleOfClass{}, maximumClass{}, exclusiveMaximumClass{}, minimumClass{}, exclusiveMinimumClass{},
		maxLengthClass{}, minLengthClass{}, patternClass{},
		maxItemsClass{}, minItemsClass{}, uniqueItemsClass{},
		maxPropertiesClass{}, minPropertiesClass{}, requiredClass{}, dependentRequiredClass{},
	}
}

func contentKeywordClasses() []KeywordClass {
	return []KeywordClass{contentEncodingClass{}, contentMediaTypeClass{}, contentSchemaClass{}}
}

// registerCoreDialects wires every keyword class this package implements
// into the vocabularies the 2019-09 and 2020-12 metaschemas declare, plus
// the repo's own `x-examples` extension vocabulary, and registers the two
// dialects under their canonical `$schema` URIs (spec.md §4.D NewCatalog
// wiring, grounded on the teacher's NewCompiler registering its builtin
// keyword set).
func registerCoreDialects(c *Catalog) {
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912Core, Classes: coreKeywordClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912Applicator, Classes: applicatorKeywordClasses201912()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912Unevaluated, Classes: []KeywordClass{unevaluatedItemsClass{}, unevaluatedPropertiesClass{}}})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912Validation, Classes: validationKeywordClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912MetaData, Classes: newMetaDataClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912FormatAnnot, Classes: []KeywordClass{formatClass{}}})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912FormatAssert, Classes: []KeywordClass{formatClass{}}})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201912Content, Classes: contentKeywordClasses()})

	c.RegisterVocabulary(&Vocabulary{URI: vocab201909Core, Classes: coreKeywordClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201909Applicator, Classes: applicatorKeywordClasses201909()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201909Validation, Classes: validationKeywordClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201909MetaData, Classes: newMetaDataClasses()})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201909Format, Classes: []KeywordClass{formatClass{}}})
	c.RegisterVocabulary(&Vocabulary{URI: vocab201909Content, Classes: contentKeywordClasses()})

	c.RegisterVocabulary(&Vocabulary{URI: ExtensionVocabularyURI, Classes: []KeywordClass{exampleClass{}}})

	d202012, err := newDialect(Schema201912URI,
		[]string{vocab201912Core, vocab201912Applicator, vocab201912Unevaluated, vocab201912Validation,
			vocab201912MetaData, vocab201912FormatAnnot, vocab201912Content, ExtensionVocabularyURI},
		[]bool{true, true, true, true, false, false, false, false}, c)
	if err == nil {
		c.RegisterDialect(d202012)
	}

	d201909, err := newDialect(Schema201909URI,
		[]string{vocab201909Core, vocab201909Applicator, vocab201909Validation,
			vocab201909MetaData, vocab201909Format, vocab201909Content, ExtensionVocabularyURI},
		[]bool{true, true, true, false, false, false, false}, c)
	if err == nil {
		c.RegisterDialect(d201909)
	}
}
