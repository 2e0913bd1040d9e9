package jsonschema

import "github.com/kaptinlin/go-i18n"

// EvaluationError is a single keyword failure, carrying enough structure
// (keyword, i18n code, template params) to render in any locale the engine
// knows about. Ported from the teacher's EvaluationError (result.go).
type EvaluationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func newEvaluationError(keyword, code, message string, params map[string]any) *EvaluationError {
	return &EvaluationError{Keyword: keyword, Code: code, Message: message, Params: params}
}

func (e *EvaluationError) Error() string { return replaceParams(e.Message, e.Params) }

// Localize renders the error with localizer, falling back to Error().
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	return localizer.Get(e.Code, i18n.Vars(e.Params))
}

// Result is one node of the evaluation result tree (spec.md §4.G): a
// validity bit, any annotation the keyword produced, any error, an "assert"
// flag (cleared by the probing `if` and by annotation-only `format`; neither
// AddDetail nor rendering reads it), a "discard" flag (a discarded child's
// invalidity is not folded into its parent and its errors are not rendered —
// used by if/then/else and by losing oneOf branches), and the children
// produced by descending into subschemas.
type Result struct {
	Keyword          string
	EvaluationPath   string
	SchemaLocation   string
	InstanceLocation string

	valid   bool
	assert  bool
	discard bool

	Annotations map[string]any
	Errors      map[string]*EvaluationError
	Details     []*Result

	// internal carries bookkeeping a keyword needs to hand to a sibling or
	// descendant (e.g. contains' matched-index set, consumed only by
	// unevaluatedItems) without it leaking into the rendered output the way
	// Annotations does.
	internal map[string]any
}

// NewResult starts a fresh, valid result node for the given locations.
func NewResult(keyword, evalPath, schemaLoc, instanceLoc string) *Result {
	return &Result{
		Keyword: keyword, EvaluationPath: evalPath,
		SchemaLocation: schemaLoc, InstanceLocation: instanceLoc,
		valid: true, assert: true,
	}
}

// IsValid reports the result's validity bit.
func (r *Result) IsValid() bool { return r.valid }

// SetInvalid marks the result as failed. If the result is marked discard,
// AddDetail does not fold this invalidity into the parent and its errors are
// left out of rendered output, matching if/then/else's "try-and-see" semantics
// (spec.md §4.G).
func (r *Result) SetInvalid() { r.valid = false }

// Discard marks this result's errors as non-reportable (e.g. the probing
// evaluation of `if`, or a branch of `oneOf` that ultimately didn't win).
func (r *Result) Discard() { r.discard = true }

// IsDiscarded reports whether this result's errors are suppressed from output.
func (r *Result) IsDiscarded() bool { return r.discard }

// AddError records a keyword failure and marks the result invalid.
func (r *Result) AddError(err *EvaluationError) {
	if r.Errors == nil {
		r.Errors = make(map[string]*EvaluationError)
	}
	r.Errors[err.Keyword] = err
	r.valid = false
}

// Fail is a convenience wrapper building an EvaluationError from a locale
// code understood by i18n.go's bundle.
func (r *Result) Fail(keyword, code, message string, params map[string]any) {
	r.AddError(newEvaluationError(keyword, code, message, params))
}

// AddAnnotation records a non-assertion keyword's produced value (e.g.
// `title`, `properties`' matched-keys set, `format`'s format name).
func (r *Result) AddAnnotation(keyword string, value any) {
	if r.Annotations == nil {
		r.Annotations = make(map[string]any)
	}
	r.Annotations[keyword] = value
}

// Annotation returns a prior annotation recorded by keyword, if any.
func (r *Result) Annotation(keyword string) (any, bool) {
	if r.Annotations == nil {
		return nil, false
	}
	v, ok := r.Annotations[keyword]
	return v, ok
}

// setInternal records a value for sibling/descendant bookkeeping that must
// not appear in the rendered output (unlike AddAnnotation).
func (r *Result) setInternal(key string, value any) {
	if r.internal == nil {
		r.internal = make(map[string]any)
	}
	r.internal[key] = value
}

// internalValue returns a prior setInternal value by key, if any.
func (r *Result) internalValue(key string) (any, bool) {
	if r.internal == nil {
		return nil, false
	}
	v, ok := r.internal[key]
	return v, ok
}

// AddDetail attaches a child result (one produced by recursing the engine
// into a subschema) and folds its validity into this result's own, unless
// the child is discarded.
func (r *Result) AddDetail(child *Result) {
	r.Details = append(r.Details, child)
	if !child.valid && !child.discard {
		r.valid = false
	}
}

// Flag is the minimal {valid} output shape (spec.md §4.H).
type Flag struct {
	Valid bool `json:"valid"`
}

// Unit is one entry of the "basic"/"detailed" output shapes.
type Unit struct {
	Valid            bool              `json:"valid"`
	EvaluationPath   string            `json:"evaluationPath,omitempty"`
	SchemaLocation   string            `json:"schemaLocation,omitempty"`
	InstanceLocation string            `json:"instanceLocation,omitempty"`
	Annotations      map[string]any    `json:"annotations,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
	Details          []Unit            `json:"details,omitempty"`
}

func (r *Result) render(localizer *i18n.Localizer) Unit {
	u := Unit{
		Valid: r.valid, EvaluationPath: r.EvaluationPath,
		SchemaLocation: r.SchemaLocation, InstanceLocation: r.InstanceLocation,
		Annotations: r.Annotations,
	}
	if !r.discard && len(r.Errors) > 0 {
		u.Errors = make(map[string]string, len(r.Errors))
		for k, e := range r.Errors {
			u.Errors[k] = e.Localize(localizer)
		}
	}
	return u
}
