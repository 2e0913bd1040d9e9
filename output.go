package jsonschema

import "github.com/kaptinlin/go-i18n"

// OutputFormat names one of the four standard result shapes spec.md §4.H
// describes, plus the registration hook for a caller-supplied custom one.
type OutputFormat string

const (
	OutputFlag     OutputFormat = "flag"
	OutputBasic    OutputFormat = "basic"
	OutputDetailed OutputFormat = "detailed"
	OutputVerbose  OutputFormat = "verbose"
)

// FormatFunc renders a Result tree into whatever shape a registered output
// format produces (spec.md §6 "register_output_format").
type FormatFunc func(r *Result, localizer *i18n.Localizer) any

var outputFormats = map[OutputFormat]FormatFunc{
	OutputFlag:     func(r *Result, _ *i18n.Localizer) any { return Flag{Valid: r.IsValid()} },
	OutputBasic:    func(r *Result, loc *i18n.Localizer) any { return renderBasic(r, loc) },
	OutputDetailed: func(r *Result, loc *i18n.Localizer) any { return renderDetailed(r, loc) },
	OutputVerbose:  func(r *Result, loc *i18n.Localizer) any { return r.render(loc) },
}

// RegisterOutputFormat adds or overrides a named output format.
func RegisterOutputFormat(name OutputFormat, fn FormatFunc) {
	outputFormats[name] = fn
}

// Render produces the named output shape for a Result, falling back to
// verbose if name is unregistered.
func Render(r *Result, name OutputFormat, localizer *i18n.Localizer) any {
	fn, ok := outputFormats[name]
	if !ok {
		fn = outputFormats[OutputVerbose]
	}
	return fn(r, localizer)
}

// renderBasic flattens the result tree into the single-level list the
// "basic" output structure requires (spec.md §4.H "basic: a flat list of
// every failing unit, no nesting"), skipping discarded branches and valid
// leaves once the top-level result is invalid.
func renderBasic(r *Result, localizer *i18n.Localizer) Unit {
	root := Unit{Valid: r.IsValid()}
	if root.Valid {
		return root
	}
	var flatten func(n *Result)
	flatten = func(n *Result) {
		if n.IsDiscarded() {
			return
		}
		if len(n.Errors) > 0 {
			root.Details = append(root.Details, n.render(localizer))
		}
		for _, child := range n.Details {
			flatten(child)
		}
	}
	flatten(r)
	return root
}

// renderDetailed mirrors the schema's own nesting, omitting discarded
// subtrees but otherwise preserving structure (spec.md §4.H "detailed:
// nested like the schema, omits discarded branches").
func renderDetailed(r *Result, localizer *i18n.Localizer) Unit {
	u := r.render(localizer)
	for _, child := range r.Details {
		if child.IsDiscarded() {
			continue
		}
		u.Details = append(u.Details, renderDetailed(child, localizer))
	}
	return u
}
