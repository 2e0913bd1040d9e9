package jsonschema

import (
	"embed"
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// NewI18n returns an initialized internationalization bundle with the
// embedded locale catalogs, ported verbatim from the teacher's GetI18n
// (i18n.go) since localization is an ambient concern this rework carries
// unchanged.
func NewI18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

// replaceParams substitutes "{key}" placeholders in template with params,
// ported from the teacher's utils.go replace().
func replaceParams(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}
