// Package loaders provides Source adapters (spec.md §6 "Source adapters")
// for catalogs whose schemas live outside the default http(s) registration
// NewCatalog wires in, grounded on the teacher's compiler.go setupLoaders.
package loaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/handrews/jschon"
)

// File returns a jsonschema.Source that resolves the prefix-relative path
// Catalog.Fetch hands it (after stripping whatever base-URI prefix this
// source was registered under via AddSource) against root, refusing to
// escape it via "..": the teacher's setupLoaders has no local-file loader
// of its own, so this is grounded on the general shape of its HTTP loader
// (resolve, read, wrap errors) applied to the stdlib os/filepath pair
// instead.
func File(root string) jsonschema.Source {
	return func(_ context.Context, path string) ([]byte, error) {
		clean := filepath.Clean(filepath.Join(root, path))
		if root != "" && !strings.HasPrefix(clean, filepath.Clean(root)) {
			return nil, &jsonschema.CatalogError{Op: "fetch", URI: path, Err: jsonschema.ErrNoSourceForURI}
		}
		data, err := os.ReadFile(clean)
		if err != nil {
			return nil, &jsonschema.CatalogError{Op: "fetch", URI: path, Err: err}
		}
		return data, nil
	}
}
