package loaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	jsonschema "github.com/handrews/jschon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceReadsRelativeToRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.json"), []byte(`{"type": "string"}`), 0o644))

	src := File(dir)
	data, err := src(context.Background(), "schema.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "string"}`, string(data))
}

func TestFileSourceRefusesToEscapeRoot(t *testing.T) {
	dir := t.TempDir()
	src := File(dir)
	_, err := src(context.Background(), "../../etc/passwd")
	assert.Error(t, err)

	var catalogErr *jsonschema.CatalogError
	assert.ErrorAs(t, err, &catalogErr)
}

func TestFileSourceWiresThroughCatalogWithRegisteredPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "remote.json"), []byte(`{
		"$id": "https://example.org/schemas/remote.json",
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "integer"
	}`), 0o644))

	catalog := jsonschema.NewCatalog()
	require.NoError(t, catalog.AddSource("https://example.org/schemas/", File(dir)))

	schema, err := catalog.GetSchema(context.Background(),
		jsonschema.MustParseURI("https://example.org/schemas/remote.json"), jsonschema.DefaultCacheID)
	require.NoError(t, err)

	instance, err := jsonschema.FromValue(7)
	require.NoError(t, err)
	assert.True(t, schema.Evaluate(instance).IsValid())
}
