package loaders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsonschema "github.com/handrews/jschon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetchesFromBaseURLPlusPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"type": "boolean"}`)) //nolint:errcheck
	}))
	defer server.Close()

	src := HTTP(server.URL, nil, nil)
	data, err := src(context.Background(), "/schema.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "boolean"}`, string(data))
	assert.Equal(t, "/schema.json", gotPath)
}

func TestHTTPSourceAddsHeaders(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer server.Close()

	headers := http.Header{"Authorization": []string{"Bearer token"}}
	src := HTTP(server.URL, nil, headers)
	_, err := src(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token", gotAuth)
}

func TestHTTPSourceFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := HTTP(server.URL, nil, nil)
	_, err := src(context.Background(), "/missing")
	assert.Error(t, err)
}

func TestHTTPSourceRegisteredAsCatchAllReceivesFullURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "null"}`)) //nolint:errcheck
	}))
	defer server.Close()

	catalog := jsonschema.NewCatalog()
	require.NoError(t, catalog.AddSource("", HTTP("", nil, nil)))

	node, err := catalog.Fetch(context.Background(), jsonschema.MustParseURI(server.URL+"/s"))
	require.NoError(t, err)
	typ, ok := node.Member("type")
	require.True(t, ok)
	assert.Equal(t, "null", typ.Str())
}
