package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsonschema "github.com/handrews/jschon"
)

// HTTP returns a jsonschema.Source backed by client (or a 10s-timeout
// default if nil), with extra headers attached to every request — useful
// for private schema registries that require auth, beyond what
// NewCatalog's built-in catch-all http(s) source supports (spec.md §6
// "add_uri_source can override the default http(s) loaders"), grounded on
// the teacher's setupLoaders HTTP client construction.
//
// baseURL is prepended to the prefix-relative path Catalog.Fetch hands this
// source; pass "" when registering HTTP as a catch-all (AddSource("", ...))
// so the path it receives is already the full request URL.
func HTTP(baseURL string, client *http.Client, headers http.Header) jsonschema.Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return func(ctx context.Context, path string) ([]byte, error) {
		url := baseURL + path
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &jsonschema.CatalogError{Op: "fetch", URI: url, Err: err}
		}
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, &jsonschema.CatalogError{Op: "fetch", URI: url, Err: err}
		}
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			return nil, &jsonschema.CatalogError{Op: "fetch", URI: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return io.ReadAll(resp.Body)
	}
}
