// Package load reads schema documents into the type graph of package schema.
//
// A document lists the types of one main namespace:
//
//	namespace: urn:example:city
//	prefixes:
//	  urn:example:geo: geo
//	types:
//	  - name: City
//	    mappingRelevant: true
//	    children:
//	      - property: name
//	        type: xs:string
//	        cardinality: 1..1
//	      - property: tags
//	        type: xs:string
//	        cardinality: {min: 0, max: unbounded}
//
// Names are written as {namespace}local, prefix:local or bare local names
// in the main namespace. Documents may also be written as JSON.
package load

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// maxDocumentSize bounds documents fetched over HTTP.
const maxDocumentSize = 64 << 20

// Load reads and parses the schema at location, which is a file path,
// a file URI or an HTTP(S) URL.
func Load(ctx context.Context, location string) (*Schema, error) {
	data, err := read(ctx, location)
	if err != nil {
		return nil, &Error{Location: location, Cause: err}
	}
	return Parse(data, location)
}

// read treats location as a URI when it parses as one with a scheme
// longer than one character, so Windows drive letters stay file paths.
func read(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		return os.ReadFile(filepath.Clean(location))
	}
	switch u.Scheme {
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return os.ReadFile(filepath.FromSlash(path))
	case "http", "https":
		return fetch(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}
