// Package httpctx adapts *http.Request as a matcher context: extractors for
// the request path, method, host, headers, and query parameters.
//
// All extractors are pure reads over the request and return Absent (never
// the empty string) when the requested datum is not present, so predicates
// on missing headers fail closed.
package httpctx

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
)

// Type URLs for the HTTP extractors.
const (
	PathTypeURL   = "type.unimatch.io/extract/http-path"
	MethodTypeURL = "type.unimatch.io/extract/http-method"
	HostTypeURL   = "type.unimatch.io/extract/http-host"
	HeaderTypeURL = "type.unimatch.io/extract/http-header"
	QueryTypeURL  = "type.unimatch.io/extract/http-query"
)

type pathExtractor struct{}

// Path returns an extractor reading the request URL path.
func Path() unimatch.DataExtractor[*http.Request] {
	return pathExtractor{}
}

func (pathExtractor) Extract(r *http.Request) unimatch.Value {
	if r == nil || r.URL == nil {
		return unimatch.Absent()
	}
	return unimatch.StringValue(r.URL.Path)
}

func (pathExtractor) String() string {
	return "http_path"
}

type methodExtractor struct{}

// Method returns an extractor reading the request method.
func Method() unimatch.DataExtractor[*http.Request] {
	return methodExtractor{}
}

func (methodExtractor) Extract(r *http.Request) unimatch.Value {
	if r == nil || r.Method == "" {
		return unimatch.Absent()
	}
	return unimatch.StringValue(r.Method)
}

func (methodExtractor) String() string {
	return "http_method"
}

type hostExtractor struct{}

// Host returns an extractor reading the request host.
func Host() unimatch.DataExtractor[*http.Request] {
	return hostExtractor{}
}

func (hostExtractor) Extract(r *http.Request) unimatch.Value {
	if r == nil || r.Host == "" {
		return unimatch.Absent()
	}
	return unimatch.StringValue(r.Host)
}

func (hostExtractor) String() string {
	return "http_host"
}

type headerExtractor struct {
	name string
}

// Header returns an extractor reading the named header. A header present
// with an empty value extracts as the empty string; a missing header
// extracts as Absent.
func Header(name string) unimatch.DataExtractor[*http.Request] {
	return headerExtractor{name: http.CanonicalHeaderKey(name)}
}

func (e headerExtractor) Extract(r *http.Request) unimatch.Value {
	if r == nil {
		return unimatch.Absent()
	}
	vs, ok := r.Header[e.name]
	if !ok || len(vs) == 0 {
		return unimatch.Absent()
	}
	return unimatch.StringValue(vs[0])
}

func (e headerExtractor) String() string {
	return "http_header(" + strconv.Quote(e.name) + ")"
}

type queryExtractor struct {
	name string
}

// Query returns an extractor reading the named query parameter. Missing
// parameters extract as Absent.
func Query(name string) unimatch.DataExtractor[*http.Request] {
	return queryExtractor{name: name}
}

func (e queryExtractor) Extract(r *http.Request) unimatch.Value {
	if r == nil || r.URL == nil {
		return unimatch.Absent()
	}
	vs, ok := r.URL.Query()[e.name]
	if !ok || len(vs) == 0 {
		return unimatch.Absent()
	}
	return unimatch.StringValue(vs[0])
}

func (e queryExtractor) String() string {
	return "http_query(" + strconv.Quote(e.name) + ")"
}

func nameFactory(kind string, build func(name string) unimatch.DataExtractor[*http.Request]) registry.ExtractorFactory[*http.Request] {
	return func(config map[string]any) (unimatch.DataExtractor[*http.Request], error) {
		raw, ok := config["name"]
		if !ok {
			return nil, fmt.Errorf("%s: missing required config key %q", kind, "name")
		}
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s: config key %q: want a string, got %T", kind, "name", raw)
		}
		if name == "" {
			return nil, fmt.Errorf("%s: config key %q must not be empty", kind, "name")
		}
		return build(name), nil
	}
}

func fixedFactory(e unimatch.DataExtractor[*http.Request]) registry.ExtractorFactory[*http.Request] {
	return func(map[string]any) (unimatch.DataExtractor[*http.Request], error) {
		return e, nil
	}
}

// Register adds all HTTP extractors to a registry builder.
func Register(b *registry.Builder[*http.Request]) *registry.Builder[*http.Request] {
	return b.
		RegisterExtractor(PathTypeURL, fixedFactory(Path())).
		RegisterExtractor(MethodTypeURL, fixedFactory(Method())).
		RegisterExtractor(HostTypeURL, fixedFactory(Host())).
		RegisterExtractor(HeaderTypeURL, nameFactory("http-header", Header)).
		RegisterExtractor(QueryTypeURL, nameFactory("http-query", Query))
}
