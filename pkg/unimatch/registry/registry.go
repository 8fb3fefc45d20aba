// Package registry maps type URLs from matcher configs to the factories
// that produce data extractors and value matchers, and compiles configs
// into validated matchers.
//
// A Registry is assembled through a Builder and frozen by Build; after that
// it is read-only and safe to share by reference across any number of
// concurrent compilations. There is no re-registration: a new set of
// extensions means a new Registry.
package registry

import (
	"fmt"
	"sort"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
)

// ExtractorFactory produces a data extractor for context type C from an
// opaque per-type config map. Factories must be pure and callable
// concurrently.
type ExtractorFactory[C any] func(config map[string]any) (unimatch.DataExtractor[C], error)

// MatcherFactory produces a value matcher from an opaque per-type config
// map. Value matchers are context-free, so the factory is too.
type MatcherFactory func(config map[string]any) (unimatch.ValueMatcher, error)

// Builder accumulates registrations. It is single-goroutine and consumed by
// Build; the zero value is not usable, start with NewBuilder.
type Builder[C any] struct {
	extractors map[string]ExtractorFactory[C]
	matchers   map[string]MatcherFactory
	err        error
}

// NewBuilder returns an empty Builder.
func NewBuilder[C any]() *Builder[C] {
	return &Builder[C]{
		extractors: make(map[string]ExtractorFactory[C]),
		matchers:   make(map[string]MatcherFactory),
	}
}

// RegisterExtractor registers an extractor factory under typeURL. Returns
// the builder for chaining; registration problems surface from Build.
func (b *Builder[C]) RegisterExtractor(typeURL string, factory ExtractorFactory[C]) *Builder[C] {
	if b.err != nil {
		return b
	}
	if typeURL == "" {
		b.err = fmt.Errorf("register extractor: empty type URL")
		return b
	}
	if factory == nil {
		b.err = fmt.Errorf("register extractor %q: nil factory", typeURL)
		return b
	}
	if _, dup := b.extractors[typeURL]; dup {
		b.err = fmt.Errorf("register extractor %q: already registered", typeURL)
		return b
	}
	b.extractors[typeURL] = factory
	return b
}

// RegisterMatcher registers a value-matcher factory under typeURL.
func (b *Builder[C]) RegisterMatcher(typeURL string, factory MatcherFactory) *Builder[C] {
	if b.err != nil {
		return b
	}
	if typeURL == "" {
		b.err = fmt.Errorf("register matcher: empty type URL")
		return b
	}
	if factory == nil {
		b.err = fmt.Errorf("register matcher %q: nil factory", typeURL)
		return b
	}
	if _, dup := b.matchers[typeURL]; dup {
		b.err = fmt.Errorf("register matcher %q: already registered", typeURL)
		return b
	}
	b.matchers[typeURL] = factory
	return b
}

// Build consumes the builder and freezes the registry. The builder must not
// be used afterwards.
func (b *Builder[C]) Build() (*Registry[C], error) {
	if b.err != nil {
		return nil, b.err
	}
	r := &Registry[C]{
		extractors: b.extractors,
		matchers:   b.matchers,
	}
	b.extractors = nil
	b.matchers = nil
	return r, nil
}

// Registry is the frozen lookup table. All operations are read-only; the
// registry is shared by reference across compilation sites and never
// mutated after Build.
type Registry[C any] struct {
	extractors map[string]ExtractorFactory[C]
	matchers   map[string]MatcherFactory
}

// HasExtractor reports whether an extractor factory is registered.
func (r *Registry[C]) HasExtractor(typeURL string) bool {
	_, ok := r.extractors[typeURL]
	return ok
}

// HasMatcher reports whether a value-matcher factory is registered.
func (r *Registry[C]) HasMatcher(typeURL string) bool {
	_, ok := r.matchers[typeURL]
	return ok
}

// ExtractorTypeURLs returns the registered extractor type URLs, sorted.
func (r *Registry[C]) ExtractorTypeURLs() []string {
	return sortedKeys(r.extractors)
}

// MatcherTypeURLs returns the registered matcher type URLs, sorted.
func (r *Registry[C]) MatcherTypeURLs() []string {
	return sortedKeys(r.matchers)
}

func (r *Registry[C]) extractorFactory(typeURL string) (ExtractorFactory[C], error) {
	f, ok := r.extractors[typeURL]
	if !ok {
		return nil, &UnknownTypeURLError{Which: "extractor", URL: typeURL, Known: r.ExtractorTypeURLs()}
	}
	return f, nil
}

func (r *Registry[C]) matcherFactory(typeURL string) (MatcherFactory, error) {
	f, ok := r.matchers[typeURL]
	if !ok {
		return nil, &UnknownTypeURLError{Which: "matcher", URL: typeURL, Known: r.MatcherTypeURLs()}
	}
	return f, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
