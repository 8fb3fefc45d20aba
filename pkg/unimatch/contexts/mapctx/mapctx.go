// Package mapctx adapts a plain string map as a matcher context. It is the
// context the CLI and the playground server evaluate against, and the
// smallest useful example of a domain adapter.
package mapctx

import (
	"fmt"
	"strconv"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
)

// Context is the adapted context type.
type Context = map[string]string

// KeyTypeURL identifies the map-key extractor in configs.
const KeyTypeURL = "type.unimatch.io/extract/map-key"

type keyExtractor struct {
	key string
}

// Key returns an extractor reading the named key. A missing key yields
// Absent; an empty value yields the empty string, which is a present value.
func Key(key string) unimatch.DataExtractor[Context] {
	return keyExtractor{key: key}
}

func (e keyExtractor) Extract(ctx Context) unimatch.Value {
	v, ok := ctx[e.key]
	if !ok {
		return unimatch.Absent()
	}
	return unimatch.StringValue(v)
}

func (e keyExtractor) String() string {
	return "map_key(" + strconv.Quote(e.key) + ")"
}

// Factory builds a Key extractor from {"key": "<name>"}.
func Factory(config map[string]any) (unimatch.DataExtractor[Context], error) {
	raw, ok := config["key"]
	if !ok {
		return nil, fmt.Errorf("missing required config key %q", "key")
	}
	key, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("config key %q: want a string, got %T", "key", raw)
	}
	if key == "" {
		return nil, fmt.Errorf("config key %q must not be empty", "key")
	}
	return Key(key), nil
}

// Register adds the map-key extractor to a registry builder.
func Register(b *registry.Builder[Context]) *registry.Builder[Context] {
	return b.RegisterExtractor(KeyTypeURL, Factory)
}
