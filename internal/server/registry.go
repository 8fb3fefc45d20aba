package server

import (
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/exts"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
)

// BuildRegistry assembles the standard playground registry: the map-key
// extractor plus the shipped extension matchers. The CLI shares it so both
// surfaces resolve the same type URLs.
func BuildRegistry() (*registry.Registry[mapctx.Context], error) {
	b := registry.NewBuilder[mapctx.Context]()
	mapctx.Register(b)
	exts.RegisterAll(b)
	return b.Build()
}
