package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitaliisemenov/unimatch/internal/server"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/schema"
)

// readConfig loads and decodes a matcher config file. YAML and JSON are
// both accepted; the format is picked by extension, with a byte sniff as
// fallback for everything else.
func readConfig(path string) (*schema.MatcherConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.DecodeYAML(data)
	case ".json":
		return schema.DecodeJSON(data)
	default:
		if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("{")) {
			return schema.DecodeJSON(data)
		}
		return schema.DecodeYAML(data)
	}
}

// compileConfig builds the standard registry and compiles cfg against it.
// Actions stay raw JSON values on the CLI path.
func compileConfig(cfg *schema.MatcherConfig) (*unimatch.Matcher[mapctx.Context, any], error) {
	reg, err := server.BuildRegistry()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return registry.Load(reg, cfg, registry.RawActions)
}
