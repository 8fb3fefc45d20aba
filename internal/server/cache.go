package server

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/contexts/mapctx"
)

// matcherCache keeps compiled matchers keyed by the digest of their
// canonical config JSON. Compilation is the expensive part of a playground
// round-trip (regex compilation, depth walk); repeated evaluations of the
// same config hit the cache. Matchers are immutable, so sharing a cached
// instance across requests is safe.
type matcherCache struct {
	lru *lru.Cache[string, *unimatch.Matcher[mapctx.Context, any]]
}

func newMatcherCache(size int) (*matcherCache, error) {
	c, err := lru.New[string, *unimatch.Matcher[mapctx.Context, any]](size)
	if err != nil {
		return nil, err
	}
	return &matcherCache{lru: c}, nil
}

// key digests the canonical config JSON.
func (c *matcherCache) key(canonicalJSON []byte) string {
	sum := sha256.Sum256(canonicalJSON)
	return hex.EncodeToString(sum[:])
}

func (c *matcherCache) get(key string) (*unimatch.Matcher[mapctx.Context, any], bool) {
	m, ok := c.lru.Get(key)
	if ok {
		matcherCacheHits.Inc()
	} else {
		matcherCacheMisses.Inc()
	}
	return m, ok
}

func (c *matcherCache) put(key string, m *unimatch.Matcher[mapctx.Context, any]) {
	c.lru.Add(key, m)
}
