// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcache memoizes modules/reconcile.ReconcileStrings (the Word
// tokenizer, no cursors) for collaborators that see the same (ancestor,
// left, right) triple more than once — a server fielding retries, or a
// batch CLI replaying a manifest. The tokenizer is not part of the key. It
// is a caching wrapper, not part of the core engine: the core stays a pure,
// stateless function (modules/reconcile never imports this package), and
// this package owns the one piece of shared mutable state the merge itself
// is forbidden to have.
package reconcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/zeebo/blake3"

	"github.com/mergewright/reconcile/modules/reconcile"
)

// Cache memoizes reconciliation results keyed by a content hash of the
// inputs. The zero value is not usable; construct with New.
type Cache struct {
	store *ristretto.Cache[string, reconcile.EditedText[string]]
}

// Config controls the underlying ristretto store. Zero values fall back to
// sizes suitable for a modest long-lived process (a handful of thousand
// in-flight documents), the way pkg/serve/odb.NewCacheDB is sized for a
// single repository's working set.
type Config struct {
	// NumCounters is the number of keys to track frequency of (ristretto
	// recommends 10x the number of items expected to fit in the cache).
	NumCounters int64
	// MaxCostMiB bounds the cache by approximate cost in MiB; each entry's
	// cost is its merged text's byte length.
	MaxCostMiB int64
	// BufferItems is ristretto's internal batching width.
	BufferItems int64
}

func (c Config) withDefaults() Config {
	if c.NumCounters == 0 {
		c.NumCounters = 1e6
	}
	if c.MaxCostMiB == 0 {
		c.MaxCostMiB = 64
	}
	if c.BufferItems == 0 {
		c.BufferItems = 64
	}
	return c
}

// New builds a Cache backed by a fresh in-process ristretto store.
func New(cfg Config) (*Cache, error) {
	cfg = cfg.withDefaults()
	store, err := ristretto.NewCache(&ristretto.Config[string, reconcile.EditedText[string]]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCostMiB << 20,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("reconcache: create store: %w", err)
	}
	return &Cache{store: store}, nil
}

// Key derives the cache key for a (ancestor, left, right) triple, hashed
// with blake3 the way modules/plumbing/hash.go hashes object content — a
// fast, well-distributed non-cryptographic-strength key is all a cache
// lookup needs.
func Key(ancestor, left, right string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(ancestor))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(left))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(right))
	return string(h.Sum(nil))
}

// ReconcileStrings returns the cached EditedText for this triple if present,
// otherwise computes it via reconcile.ReconcileStrings, stores it, and
// returns it. The cost charged to the cache is the merged text's byte
// length, deferring eviction decisions to ristretto's TinyLFU policy.
func (c *Cache) ReconcileStrings(ancestor, left, right string) reconcile.EditedText[string] {
	key := Key(ancestor, left, right)
	if cached, ok := c.store.Get(key); ok {
		return cached
	}
	result := reconcile.ReconcileStrings(ancestor, left, right)
	c.store.Set(key, result, int64(len(result.Apply().Text)))
	c.store.Wait()
	return result
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.store.Close()
}
