// Package cache provides the TTL cache shared by the weather-dependent
// assessments. Expiry is lazy: Get treats an entry older than the TTL as
// absent, and a later Put under the same key simply overwrites it. Backends
// are expected to provide atomic per-key get/put; no cross-key transactions
// are needed.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Entry is a cached payload and the time it was fetched from upstream.
type Entry struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store is the backend contract. A miss is (Entry{}, false, nil); errors are
// reserved for backend failures (e.g. a Redis connection problem).
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, e Entry) error
}

// Cache layers TTL semantics and JSON (de)serialization over a Store.
type Cache struct {
	store Store
	ttl   time.Duration
}

// New wraps the given store with the given time-to-live.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Get unmarshals the cached value under key into dst and reports whether a
// fresh entry existed. Expired or unreadable entries count as misses; they
// are not deleted.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) bool {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	if time.Since(e.FetchedAt) > c.ttl {
		return false
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return false
	}
	return true
}

// Put stores v under key, stamped with the current time. An existing entry,
// expired or not, is overwritten wholesale.
func (c *Cache) Put(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, key, Entry{Payload: payload, FetchedAt: time.Now().UTC()})
}

// Key builds a deterministic cache key from a dataset kind, coordinates
// rounded to the given number of decimal degrees, and any extra fetch
// parameters. Rounding keeps near-identical coordinates from thrashing the
// cache; 2 decimal degrees (roughly 1.1 km) is the deployed precision.
func Key(kind string, lat, lon float64, precision int, extra ...string) string {
	parts := make([]string, 0, 3+len(extra))
	parts = append(parts,
		kind,
		strconv.FormatFloat(lat, 'f', precision, 64),
		strconv.FormatFloat(lon, 'f', precision, 64),
	)
	parts = append(parts, extra...)
	return strings.Join(parts, ":")
}
