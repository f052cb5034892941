// Package emitcache adapts the teacher's content-hash binary cache
// (internal/ext/cache.go's Cache.computeKey) into a content-hash *plan*
// cache: Key(policy, graph fingerprint) identifies a prior run's
// EmissionPlan summary, so a CLI re-run against unchanged input and policy
// can skip Shape/Plan/Gate entirely and report "unchanged" rather than
// recomputing a byte-identical result (determinism guarantee is P5; this
// is purely the optimization of not re-deriving it).
package emitcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
)

// cacheVersion is bumped whenever the shape of the cached Entry changes,
// so a stale on-disk entry from a prior format is never misread.
const cacheVersion = "v1"

// Entry is the cached summary of a prior run, keyed by content hash.
type Entry struct {
	RunID        string                    `json:"run_id"`
	CountsByCode map[diagnostics.Code]int  `json:"counts_by_code"`
	Failed       bool                      `json:"failed"`
}

// Cache reads/writes Entry values under a directory, one file per key.
type Cache struct {
	dir string
}

// New scopes a Cache to dir (created lazily on first Store).
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives a deterministic cache key from the policy's serialized form
// and a graph fingerprint (the caller computes the fingerprint; this
// package doesn't know the graph's shape).
func Key(policyBytes []byte, graphFingerprint string) string {
	h := sha256.New()
	h.Write(policyBytes)
	h.Write([]byte{0})
	h.Write([]byte(graphFingerprint))
	h.Write([]byte{0})
	h.Write([]byte(cacheVersion))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, "plan-"+key+".json")
}

// Lookup returns the cached Entry for key, if present.
func (c *Cache) Lookup(key string) (Entry, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Store persists entry under key, creating the cache directory if needed.
func (c *Cache) Store(key string, entry Entry) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

// Clean removes every cached entry.
func (c *Cache) Clean() error {
	return os.RemoveAll(c.dir)
}
