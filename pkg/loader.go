package pincache

// loader.go implements the singleflight-based de-duplication layer used by
// Loader.GetOrAdd, following the teacher's pkg/loader.go: the goal is to
// prevent a thundering herd when many goroutines call GetOrAdd for the same
// missing key at once — only one of them runs fn, the rest share its
// result.
//
// © 2025 pincache authors. MIT License.

import (
	"context"
	"encoding/hex"

	"golang.org/x/sync/singleflight"
)

// Loader wraps a concurrency-safe *LockedCache with fill-on-miss
// coalescing. It does not change pincache's own locking contract (see
// pkg/lock.go): the singleflight group only serialises *loader
// invocations*, the LockedCache it wraps still serialises every cache
// mutation itself.
type Loader struct {
	c *LockedCache
	g singleflight.Group
}

// NewLoader constructs a Loader over c.
func NewLoader(c *LockedCache) *Loader {
	return &Loader{c: c}
}

// GetOrAdd returns the cached payload for key, as an unpinned copy. On a
// miss, fn is invoked at most once per concurrently-missing key; its result
// is stored with Add and returned to every caller waiting on that key.
func (l *Loader) GetOrAdd(ctx context.Context, key []byte, fn LoaderFunc) ([]byte, error) {
	dst := make([]byte, l.c.EntrySize())
	if v, err := l.c.Lookup(key, dst); err == nil {
		return v, nil
	} else if err != ErrNotFound {
		return nil, err
	}

	groupKey := hex.EncodeToString(key)
	res, err, _ := l.g.Do(groupKey, func() (any, error) {
		val, err := fn(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(val) != l.c.EntrySize() {
			return nil, ErrInvalidArgument
		}
		if _, addErr := l.c.Add(key, val); addErr != nil && addErr != ErrDuplicate {
			return nil, addErr
		}
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}
