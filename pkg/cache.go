// Package pincache implements an in-process, bounded, key-addressed object
// cache with LRU replacement and per-entry pinning ("locking"). Callers
// register a fixed capacity, key size and entry size at construction; the
// cache stores up to that many fixed-size entries, retrieved by
// caller-opaque byte keys. When full, it evicts the least-recently-used
// entry that is not currently pinned.
//
// The coordinated data structure doing the real work is a three-way index:
// internal/arena (a slab of fixed-size payload slots), internal/dllist (the
// LRU recency order), and internal/hashindex (key -> recency node). Cache
// composes the three and owns the joint invariants across them, following
// the teacher's layering of pkg/cache.go over internal/clockpro +
// internal/genring + internal/arena.
//
// Concurrency: Cache takes no internal locks. It defines single-threaded
// semantics; Lookup, Add, DeleteByKey, DeleteEntry, UnlockEntry, Clean and
// Destroy are each a critical section that a concurrent caller must
// serialise externally (see pkg/lock.go for an optional wrapper).
//
// © 2025 pincache authors. MIT License.
package pincache

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/kagenova/pincache/internal/arena"
	"github.com/kagenova/pincache/internal/dllist"
	"github.com/kagenova/pincache/internal/hashindex"
)

// recencyEntry is the metadata kept for every live entry: a copy of its key,
// a reference to its arena slot, a reference to its hash node, and its pin
// count. node links the entry into the recency list; node.Value == entry,
// so list traversal and metadata access never need a second lookup.
type recencyEntry struct {
	key      []byte
	slot     []byte
	hashRef  *hashindex.Node
	pinCount uint32
	node     *dllist.Node[*recencyEntry]
}

// Cache is the top-level facade: it owns the arena, the hash index, the
// recency list and the configuration supplied to New.
type Cache struct {
	cfg     *config
	arena   *arena.Arena
	hash    *hashindex.Index
	recency dllist.List[*recencyEntry]
	metrics metricsSink
	pinned  int
}

// New constructs a Cache able to hold up to maxEntries entries of entrySize
// bytes each, addressed by keys of keySize bytes.
func New(maxEntries, entrySize, keySize int, opts ...Option) (*Cache, error) {
	cfg := defaultConfig(maxEntries, entrySize, keySize)
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	ar, err := arena.New(cfg.maxEntries, cfg.entrySize, arena.AllocFunc(cfg.alloc), arena.FreeFunc(cfg.free))
	if err != nil {
		return nil, ErrOutOfMemory
	}

	hi := hashindex.New(cfg.maxEntries, hashindex.CompareFunc(cfg.cmp), hashindex.HashFunc(cfg.hashKey))

	return &Cache{
		cfg:     cfg,
		arena:   ar,
		hash:    hi,
		metrics: newMetricsSink(cfg.registry),
	}, nil
}

/* -------------------------------------------------------------------------
   4.4.1 Lookup
   ------------------------------------------------------------------------- */

// Lookup resolves key to its live entry. If dst is non-nil, entrySize bytes
// are copied into dst and dst is returned (no pinning). If dst is nil, the
// entry's pin count is incremented and a stable pointer into the cache's
// backing storage is returned; the caller must release it via UnlockEntry.
// Either way, the entry is promoted to most-recently-used. Returns
// ErrNotFound if key is absent.
func (c *Cache) Lookup(key, dst []byte) ([]byte, error) {
	if len(key) != c.cfg.keySize {
		return nil, ErrInvalidArgument
	}
	if dst != nil && len(dst) != c.cfg.entrySize {
		return nil, ErrInvalidArgument
	}

	hn := c.hash.Find(key)
	if hn == nil {
		c.metrics.incMiss()
		return nil, ErrNotFound
	}
	ent := hn.Owner().(*recencyEntry)

	var out []byte
	if dst != nil {
		copy(dst, ent.slot)
		out = dst
	} else {
		ent.pinCount++
		c.pinned++
		c.metrics.setPinnedEntries(c.pinned)
		out = ent.slot
	}

	c.recency.Remove(ent.node)
	c.recency.PushFront(ent.node)
	c.metrics.incHit()
	return out, nil
}

/* -------------------------------------------------------------------------
   4.4.2 Add
   ------------------------------------------------------------------------- */

// Add inserts key with a fresh entry. If src is non-nil, entrySize bytes are
// copied from src into the new slot; otherwise the slot's bytes are left
// untouched and the returned pointer is pinned (pin count 1) so the caller
// can write through it. Returns ErrDuplicate if key is already present, and
// ErrFull if the cache is at capacity and every live entry is pinned.
func (c *Cache) Add(key, src []byte) ([]byte, error) {
	if len(key) != c.cfg.keySize {
		return nil, ErrInvalidArgument
	}
	if src != nil && len(src) != c.cfg.entrySize {
		return nil, ErrInvalidArgument
	}
	if c.hash.Find(key) != nil {
		return nil, ErrDuplicate
	}

	var ent *recencyEntry
	newNode := false

	if c.recency.Len() < c.cfg.maxEntries {
		slot, err := c.arena.Acquire()
		if err != nil {
			c.cfg.logger.Error("pincache: arena acquire failed under capacity", zap.Error(err))
			return nil, ErrOutOfMemory
		}
		ent = &recencyEntry{slot: slot, key: make([]byte, c.cfg.keySize)}
		ent.node = &dllist.Node[*recencyEntry]{Value: ent}
		newNode = true
	} else {
		victim := c.recency.ForEachReverse(func(n *dllist.Node[*recencyEntry]) bool {
			return n.Value.pinCount != 0 // keep walking while pinned
		})
		if victim == nil {
			c.metrics.incPinRejection()
			c.cfg.logger.Warn("pincache: add rejected, cache full and every live entry is pinned",
				zap.Int("max_entries", c.cfg.maxEntries))
			return nil, ErrFull
		}
		ent = victim.Value
		c.recency.Remove(ent.node)
		c.hash.Remove(ent.key, ent.hashRef)
		c.metrics.incEvict()
		if c.cfg.freeEntry != nil {
			c.cfg.freeEntry(ent.key, ent.slot)
		}
		for i := range ent.key {
			ent.key[i] = 0
		}
	}

	if src != nil {
		copy(ent.slot, src)
	}
	copy(ent.key, key)
	ent.pinCount = 0
	c.recency.PushFront(ent.node)

	if newNode {
		if err := c.arena.SetBackRef(ent.slot, unsafe.Pointer(ent)); err != nil {
			c.recency.Remove(ent.node)
			_ = c.arena.Release(ent.slot)
			c.cfg.logger.Error("pincache: set-back-ref failed, rolled back insert", zap.Error(err))
			return nil, ErrOutOfMemory
		}
	}

	ent.hashRef = c.hash.Insert(ent.key, ent)

	if src == nil {
		ent.pinCount = 1
		c.pinned++
		c.metrics.setPinnedEntries(c.pinned)
	}
	c.metrics.setLiveEntries(c.recency.Len())
	return ent.slot, nil
}

/* -------------------------------------------------------------------------
   4.4.3 / 4.4.4 Delete
   ------------------------------------------------------------------------- */

// DeleteByKey removes the live entry addressed by key. Returns ErrNotFound
// if absent, ErrLocked if its pin count is non-zero.
func (c *Cache) DeleteByKey(key []byte) error {
	if len(key) != c.cfg.keySize {
		return ErrInvalidArgument
	}
	hn := c.hash.Find(key)
	if hn == nil {
		return ErrNotFound
	}
	ent := hn.Owner().(*recencyEntry)
	if ent.pinCount > 0 {
		return ErrLocked
	}
	c.removeLive(ent)
	return nil
}

// DeleteEntry removes the live entry whose payload slot is addressed by
// payload (as previously returned by Lookup or Add). Returns ErrNotFound if
// payload does not address a live slot, ErrLocked if pinned.
func (c *Cache) DeleteEntry(payload []byte) error {
	ent, err := c.resolve(payload)
	if err != nil {
		return err
	}
	if ent.pinCount > 0 {
		return ErrLocked
	}
	c.removeLive(ent)
	return nil
}

// removeLive unlinks ent from every structure and invokes FreeEntry. The
// caller has already checked the pin count.
func (c *Cache) removeLive(ent *recencyEntry) {
	if c.cfg.freeEntry != nil {
		c.cfg.freeEntry(ent.key, ent.slot)
	}
	c.hash.Remove(ent.key, ent.hashRef)
	_ = c.arena.Release(ent.slot)
	c.recency.Remove(ent.node)
	c.metrics.setLiveEntries(c.recency.Len())
}

/* -------------------------------------------------------------------------
   4.4.5 Unlock
   ------------------------------------------------------------------------- */

// UnlockEntry decrements the pin count of the entry whose payload slot is
// addressed by payload. Returns ErrNotFound if payload does not address a
// live slot, ErrAlreadyUnlocked if the pin count is already zero (a
// diagnostic for an unpaired unlock).
func (c *Cache) UnlockEntry(payload []byte) error {
	ent, err := c.resolve(payload)
	if err != nil {
		return err
	}
	if ent.pinCount == 0 {
		return ErrAlreadyUnlocked
	}
	ent.pinCount--
	c.pinned--
	c.metrics.setPinnedEntries(c.pinned)
	return nil
}

// resolve turns a payload pointer back into its owning recency node via the
// arena's reverse-lookup path.
func (c *Cache) resolve(payload []byte) (*recencyEntry, error) {
	ref, err := c.arena.GetBackRef(payload)
	if err != nil || ref == nil {
		return nil, ErrNotFound
	}
	return (*recencyEntry)(ref), nil
}

/* -------------------------------------------------------------------------
   4.4.6 / 4.4.7 Clean, Destroy
   ------------------------------------------------------------------------- */

// Clean evicts every entry regardless of pin state. This is the "forceful"
// reset documented in spec.md §4.4.6 and §9: callers must ensure no pinned
// pointers are outstanding before calling it, since Clean does not check
// pin counts.
func (c *Cache) Clean() error {
	c.cfg.logger.Info("pincache: clean forcing eviction of all entries", zap.Int("entries", c.hash.Count()))
	for {
		node := c.recency.PopFront()
		if node == nil {
			break
		}
		ent := node.Value
		if c.cfg.freeEntry != nil {
			c.cfg.freeEntry(ent.key, ent.slot)
		}
		_ = c.arena.Release(ent.slot)
	}
	c.hash.Clear()
	c.pinned = 0
	c.metrics.setLiveEntries(0)
	c.metrics.setPinnedEntries(0)
	return nil
}

// Destroy evicts every entry as Clean does, then releases the hash index's
// bucket array and the arena's backing memory via the configured FreeFunc.
// The Cache must not be used afterwards.
func (c *Cache) Destroy() error {
	_ = c.Clean()
	c.hash.Destroy()
	c.arena.Destroy()
	c.cfg.logger.Info("pincache: destroyed")
	return nil
}

/* -------------------------------------------------------------------------
   4.4.8 Accessors
   ------------------------------------------------------------------------- */

// MaxEntryNumber returns the fixed capacity N supplied to New.
func (c *Cache) MaxEntryNumber() int { return c.cfg.maxEntries }

// EntryNumber returns the current number of live entries.
func (c *Cache) EntryNumber() int { return c.hash.Count() }

// EntrySize returns the fixed payload size in bytes supplied to New. Used by
// Loader to size a Lookup destination buffer without hard-coding it twice.
func (c *Cache) EntrySize() int { return c.cfg.entrySize }
