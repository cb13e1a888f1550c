package pincache

// config.go defines the internal configuration object and the functional
// options accepted by New, following the teacher's pkg/config.go pattern:
// sensible defaults in defaultConfig, options that only capture external
// collaborators (allocator, logger, registry, comparator, hasher), and
// validation concentrated in one place.
//
// © 2025 pincache authors. MIT License.

import (
	"bytes"
	"hash/maphash"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// AllocFunc allocates n bytes of backing memory for the arena.
type AllocFunc func(n int) []byte

// FreeFunc releases memory previously returned by an AllocFunc.
type FreeFunc func(buf []byte)

// FreeEntryFunc is invoked with the key and payload of every entry removed
// from the cache — by eviction during Add, by DeleteByKey/DeleteEntry, or by
// Clean/Destroy. See SPEC_FULL.md §4.4 for the resolved "deferred cleanup"
// open question: unlike the C original, this callback fires uniformly on
// every removal path, not only at Destroy.
type FreeEntryFunc func(key, payload []byte)

// CompareFunc reports whether two keys are equal (0) or not (non-zero).
// Only the zero/non-zero distinction is used by pincache.
type CompareFunc func(a, b []byte) int

// KeyHashFunc maps a key to a uint32 used as the Fibonacci-hashing input.
type KeyHashFunc func(key []byte) uint32

// Option configures a Cache at construction time.
type Option func(*config)

type config struct {
	maxEntries int
	entrySize  int
	keySize    int

	alloc     AllocFunc
	free      FreeFunc
	freeEntry FreeEntryFunc
	cmp       CompareFunc
	hashKey   KeyHashFunc

	logger   *zap.Logger
	registry *prometheus.Registry
}

func defaultAlloc(n int) []byte { return make([]byte, n) }
func defaultFree(_ []byte)      {}

func defaultConfig(maxEntries, entrySize, keySize int) *config {
	seed := maphash.MakeSeed()
	return &config{
		maxEntries: maxEntries,
		entrySize:  entrySize,
		keySize:    keySize,
		alloc:      defaultAlloc,
		free:       defaultFree,
		cmp:        bytes.Compare,
		hashKey: func(key []byte) uint32 {
			var h maphash.Hash
			h.SetSeed(seed)
			h.Write(key)
			return uint32(h.Sum64())
		},
		logger: zap.NewNop(),
	}
}

// WithAllocator overrides the memory source/sink used for the arena's
// backing buffer. alloc must return a buffer of at least n bytes; free must
// accept exactly what alloc returned.
func WithAllocator(alloc AllocFunc, free FreeFunc) Option {
	return func(c *config) {
		if alloc != nil {
			c.alloc = alloc
		}
		if free != nil {
			c.free = free
		}
	}
}

// WithFreeEntry registers a callback invoked on every entry removal with the
// entry's key and payload, giving the caller a last chance to release
// payload-internal resources (e.g. spill to an L2 store).
func WithFreeEntry(fn FreeEntryFunc) Option {
	return func(c *config) { c.freeEntry = fn }
}

// WithComparator overrides the key equality test (default: bytes.Compare).
// The function must treat key-size-length slices consistently with
// WithKeyHash: equal keys must hash identically.
func WithComparator(cmp CompareFunc) Option {
	return func(c *config) {
		if cmp != nil {
			c.cmp = cmp
		}
	}
}

// WithKeyHash overrides the key-to-uint32 function used as Fibonacci-hashing
// input (default: maphash seeded once per Cache).
func WithKeyHash(fn KeyHashFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.hashKey = fn
		}
	}
}

// WithLogger plugs an external zap.Logger. The cache never logs on the
// Lookup/Add hot path; only rare/slow events (Destroy, Clean, ErrFull,
// ErrOutOfMemory) are emitted.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection for the cache instance.
// Passing nil leaves metrics disabled (default, no-op sink).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

func applyOptions(cfg *config, opts []Option) error {
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxEntries <= 0 {
		return ErrInvalidArgument
	}
	if cfg.entrySize <= 0 {
		return ErrInvalidArgument
	}
	if cfg.keySize <= 0 {
		return ErrInvalidArgument
	}
	return nil
}
