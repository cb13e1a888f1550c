// Package arena implements the fixed-capacity slab that backs pincache's
// payload storage. It partitions a single caller-allocated buffer into N
// equal-stride slots, hands out stable byte-slice views into that buffer on
// Acquire, and recovers a slot's reserved back-reference word from a payload
// pointer in O(1) — the reverse-lookup path the cache facade relies on to
// turn a caller's pinned pointer back into its owning metadata.
//
// The teacher package of the same name wrapped Go's experimental `arena`
// package behind a tiny allocation surface; that API requires a build tag
// (`goexperiment.arenas`) this repository cannot depend on. We keep the
// teacher's shape — a thin, audited wrapper that is the single place
// pointer arithmetic happens — but back it with a plain byte slice obtained
// from a caller-supplied allocator, exactly as spec'd.
//
// Concurrency
// -----------
// Arena is not thread-safe; the cache facade above it is the single owner
// and serialises access per pincache's documented critical sections.
//
// © 2025 pincache authors. MIT License.
package arena

import (
	"errors"
	"unsafe"

	"github.com/kagenova/pincache/internal/unsafehelpers"
)

// ErrArenaEmpty is returned by Acquire when every slot is live.
var ErrArenaEmpty = errors.New("arena: no free slots")

// ErrNotOwned is returned when a payload pointer does not address a slot of
// this arena (wrong arena, misaligned, or out of range).
var ErrNotOwned = errors.New("arena: pointer not owned by this arena")

// AllocFunc allocates n bytes of backing memory for an Arena.
type AllocFunc func(n int) []byte

// FreeFunc releases memory previously returned by an AllocFunc.
type FreeFunc func(buf []byte)

// Arena is a fixed-capacity slab of n equal-size payload slots.
type Arena struct {
	buf    []byte
	stride int
	size   int // entrySize, the usable prefix of each stride-sized slot
	n      int

	// backRefs holds one reserved word per slot: a back-reference to the
	// slot's owning metadata (opaque to the arena), or nil for a free slot.
	backRefs []unsafe.Pointer

	// free is a stack of free slot indices; popping the tail yields the
	// lowest untouched index first, which keeps Acquire deterministic for
	// tests.
	free []uint32

	allocFn AllocFunc
	freeFn  FreeFunc
}

// New partitions a buffer obtained from alloc into n slots of entrySize
// bytes each (stride rounded up to a 4-byte multiple). alloc and free must
// be non-nil.
func New(n, entrySize int, alloc AllocFunc, free FreeFunc) (*Arena, error) {
	if n <= 0 {
		return nil, errors.New("arena: n must be > 0")
	}
	if entrySize <= 0 {
		return nil, errors.New("arena: entrySize must be > 0")
	}
	stride := int(unsafehelpers.AlignUp(uintptr(entrySize), 4))

	buf := alloc(stride * n)
	if buf == nil || len(buf) < stride*n {
		return nil, errors.New("arena: allocator returned insufficient memory")
	}

	a := &Arena{
		buf:      buf,
		stride:   stride,
		size:     entrySize,
		n:        n,
		backRefs: make([]unsafe.Pointer, n),
		free:     make([]uint32, n),
		allocFn:  alloc,
		freeFn:   free,
	}
	for i := 0; i < n; i++ {
		a.free[i] = uint32(n - 1 - i) // pop from the tail => ascending order
	}
	return a, nil
}

// Cap returns the slot count N.
func (a *Arena) Cap() int { return a.n }

// slotBytes returns the payload slice for slot index i.
func (a *Arena) slotBytes(i uint32) []byte {
	off := int(i) * a.stride
	return a.buf[off : off+a.size]
}

// Acquire returns a free slot's payload slice, marks it live and clears its
// back-reference to the free sentinel (nil). Fails with ErrArenaEmpty if no
// slot is free.
func (a *Arena) Acquire() ([]byte, error) {
	if len(a.free) == 0 {
		return nil, ErrArenaEmpty
	}
	idx := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	a.backRefs[idx] = nil
	return a.slotBytes(idx), nil
}

// Release returns the slot addressed by payload to the free set and resets
// its back-reference to the free sentinel. Fails with ErrNotOwned if
// payload does not address a slot of this arena. It does not detect a slot
// that is already free: releasing one twice puts its index on the free
// stack twice.
func (a *Arena) Release(payload []byte) error {
	idx, err := a.IndexOf(payload)
	if err != nil {
		return err
	}
	a.backRefs[idx] = nil
	a.free = append(a.free, idx)
	return nil
}

// SetBackRef stores the back-reference word for the slot addressed by
// payload. Fails with ErrNotOwned on an invalid pointer.
func (a *Arena) SetBackRef(payload []byte, ref unsafe.Pointer) error {
	idx, err := a.IndexOf(payload)
	if err != nil {
		return err
	}
	a.backRefs[idx] = ref
	return nil
}

// GetBackRef returns the back-reference stored for payload, or the free
// sentinel (nil) if the slot is free. Fails with ErrNotOwned only when
// payload cannot be resolved to any slot of this arena at all.
func (a *Arena) GetBackRef(payload []byte) (unsafe.Pointer, error) {
	idx, err := a.IndexOf(payload)
	if err != nil {
		return nil, err
	}
	return a.backRefs[idx], nil
}

// IndexOf resolves payload to its slot index via pointer arithmetic,
// validating alignment and range.
func (a *Arena) IndexOf(payload []byte) (uint32, error) {
	if len(payload) == 0 {
		return 0, ErrNotOwned
	}
	base := unsafehelpers.Addr(a.buf)
	p := unsafehelpers.Addr(payload)
	if p < base {
		return 0, ErrNotOwned
	}
	off := p - base
	if off >= uintptr(len(a.buf)) || off%uintptr(a.stride) != 0 {
		return 0, ErrNotOwned
	}
	idx := off / uintptr(a.stride)
	if idx >= uintptr(a.n) {
		return 0, ErrNotOwned
	}
	return uint32(idx), nil
}

// Destroy releases the arena's backing memory via the allocator's paired
// FreeFunc. The Arena must not be used afterwards.
func (a *Arena) Destroy() {
	if a.freeFn != nil && a.buf != nil {
		a.freeFn(a.buf)
	}
	a.buf = nil
	a.backRefs = nil
	a.free = nil
}
