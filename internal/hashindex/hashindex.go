// Package hashindex implements the fixed-capacity chained hash table that
// maps pincache keys to their owning recency node. Bucket count is rounded
// up to the next power of two at construction and never resized; collisions
// are resolved by chaining, grounded on the separate-chaining design in the
// pack's thebagchi-arena-go Map (arena-backed hash map with maphash + chain
// entries) and the teacher's own per-shard maphash usage, adapted here to a
// caller-pluggable hash/compare pair over raw key bytes instead of Go
// generics' built-in equality.
//
// © 2025 pincache authors. MIT License.
package hashindex

import "math/bits"

// fibMultiplier is Knuth's 32-bit Fibonacci-hashing constant: the top `bits`
// bits of key*fibMultiplier spread uniformly across a power-of-two bucket
// count.
const fibMultiplier uint32 = 0x9E370001

// CompareFunc reports -1/0/1 for a<b, a==b, a>b under the caller's key
// ordering. Only equality (result == 0) is actually relied upon here.
type CompareFunc func(a, b []byte) int

// HashFunc maps a key to an arbitrary uint32; the index folds it down to the
// bucket count with Fibonacci hashing.
type HashFunc func(key []byte) uint32

// Node is stored in one bucket's chain. Owner is opaque to the index — the
// cache facade stores an unsafe.Pointer to its recency node there, but
// hashindex never dereferences it.
type Node struct {
	key   []byte
	owner any
	next  *Node
}

// Owner returns the opaque owner reference stored with this node.
func (n *Node) Owner() any { return n.owner }

// Index is a fixed-bucket-count chained hash table.
type Index struct {
	buckets []*Node
	bits    uint
	cmp     CompareFunc
	toNum   HashFunc
	count   int
}

// New constructs an Index sized for maxEntries (bucket count rounded up to
// the next power of two, i.e. bits = ceil(log2(max(maxEntries,1)))).
func New(maxEntries int, cmp CompareFunc, toNum HashFunc) *Index {
	if maxEntries < 1 {
		maxEntries = 1
	}
	b := uint(bits.Len32(uint32(maxEntries - 1)))
	return &Index{
		buckets: make([]*Node, 1<<b),
		bits:    b,
		cmp:     cmp,
		toNum:   toNum,
	}
}

func (h *Index) bucketOf(key []byte) uint32 {
	prod := h.toNum(key) * fibMultiplier
	return prod >> (32 - h.bits)
}

// Insert allocates a node holding a copy of key and owner, appends it to its
// bucket's chain and returns it. Does not check for duplicates — callers
// must call Find first.
func (h *Index) Insert(key []byte, owner any) *Node {
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	n := &Node{key: keyCopy, owner: owner}
	b := h.bucketOf(key)
	if h.buckets[b] == nil {
		h.buckets[b] = n
	} else {
		tail := h.buckets[b]
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = n
	}
	h.count++
	return n
}

// Find walks the bucket chain for key, returning the first node whose
// stored key compares equal under cmp, or nil if absent.
func (h *Index) Find(key []byte) *Node {
	b := h.bucketOf(key)
	for n := h.buckets[b]; n != nil; n = n.next {
		if h.cmp(n.key, key) == 0 {
			return n
		}
	}
	return nil
}

// Remove unlinks node from its bucket chain. key must be the same key the
// node was inserted with (its hash determines the bucket to search).
func (h *Index) Remove(key []byte, node *Node) {
	b := h.bucketOf(key)
	var prev *Node
	for n := h.buckets[b]; n != nil; n = n.next {
		if n == node {
			if prev == nil {
				h.buckets[b] = n.next
			} else {
				prev.next = n.next
			}
			h.count--
			return
		}
		prev = n
	}
}

// Count returns the total number of live entries across all buckets.
func (h *Index) Count() int { return h.count }

// Clear empties every bucket but retains the bucket array.
func (h *Index) Clear() {
	for i := range h.buckets {
		h.buckets[i] = nil
	}
	h.count = 0
}

// Destroy clears the index and releases the bucket array.
func (h *Index) Destroy() {
	h.buckets = nil
	h.count = 0
}
