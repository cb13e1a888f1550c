package pincache

// lock.go offers an optional sync.Mutex-wrapped Cache for callers who want
// the teacher's shard-level-locking pattern (every shard method takes its
// own mutex for the duration of the call) without hand-rolling it
// themselves. It changes nothing about Cache's own semantics — it simply
// serialises the critical sections spec.md §5 names, one call at a time.
//
// © 2025 pincache authors. MIT License.

import "sync"

// LockedCache serialises every Cache method behind a single mutex. Use it
// when a *Cache must be shared across goroutines; single-threaded callers
// should use *Cache directly to avoid the locking overhead.
type LockedCache struct {
	mu sync.Mutex
	c  *Cache
}

// NewLocked wraps c for concurrent use.
func NewLocked(c *Cache) *LockedCache {
	return &LockedCache{c: c}
}

func (l *LockedCache) Lookup(key, dst []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Lookup(key, dst)
}

func (l *LockedCache) Add(key, src []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Add(key, src)
}

func (l *LockedCache) DeleteByKey(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.DeleteByKey(key)
}

func (l *LockedCache) DeleteEntry(payload []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.DeleteEntry(payload)
}

func (l *LockedCache) UnlockEntry(payload []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.UnlockEntry(payload)
}

func (l *LockedCache) Clean() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Clean()
}

func (l *LockedCache) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Destroy()
}

func (l *LockedCache) MaxEntryNumber() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.MaxEntryNumber()
}

func (l *LockedCache) EntryNumber() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.EntryNumber()
}

func (l *LockedCache) EntrySize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.EntrySize()
}
