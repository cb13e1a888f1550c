package pincache

// stats.go exposes a point-in-time snapshot of cache occupancy, grounded on
// the teacher's Len/SizeBytes pair surfaced through examples/basic's
// /debug/arena-cache/snapshot endpoint and consumed by
// cmd/pincache-inspect. Unlike metrics.go's Prometheus counters (monotonic,
// scrape-friendly), Stats is a cheap synchronous call a caller can embed in
// its own diagnostics endpoint without wiring Prometheus at all.
//
// © 2025 pincache authors. MIT License.

// Stats is a point-in-time snapshot of a Cache's occupancy.
type Stats struct {
	MaxEntries    int `json:"max_entries"`
	LiveEntries   int `json:"live_entries"`
	PinnedEntries int `json:"pinned_entries"`
	EntrySize     int `json:"entry_size"`
	KeySize       int `json:"key_size"`
}

// Stats returns a snapshot of c's current occupancy.
func (c *Cache) Stats() Stats {
	return Stats{
		MaxEntries:    c.cfg.maxEntries,
		LiveEntries:   c.recency.Len(),
		PinnedEntries: c.pinned,
		EntrySize:     c.cfg.entrySize,
		KeySize:       c.cfg.keySize,
	}
}

// Stats returns a snapshot of the wrapped Cache's current occupancy.
func (l *LockedCache) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Stats()
}
