package pincache

// errors.go collects every sentinel error pincache returns, following the
// teacher's pkg/config.go pattern of named package-level errors checked
// with errors.Is rather than ad-hoc string matching.
//
// © 2025 pincache authors. MIT License.

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is nil, the
	// wrong length, or otherwise structurally invalid.
	ErrInvalidArgument = errors.New("pincache: invalid argument")

	// ErrNotFound is returned when a key or payload pointer does not
	// resolve to a live entry.
	ErrNotFound = errors.New("pincache: entry not found")

	// ErrLocked is returned when a mutation targets an entry with a
	// non-zero pin count.
	ErrLocked = errors.New("pincache: entry is locked (pinned)")

	// ErrAlreadyUnlocked is returned by UnlockEntry when the target entry's
	// pin count is already zero — an unpaired unlock.
	ErrAlreadyUnlocked = errors.New("pincache: entry already unlocked")

	// ErrFull is returned by Add when the cache is at capacity and every
	// live entry is pinned, so no eviction victim exists.
	ErrFull = errors.New("pincache: cache full, no unpinned victim")

	// ErrDuplicate is returned by Add when the key is already present.
	ErrDuplicate = errors.New("pincache: key already present")

	// ErrOutOfMemory is returned when an internal allocation fails.
	ErrOutOfMemory = errors.New("pincache: out of memory")
)
