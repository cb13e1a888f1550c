package pincache

// loaderfunc.go defines LoaderFunc, the user-supplied callback invoked by
// Loader.GetOrAdd when a key misses, mirroring the teacher's
// pkg/loaderfunc.go. Kept in its own file, as in the teacher; loader.go is
// its only user in this package.
//
// © 2025 pincache authors. MIT License.

import "context"

// LoaderFunc produces the payload to cache for key when GetOrAdd misses. It
// must return exactly entrySize bytes. The same LoaderFunc may be invoked
// concurrently for different keys; it must be safe for that.
type LoaderFunc func(ctx context.Context, key []byte) ([]byte, error)
