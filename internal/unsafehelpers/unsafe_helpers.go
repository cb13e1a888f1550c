// Package unsafehelpers centralises the handful of unavoidable `unsafe`
// pointer-arithmetic helpers needed by internal/arena, so that the rest of
// pincache stays clean and easy to audit. Every helper is documented with
// clear pre-/post-conditions.
//
// ⚠️  **DISCLAIMER**   These helpers deliberately break the Go memory‑safety
// model for the sake of zero‑allocation slot addressing inside the arena.
// Use ONLY inside this repository; they are not part of the public API and
// may change without notice. Misuse will lead to subtle data races or
// garbage-collector corruption.
//
// All functions are `go:linkname`‑free, cgo‑free and pure Go.
//
// © 2025 pincache authors. MIT License.
package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Pointer arithmetic
   ------------------------------------------------------------------------- */

// Addr returns the numeric address of the first byte of b. b must be
// non-empty; the arena never calls this with a zero-length slice.
func Addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

/* -------------------------------------------------------------------------
   2. Alignment helpers
   ------------------------------------------------------------------------- */

// AlignUp rounds x up to the nearest multiple of align (which must be a power
// of two). Fast bit‑twiddling alternative to a division/modulo pair.
func AlignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}
