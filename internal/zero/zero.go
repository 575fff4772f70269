// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zero provides functions to clear sensitive material from memory.
//
// The clears are performed through a volatile-style indirection that the
// compiler cannot prove dead, so they survive dead-store elimination even
// when the buffer is about to go out of scope.
package zero

import "runtime"

// blank is a package-level variable whose value is stored into the target,
// so the stores are not constant writes the compiler can elide.
var blank byte

// Bytes sets every byte of b to zero.
func Bytes(b []byte) {
	for i := range b {
		b[i] = blank
	}
	runtime.KeepAlive(b)
}

// Uint32s sets every element of w to zero.
func Uint32s(w []uint32) {
	for i := range w {
		w[i] = uint32(blank)
	}
	runtime.KeepAlive(w)
}

// Uint64 sets the pointed-to value to zero.
func Uint64(v *uint64) {
	*v = uint64(blank)
	runtime.KeepAlive(v)
}
