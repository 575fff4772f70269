// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build unix

package entropy

import "golang.org/x/sys/unix"

// lockMemory pins b to physical memory so pool contents are never paged
// to disk.
func lockMemory(b []byte) error {
	return unix.Mlock(b)
}

// unlockMemory releases the pinning applied by lockMemory.
func unlockMemory(b []byte) error {
	return unix.Munlock(b)
}
