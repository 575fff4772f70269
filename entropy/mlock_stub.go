// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !unix

package entropy

// Paging protection is unavailable on this platform.

func lockMemory(b []byte) error { return nil }

func unlockMemory(b []byte) error { return nil }
