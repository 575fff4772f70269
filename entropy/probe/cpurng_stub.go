// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !amd64

package probe

const (
	hasRand64 = false
	hasSeed64 = false
)

func rand64() (uint64, bool) { return 0, false }

func seed64() (uint64, bool) { return 0, false }
