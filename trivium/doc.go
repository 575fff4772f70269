// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trivium implements the eSTREAM Trivium stream cipher as a
// lightweight keystream generator periodically reseeded from the
// randomness pool.
//
// Trivium output is fast to produce and statistically strong, but it is
// NOT a substitute for the pool or the SP 800-90A DRBGs when unpredictable
// bytes are required; it serves consumers such as the random-variate
// distributions where throughput matters and a fresh seed every 2^20
// output bytes suffices.
package trivium
