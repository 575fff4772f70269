// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package drbg implements the NIST SP 800-90A Rev. 1 deterministic random
// bit generators: CTR_DRBG with AES-256 and no derivation function,
// Hash_DRBG with SHA-512, and HMAC_DRBG with SHA-512.
//
// The generators consume seed material from an entropy source (typically
// the entropy package pool) and emit large volumes of pseudorandom bytes
// with reseed discipline and backtracking resistance.  All three satisfy
// the DRBG interface so consumers that only need "some DRBG" can
// parameterize over the mechanism.
//
// DRBG states hold secret material.  Clear must be called when a state is
// no longer needed; it scrubs the state before release.  States are owned
// by their callers and are not safe for concurrent use.
package drbg
