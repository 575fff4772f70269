// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package drbg

// Algorithm identifies a DRBG mechanism family.
type Algorithm int

// The supported DRBG mechanisms.
const (
	// AlgCTR is CTR_DRBG with AES-256 and no derivation function.
	AlgCTR Algorithm = iota

	// AlgHash is Hash_DRBG with SHA-512.
	AlgHash

	// AlgHMAC is HMAC_DRBG with SHA-512.
	AlgHMAC
)

// String returns the mechanism name.
func (a Algorithm) String() string {
	switch a {
	case AlgCTR:
		return "CTR_DRBG-AES256"
	case AlgHash:
		return "Hash_DRBG-SHA512"
	case AlgHMAC:
		return "HMAC_DRBG-SHA512"
	default:
		return "unknown"
	}
}

// DRBG is the operation set shared by the three mechanisms.  Consumers
// that only need "some DRBG" can hold any of the concrete states behind
// this interface.
type DRBG interface {
	// Algorithm returns the mechanism family tag.
	Algorithm() Algorithm

	// Reseed mixes fresh entropy and optional additional input into the
	// state and resets the reseed counter.
	Reseed(entropy, additionalInput []byte) error

	// Generate fills out with pseudorandom bytes, optionally mixing in
	// additional input first.  The state is advanced after the output is
	// produced so that a later state compromise does not reveal it.
	Generate(out, additionalInput []byte) error

	// Clear scrubs the entire state.  The value is unusable afterwards.
	Clear()
}

// Shared SP 800-90Ar1 mechanism limits (Table 2 and Table 3) for the
// SHA-512 based mechanisms.
const (
	// MinEntropyLen is the minimum entropy input length in bytes.
	MinEntropyLen = 32

	// MaxEntropyLen is the maximum entropy input length in bytes.
	MaxEntropyLen = uint64(1) << 32

	// MaxNonceLen is the maximum nonce length in bytes.
	MaxNonceLen = uint64(1) << 16

	// MaxPersStrLen is the maximum personalization string length in bytes.
	MaxPersStrLen = uint64(1) << 32

	// MaxAddnInputLen is the maximum additional input length in bytes.
	MaxAddnInputLen = uint64(1) << 32

	// MaxOutLen is the maximum output length of a single Generate call
	// in bytes.
	MaxOutLen = uint64(1) << 16

	// MaxReseedCount is the number of Generate calls permitted between
	// reseeds.
	MaxReseedCount = uint64(1) << 48
)
