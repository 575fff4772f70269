// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package drbg

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/vibhav950/Xrand/internal/zero"
)

// HMACOutLen is the HMAC-SHA-512 output length.
const HMACOutLen = sha512.Size

// HMACDRBG is the state of an HMAC_DRBG instance per SP 800-90Ar1
// §10.1.2.1: the outlen-byte working values Key and V and the reseed
// counter.
type HMACDRBG struct {
	k       [HMACOutLen]byte
	v       [HMACOutLen]byte
	counter uint64
	inited  bool
}

// hmacSum computes HMAC(key, m1 || m2 ... ) into out.
func hmacSum(out []byte, key []byte, msgs ...[]byte) {
	mac := hmac.New(sha512.New, key)
	for _, m := range msgs {
		mac.Write(m)
	}
	sum := mac.Sum(nil)
	copy(out, sum)
	zero.Bytes(sum)
}

// update is the HMAC_DRBG update function (§10.1.2.2).  The second
// key/value round only runs when provided data is present.
func (d *HMACDRBG) update(providedData []byte) {
	// K = HMAC(K, V || 0x00 || provided_data); V = HMAC(K, V).
	hmacSum(d.k[:], d.k[:], d.v[:], []byte{0x00}, providedData)
	hmacSum(d.v[:], d.k[:], d.v[:])

	if len(providedData) == 0 {
		return
	}

	// K = HMAC(K, V || 0x01 || provided_data); V = HMAC(K, V).
	hmacSum(d.k[:], d.k[:], d.v[:], []byte{0x01}, providedData)
	hmacSum(d.v[:], d.k[:], d.v[:])
}

// NewHMACDRBG instantiates an HMAC_DRBG (§10.1.2.3).  The entropy input
// must be between MinEntropyLen and MaxEntropyLen bytes and a nonce is
// required; the personalization string is optional.
func NewHMACDRBG(entropy, nonce, personalization []byte) (*HMACDRBG, error) {
	if entropy == nil {
		return nil, makeError(ErrNullPointer, "entropy must not be nil")
	}
	if len(entropy) < MinEntropyLen || uint64(len(entropy)) > MaxEntropyLen {
		return nil, makeError(ErrBadArgs, fmt.Sprintf("entropy length %d "+
			"out of range [%d, %d]", len(entropy), MinEntropyLen, MaxEntropyLen))
	}
	if nonce == nil {
		return nil, makeError(ErrNullPointer, "nonce must not be nil")
	}
	if len(nonce) == 0 || uint64(len(nonce)) > MaxNonceLen {
		return nil, makeError(ErrBadArgs, fmt.Sprintf("nonce length %d out "+
			"of range [1, %d]", len(nonce), MaxNonceLen))
	}
	if uint64(len(personalization)) > MaxPersStrLen {
		return nil, makeError(ErrBadArgs, "personalization string too long")
	}

	seedMaterial := make([]byte, 0, len(entropy)+len(nonce)+len(personalization))
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, nonce...)
	seedMaterial = append(seedMaterial, personalization...)
	defer zero.Bytes(seedMaterial)

	d := new(HMACDRBG)
	// Key = 0x00...00, V = 0x01...01.
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(seedMaterial)
	d.counter = 1
	d.inited = true
	return d, nil
}

// Algorithm returns AlgHMAC.
func (d *HMACDRBG) Algorithm() Algorithm {
	return AlgHMAC
}

// Reseed mixes fresh entropy and optional additional input into the state
// (§10.1.2.4) and resets the reseed counter.
func (d *HMACDRBG) Reseed(entropy, additionalInput []byte) error {
	if !d.inited {
		return makeError(ErrNotInitialized, "state is not instantiated")
	}
	if entropy == nil {
		return makeError(ErrNullPointer, "entropy must not be nil")
	}
	if len(entropy) < MinEntropyLen || uint64(len(entropy)) > MaxEntropyLen {
		return makeError(ErrBadArgs, fmt.Sprintf("entropy length %d out of "+
			"range [%d, %d]", len(entropy), MinEntropyLen, MaxEntropyLen))
	}
	if uint64(len(additionalInput)) > MaxAddnInputLen {
		return makeError(ErrBadArgs, "additional input too long")
	}

	seedMaterial := make([]byte, 0, len(entropy)+len(additionalInput))
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, additionalInput...)
	defer zero.Bytes(seedMaterial)

	d.update(seedMaterial)
	d.counter = 1
	return nil
}

// Generate fills out with pseudorandom bytes (§10.1.2.5).  The state is
// updated after the output is produced, whether or not additional input
// was supplied, so that a later state compromise does not reveal it.
func (d *HMACDRBG) Generate(out, additionalInput []byte) error {
	if !d.inited {
		return makeError(ErrNotInitialized, "state is not instantiated")
	}
	if uint64(len(out)) > MaxOutLen {
		return makeError(ErrBadArgs, fmt.Sprintf("output length %d exceeds "+
			"%d", len(out), MaxOutLen))
	}
	if uint64(len(additionalInput)) > MaxAddnInputLen {
		return makeError(ErrBadArgs, "additional input too long")
	}
	if d.counter > MaxReseedCount {
		return makeError(ErrReseedRequired, "reseed counter exhausted")
	}

	if len(additionalInput) > 0 {
		d.update(additionalInput)
	}

	for i := 0; i < len(out); i += HMACOutLen {
		// V = HMAC(K, V).
		hmacSum(d.v[:], d.k[:], d.v[:])
		copy(out[i:], d.v[:])
	}

	d.update(additionalInput)
	d.counter++
	return nil
}

// Clear scrubs the entire state.  The value is unusable afterwards.
func (d *HMACDRBG) Clear() {
	zero.Bytes(d.k[:])
	zero.Bytes(d.v[:])
	zero.Uint64(&d.counter)
	d.inited = false
}
