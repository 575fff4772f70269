// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package drbg

import (
	"crypto/aes"
	"encoding/binary"
	"fmt"

	"github.com/vibhav950/Xrand/internal/zero"
)

// SP 800-90Ar1 Table 3 parameters for CTR_DRBG with AES-256 and no
// derivation function.
const (
	// CTREntropyLen is the seed length: the AES-256 key plus one block.
	CTREntropyLen = 48

	ctrKeyLen   = 32
	ctrBlockLen = 16
)

// CTRDRBG is the state of a CTR_DRBG instance per SP 800-90Ar1 §10.2.1.1:
// a 128-bit vector V whose last 32 bits carry the block counter, a 256-bit
// AES key K, and the reseed counter.
type CTRDRBG struct {
	v       [ctrBlockLen]byte
	k       [ctrKeyLen]byte
	counter uint64
	inited  bool
}

// incr32 adds n to the last 32 bits of V in big-endian representation.
// The upper 96 bits never see a carry (the "ctr_len = blocklen" variant).
func (d *CTRDRBG) incr32(n uint32) {
	c := binary.BigEndian.Uint32(d.v[12:16])
	binary.BigEndian.PutUint32(d.v[12:16], c+n)
}

// update is the CTR_DRBG update function (§10.2.1.2).  providedData must
// be at most CTREntropyLen bytes; shorter inputs only perturb the leading
// bytes of the new key material.
func (d *CTRDRBG) update(providedData []byte) error {
	if len(providedData) > CTREntropyLen {
		return makeError(ErrBadArgs, fmt.Sprintf("provided data length %d "+
			"exceeds seed length %d", len(providedData), CTREntropyLen))
	}

	block, err := aes.NewCipher(d.k[:])
	if err != nil {
		d.Clear()
		return makeError(ErrInternal, fmt.Sprintf("aes key schedule: %v", err))
	}

	var temp [CTREntropyLen]byte
	defer zero.Bytes(temp[:])

	for i := 0; i < CTREntropyLen; i += ctrBlockLen {
		d.incr32(1)
		block.Encrypt(temp[i:i+ctrBlockLen], d.v[:])
	}

	for i := range providedData {
		temp[i] ^= providedData[i]
	}

	copy(d.k[:], temp[:ctrKeyLen])
	copy(d.v[:], temp[ctrKeyLen:])
	return nil
}

// NewCTRDRBG instantiates a CTR_DRBG (§10.2.1.3.1) from a 48-byte entropy
// input and an optional personalization string of at most 48 bytes.
func NewCTRDRBG(entropy, personalization []byte) (*CTRDRBG, error) {
	if entropy == nil {
		return nil, makeError(ErrNullPointer, "entropy must not be nil")
	}
	if len(entropy) != CTREntropyLen {
		return nil, makeError(ErrBadArgs, fmt.Sprintf("entropy length %d, "+
			"expected %d", len(entropy), CTREntropyLen))
	}
	if len(personalization) > CTREntropyLen {
		return nil, makeError(ErrBadArgs, fmt.Sprintf("personalization "+
			"length %d exceeds %d", len(personalization), CTREntropyLen))
	}

	var seed [CTREntropyLen]byte
	defer zero.Bytes(seed[:])
	copy(seed[:], entropy)
	for i := range personalization {
		seed[i] ^= personalization[i]
	}

	d := new(CTRDRBG)
	d.inited = true
	if err := d.update(seed[:]); err != nil {
		return nil, err
	}
	d.counter = 1
	return d, nil
}

// Algorithm returns AlgCTR.
func (d *CTRDRBG) Algorithm() Algorithm {
	return AlgCTR
}

// Reseed mixes a fresh 48-byte entropy input, XORed with the zero-padded
// additional input, into the state (§10.2.1.4.1) and resets the reseed
// counter.
func (d *CTRDRBG) Reseed(entropy, additionalInput []byte) error {
	if !d.inited {
		return makeError(ErrNotInitialized, "state is not instantiated")
	}
	if entropy == nil {
		return makeError(ErrNullPointer, "entropy must not be nil")
	}
	if len(entropy) != CTREntropyLen {
		return makeError(ErrBadArgs, fmt.Sprintf("entropy length %d, "+
			"expected %d", len(entropy), CTREntropyLen))
	}
	if len(additionalInput) > CTREntropyLen {
		return makeError(ErrBadArgs, fmt.Sprintf("additional input length "+
			"%d exceeds %d", len(additionalInput), CTREntropyLen))
	}

	var seed [CTREntropyLen]byte
	defer zero.Bytes(seed[:])
	copy(seed[:], entropy)
	for i := range additionalInput {
		seed[i] ^= additionalInput[i]
	}

	if err := d.update(seed[:]); err != nil {
		return err
	}
	d.counter = 1
	return nil
}

// Generate fills out with pseudorandom bytes (§10.2.1.5.1).  A request may
// not exceed MaxOutLen bytes, and the additional input may not exceed the
// seed length.  After the output blocks are produced the state is updated
// again for backtracking resistance and the reseed counter incremented.
func (d *CTRDRBG) Generate(out, additionalInput []byte) error {
	if !d.inited {
		return makeError(ErrNotInitialized, "state is not instantiated")
	}
	if uint64(len(out)) > MaxOutLen {
		return makeError(ErrBadArgs, fmt.Sprintf("output length %d exceeds "+
			"%d", len(out), MaxOutLen))
	}
	if len(additionalInput) > CTREntropyLen {
		return makeError(ErrBadArgs, fmt.Sprintf("additional input length "+
			"%d exceeds %d", len(additionalInput), CTREntropyLen))
	}
	if d.counter > MaxReseedCount {
		return makeError(ErrReseedRequired, "reseed counter exhausted")
	}

	// The additional input participates zero-padded to the seed length in
	// both the pre-output and the backtracking-resistance updates.
	var addInput [CTREntropyLen]byte
	defer zero.Bytes(addInput[:])
	copy(addInput[:], additionalInput)

	if len(additionalInput) > 0 {
		if err := d.update(addInput[:]); err != nil {
			return err
		}
	}

	block, err := aes.NewCipher(d.k[:])
	if err != nil {
		d.Clear()
		return makeError(ErrInternal, fmt.Sprintf("aes key schedule: %v", err))
	}

	var temp [ctrBlockLen]byte
	defer zero.Bytes(temp[:])

	remaining := len(out)
	for i := 0; remaining > 0; {
		d.incr32(1)
		block.Encrypt(temp[:], d.v[:])

		if remaining < ctrBlockLen {
			copy(out[i:], temp[:remaining])
			break
		}
		copy(out[i:], temp[:])
		remaining -= ctrBlockLen
		i += ctrBlockLen
	}

	// Update for backtracking resistance.
	if err := d.update(addInput[:]); err != nil {
		return err
	}
	d.counter++
	return nil
}

// Clear scrubs the entire state.  The value is unusable afterwards.
func (d *CTRDRBG) Clear() {
	zero.Bytes(d.v[:])
	zero.Bytes(d.k[:])
	zero.Uint64(&d.counter)
	d.inited = false
}
