// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package drbg

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/vibhav950/Xrand/internal/zero"
)

// HashSeedLen is the Hash_DRBG seed length for SHA-512 (SP 800-90Ar1
// Table 2: seedlen = 888 bits).
const HashSeedLen = 111

const hashOutLen = sha512.Size

// HashDRBG is the state of a Hash_DRBG instance per SP 800-90Ar1
// §10.1.1.1: the seedlen-byte working values V and C and the reseed
// counter.
type HashDRBG struct {
	v       [HashSeedLen]byte
	c       [HashSeedLen]byte
	counter uint64
	inited  bool
}

// addBE performs V = (V + N) mod 2^(seedlen*8) where both operands are
// big-endian byte strings, propagating the carry from the least
// significant byte.
func addBE(v []byte, n []byte) {
	carry := 0
	for i, j := len(v)-1, len(n)-1; i >= 0; i, j = i-1, j-1 {
		sum := int(v[i]) + carry
		if j >= 0 {
			sum += int(n[j])
		}
		v[i] = byte(sum)
		carry = sum >> 8
	}
}

// hashDF is the hash-based derivation function (§10.3.1).  Block i of the
// output is SHA512(counter_i || outLen in bits as a 32-bit big-endian
// string || input) with the counter starting at 1.
func hashDF(out []byte, input ...[]byte) error {
	if len(out) > 255*hashOutLen {
		return makeError(ErrBadArgs, fmt.Sprintf("derivation request for "+
			"%d bytes exceeds %d", len(out), 255*hashOutLen))
	}

	var lenStr [4]byte
	binary.BigEndian.PutUint32(lenStr[:], uint32(len(out))<<3)

	counter := byte(1)
	for i := 0; i < len(out); i += hashOutLen {
		h := sha512.New()
		h.Write([]byte{counter})
		h.Write(lenStr[:])
		for _, in := range input {
			h.Write(in)
		}
		digest := h.Sum(nil)

		copy(out[i:], digest)
		zero.Bytes(digest)
		counter++
	}
	return nil
}

// NewHashDRBG instantiates a Hash_DRBG (§10.1.1.2).  The entropy input
// must be between MinEntropyLen and MaxEntropyLen bytes and a nonce is
// required; the personalization string is optional.
func NewHashDRBG(entropy, nonce, personalization []byte) (*HashDRBG, error) {
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

	d := new(HashDRBG)

	// V = Hash_df(entropy || nonce || personalization, seedlen).
	if err := hashDF(d.v[:], entropy, nonce, personalization); err != nil {
		return nil, err
	}

	// C = Hash_df(0x00 || V, seedlen).
	if err := hashDF(d.c[:], []byte{0x00}, d.v[:]); err != nil {
		return nil, err
	}

	d.counter = 1
	d.inited = true
	return d, nil
}

// Algorithm returns AlgHash.
func (d *HashDRBG) Algorithm() Algorithm {
	return AlgHash
}

// Reseed derives a new V from the old one and fresh entropy (§10.1.1.3)
// and resets the reseed counter.
func (d *HashDRBG) Reseed(entropy, additionalInput []byte) error {
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

	// V = Hash_df(0x01 || V || entropy || additional_input, seedlen).
	var newV [HashSeedLen]byte
	defer zero.Bytes(newV[:])
	err := hashDF(newV[:], []byte{0x01}, d.v[:], entropy, additionalInput)
	if err != nil {
		return err
	}
	copy(d.v[:], newV[:])

	// C = Hash_df(0x00 || V, seedlen).
	if err := hashDF(d.c[:], []byte{0x00}, d.v[:]); err != nil {
		return err
	}

	d.counter = 1
	return nil
}

// hashgen produces the output bytes (§10.1.1.4 Hashgen): successive
// digests of a seedlen-byte counter seeded from V.
func (d *HashDRBG) hashgen(out []byte) {
	var data [HashSeedLen]byte
	defer zero.Bytes(data[:])
	copy(data[:], d.v[:])

	one := [1]byte{1}
	for i := 0; i < len(out); i += hashOutLen {
		digest := sha512.Sum512(data[:])
		copy(out[i:], digest[:])
		zero.Bytes(digest[:])

		// data = (data + 1) mod 2^seedlen.
		addBE(data[:], one[:])
	}
}

// Generate fills out with pseudorandom bytes (§10.1.1.4) and advances V so
// that a later state compromise does not reveal the output.
func (d *HashDRBG) Generate(out, additionalInput []byte) error {
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
		// w = Hash(0x02 || V || additional_input); V = (V + w) mod 2^seedlen.
		h := sha512.New()
		h.Write([]byte{0x02})
		h.Write(d.v[:])
		h.Write(additionalInput)
		w := h.Sum(nil)
		addBE(d.v[:], w)
		zero.Bytes(w)
	}

	d.hashgen(out)

	// H = Hash(0x03 || V).
	h := sha512.New()
	h.Write([]byte{0x03})
	h.Write(d.v[:])
	hSum := h.Sum(nil)

	// V = (V + H + C + reseed_counter) mod 2^seedlen.
	var counterStr [8]byte
	binary.BigEndian.PutUint64(counterStr[:], d.counter)
	addBE(d.v[:], hSum)
	addBE(d.v[:], d.c[:])
	addBE(d.v[:], counterStr[:])
	zero.Bytes(hSum)

	d.counter++
	return nil
}

// Clear scrubs the entire state.  The value is unusable afterwards.
func (d *HashDRBG) Clear() {
	zero.Bytes(d.v[:])
	zero.Bytes(d.c[:])
	zero.Uint64(&d.counter)
	d.inited = false
}
