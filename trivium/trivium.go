// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trivium

import (
	"errors"

	"github.com/vibhav950/Xrand/entropy"
	"github.com/vibhav950/Xrand/internal/zero"
)

const (
	// KeySize and IVSize are the Trivium key and IV lengths in bytes
	// (80 bits each).
	KeySize = 10
	IVSize  = 10

	// stateBits is the size of the internal register.
	stateBits = 288

	// blankRounds is the number of initialization cycles clocked with
	// output discarded.
	blankRounds = 4 * stateBits

	// ReseedPeriod is the number of output bytes after which the
	// generator fetches a fresh IV from its seed source.
	ReseedPeriod = 1 << 20
)

// constKey is the fixed 80-bit key: the first 80 bits formed from the
// leading decimal digits of the square roots of the first four primes.
// It is chosen to be statistically independent of the bytes collected
// from the noise source, which supply the IV.
var constKey = [KeySize]byte{
	0xfc, 0xd0, 0xdf, 0x7d, 0x9d,
	0xe4, 0x80, 0xac, 0xf8, 0xa2,
}

// ErrSeedFailed is returned when the seed source cannot supply an IV.
var ErrSeedFailed = errors.New("trivium: seed source failed")

// SeedFunc fills buf with seed bytes and reports success.  The default
// source is the entropy pool.
type SeedFunc func(buf []byte) bool

// Generator is a Trivium keystream generator.  The 288-bit register is
// held one bit per byte: s[i] is the specification's state bit s(i+1).
// Generator methods are not safe for concurrent access.
type Generator struct {
	s        [stateBits]uint8
	seed     SeedFunc
	produced int
}

// New returns a generator seeded with an IV obtained from seedFn, or from
// the entropy pool when seedFn is nil.  The pool must be started before a
// pool-backed generator can be created.
func New(seedFn SeedFunc) (*Generator, error) {
	if seedFn == nil {
		seedFn = entropy.FetchBytes
	}
	g := &Generator{seed: seedFn}
	if err := g.reseed(); err != nil {
		return nil, err
	}
	return g, nil
}

// reseed fetches a fresh IV from the seed source and reinitializes the
// register with the constant key.
func (g *Generator) reseed() error {
	var iv [IVSize]byte
	defer zero.Bytes(iv[:])

	if !g.seed(iv[:]) {
		return ErrSeedFailed
	}
	g.init(constKey[:], iv[:])
	g.produced = 0
	return nil
}

// init loads an 80-bit key into s1..s80 and an 80-bit IV into s94..s173,
// sets s286..s288 to one, and clocks the register through the blank
// rounds.  Bits load most-significant first.
func (g *Generator) init(key, iv []byte) {
	for i := range g.s {
		g.s[i] = 0
	}
	for i := 0; i < 80; i++ {
		g.s[i] = key[i/8] >> (7 - i%8) & 1
		g.s[93+i] = iv[i/8] >> (7 - i%8) & 1
	}
	g.s[285] = 1
	g.s[286] = 1
	g.s[287] = 1

	for i := 0; i < blankRounds; i++ {
		g.rotate()
	}
}

// rotate clocks the register once and returns the keystream bit
//
//	z = (s66 + s93) + (s162 + s177) + (s243 + s288)
//
// before each sub-register shifts by one with its new bit formed from a
// quadratic function of taps from another sub-register.
func (g *Generator) rotate() uint8 {
	s := &g.s

	t1 := s[65] ^ s[92]
	t2 := s[161] ^ s[176]
	t3 := s[242] ^ s[287]
	z := t1 ^ t2 ^ t3

	t1 ^= s[90]&s[91] ^ s[170]
	t2 ^= s[174]&s[175] ^ s[263]
	t3 ^= s[285]&s[286] ^ s[68]

	for i := stateBits - 1; i > 0; i-- {
		s[i] = s[i-1]
	}
	s[0] = t3
	s[93] = t1
	s[177] = t2

	return z
}

// bits assembles n keystream bits into an integer, most significant bit
// first, reseeding at the period boundary.
func (g *Generator) bits(n int) (uint64, error) {
	if g.produced >= ReseedPeriod {
		if err := g.reseed(); err != nil {
			return 0, err
		}
	}

	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(g.rotate())
	}
	g.produced += n / 8
	return v, nil
}

// Uint8 returns 8 bits of keystream.
func (g *Generator) Uint8() (uint8, error) {
	v, err := g.bits(8)
	return uint8(v), err
}

// Uint16 returns 16 bits of keystream.
func (g *Generator) Uint16() (uint16, error) {
	v, err := g.bits(16)
	return uint16(v), err
}

// Uint32 returns 32 bits of keystream.
func (g *Generator) Uint32() (uint32, error) {
	v, err := g.bits(32)
	return uint32(v), err
}

// Uint64 returns 64 bits of keystream.
func (g *Generator) Uint64() (uint64, error) {
	return g.bits(64)
}

// Clear scrubs the register.  The generator reseeds on next use.
func (g *Generator) Clear() {
	zero.Bytes(g.s[:])
	g.produced = ReseedPeriod
}
