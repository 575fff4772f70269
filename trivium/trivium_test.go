// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trivium

import (
	"bytes"
	"errors"
	"testing"
)

// refTrivium is an independent transcription of the eSTREAM Trivium
// specification with the register held as its three sub-registers:
// a = s1..s93, b = s94..s177, c = s178..s288.
type refTrivium struct {
	a [93]uint8
	b [84]uint8
	c [111]uint8
}

func newRefTrivium(key, iv []byte) *refTrivium {
	r := new(refTrivium)
	for i := 0; i < 80; i++ {
		r.a[i] = key[i/8] >> (7 - i%8) & 1
		r.b[i] = iv[i/8] >> (7 - i%8) & 1
	}
	r.c[108] = 1
	r.c[109] = 1
	r.c[110] = 1
	for i := 0; i < 4*288; i++ {
		r.clock()
	}
	return r
}

func (r *refTrivium) clock() uint8 {
	// z = (s66+s93) + (s162+s177) + (s243+s288)
	t1 := r.a[65] ^ r.a[92]
	t2 := r.b[68] ^ r.b[83]
	t3 := r.c[65] ^ r.c[110]
	z := t1 ^ t2 ^ t3

	// t1 += s91*s92 + s171; t2 += s175*s176 + s264; t3 += s286*s287 + s69
	t1 ^= r.a[90]&r.a[91] ^ r.b[77]
	t2 ^= r.b[81]&r.b[82] ^ r.c[86]
	t3 ^= r.c[108]&r.c[109] ^ r.a[68]

	// (s1..s93) = (t3, s1..s92) and likewise for the other registers.
	copy(r.a[1:], r.a[:92])
	r.a[0] = t3
	copy(r.b[1:], r.b[:83])
	r.b[0] = t1
	copy(r.c[1:], r.c[:110])
	r.c[0] = t2
	return z
}

func (r *refTrivium) byteStream(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		var v uint8
		for j := 0; j < 8; j++ {
			v = v<<1 | r.clock()
		}
		out[i] = v
	}
	return out
}

// fixedSeed returns a SeedFunc that always produces the given IV.
func fixedSeed(iv []byte) SeedFunc {
	return func(buf []byte) bool {
		copy(buf, iv)
		return true
	}
}

// TestTriviumAgainstReference compares generator keystream against the
// independent sub-register transcription of the cipher.
func TestTriviumAgainstReference(t *testing.T) {
	ivs := [][]byte{
		make([]byte, IVSize),
		{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}

	for i, iv := range ivs {
		g, err := New(fixedSeed(iv))
		if err != nil {
			t.Fatalf("iv %d: New: %v", i, err)
		}

		got := make([]byte, 64)
		for j := range got {
			b, err := g.Uint8()
			if err != nil {
				t.Fatalf("iv %d: Uint8: %v", i, err)
			}
			got[j] = b
		}

		want := newRefTrivium(constKey[:], iv).byteStream(64)
		if !bytes.Equal(got, want) {
			t.Fatalf("iv %d: keystream mismatch --\ngot  %x\nwant %x",
				i, got, want)
		}
	}
}

// TestTriviumWordWidths ensures the wider accessors produce the same
// keystream as successive bytes.
func TestTriviumWordWidths(t *testing.T) {
	iv := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55}

	g1, err := New(fixedSeed(iv))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g2, err := New(fixedSeed(iv))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v64, err := g1.Uint64()
	if err != nil {
		t.Fatalf("Uint64: %v", err)
	}

	var want uint64
	for i := 0; i < 8; i++ {
		b, err := g2.Uint8()
		if err != nil {
			t.Fatalf("Uint8: %v", err)
		}
		want = want<<8 | uint64(b)
	}
	if v64 != want {
		t.Fatalf("Uint64 mismatch -- got %016x, want %016x", v64, want)
	}

	v16, err := g1.Uint16()
	if err != nil {
		t.Fatalf("Uint16: %v", err)
	}
	b1, _ := g2.Uint8()
	b2, _ := g2.Uint8()
	if want16 := uint16(b1)<<8 | uint16(b2); v16 != want16 {
		t.Fatalf("Uint16 mismatch -- got %04x, want %04x", v16, want16)
	}
}

// TestTriviumReseedPeriod ensures a fresh IV is fetched after the reseed
// period worth of output.
func TestTriviumReseedPeriod(t *testing.T) {
	seeds := 0
	seedFn := func(buf []byte) bool {
		// Distinct IV per reseed.
		for i := range buf {
			buf[i] = byte(seeds*31 + i)
		}
		seeds++
		return true
	}

	g, err := New(seedFn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if seeds != 1 {
		t.Fatalf("seed calls after New = %d, want 1", seeds)
	}

	if _, err := g.Uint64(); err != nil {
		t.Fatalf("Uint64: %v", err)
	}
	if seeds != 1 {
		t.Fatalf("seed calls after small read = %d, want 1", seeds)
	}

	g.produced = ReseedPeriod
	if _, err := g.Uint64(); err != nil {
		t.Fatalf("Uint64: %v", err)
	}
	if seeds != 2 {
		t.Fatalf("seed calls after period boundary = %d, want 2", seeds)
	}
}

// TestTriviumSeedFailure ensures seed-source failures surface both at
// construction and at the reseed boundary.
func TestTriviumSeedFailure(t *testing.T) {
	failing := func(buf []byte) bool { return false }

	if _, err := New(failing); !errors.Is(err, ErrSeedFailed) {
		t.Fatalf("got %v, want %v", err, ErrSeedFailed)
	}

	g, err := New(fixedSeed(make([]byte, IVSize)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.seed = failing
	g.produced = ReseedPeriod
	if _, err := g.Uint8(); !errors.Is(err, ErrSeedFailed) {
		t.Fatalf("got %v, want %v", err, ErrSeedFailed)
	}
}

// TestTriviumClear ensures the register is scrubbed and the generator
// reseeds on next use.
func TestTriviumClear(t *testing.T) {
	seeds := 0
	seedFn := func(buf []byte) bool { seeds++; return true }

	g, err := New(seedFn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.Clear()
	if g.s != [stateBits]uint8{} {
		t.Fatal("register not scrubbed by Clear")
	}

	if _, err := g.Uint8(); err != nil {
		t.Fatalf("Uint8 after Clear: %v", err)
	}
	if seeds != 2 {
		t.Fatalf("seed calls = %d, want 2", seeds)
	}
}
