// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package drbg

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"testing"
)

// refHMAC computes HMAC-SHA-512 over the concatenated parts.
func refHMAC(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha512.New, key)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

// refHMACUpdate transcribes the §10.1.2.2 update process directly from
// the specification text.
func refHMACUpdate(k, v, providedData []byte) ([]byte, []byte) {
	k = refHMAC(k, v, []byte{0x00}, providedData)
	v = refHMAC(k, v)
	if len(providedData) == 0 {
		return k, v
	}
	k = refHMAC(k, v, []byte{0x01}, providedData)
	v = refHMAC(k, v)
	return k, v
}

// TestHMACDRBGKnownAnswer runs instantiate -> reseed -> generate ->
// generate against a straight-line transcription of §10.1.2, comparing
// the second generate output bit for bit.
func TestHMACDRBGKnownAnswer(t *testing.T) {
	entropy := hexToBytes("000102030405060708090a0b0c0d0e0f" +
		"101112131415161718191a1b1c1d1e1f")
	nonce := hexToBytes("2021222324252627")
	pers := []byte("hmac drbg known answer")
	reseedEntropy := hexToBytes("303132333435363738393a3b3c3d3e3f" +
		"404142434445464748494a4b4c4d4e4f")

	// Reference flow.
	k := make([]byte, 64)
	v := bytes.Repeat([]byte{0x01}, 64)
	seedMaterial := append(append(append([]byte{}, entropy...), nonce...),
		pers...)
	k, v = refHMACUpdate(k, v, seedMaterial)
	k, v = refHMACUpdate(k, v, reseedEntropy)

	var want []byte
	for call := 0; call < 2; call++ {
		out := make([]byte, 0, 96)
		for len(out) < 96 {
			v = refHMAC(k, v)
			out = append(out, v...)
		}
		want = out[:96]
		k, v = refHMACUpdate(k, v, nil)
	}

	// Implementation under test.
	d, err := NewHMACDRBG(entropy, nonce, pers)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	if err := d.Reseed(reseedEntropy, nil); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	got := make([]byte, 96)
	if err := d.Generate(got, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := d.Generate(got, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("returned bits mismatch -- got %x, want %x", got, want)
	}
	if !bytes.Equal(d.k[:], k) || !bytes.Equal(d.v[:], v) {
		t.Fatal("working state diverged from the reference")
	}
}

// TestHMACDRBGAdditionalInput ensures additional input drives both the
// pre-output and post-output updates.
func TestHMACDRBGAdditionalInput(t *testing.T) {
	entropy := hexToBytes("505152535455565758595a5b5c5d5e5f" +
		"606162636465666768696a6b6c6d6e6f")
	nonce := hexToBytes("7071727374757677")
	addnInput := []byte("additional input")

	d, err := NewHMACDRBG(entropy, nonce, nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	// Reference from the state snapshot.
	k := append([]byte{}, d.k[:]...)
	v := append([]byte{}, d.v[:]...)
	k, v = refHMACUpdate(k, v, addnInput)
	v = refHMAC(k, v)
	want := v[:48]
	k, v = refHMACUpdate(k, v, addnInput)

	got := make([]byte, 48)
	if err := d.Generate(got, addnInput); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("returned bits mismatch -- got %x, want %x", got, want)
	}
	if !bytes.Equal(d.k[:], k) || !bytes.Equal(d.v[:], v) {
		t.Fatal("working state diverged from the reference")
	}
}

// TestHMACDRBGErrors exercises argument validation, verifying the state
// is untouched when a generate request is rejected.
func TestHMACDRBGErrors(t *testing.T) {
	entropy := make([]byte, 32)
	nonce := make([]byte, 16)

	t.Run("nil entropy", func(t *testing.T) {
		_, err := NewHMACDRBG(nil, nonce, nil)
		if !errors.Is(err, ErrNullPointer) {
			t.Fatalf("got %v, want %v", err, ErrNullPointer)
		}
	})

	t.Run("short entropy", func(t *testing.T) {
		_, err := NewHMACDRBG(make([]byte, MinEntropyLen-1), nonce, nil)
		if !errors.Is(err, ErrBadArgs) {
			t.Fatalf("got %v, want %v", err, ErrBadArgs)
		}
	})

	t.Run("nil nonce", func(t *testing.T) {
		_, err := NewHMACDRBG(entropy, nil, nil)
		if !errors.Is(err, ErrNullPointer) {
			t.Fatalf("got %v, want %v", err, ErrNullPointer)
		}
	})

	t.Run("oversize output leaves state unchanged", func(t *testing.T) {
		d, err := NewHMACDRBG(entropy, nonce, nil)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}
		twin, err := NewHMACDRBG(entropy, nonce, nil)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}

		err = d.Generate(make([]byte, int(MaxOutLen)+1), nil)
		if !errors.Is(err, ErrBadArgs) {
			t.Fatalf("got %v, want %v", err, ErrBadArgs)
		}
		if Code(err) != CodeBadArgs {
			t.Fatalf("got code %d, want %d", Code(err), CodeBadArgs)
		}

		got := make([]byte, 64)
		want := make([]byte, 64)
		if err := d.Generate(got, nil); err != nil {
			t.Fatalf("generate: %v", err)
		}
		if err := twin.Generate(want, nil); err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatal("failed generate perturbed the state")
		}
	})

	t.Run("reseed required", func(t *testing.T) {
		d, err := NewHMACDRBG(entropy, nonce, nil)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}
		d.counter = MaxReseedCount + 1

		err = d.Generate(make([]byte, 16), nil)
		if !errors.Is(err, ErrReseedRequired) {
			t.Fatalf("got %v, want %v", err, ErrReseedRequired)
		}
	})
}

// TestHMACDRBGReseedCounter ensures the counter starts at one, strictly
// increases with each generate, and resets on reseed.
func TestHMACDRBGReseedCounter(t *testing.T) {
	entropy := make([]byte, 32)
	nonce := make([]byte, 16)
	d, err := NewHMACDRBG(entropy, nonce, nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	out := make([]byte, 32)
	for i := uint64(1); i <= 5; i++ {
		if d.counter != i {
			t.Fatalf("counter is %d, want %d", d.counter, i)
		}
		if err := d.Generate(out, nil); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}
	if err := d.Reseed(entropy, nil); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if d.counter != 1 {
		t.Fatalf("counter after reseed is %d, want 1", d.counter)
	}
}

// TestHMACDRBGClear ensures Clear scrubs every byte of the state.
func TestHMACDRBGClear(t *testing.T) {
	d, err := NewHMACDRBG(make([]byte, 32), make([]byte, 16), nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	d.Clear()

	if d.k != [HMACOutLen]byte{} || d.v != [HMACOutLen]byte{} ||
		d.counter != 0 {
		t.Fatal("state not scrubbed by Clear")
	}
	if err := d.Generate(make([]byte, 16), nil); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("got %v, want %v", err, ErrNotInitialized)
	}
}

// TestDRBGInterface ensures all three mechanisms satisfy the common DRBG
// surface and report their algorithm tags.
func TestDRBGInterface(t *testing.T) {
	entropy48 := make([]byte, CTREntropyLen)
	entropy := make([]byte, 32)
	nonce := make([]byte, 16)

	ctr, err := NewCTRDRBG(entropy48, nil)
	if err != nil {
		t.Fatalf("ctr instantiate: %v", err)
	}
	hash, err := NewHashDRBG(entropy, nonce, nil)
	if err != nil {
		t.Fatalf("hash instantiate: %v", err)
	}
	hm, err := NewHMACDRBG(entropy, nonce, nil)
	if err != nil {
		t.Fatalf("hmac instantiate: %v", err)
	}

	tests := []struct {
		d       DRBG
		alg     Algorithm
		name    string
		entropy []byte
	}{
		{ctr, AlgCTR, "CTR_DRBG-AES256", entropy48},
		{hash, AlgHash, "Hash_DRBG-SHA512", entropy},
		{hm, AlgHMAC, "HMAC_DRBG-SHA512", entropy},
	}

	for _, test := range tests {
		if test.d.Algorithm() != test.alg {
			t.Errorf("%s: wrong algorithm tag", test.name)
		}
		if test.d.Algorithm().String() != test.name {
			t.Errorf("%s: wrong algorithm name %q", test.name,
				test.d.Algorithm().String())
		}
		out := make([]byte, 33)
		if err := test.d.Generate(out, nil); err != nil {
			t.Errorf("%s: generate: %v", test.name, err)
		}
		if err := test.d.Reseed(test.entropy, nil); err != nil {
			t.Errorf("%s: reseed: %v", test.name, err)
		}
		test.d.Clear()
	}
}
