// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package probe

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20"
)

const (
	maxCipherRead     = 4 * 1024 * 1024 // 4 MiB
	maxCipherDuration = 20 * time.Second
)

// nonce implements a 12-byte little endian counter suitable for use as an
// incrementing ChaCha20 nonce.
type nonce [chacha20.NonceSize]byte

func (n *nonce) inc() {
	n0 := binary.LittleEndian.Uint32(n[0:4])
	n1 := binary.LittleEndian.Uint32(n[4:8])
	n2 := binary.LittleEndian.Uint32(n[8:12])

	var carry uint32
	n0, carry = bits.Add32(n0, 1, carry)
	n1, carry = bits.Add32(n1, 0, carry)
	n2, _ = bits.Add32(n2, 0, carry)

	binary.LittleEndian.PutUint32(n[0:4], n0)
	binary.LittleEndian.PutUint32(n[4:8], n1)
	binary.LittleEndian.PutUint32(n[8:12], n2)
}

// SystemRNG is a buffered front-end over the operating system's
// cryptographic RNG.  Kernel entropy keys a ChaCha20 cipher which serves
// reads; the cipher is rekeyed from the kernel after a bounded read volume
// and age.  A rekey failure after successful initial seeding is tolerated
// because the existing cipher state remains unpredictable.
//
// SystemRNG methods are safe for concurrent access.
type SystemRNG struct {
	mu     sync.Mutex
	key    [chacha20.KeySize]byte
	nonce  nonce
	cipher chacha20.Cipher
	read   int
	t      time.Time
}

// NewSystemRNG returns a seeded SystemRNG.  It fails only if the kernel RNG
// read fails during initial seeding.
func NewSystemRNG() (*SystemRNG, error) {
	s := new(SystemRNG)
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// seed rekeys the cipher with kernel entropy mixed with existing cipher
// output, if the cipher has been originally seeded.
func (s *SystemRNG) seed() error {
	_, err := cryptorand.Read(s.key[:])
	if err != nil && s.t.IsZero() {
		return err
	}
	s.cipher.XORKeyStream(s.key[:], s.key[:])

	// never errors with correct key and nonce sizes
	cipher, _ := chacha20.NewUnauthenticatedCipher(s.key[:], s.nonce[:])
	s.cipher = *cipher
	s.nonce.inc()
	s.read = 0
	s.t = time.Now().Add(maxCipherDuration)
	return nil
}

// Fill fills buf with random bytes.  It never fails after the SystemRNG has
// been constructed.
func (s *SystemRNG) Fill(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().After(s.t) {
		s.seed()
	}

	for s.read+len(buf) > maxCipherRead {
		l := maxCipherRead - s.read
		for i := range buf[:l] {
			buf[i] = 0
		}
		s.cipher.XORKeyStream(buf[:l], buf[:l])
		s.seed()
		buf = buf[l:]
	}
	for i := range buf {
		buf[i] = 0
	}
	s.cipher.XORKeyStream(buf, buf)
	s.read += len(buf)
	return nil
}
