// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"crypto/sha512"
	"fmt"
	"sync"
	"time"

	"github.com/vibhav950/Xrand/entropy/probe"
	"github.com/vibhav950/Xrand/internal/zero"
)

const (
	// PoolSize is the capacity of the randomness pool in bytes.  It must
	// be a positive multiple of the SHA-512 digest size.
	PoolSize = 384

	// digestSize is the SHA-512 output length the mixing function chains.
	digestSize = sha512.Size

	// mixInterval is the number of appended bytes after which the pool is
	// mixed before further writes.
	mixInterval = 32

	// fastPollInterval is how often the background task polls the fast
	// entropy sources.  The cadence balances entropy freshness against
	// CPU cost and is deliberately not configurable.
	fastPollInterval = 500 * time.Millisecond
)

// pool is the process-wide randomness pool together with the collector
// state that feeds it.  All fields are guarded by mu unless noted.
type pool struct {
	mu sync.Mutex

	buf      []byte
	writePos int
	readPos  int
	sinceMix int

	initialized  bool
	didSlowPoll  bool
	strictChecks bool
	userEvents   bool
	addedStartup bool

	// Background fast-poll task lifecycle.
	quit chan struct{}
	wg   sync.WaitGroup

	// Probes held for the lifetime of the pool.
	sysRNG    *probe.SystemRNG
	jitter    jitterReader
	hasRand64 bool
	hasSeed64 bool

	// Opt-in user-input event source; nil unless installed.
	eventSource EventSource
}

// state is the singleton instance.  Every probe contribution in the
// process lands in the same pool.
var state = &pool{}

// Start initializes the randomness pool and starts the background fast
// poll task.  It reports whether the pool is usable.  Calling Start on a
// pool that is already running returns true immediately.
func Start() bool {
	err := state.init()
	if err != nil {
		log.Errorf("RNG start failed: %v", err)
		return false
	}
	return true
}

// Stop terminates the background task, scrubs and releases the pool
// storage, and resets all lifecycle flags.  It is idempotent.
func Stop() {
	state.stop()
}

// DidStart reports whether the pool is currently active.
func DidStart() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.initialized
}

// DidSlowPoll reports whether a slow poll has completed since Start.
func DidSlowPoll() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.didSlowPoll
}

// Mix diffuses the current pool contents with chained SHA-512 digests.
func Mix() {
	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.initialized {
		return
	}
	state.mix()
}

// EnableUserEvents opts in to user-input entropy capture during fetches.
// Capture only takes place once an event source has been installed with
// SetEventSource.
func EnableUserEvents() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.userEvents = true
}

// SetStrictChecks escalates any statistics-probe failure during a slow
// poll to a slow-poll failure.
func SetStrictChecks(strict bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.strictChecks = strict
}

// FetchBytes fills buf with output extracted from the pool, forcing a
// fresh slow poll first.  It reports whether buf was filled; on failure
// buf is untouched.  The request length is limited to PoolSize.
func FetchBytes(buf []byte) bool {
	err := state.fetch(buf, true)
	if err != nil {
		log.Errorf("RNG fetch failed: %v", err)
		return false
	}
	return true
}

// init allocates, locks and zero-initializes the pool storage, probes the
// system RNG provider and CPU RNG availability, and starts the background
// fast-poll task.  A second call returns immediately with success.
func (p *pool) init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// A pool size that does not chain whole digests is a configuration
	// bug, not a runtime condition.
	if PoolSize <= 0 || PoolSize%digestSize != 0 {
		panic(fmt.Sprintf("entropy: pool size %d is not a positive "+
			"multiple of the digest size %d", PoolSize, digestSize))
	}

	sysRNG, err := probe.NewSystemRNG()
	if err != nil {
		return makeError(ErrEntropySourceFailed,
			fmt.Sprintf("system RNG unavailable: %v", err))
	}

	p.buf = make([]byte, PoolSize)
	if err := lockMemory(p.buf); err != nil {
		// Paging protection is best effort; the OS may not permit it.
		log.Warnf("unable to lock pool memory: %v", err)
	}

	p.sysRNG = sysRNG
	p.hasRand64 = probe.HasRand64()
	p.hasSeed64 = probe.HasSeed64()
	p.writePos = 0
	p.readPos = 0
	p.sinceMix = 0
	p.didSlowPoll = false
	p.addedStartup = false
	p.initialized = true

	p.quit = make(chan struct{})
	p.wg.Add(1)
	go p.fastPollLoop()

	log.Debugf("RNG pool started (rdrand=%v rdseed=%v)",
		p.hasRand64, p.hasSeed64)
	return nil
}

// stop signals the background task to terminate, waits for it to exit,
// uninstalls the user-event source, then scrubs and releases the backing
// storage.
func (p *pool) stop() {
	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return
	}
	quit := p.quit
	p.mu.Unlock()

	close(quit)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.eventSource = nil
	p.userEvents = false
	p.strictChecks = false

	if err := unlockMemory(p.buf); err != nil {
		log.Warnf("unable to unlock pool memory: %v", err)
	}
	zero.Bytes(p.buf)
	p.buf = nil
	p.sysRNG = nil
	p.jitter = nil
	p.writePos = 0
	p.readPos = 0
	p.sinceMix = 0
	p.didSlowPoll = false
	p.initialized = false

	log.Debugf("RNG pool stopped")
}

// fastPollLoop runs the periodic fast poll until Stop is called.
func (p *pool) fastPollLoop() {
	defer p.wg.Done()

	t := time.NewTicker(fastPollInterval)
	defer t.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-t.C:
			p.mu.Lock()
			if p.initialized {
				if err := p.fastPoll(); err != nil {
					log.Warnf("background fast poll: %v", err)
				}
			}
			p.mu.Unlock()
		}
	}
}

// addByte mixes a single byte into the pool at the write cursor.  Existing
// bytes are never overwritten; contributions accumulate by XOR.  Every
// mixInterval appended bytes the pool is mixed before further writes.
func (p *pool) addByte(b byte) {
	if p.sinceMix == mixInterval {
		p.mix()
		p.sinceMix = 0
	}
	if p.writePos == PoolSize {
		p.writePos = 0
	}
	p.buf[p.writePos] ^= b
	p.writePos++
	p.sinceMix++
}

// add mixes each byte of src into the pool.
func (p *pool) add(src []byte) {
	for _, b := range src {
		p.addByte(b)
	}
}

// addUint32 appends a numeric primitive in little-endian byte order.
func (p *pool) addUint32(v uint32) {
	p.addByte(byte(v))
	p.addByte(byte(v >> 8))
	p.addByte(byte(v >> 16))
	p.addByte(byte(v >> 24))
}

// addUint64 appends a numeric primitive in little-endian byte order.
func (p *pool) addUint64(v uint64) {
	p.addByte(byte(v))
	p.addByte(byte(v >> 8))
	p.addByte(byte(v >> 16))
	p.addByte(byte(v >> 24))
	p.addByte(byte(v >> 32))
	p.addByte(byte(v >> 40))
	p.addByte(byte(v >> 48))
	p.addByte(byte(v >> 56))
}

// mix diffuses the pool with chained SHA-512 digests.  Each of the
// PoolSize/digestSize rounds hashes the entire pool and XORs the digest
// into the next digest-sized block, so later rounds operate on the
// already-partially-updated pool and every output bit comes to depend on
// every input bit.
func (p *pool) mix() {
	for i := 0; i < PoolSize; i += digestSize {
		digest := sha512.Sum512(p.buf)
		for j := 0; j < digestSize; j++ {
			p.buf[i+j] ^= digest[j]
		}
		zero.Bytes(digest[:])
	}
}

// fetch serves a consumer request for len(buf) output bytes.  The pool
// contents are extracted in two passes separated by a full mix and a
// bit-inversion of the pool, so no single pool snapshot reveals the
// delivered value, and the pool is mixed a final time so later state
// inspection cannot be correlated with what was delivered.
func (p *pool) fetch(buf []byte, forceSlow bool) error {
	if len(buf) > PoolSize {
		return makeError(ErrInvalidArgument, fmt.Sprintf("request for %d "+
			"bytes exceeds pool capacity %d", len(buf), PoolSize))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return makeError(ErrNotInitialized, "randomness pool is not started")
	}

	if !p.didSlowPoll || forceSlow {
		if err := p.slowPoll(); err != nil {
			return err
		}
		p.didSlowPoll = true
	}

	if p.userEvents && p.eventSource != nil {
		if err := p.captureUserEvents(); err != nil {
			return err
		}
	}

	// First extraction pass.  The synchronous fast poll freshens the pool
	// and ends with a mix.
	if err := p.fastPoll(); err != nil {
		return err
	}
	for i := range buf {
		if p.readPos == PoolSize {
			p.readPos = 0
		}
		buf[i] = p.buf[p.readPos]
		p.readPos++
	}

	// Invert every bit of the pool between the two passes.
	for i := range p.buf {
		p.buf[i] ^= 0xff
	}

	// Second extraction pass over the freshly mixed, inverted pool.
	if err := p.fastPoll(); err != nil {
		return err
	}
	for i := range buf {
		if p.readPos == PoolSize {
			p.readPos = 0
		}
		buf[i] ^= p.buf[p.readPos]
		p.readPos++
	}

	// The final mix does not affect the delivered output; it prevents
	// later state inspection from correlating with it.
	p.mix()

	return nil
}
