// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"errors"
	"fmt"

	"github.com/vibhav950/Xrand/entropy/probe"
	"github.com/vibhav950/Xrand/internal/zero"
)

// sysRNGBytes is how much the system RNG contributes per fast poll.
const sysRNGBytes = 16

// jitterBytes is how much the timing-jitter source must contribute for a
// slow poll to succeed.
const jitterBytes = 32

// jitterReader is the slice of the timing-jitter collector the slow poll
// relies on.  It is satisfied by *probe.Jitter.
type jitterReader interface {
	Read(buf []byte) (int, error)
}

// fastPoll gathers entropy from the inexpensive sources: the system RNG
// (required), the CPU RNG instructions where available, and volatile
// process, memory, and clock statistics.  It ends with a pool mix.
//
// The caller must hold the pool mutex.
func (p *pool) fastPoll() error {
	var buf [sysRNGBytes]byte
	defer zero.Bytes(buf[:])

	// The system RNG contribution is the one fast-poll source that must
	// succeed.
	if err := p.sysRNG.Fill(buf[:]); err != nil {
		return makeError(ErrEntropySourceFailed,
			fmt.Sprintf("system RNG read failed: %v", err))
	}
	p.add(buf[:])

	// Up to 16 bytes each from the on-chip rand and seed sources.
	if p.hasRand64 {
		if v, ok := probe.Rand64(); ok {
			p.addUint64(v)
		}
		if v, ok := probe.Rand64(); ok {
			p.addUint64(v)
		}
	}
	if p.hasSeed64 {
		if v, ok := probe.Seed64(); ok {
			p.addUint64(v)
		}
		if v, ok := probe.Seed64(); ok {
			p.addUint64(v)
		}
	}

	p.add(probe.ProcessInfo())
	p.add(probe.MemoryInfo())

	// CPU time counters are skipped on platforms without them.
	if cpu, err := probe.CPUTimes(); err == nil {
		p.add(cpu)
	} else if !errors.Is(err, probe.ErrStatsUnavailable) {
		log.Debugf("cpu time probe: %v", err)
	}

	p.add(probe.TimeInfo())

	p.mix()
	return nil
}

// slowPoll performs the exhaustive entropy search: timing jitter
// (required), disk I/O statistics for every accessible device, kernel
// performance statistics, TCP/IP and interface statistics, and hardware
// telemetry where present.  Startup state is added once per process.  It
// ends with a pool mix.
//
// A statistics-probe failure is logged and skipped unless strict checks
// are enabled, in which case it fails the poll.
//
// The caller must hold the pool mutex.
func (p *pool) slowPoll() error {
	if !p.addedStartup {
		p.add(probe.StartupInfo())
		p.addedStartup = true
	}

	// The timing-jitter collector is the only true entropy source here
	// and is required to succeed.
	if p.jitter == nil {
		j, err := probe.NewJitter()
		if err != nil {
			return makeError(ErrEntropySourceFailed,
				fmt.Sprintf("jitter source unavailable: %v", err))
		}
		p.jitter = j
	}
	var jbuf [jitterBytes]byte
	defer zero.Bytes(jbuf[:])
	n, err := p.jitter.Read(jbuf[:])
	if err != nil {
		return makeError(ErrEntropySourceFailed,
			fmt.Sprintf("jitter read failed: %v", err))
	}
	p.add(jbuf[:n])

	// Disk statistics for every accessible device, starting at index 0
	// until unavailable.
	for drive := 0; ; drive++ {
		stats, err := probe.DiskStats(drive)
		if errors.Is(err, probe.ErrNoMoreDisks) {
			break
		}
		if err != nil {
			if err := p.statProbeErr("disk stats", err); err != nil {
				return err
			}
			break
		}
		p.add(stats)
	}

	if stats, err := probe.KernelStats(); err == nil {
		p.add(stats)
	} else if err := p.statProbeErr("kernel stats", err); err != nil {
		return err
	}

	if stats, err := probe.NetProtoStats(); err == nil {
		p.add(stats)
	} else if err := p.statProbeErr("tcp/ip stats", err); err != nil {
		return err
	}

	if stats, err := probe.NetIfaceStats(); err == nil {
		p.add(stats)
	} else if err := p.statProbeErr("interface stats", err); err != nil {
		return err
	}

	// Telemetry interfaces are commonly absent; their absence is never
	// escalated.
	if t, err := probe.Telemetry(); err == nil {
		p.add(t)
	}

	p.mix()
	return nil
}

// statProbeErr logs a skipped statistics probe, or converts the failure
// into a slow-poll error when strict checks are enabled.
func (p *pool) statProbeErr(name string, err error) error {
	if p.strictChecks {
		return makeError(ErrEntropySourceFailed,
			fmt.Sprintf("%s probe failed in strict mode: %v", name, err))
	}
	log.Debugf("%s probe skipped: %v", name, err)
	return nil
}
