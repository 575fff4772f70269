// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package probe

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"os"
	"runtime"
	"strings"
	"time"
)

var (
	// ErrStatsUnavailable is returned by statistics probes with no
	// implementation for the current platform.
	ErrStatsUnavailable = errors.New("probe: statistic unavailable on this platform")

	// ErrNoMoreDisks is returned by DiskStats when the device index is
	// beyond the last accessible device.
	ErrNoMoreDisks = errors.New("probe: no device at index")
)

// appendUint32 and appendUint64 encode numeric probe primitives in little
// endian order.
func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// ProcessInfo returns a snapshot of process and scheduler identifiers.
func ProcessInfo() []byte {
	b := make([]byte, 0, 64)
	b = appendUint32(b, uint32(os.Getpid()))
	b = appendUint32(b, uint32(os.Getppid()))
	b = appendUint32(b, uint32(os.Getuid()))
	b = appendUint32(b, uint32(os.Getgid()))
	b = appendUint32(b, uint32(runtime.NumGoroutine()))
	b = appendUint64(b, uint64(runtime.NumCgoCall()))
	b = appendUint32(b, uint32(runtime.GOMAXPROCS(0)))
	b = appendUint32(b, uint32(runtime.NumCPU()))
	return b
}

// MemoryInfo returns a snapshot of allocator and collector counters.  The
// counters move with every allocation in the process, so consecutive
// snapshots differ in ways an outside observer cannot reconstruct.
func MemoryInfo() []byte {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	b := make([]byte, 0, 128)
	b = appendUint64(b, ms.Alloc)
	b = appendUint64(b, ms.TotalAlloc)
	b = appendUint64(b, ms.Sys)
	b = appendUint64(b, ms.Mallocs)
	b = appendUint64(b, ms.Frees)
	b = appendUint64(b, ms.HeapAlloc)
	b = appendUint64(b, ms.HeapObjects)
	b = appendUint64(b, ms.StackInuse)
	b = appendUint64(b, ms.LastGC)
	b = appendUint64(b, ms.PauseTotalNs)
	b = appendUint32(b, ms.NumGC)
	return b
}

// TimeInfo returns the wall clock at full precision together with a
// monotonic high-resolution counter reading.
func TimeInfo() []byte {
	now := time.Now()
	b := make([]byte, 0, 24)
	b = appendUint64(b, uint64(now.UnixNano()))
	b = appendUint64(b, uint64(now.Sub(processStart)))
	return b
}

// processStart anchors the monotonic counter readings.
var processStart = time.Now()

// StartupInfo returns a snapshot of process startup state.  The data is
// fixed for the lifetime of the process, so callers add it only once.
func StartupInfo() []byte {
	b := make([]byte, 0, 160)
	b = appendUint32(b, uint32(os.Getpid()))
	b = appendUint64(b, uint64(processStart.UnixNano()))

	argsSum := sha512.Sum512([]byte(strings.Join(os.Args, "\x00")))
	envSum := sha512.Sum512([]byte(strings.Join(os.Environ(), "\x00")))
	b = append(b, argsSum[:]...)
	b = append(b, envSum[:]...)

	if host, err := os.Hostname(); err == nil {
		hostSum := sha512.Sum512([]byte(host))
		b = append(b, hostSum[:16]...)
	}
	return b
}
