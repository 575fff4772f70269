// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package probe

import (
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// CPUTimes returns the process and children rusage counters: user and
// system CPU time, maximum resident set size, page faults, block I/O and
// context-switch counts.
func CPUTimes() ([]byte, error) {
	b := make([]byte, 0, 2*8*8)
	for _, who := range []int{unix.RUSAGE_SELF, unix.RUSAGE_CHILDREN} {
		var ru unix.Rusage
		if err := unix.Getrusage(who, &ru); err != nil {
			return nil, err
		}
		b = appendUint64(b, uint64(ru.Utime.Nano()))
		b = appendUint64(b, uint64(ru.Stime.Nano()))
		b = appendUint64(b, uint64(ru.Maxrss))
		b = appendUint64(b, uint64(ru.Minflt))
		b = appendUint64(b, uint64(ru.Majflt))
		b = appendUint64(b, uint64(ru.Inblock))
		b = appendUint64(b, uint64(ru.Oublock))
		b = appendUint64(b, uint64(ru.Nvcsw+ru.Nivcsw))
	}
	return b, nil
}

// KernelStats returns the kernel's system-wide counters: uptime, load
// averages, memory and swap totals, and process count.
func KernelStats() ([]byte, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return nil, err
	}
	// The layout is opaque to the pool; raw struct bytes are fine.
	raw := (*[unsafe.Sizeof(si)]byte)(unsafe.Pointer(&si))[:]
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// diskStatLines reads /proc/diskstats once per call.
func diskStatLines() ([]string, error) {
	data, err := os.ReadFile("/proc/diskstats")
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines, nil
}

// DiskStats returns the I/O performance counters for the device at the
// given index, or ErrNoMoreDisks when the index is beyond the last device.
// Callers enumerate from index 0 until ErrNoMoreDisks.
func DiskStats(index int) ([]byte, error) {
	lines, err := diskStatLines()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(lines) {
		return nil, ErrNoMoreDisks
	}
	return []byte(lines[index]), nil
}

// NetProtoStats returns the kernel's TCP and IP protocol counters.
func NetProtoStats() ([]byte, error) {
	snmp, err := os.ReadFile("/proc/net/snmp")
	if err != nil {
		return nil, err
	}
	// Extended statistics; missing on some kernels, not an error.
	netstat, _ := os.ReadFile("/proc/net/netstat")
	return append(snmp, netstat...), nil
}

// NetIfaceStats returns per-interface transmit and receive counters.
func NetIfaceStats() ([]byte, error) {
	return os.ReadFile("/proc/net/dev")
}

// Telemetry returns hardware telemetry snapshots when the platform exposes
// them.  Absence of telemetry interfaces is reported as
// ErrStatsUnavailable so callers can skip the contribution.
func Telemetry() ([]byte, error) {
	zones, err := os.ReadDir("/sys/class/thermal")
	if err != nil || len(zones) == 0 {
		return nil, ErrStatsUnavailable
	}
	b := make([]byte, 0, 64)
	for _, z := range zones {
		if !strings.HasPrefix(z.Name(), "thermal_zone") {
			continue
		}
		temp, err := os.ReadFile("/sys/class/thermal/" + z.Name() + "/temp")
		if err != nil {
			continue
		}
		b = append(b, temp...)
	}
	if len(b) == 0 {
		return nil, ErrStatsUnavailable
	}
	return b, nil
}
