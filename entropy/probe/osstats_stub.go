// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !linux

package probe

// The statistics probes below have Linux implementations only.  Other
// platforms report ErrStatsUnavailable and the collector skips the
// contribution (or fails the poll in strict mode).

func CPUTimes() ([]byte, error) { return nil, ErrStatsUnavailable }

func KernelStats() ([]byte, error) { return nil, ErrStatsUnavailable }

func DiskStats(index int) ([]byte, error) { return nil, ErrNoMoreDisks }

func NetProtoStats() ([]byte, error) { return nil, ErrStatsUnavailable }

func NetIfaceStats() ([]byte, error) { return nil, ErrStatsUnavailable }

func Telemetry() ([]byte, error) { return nil, ErrStatsUnavailable }
