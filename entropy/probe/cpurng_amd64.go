// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build amd64

package probe

// CPUID feature bits for the on-chip RNG instructions.
const (
	cpuidRDRAND = 1 << 30 // ECX bit 30, CPUID leaf 1
	cpuidRDSEED = 1 << 18 // EBX bit 18, CPUID leaf 7
)

var (
	hasRand64 bool
	hasSeed64 bool
)

// cpuid executes the CPUID instruction.  Implemented in cpurng_amd64.s.
func cpuid(eaxIn, ecxIn uint32) (eax, ebx, ecx, edx uint32)

// rand64 executes RDRAND.  The second return is the carry flag; false
// indicates an underflow and the caller should retry.
func rand64() (uint64, bool)

// seed64 executes RDSEED.  The second return is the carry flag; false
// indicates an underflow and the caller should retry.
func seed64() (uint64, bool)

func init() {
	_, _, ecx, _ := cpuid(1, 0)
	hasRand64 = ecx&cpuidRDRAND != 0

	maxLeaf, _, _, _ := cpuid(0, 0)
	if maxLeaf >= 7 {
		_, ebx, _, _ := cpuid(7, 0)
		hasSeed64 = ebx&cpuidRDSEED != 0
	}
}
