// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package probe provides the entropy sources consumed by the entropy
// collector: the operating system RNG, the on-chip RNG instructions where
// the CPU has them, a timing-jitter collector, and snapshots of volatile
// operating system statistics.
//
// Probes return opaque byte buffers.  Callers treat every buffer as a
// contribution to the randomness pool and never interpret its layout.
package probe
