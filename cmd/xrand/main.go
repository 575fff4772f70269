// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// xrand is a command line driver for the randomness pool: it emits raw
// pool output, DRBG-expanded output, random UUIDs, or random variates.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vibhav950/Xrand/dist"
	"github.com/vibhav950/Xrand/drbg"
	"github.com/vibhav950/Xrand/entropy"
	"github.com/vibhav950/Xrand/trivium"
)

const version = "1.0.0"

// poolReader adapts the pool fetch API to io.Reader, splitting large
// reads into pool-sized requests.
type poolReader struct{}

func (poolReader) Read(p []byte) (int, error) {
	for off := 0; off < len(p); {
		n := len(p) - off
		if n > entropy.PoolSize {
			n = entropy.PoolSize
		}
		if !entropy.FetchBytes(p[off : off+n]) {
			return off, fmt.Errorf("pool fetch failed")
		}
		off += n
	}
	return len(p), nil
}

func main() {
	if err := xrandMain(); err != nil {
		os.Exit(1)
	}
}

func xrandMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		initLogRotator(cfg.LogFile)
		defer logRotator.Close()
	}
	setLogLevels(cfg.DebugLevel)

	out := io.Writer(os.Stdout)
	if cfg.OutFile != "" {
		f, err := os.Create(cfg.OutFile)
		if err != nil {
			xrLog.Errorf("Unable to create output file: %v", err)
			return err
		}
		defer f.Close()
		out = f
	}

	if cfg.Strict {
		entropy.SetStrictChecks(true)
	}
	if cfg.UserEvents {
		entropy.EnableUserEvents()
	}

	if !entropy.Start() {
		err := fmt.Errorf("unable to start the randomness pool")
		xrLog.Error(err)
		return err
	}
	defer entropy.Stop()

	switch {
	case cfg.UUIDs > 0:
		return emitUUIDs(out, cfg.UUIDs)
	case cfg.Dist != "":
		return emitVariates(out, cfg)
	default:
		return emitBytes(out, cfg)
	}
}

// emitBytes writes cfg.NumBytes of random output, either straight from
// the pool or expanded through the selected DRBG mechanism.
func emitBytes(out io.Writer, cfg *config) error {
	buf := make([]byte, cfg.NumBytes)

	if cfg.DRBG != "" {
		if err := drbgFill(buf, cfg.DRBG); err != nil {
			xrLog.Errorf("DRBG generation failed: %v", err)
			return err
		}
	} else {
		if _, err := (poolReader{}).Read(buf); err != nil {
			xrLog.Errorf("Pool fetch failed: %v", err)
			return err
		}
	}

	if cfg.Hex {
		fmt.Fprintln(out, hex.EncodeToString(buf))
		return nil
	}
	_, err := out.Write(buf)
	return err
}

// drbgFill instantiates the named DRBG mechanism from pool seed material
// and fills buf, honoring the per-call output limit.
func drbgFill(buf []byte, mechanism string) error {
	var d drbg.DRBG
	var err error

	switch mechanism {
	case "ctr":
		var seed [drbg.CTREntropyLen]byte
		if !entropy.FetchBytes(seed[:]) {
			return fmt.Errorf("pool fetch failed")
		}
		d, err = drbg.NewCTRDRBG(seed[:], nil)
	case "hash", "hmac":
		var seed [48]byte
		var nonce [16]byte
		if !entropy.FetchBytes(seed[:]) || !entropy.FetchBytes(nonce[:]) {
			return fmt.Errorf("pool fetch failed")
		}
		if mechanism == "hash" {
			d, err = drbg.NewHashDRBG(seed[:], nonce[:], nil)
		} else {
			d, err = drbg.NewHMACDRBG(seed[:], nonce[:], nil)
		}
	}
	if err != nil {
		return err
	}
	defer d.Clear()

	for off := 0; off < len(buf); {
		n := len(buf) - off
		if uint64(n) > drbg.MaxOutLen {
			n = int(drbg.MaxOutLen)
		}
		if err := d.Generate(buf[off:off+n], nil); err != nil {
			return err
		}
		off += n
	}
	return nil
}

// emitUUIDs writes n random (version 4) UUIDs drawn from the pool.
func emitUUIDs(out io.Writer, n uint) error {
	for i := uint(0); i < n; i++ {
		id, err := uuid.NewRandomFromReader(poolReader{})
		if err != nil {
			xrLog.Errorf("UUID generation failed: %v", err)
			return err
		}
		fmt.Fprintln(out, id)
	}
	return nil
}

// emitVariates writes cfg.Iterations variates of the selected
// distribution, parameterized by the comma-separated cfg.Params.
func emitVariates(out io.Writer, cfg *config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	gen, err := trivium.New(nil)
	if err != nil {
		xrLog.Errorf("Unable to seed the stream generator: %v", err)
		return err
	}
	defer gen.Clear()
	s := dist.NewSampler(gen)

	need := map[string]int{
		"uniform": 2, "normal": 2, "triangular": 3, "poisson": 1, "binomial": 2,
	}[cfg.Dist]
	if len(params) != need {
		return fmt.Errorf("distribution %q requires %d parameters",
			cfg.Dist, need)
	}

	for i := uint(0); i < cfg.Iterations; i++ {
		var v interface{}
		var err error
		switch cfg.Dist {
		case "uniform":
			v, err = s.Uniform(params[0], params[1])
		case "normal":
			v, err = s.Normal(params[0], params[1])
		case "triangular":
			v, err = s.Triangular(params[0], params[1], params[2])
		case "poisson":
			v, err = s.Poisson(params[0])
		case "binomial":
			v, err = s.Binomial(int(params[0]), params[1])
		}
		if err != nil {
			xrLog.Errorf("Sampling failed: %v", err)
			return err
		}
		fmt.Fprintln(out, v)
	}
	return nil
}

// parseParams splits a comma-separated parameter list into floats.
func parseParams(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	params := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %v", p, err)
		}
		params = append(params, f)
	}
	return params, nil
}
