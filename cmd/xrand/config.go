// Copyright (c) 2024-2025 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

// config defines the configuration options for xrand.
type config struct {
	NumBytes   uint   `short:"n" long:"bytes" description:"Number of random bytes to emit"`
	Hex        bool   `short:"x" long:"hex" description:"Emit output as hexadecimal instead of raw bytes"`
	DRBG       string `long:"drbg" description:"Expand the pool seed through a DRBG mechanism" choice:"ctr" choice:"hash" choice:"hmac"`
	UUIDs      uint   `short:"u" long:"uuid" description:"Emit this many random (version 4) UUIDs"`
	Dist       string `long:"dist" description:"Emit variates from a distribution" choice:"uniform" choice:"normal" choice:"triangular" choice:"poisson" choice:"binomial"`
	Params     string `long:"params" description:"Comma-separated distribution parameters (e.g. 0,1)"`
	Iterations uint   `short:"i" long:"iterations" description:"Number of variates to emit" default:"1"`
	UserEvents bool   `long:"userevents" description:"Opt in to user-input entropy capture"`
	Strict     bool   `long:"strict" description:"Escalate statistics-probe failures during slow polls"`
	OutFile    string `short:"o" long:"output" description:"Write output to file instead of stdout"`
	LogFile    string `long:"logfile" description:"Write the log to file with rotation"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}" default:"info"`
	ShowVer    bool   `short:"V" long:"version" description:"Display version information and exit"`
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, error) {
	cfg := config{}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.ShowVer {
		fmt.Printf("xrand version %s\n", version)
		os.Exit(0)
	}

	if cfg.NumBytes == 0 && cfg.UUIDs == 0 && cfg.Dist == "" {
		cfg.NumBytes = 32
	}

	if !validLogLevel(cfg.DebugLevel) {
		return nil, fmt.Errorf("the specified debug level [%v] is invalid",
			cfg.DebugLevel)
	}

	return &cfg, nil
}
