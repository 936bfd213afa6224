// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This runs the cs5368d daemon for a board's CS5368 audio ADC.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/platinasystems/cs5368/cmd"
	"github.com/platinasystems/cs5368/cmd/cs5368d"
)

var Args = os.Args
var Exit = os.Exit
var Stderr io.Writer = os.Stderr

func main() {
	if err := Main(Args[1:]...); err != nil {
		fmt.Fprintln(Stderr, err)
		Exit(1)
	}
}

func Main(args ...string) error {
	m, args, err := newMachine(args...)
	if err != nil {
		return err
	}
	started := make(chan struct{})
	d := &cs5368d.Command{
		Init: func() {
			m.init()
			close(started)
		},
		Attach:   m.attach,
		NoResume: m.noResume,
	}
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected\n%s\n\t%s", args,
			cmd.Usage(d), d.Apropos())
	}
	if cmd.WhatKind(d).IsDaemon() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)
		go func() {
			<-sig
			<-started
			cmd.Close(d)
		}()
	}
	return d.Main()
}
