// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cmd describes the commands and daemons run by a goes machine.
package cmd

import (
	"strings"

	"github.com/platinasystems/cs5368/lang"
)

type Cmd interface {
	Apropos() lang.Alt
	Main(...string) error
	// String returns the command name.
	String() string
	Usage() string
	/* Optional
	Close() error
	Kind() Kind
	*/
}

type closer interface {
	Close() error
}

// Close stops v if it's a daemon that can be closed.
func Close(v Cmd) error {
	if m, found := v.(closer); found {
		return m.Close()
	}
	return nil
}

// Usage prefixes the command's usage with "usage:".
func Usage(v Cmd) string {
	return "usage:\t" + strings.TrimSpace(v.Usage())
}
