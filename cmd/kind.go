// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cmd

// Kind flags how a machine runs a command.
type Kind uint16

// A Daemon runs until closed.
const Daemon Kind = 1 << 1

type kinder interface {
	Kind() Kind
}

// WhatKind returns v's Kind, 0 for a plain command.
func WhatKind(v Cmd) Kind {
	if m, found := v.(kinder); found {
		return m.Kind()
	}
	return 0
}

func (k Kind) IsDaemon() bool { return k&Daemon == Daemon }

func (k Kind) String() string {
	if k.IsDaemon() {
		return "daemon"
	}
	return "command"
}
