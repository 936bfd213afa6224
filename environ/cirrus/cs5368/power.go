// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"fmt"

	"github.com/platinasystems/log"
)

type PowerState int

const (
	Unpowered PowerState = iota
	Resetting
	Active
)

func (s PowerState) String() string {
	switch s {
	case Unpowered:
		return "unpowered"
	case Resetting:
		return "resetting"
	case Active:
		return "active"
	}
	return fmt.Sprintf("PowerState(%d)", int(s))
}

// Resume powers the chip, releases reset then replays the register shadow.
// A device left Resetting by a failed Resume retries from reset release.
func (d *Device) Resume() error {
	switch d.state {
	case Active:
		return nil
	case Unpowered:
		if err := d.supplies.Enable(); err != nil {
			log.Print("daemon", "err", d.name,
				": regulator bulk enable: ", err)
			return fmt.Errorf("%w: %w", ErrResource, err)
		}
		d.state = Resetting
	}

	if err := d.reset.Deassert(); err != nil {
		log.Print("daemon", "err", d.name, ": reset release: ", err)
		return fmt.Errorf("%w: reset: %w", ErrResource, err)
	}

	d.regs.SetBypass(false)
	d.regs.MarkDirty()
	if err := d.regs.Sync(); err != nil {
		log.Print("daemon", "err", d.name, ": regcache sync: ", err)
		return err
	}
	d.state = Active
	return nil
}

// Suspend puts the register map in bypass, asserts reset and disables the
// supplies. It carries on past failures, returning the first.
func (d *Device) Suspend() error {
	if d.state == Unpowered {
		return nil
	}
	d.regs.SetBypass(true)
	d.state = Unpowered

	var first error
	if err := d.reset.Assert(); err != nil {
		log.Print("daemon", "err", d.name, ": reset assert: ", err)
		first = fmt.Errorf("%w: reset: %w", ErrResource, err)
	}
	if err := d.supplies.Disable(); err != nil && first == nil {
		first = fmt.Errorf("%w: %w", ErrResource, err)
	}
	return first
}
