// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cs5368 controls the Cirrus Logic CS5368 8 channel ADC.
//
// The chip is only ever run as a TDM clock consumer; its master clock comes
// from the host. While unpowered, register writes land in a shadow that is
// replayed to the chip on Resume.
//
// A Device isn't safe for concurrent use; the caller holds one lock around
// every call.
package cs5368

import (
	"errors"
	"fmt"

	"github.com/platinasystems/cs5368/internal/regmap"
	"github.com/platinasystems/cs5368/internal/regulator"
	"github.com/platinasystems/cs5368/internal/reset"
	"github.com/platinasystems/log"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedRatio = errors.New("unsupported mclk ratio")
	ErrResource         = errors.New("resource failure")
	ErrReservedAddress  = regmap.ErrReserved
	ErrTransport        = regmap.ErrTransport
)

type Config struct {
	// Name prefixes log messages, e.g. "cs5368@4c".
	Name     string
	Bus      regmap.Bus
	Supplies []regulator.Supply
	// nil if the reset pin is strapped.
	Reset reset.Line
}

type Device struct {
	name     string
	regs     *regmap.Map
	supplies regulator.Bulk
	reset    reset.Line
	state    PowerState

	mclk uint32
	rate uint32
	tdm  bool
}

// New attaches an unpowered device with the reset line asserted. The
// register init sequence goes to the shadow, to reach the chip on the
// first Resume.
func New(cfg Config) (*Device, error) {
	if cfg.Bus == nil {
		return nil, fmt.Errorf("%w: missing bus", ErrInvalidArgument)
	}
	d := &Device{
		name:  cfg.Name,
		reset: cfg.Reset,
		state: Unpowered,
	}
	if len(d.name) == 0 {
		d.name = "cs5368"
	}
	if d.reset == nil {
		d.reset = reset.None{}
	}

	regs, err := regmap.New(cfg.Bus, &regConfig)
	if err != nil {
		return nil, err
	}
	regs.SetBypass(true)
	if err = regs.MultiWrite(initSeq); err != nil {
		log.Print("daemon", "err", d.name, ": init sequence: ", err)
		return nil, err
	}
	d.regs = regs

	d.supplies, err = regulator.Get(cfg.Supplies, SupplyNames...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}

	if err = d.reset.Assert(); err != nil {
		log.Print("daemon", "err", d.name, ": failed to get reset gpio: ", err)
		return nil, fmt.Errorf("%w: reset: %w", ErrResource, err)
	}
	return d, nil
}

// Close detaches the device, powering it down if needed.
func (d *Device) Close() error {
	return d.Suspend()
}

func (d *Device) String() string { return d.name }

func (d *Device) State() PowerState { return d.state }

// Mclk is the master clock frequency from SetSysclk, 0 if unset.
func (d *Device) Mclk() uint32 { return d.mclk }

// Rate is the sample rate from the last successful HwParams.
func (d *Device) Rate() uint32 { return d.rate }

// Mdiv is the master clock divider code in the shadow of the global
// control register.
func (d *Device) Mdiv() uint8 {
	v, _ := d.regs.Cached(regGCTL)
	return (v & gctlMdivMask) >> gctlMdivShift
}

// Revision is the chip's revision ID once Active. While unpowered it's the
// assumed revision A from the register defaults.
func (d *Device) Revision() (uint8, error) {
	if d.state == Active {
		return d.regs.Refresh(regREVI)
	}
	return d.regs.Read(regREVI)
}

// Overflow reads the overflow status; it's always fetched from the chip.
func (d *Device) Overflow() (uint8, error) {
	return d.regs.Read(regOVFL)
}

// Dump returns the shadow of each register in address order; ok is false
// for uncached registers.
func (d *Device) Dump() (vals [maxReg + 1]uint8, ok [maxReg + 1]bool) {
	for i := range vals {
		vals[i], ok[i] = d.regs.Cached(uint8(i))
	}
	return
}
