// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"fmt"

	"github.com/platinasystems/log"
)

type ClockDirection int

const (
	ClockIn ClockDirection = iota
	ClockOut
)

func (dir ClockDirection) String() string {
	if dir == ClockIn {
		return "in"
	}
	return "out"
}

// OversampleRatio is master clocks per frame at the chip's speed mode for
// rate: single (<54kHz), double (<108kHz) or quad.
func OversampleRatio(rate uint32) uint32 {
	switch {
	case rate < 54000:
		return 256
	case rate < 108000:
		return 128
	}
	return 64
}

// Divider returns the GCTL MDIV code that divides mclk down to rate.
//
// The quotient is truncated so an mclk slightly off an exact multiple still
// selects a divider.
func Divider(mclk, rate uint32) (uint8, error) {
	if mclk == 0 {
		return 0, fmt.Errorf("%w: mclk unset", ErrInvalidArgument)
	}
	if rate == 0 {
		return 0, fmt.Errorf("%w: zero rate", ErrInvalidArgument)
	}
	osr := OversampleRatio(rate)
	div := uint64(mclk) / (uint64(rate) * uint64(osr))
	switch div {
	case 1:
		return 0, nil
	case 2:
		return 1, nil
	case 4:
		return 3, nil
	}
	return 0, fmt.Errorf("%w: mclk %d, rate %d, osr %d: divider %d",
		ErrUnsupportedRatio, mclk, rate, osr, div)
}

// SetSysclk latches the master clock frequency, which must be an input.
func (d *Device) SetSysclk(freq uint32, dir ClockDirection) error {
	if dir != ClockIn {
		log.Print("daemon", "err", d.name,
			": driver currently only supports clock input")
		return fmt.Errorf("%w: clock %v", ErrInvalidArgument, dir)
	}
	d.mclk = freq
	return nil
}

// HwParams sets the master clock divider for a capture stream at rate.
func (d *Device) HwParams(rate uint32) error {
	if rate < Capture.RateMin || rate > Capture.RateMax {
		return fmt.Errorf("%w: rate %d outside %d-%d", ErrInvalidArgument,
			rate, Capture.RateMin, Capture.RateMax)
	}
	mdiv, err := Divider(d.mclk, rate)
	if err != nil {
		log.Print("daemon", "err", d.name, ": unknown mclk divider: ", err)
		return err
	}
	err = d.regs.UpdateBits(regGCTL, gctlMdivMask, mdiv<<gctlMdivShift)
	if err != nil {
		log.Print("daemon", "err", d.name,
			": failed to set mclk divider: ", err)
		return err
	}
	d.rate = rate
	return nil
}
