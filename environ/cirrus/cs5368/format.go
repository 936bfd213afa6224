// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"fmt"

	"github.com/platinasystems/log"
)

// Stream describes what the digital audio interface can capture.
type Stream struct {
	Name        string
	ChannelsMin int
	ChannelsMax int
	RateMin     uint32
	RateMax     uint32
	// S32_LE slots carrying SigBits of sample.
	SampleBits int
	SigBits    int
}

var Capture = Stream{
	Name:        "Capture",
	ChannelsMin: 2,
	ChannelsMax: 8,
	RateMin:     2000,
	RateMax:     216000,
	SampleBits:  32,
	SigBits:     24,
}

type Format int

const (
	I2S Format = iota + 1
	RightJ
	LeftJ
	DspA
	DspB
)

var formatNames = map[Format]string{
	I2S:    "i2s",
	RightJ: "right_j",
	LeftJ:  "left_j",
	DspA:   "dsp_a",
	DspB:   "dsp_b",
}

func (f Format) String() string {
	if s, found := formatNames[f]; found {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: format %q", ErrInvalidArgument, s)
}

// ClockRole says which side of the link provides the bit and frame clocks.
type ClockRole int

const (
	ClockConsumer ClockRole = iota
	ClockProvider
	BitProviderFrameConsumer
	BitConsumerFrameProvider
)

var clockRoleNames = map[ClockRole]string{
	ClockConsumer:            "consumer",
	ClockProvider:            "provider",
	BitProviderFrameConsumer: "bp_fc",
	BitConsumerFrameProvider: "bc_fp",
}

func (r ClockRole) String() string {
	if s, found := clockRoleNames[r]; found {
		return s
	}
	return fmt.Sprintf("ClockRole(%d)", int(r))
}

func ParseClockRole(s string) (ClockRole, error) {
	for r, name := range clockRoleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: clock role %q", ErrInvalidArgument, s)
}

// SetFormat accepts I2S or DSP_A framing with the chip as clock consumer.
// The init sequence has already configured the chip for both.
func (d *Device) SetFormat(f Format, role ClockRole) error {
	if f != I2S && f != DspA {
		log.Print("daemon", "err", d.name,
			": codec only supports I2S or DSP_A TDM formats")
		return fmt.Errorf("%w: format %v", ErrInvalidArgument, f)
	}
	if role != ClockConsumer {
		log.Print("daemon", "err", d.name,
			": driver currently only supports clock consumer mode")
		return fmt.Errorf("%w: clock role %v", ErrInvalidArgument, role)
	}
	return nil
}

// SetTdmSlot validates the TDM slot geometry; the masks are unused.
func (d *Device) SetTdmSlot(txMask, rxMask uint32, slots, width int) error {
	if slots != 8 && slots != 4 && slots != 2 {
		log.Print("daemon", "err", d.name,
			": codec requires 8, 4 or 2 TDM slots")
		return fmt.Errorf("%w: %d slots", ErrInvalidArgument, slots)
	}
	if width != 32 {
		log.Print("daemon", "err", d.name,
			": codec requires 32-bit TDM slot width")
		return fmt.Errorf("%w: %d bit slots", ErrInvalidArgument, width)
	}
	d.tdm = true
	return nil
}

func (d *Device) Tdm() bool { return d.tdm }
