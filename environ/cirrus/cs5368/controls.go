// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import "fmt"

const (
	Channels = 8
	AdcPairs = Channels / 2
)

// Control is a single bit switch; with Invert the switch is on when the
// bit is clear.
type Control struct {
	Name   string
	Reg    uint8
	Shift  uint8
	Invert bool
}

func hpfName(ch int) string     { return fmt.Sprintf("AIN%d High-Pass Filter Switch", ch) }
func captureName(ch int) string { return fmt.Sprintf("AIN%d Capture Switch", ch) }

// Controls lists the high-pass filter switches followed by the capture
// (unmute) switches, both in channel order.
var Controls = func() []Control {
	var c []Control
	for ch := 1; ch <= Channels; ch++ {
		c = append(c, Control{hpfName(ch), regHPF, uint8(ch - 1), true})
	}
	for ch := 1; ch <= Channels; ch++ {
		c = append(c, Control{captureName(ch), regMUTE, uint8(ch - 1), true})
	}
	return c
}()

func findControl(name string) (*Control, error) {
	for i := range Controls {
		if Controls[i].Name == name {
			return &Controls[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q: no such control", ErrInvalidArgument, name)
}

func (d *Device) getBit(reg, shift uint8, invert bool) (bool, error) {
	v, err := d.regs.Read(reg)
	if err != nil {
		return false, err
	}
	return (v&(1<<shift) != 0) != invert, nil
}

func (d *Device) setBit(reg, shift uint8, invert, on bool) error {
	var v uint8
	if on != invert {
		v = 1 << shift
	}
	return d.regs.UpdateBits(reg, 1<<shift, v)
}

func (d *Device) Control(name string) (bool, error) {
	c, err := findControl(name)
	if err != nil {
		return false, err
	}
	return d.getBit(c.Reg, c.Shift, c.Invert)
}

func (d *Device) SetControl(name string, on bool) error {
	c, err := findControl(name)
	if err != nil {
		return err
	}
	return d.setBit(c.Reg, c.Shift, c.Invert, on)
}

func channel(ch int) error {
	if ch < 1 || ch > Channels {
		return fmt.Errorf("%w: channel %d", ErrInvalidArgument, ch)
	}
	return nil
}

func (d *Device) HighPass(ch int) (bool, error) {
	if err := channel(ch); err != nil {
		return false, err
	}
	return d.Control(hpfName(ch))
}

func (d *Device) SetHighPass(ch int, on bool) error {
	if err := channel(ch); err != nil {
		return err
	}
	return d.SetControl(hpfName(ch), on)
}

func (d *Device) Muted(ch int) (bool, error) {
	if err := channel(ch); err != nil {
		return false, err
	}
	on, err := d.Control(captureName(ch))
	return !on, err
}

func (d *Device) SetMute(ch int, muted bool) error {
	if err := channel(ch); err != nil {
		return err
	}
	return d.SetControl(captureName(ch), !muted)
}

// AdcPower reports whether ADC pair 1-4 (AIN1/2 ... AIN7/8) is powered.
func (d *Device) AdcPower(pair int) (bool, error) {
	w, err := adcWidget(pair)
	if err != nil {
		return false, err
	}
	return d.getBit(uint8(w.Reg), w.Shift, w.Invert)
}

// SetAdcPower is the routing graph's hook to power an ADC pair.
func (d *Device) SetAdcPower(pair int, on bool) error {
	w, err := adcWidget(pair)
	if err != nil {
		return err
	}
	return d.setBit(uint8(w.Reg), w.Shift, w.Invert, on)
}
