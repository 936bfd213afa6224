// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package reset drives a chip's reset line.
package reset

import "github.com/platinasystems/gpio"

type Line interface {
	Assert() error
	Deassert() error
}

// Gpio is a reset line on a sysfs GPIO pin; most resets are active low,
// e.g. a pin named "CODEC_RST_L".
type Gpio struct {
	Pin       gpio.Pin
	ActiveLow bool
}

func (g *Gpio) Assert() error { return g.Pin.SetValue(!g.ActiveLow) }

func (g *Gpio) Deassert() error { return g.Pin.SetValue(g.ActiveLow) }

// None is a chip without a reset line.
type None struct{}

func (None) Assert() error   { return nil }
func (None) Deassert() error { return nil }
