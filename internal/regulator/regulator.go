// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regulator switches groups of named supply rails.
package regulator

import (
	"fmt"

	"github.com/platinasystems/gpio"
	"github.com/platinasystems/log"
)

type Supply interface {
	Name() string
	Enable() error
	Disable() error
}

// Bulk is an ordered group of supplies switched together.
type Bulk []Supply

// Get returns the supplies matching names, in that order.
func Get(supplies []Supply, names ...string) (Bulk, error) {
	byName := make(map[string]Supply, len(supplies))
	for _, s := range supplies {
		byName[s.Name()] = s
	}
	b := make(Bulk, 0, len(names))
	for _, name := range names {
		s, found := byName[name]
		if !found {
			return nil, fmt.Errorf("%s: supply not found", name)
		}
		b = append(b, s)
	}
	return b, nil
}

// Enable turns on every supply in order. If one fails, those already
// enabled are turned off again and the first failure is returned.
func (b Bulk) Enable() error {
	for i, s := range b {
		if err := s.Enable(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if xerr := b[j].Disable(); xerr != nil {
					log.Print("daemon", "err", b[j].Name(),
						": disable: ", xerr)
				}
			}
			return fmt.Errorf("%s: enable: %w", s.Name(), err)
		}
	}
	return nil
}

// Disable turns off every supply, logging each failure and returning the
// first.
func (b Bulk) Disable() error {
	var first error
	for _, s := range b {
		if err := s.Disable(); err != nil {
			log.Print("daemon", "err", s.Name(), ": disable: ", err)
			if first == nil {
				first = fmt.Errorf("%s: disable: %w", s.Name(), err)
			}
		}
	}
	return first
}

// Gpio is a rail switched by a load switch enable pin.
type Gpio struct {
	Supply    string
	Pin       gpio.Pin
	ActiveLow bool
}

func (g *Gpio) Name() string { return g.Supply }

func (g *Gpio) Enable() error { return g.Pin.SetValue(!g.ActiveLow) }

func (g *Gpio) Disable() error { return g.Pin.SetValue(g.ActiveLow) }

// Fixed is an always-on rail.
type Fixed string

func (f Fixed) Name() string   { return string(f) }
func (f Fixed) Enable() error  { return nil }
func (f Fixed) Disable() error { return nil }
