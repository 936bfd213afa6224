// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/platinasystems/cs5368/environ/cirrus/cs5368"
	"github.com/platinasystems/cs5368/internal/devtree"
	"github.com/platinasystems/cs5368/internal/regmap"
	"github.com/platinasystems/cs5368/internal/regulator"
	"github.com/platinasystems/cs5368/internal/reset"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
)

const (
	Compatible = "cirrus,cs5368"

	defaultBus  = 0
	defaultAddr = 0x4c
)

type machine struct {
	bus, addr int
	dtb       string
	probe     bool
	noResume  bool
	// GPIO pin names; empty for strapped reset or fixed rails.
	reset    string
	supplies map[string]string
}

func newMachine(args ...string) (*machine, []string, error) {
	flag, args := flags.New(args, "-probe", "-no-resume")
	parm, args := parms.New(args, "-bus", "-addr", "-dtb", "-reset",
		"-va", "-vd", "-vlc", "-vls", "-vx")
	m := &machine{
		bus:      defaultBus,
		addr:     defaultAddr,
		dtb:      parm.ByName["-dtb"],
		probe:    flag.ByName["-probe"],
		noResume: flag.ByName["-no-resume"],
		reset:    parm.ByName["-reset"],
		supplies: make(map[string]string),
	}
	for _, x := range []struct {
		name string
		p    *int
	}{
		{"-bus", &m.bus},
		{"-addr", &m.addr},
	} {
		s := parm.ByName[x.name]
		if len(s) == 0 {
			continue
		}
		u, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %q: %w", x.name, s, err)
		}
		*x.p = int(u)
	}
	if m.addr >= 0x80 {
		return nil, nil, fmt.Errorf("-addr: %#x: not a 7-bit address",
			m.addr)
	}
	for _, name := range cs5368.SupplyNames {
		if s := parm.ByName["-"+name]; len(s) > 0 {
			m.supplies[name] = s
		}
	}
	if m.probe && len(m.dtb) == 0 {
		return nil, nil, errors.New("-probe: requires -dtb")
	}
	return m, args, nil
}

func (m *machine) needGpio() bool {
	return len(m.reset) > 0 || len(m.supplies) > 0
}

func (m *machine) init() {
	if len(m.dtb) == 0 && m.needGpio() {
		log.Print("daemon", "warning", "no -dtb for gpio pin names")
	}
}

func (m *machine) name() string {
	return fmt.Sprintf("cs5368@%02x", m.addr)
}

func (m *machine) attach() (*cs5368.Device, error) {
	name := m.name()
	if len(m.dtb) > 0 {
		t, err := devtree.Load(m.dtb)
		if err != nil {
			return nil, err
		}
		if m.needGpio() {
			if err = devtree.GpioInit(t); err != nil {
				return nil, err
			}
		}
		if m.probe {
			chips, err := devtree.I2cChips(t, Compatible)
			if err != nil {
				return nil, err
			}
			if len(chips) == 0 {
				return nil, fmt.Errorf("%s: %s: not found",
					m.dtb, Compatible)
			}
			if len(chips) > 1 {
				log.Print("daemon", "info", "using ", chips[0].Name,
					" of ", len(chips), " codecs")
			}
			m.bus, m.addr = chips[0].Bus, chips[0].Addr
			name = chips[0].Name
		}
	}

	bus := &regmap.I2cBus{Index: m.bus, Addr: m.addr}
	log.Print("daemon", "info", name, " on ", bus)

	supplies := make([]regulator.Supply, 0, len(cs5368.SupplyNames))
	for _, supply := range cs5368.SupplyNames {
		pinName, found := m.supplies[supply]
		if !found {
			supplies = append(supplies, regulator.Fixed(supply))
			continue
		}
		pin, err := devtree.Pin(pinName)
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", supply, err)
		}
		supplies = append(supplies, &regulator.Gpio{
			Supply:    supply,
			Pin:       pin,
			ActiveLow: activeLow(pinName),
		})
	}

	var line reset.Line
	if len(m.reset) > 0 {
		pin, err := devtree.Pin(m.reset)
		if err != nil {
			return nil, fmt.Errorf("-reset: %w", err)
		}
		line = &reset.Gpio{Pin: pin, ActiveLow: activeLow(m.reset)}
	}

	return cs5368.New(cs5368.Config{
		Name:     name,
		Bus:      bus,
		Supplies: supplies,
		Reset:    line,
	})
}

// Pin names ending in _L, e.g. CODEC_RST_L, are active low.
func activeLow(pinName string) bool {
	return strings.HasSuffix(pinName, "_L")
}
