// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regmap provides a cached view of a chip's 8-bit register space.
//
// The cache may be put in bypass while the chip is unpowered; writes then
// land only in the shadow and are replayed to the chip by Sync once bypass
// is cleared. Volatile registers are never cached.
//
// A Map isn't safe for concurrent use; the caller serializes access.
package regmap

import "fmt"

// Bus transfers consecutive register values starting at the given address.
// The address already includes any flag bits from the Config.
type Bus interface {
	Read(addr uint8, buf []byte) error
	Write(addr uint8, buf []byte) error
}

type Pair struct {
	Reg, Val uint8
}

type Config struct {
	MaxRegister uint8

	// OR'd into every transmitted register address.
	ReadFlagMask  uint8
	WriteFlagMask uint8

	// nil Readable or Writeable selects every register; nil Volatile
	// selects none.
	Readable  *Table
	Writeable *Table
	Volatile  *Table

	Defaults []Pair
}

type Map struct {
	bus    Bus
	rflag  uint8
	wflag  uint8
	access []access
	cache  []uint8
	valid  []bool
	bypass bool
	dirty  bool
}

func New(bus Bus, cfg *Config) (*Map, error) {
	m := &Map{
		bus:    bus,
		rflag:  cfg.ReadFlagMask,
		wflag:  cfg.WriteFlagMask,
		access: resolve(cfg),
	}
	m.cache = make([]uint8, len(m.access))
	m.valid = make([]bool, len(m.access))
	for _, d := range cfg.Defaults {
		if int(d.Reg) >= len(m.access) {
			return nil, fmt.Errorf("default 0x%02x: beyond max register 0x%02x",
				d.Reg, cfg.MaxRegister)
		}
		if m.access[d.Reg].isCacheable() {
			m.cache[d.Reg] = d.Val
			m.valid[d.Reg] = true
		}
	}
	return m, nil
}

func (m *Map) lookup(op string, reg uint8, want access) (access, error) {
	if int(reg) >= len(m.access) || m.access[reg]&want == 0 {
		return 0, &AccessError{op, reg}
	}
	return m.access[reg], nil
}

// SetBypass selects whether the bus may be used. Clearing bypass doesn't
// replay the shadow; see MarkDirty and Sync.
func (m *Map) SetBypass(bypass bool) { m.bypass = bypass }

func (m *Map) Bypass() bool { return m.bypass }

// MarkDirty makes the next Sync replay every cached register.
func (m *Map) MarkDirty() { m.dirty = true }

func (m *Map) Dirty() bool { return m.dirty }

// Cached returns the shadow value of reg, if any.
func (m *Map) Cached(reg uint8) (uint8, bool) {
	if int(reg) >= len(m.valid) || !m.valid[reg] {
		return 0, false
	}
	return m.cache[reg], true
}

func (m *Map) Read(reg uint8) (uint8, error) {
	a, err := m.lookup("read", reg, readable)
	if err != nil {
		return 0, err
	}
	if !a.isVolatile() && (m.bypass || m.valid[reg]) {
		return m.cache[reg], nil
	}
	var b [1]byte
	if err = m.bus.Read(reg|m.rflag, b[:]); err != nil {
		return 0, &BusError{"read", reg, err}
	}
	if !a.isVolatile() {
		m.cache[reg] = b[0]
		m.valid[reg] = true
	}
	return b[0], nil
}

// Refresh reads reg from the chip even if it's cached, updating the
// shadow. In bypass it returns the shadow like Read.
func (m *Map) Refresh(reg uint8) (uint8, error) {
	a, err := m.lookup("read", reg, readable)
	if err != nil {
		return 0, err
	}
	if m.bypass && !a.isVolatile() {
		return m.cache[reg], nil
	}
	var b [1]byte
	if err = m.bus.Read(reg|m.rflag, b[:]); err != nil {
		return 0, &BusError{"read", reg, err}
	}
	if a.isCacheable() {
		m.cache[reg] = b[0]
		m.valid[reg] = true
	}
	return b[0], nil
}

func (m *Map) Write(reg, val uint8) error {
	a, err := m.lookup("write", reg, writeable)
	if err != nil {
		return err
	}
	if m.bypass {
		// nothing to shadow for a volatile register
		if !a.isVolatile() {
			m.cache[reg] = val
			m.valid[reg] = true
			m.dirty = true
		}
		return nil
	}
	if err = m.bus.Write(reg|m.wflag, []byte{val}); err != nil {
		return &BusError{"write", reg, err}
	}
	if !a.isVolatile() {
		m.cache[reg] = val
		m.valid[reg] = true
	}
	return nil
}

// UpdateBits changes the mask bits of reg to those of val. The write is
// skipped if that leaves the value unchanged.
func (m *Map) UpdateBits(reg, mask, val uint8) error {
	cur, err := m.Read(reg)
	if err != nil {
		return err
	}
	v := cur&^mask | val&mask
	if v == cur {
		return nil
	}
	return m.Write(reg, v)
}

// MultiWrite applies each pair in order, stopping at the first failure.
func (m *Map) MultiWrite(seq []Pair) error {
	for _, p := range seq {
		if err := m.Write(p.Reg, p.Val); err != nil {
			return err
		}
	}
	return nil
}

// BulkRead fills vals from consecutive registers starting at reg with one
// auto-increment transfer. Every register in the span must be readable.
func (m *Map) BulkRead(reg uint8, vals []uint8) error {
	for i := range vals {
		if _, err := m.lookup("read", reg+uint8(i), readable); err != nil {
			return err
		}
	}
	if m.bypass {
		for i := range vals {
			v, err := m.Read(reg + uint8(i))
			if err != nil {
				return err
			}
			vals[i] = v
		}
		return nil
	}
	if err := m.bus.Read(reg|m.rflag, vals); err != nil {
		return &BusError{"bulk read", reg, err}
	}
	for i, v := range vals {
		r := reg + uint8(i)
		if m.access[r].isCacheable() {
			m.cache[r] = v
			m.valid[r] = true
		}
	}
	return nil
}

// Sync replays the dirty shadow in ascending address order, skipping
// volatile and unwriteable registers. A failed write aborts the replay,
// leaving the chip partially updated and the shadow dirty.
func (m *Map) Sync() error {
	if m.bypass || !m.dirty {
		return nil
	}
	for i, a := range m.access {
		if !m.valid[i] || !a.isWriteable() || a.isVolatile() {
			continue
		}
		if err := m.bus.Write(uint8(i)|m.wflag, m.cache[i:i+1]); err != nil {
			return &BusError{"sync", uint8(i), err}
		}
	}
	m.dirty = false
	return nil
}
