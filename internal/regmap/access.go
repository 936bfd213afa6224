// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regmap

// Range is an inclusive span of register addresses.
type Range struct {
	Min, Max uint8
}

// Reg returns the single register range [r, r].
func Reg(r uint8) Range { return Range{r, r} }

func (r Range) contains(reg uint8) bool { return reg >= r.Min && reg <= r.Max }

// Table selects registers by range. A register listed in No is never
// selected; otherwise it is selected if Yes is empty or lists it.
type Table struct {
	Yes, No []Range
}

func (t *Table) Contains(reg uint8) bool {
	for _, r := range t.No {
		if r.contains(reg) {
			return false
		}
	}
	if len(t.Yes) == 0 {
		return true
	}
	for _, r := range t.Yes {
		if r.contains(reg) {
			return true
		}
	}
	return false
}

type access uint8

const (
	readable access = 1 << iota
	writeable
	volatile
)

func (a access) isReadable() bool  { return a&readable != 0 }
func (a access) isWriteable() bool { return a&writeable != 0 }
func (a access) isVolatile() bool  { return a&volatile != 0 }

// cacheable registers are those that may be accessed at all and aren't
// volatile.
func (a access) isCacheable() bool {
	return a&(readable|writeable) != 0 && !a.isVolatile()
}

// resolve the access tables to one entry per address.
func resolve(cfg *Config) []access {
	t := make([]access, int(cfg.MaxRegister)+1)
	for i := range t {
		reg := uint8(i)
		if cfg.Readable == nil || cfg.Readable.Contains(reg) {
			t[i] |= readable
		}
		if cfg.Writeable == nil || cfg.Writeable.Contains(reg) {
			t[i] |= writeable
		}
		if cfg.Volatile != nil && len(cfg.Volatile.Yes) > 0 &&
			cfg.Volatile.Contains(reg) {
			t[i] |= volatile
		}
	}
	return t
}
