// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import "github.com/platinasystems/cs5368/internal/regmap"

// Register map
const (
	regREVI  uint8 = 0x00
	regGCTL  uint8 = 0x01
	regOVFL  uint8 = 0x02
	regOVFM  uint8 = 0x03
	regHPF   uint8 = 0x04
	regRSVD1 uint8 = 0x05
	regPDN   uint8 = 0x06
	regRSVD2 uint8 = 0x07
	regMUTE  uint8 = 0x08
	regRSVD3 uint8 = 0x09
	regSDEN  uint8 = 0x0a
	maxReg         = regSDEN
)

const (
	gctlMdivShift = 4
	gctlMdivMask  = 0x3 << gctlMdivShift

	// Set on every transmitted address so that batch transfers
	// auto-increment.
	incr = 0x80
)

var initSeq = []regmap.Pair{
	{Reg: regGCTL, Val: 0x8b}, // CP-EN, TDM format, consumer clocking
	{Reg: regOVFM, Val: 0x00}, // mask all overflows
	{Reg: regSDEN, Val: 0x0a}, // only TDM and /TDM pins
}

var regDefaults = []regmap.Pair{
	{Reg: regREVI, Val: 0x80}, // assume revision A
	{Reg: regGCTL, Val: 0x00},
	{Reg: regOVFL, Val: 0xff},
	{Reg: regOVFM, Val: 0xff},
	{Reg: regHPF, Val: 0x00},
	{Reg: regPDN, Val: 0x00},
	{Reg: regMUTE, Val: 0x00},
	{Reg: regSDEN, Val: 0x00},
}

var reserved = []regmap.Range{
	regmap.Reg(regRSVD1),
	regmap.Reg(regRSVD2),
	regmap.Reg(regRSVD3),
}

var regConfig = regmap.Config{
	MaxRegister:   maxReg,
	ReadFlagMask:  incr,
	WriteFlagMask: incr,
	Readable:      &regmap.Table{No: reserved},
	Writeable: &regmap.Table{
		No: append([]regmap.Range{regmap.Reg(regREVI)}, reserved...),
	},
	Volatile: &regmap.Table{Yes: []regmap.Range{regmap.Reg(regOVFL)}},
	Defaults: regDefaults,
}

// Supply rails, switched as a group.
var SupplyNames = []string{
	"va",
	"vd",
	"vlc",
	"vls",
	"vx",
}
