// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"errors"
	"testing"
)

func TestOversampleRatio(t *testing.T) {
	for _, x := range []struct {
		rate uint32
		osr  uint32
	}{
		{32000, 256},
		{53999, 256},
		{54000, 128},
		{107999, 128},
		{108000, 64},
		{192000, 64},
	} {
		if got := OversampleRatio(x.rate); got != x.osr {
			t.Errorf("%d: got %d, want %d", x.rate, got, x.osr)
		}
	}
}

// Expected codes follow mclk / (rate * osr), truncated, mapped 1, 2, 4 to
// 0, 1, 3.
func TestDivider(t *testing.T) {
	for _, x := range []struct {
		mclk, rate uint32
		mdiv       uint8
		err        error
	}{
		{12288000, 48000, 0, nil},                 // 12288000 / (48000 * 256) = 1
		{12288000, 96000, 0, nil},                 // / (96000 * 128) = 1
		{12288000, 192000, 0, nil},                // / (192000 * 64) = 1
		{12288000, 24000, 1, nil},                 // / (24000 * 256) = 2
		{12288000, 12000, 3, nil},                 // / (12000 * 256) = 4
		{12288000, 16000, 0, ErrUnsupportedRatio}, // = 3
		{12288000, 8000, 0, ErrUnsupportedRatio},  // = 6

		{24576000, 32000, 0, ErrUnsupportedRatio}, // / (32000 * 256) = 3
		{24576000, 44100, 1, nil},                 // 2.18 truncated to 2
		{24576000, 48000, 1, nil},                 // / (48000 * 256) = 2
		{24576000, 96000, 1, nil},                 // / (96000 * 128) = 2
		{24576000, 192000, 1, nil},                // / (192000 * 64) = 2

		{0, 48000, 0, ErrInvalidArgument},
		{24576000, 0, 0, ErrInvalidArgument},
	} {
		mdiv, err := Divider(x.mclk, x.rate)
		if x.err != nil {
			if !errors.Is(err, x.err) {
				t.Errorf("%d/%d: got %v, want %v", x.mclk, x.rate, err, x.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d/%d: %v", x.mclk, x.rate, err)
		} else if mdiv != x.mdiv {
			t.Errorf("%d/%d: got %d, want %d", x.mclk, x.rate, mdiv, x.mdiv)
		}
	}
}

// A master clock just short of 2x still selects divide by 1; truncation
// hides the mismatch.
func TestDividerTruncates(t *testing.T) {
	mdiv, err := Divider(2*12288000-1, 48000)
	if err != nil || mdiv != 0 {
		t.Errorf("got %d, %v", mdiv, err)
	}
}

func TestSetSysclk(t *testing.T) {
	td := newTestDevice(t)
	if err := td.SetSysclk(24576000, ClockOut); !errors.Is(err, ErrInvalidArgument) {
		t.Error("clock out:", err)
	}
	if td.Mclk() != 0 {
		t.Error("rejected clock latched")
	}
	if err := td.SetSysclk(24576000, ClockIn); err != nil {
		t.Fatal(err)
	}
	if td.Mclk() != 24576000 {
		t.Error("mclk:", td.Mclk())
	}
}

func TestHwParams(t *testing.T) {
	td := newTestDevice(t)
	td.resume(t)
	if err := td.HwParams(48000); !errors.Is(err, ErrInvalidArgument) {
		t.Error("unset mclk:", err)
	}
	if err := td.SetSysclk(24576000, ClockIn); err != nil {
		t.Fatal(err)
	}

	td.chip.writes = nil
	if err := td.HwParams(32000); !errors.Is(err, ErrUnsupportedRatio) {
		t.Error("got", err)
	}
	if err := td.HwParams(1000); !errors.Is(err, ErrInvalidArgument) {
		t.Error("rate below range:", err)
	}
	if len(td.chip.writes) != 0 {
		t.Error("rejected rate was written")
	}

	if err := td.HwParams(48000); err != nil {
		t.Fatal(err)
	}
	if got, want := td.chip.regs[regGCTL], uint8(0x8b|1<<4); got != want {
		t.Errorf("GCTL 0x%02x, want 0x%02x", got, want)
	}
	if td.Mdiv() != 1 || td.Rate() != 48000 {
		t.Error("mdiv", td.Mdiv(), "rate", td.Rate())
	}

	if err := td.SetSysclk(4*12000*256, ClockIn); err != nil {
		t.Fatal(err)
	}
	if err := td.HwParams(12000); err != nil {
		t.Fatal(err)
	}
	if got, want := td.chip.regs[regGCTL], uint8(0x8b|3<<4); got != want {
		t.Errorf("GCTL 0x%02x, want 0x%02x", got, want)
	}
}
