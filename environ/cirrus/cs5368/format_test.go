// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"errors"
	"testing"
)

func TestSetFormat(t *testing.T) {
	td := newTestDevice(t)
	for _, x := range []struct {
		f    Format
		role ClockRole
		ok   bool
	}{
		{I2S, ClockConsumer, true},
		{DspA, ClockConsumer, true},
		{I2S, ClockProvider, false},
		{DspA, BitProviderFrameConsumer, false},
		{I2S, BitConsumerFrameProvider, false},
		{LeftJ, ClockConsumer, false},
		{RightJ, ClockConsumer, false},
		{DspB, ClockConsumer, false},
	} {
		err := td.SetFormat(x.f, x.role)
		if x.ok && err != nil {
			t.Errorf("%v %v: %v", x.f, x.role, err)
		} else if !x.ok && !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v %v: got %v", x.f, x.role, err)
		}
	}
	if len(td.chip.writes) != 0 {
		t.Error("format negotiation wrote registers")
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("dsp_a")
	if err != nil || f != DspA {
		t.Error("dsp_a:", f, err)
	}
	if _, err = ParseFormat("pdm"); !errors.Is(err, ErrInvalidArgument) {
		t.Error("pdm:", err)
	}
	r, err := ParseClockRole("bc_fp")
	if err != nil || r != BitConsumerFrameProvider {
		t.Error("bc_fp:", r, err)
	}
	if _, err = ParseClockRole("master"); !errors.Is(err, ErrInvalidArgument) {
		t.Error("master:", err)
	}
}

func TestSetTdmSlot(t *testing.T) {
	td := newTestDevice(t)
	for _, x := range []struct{ slots, width int }{
		{8, 16},
		{8, 24},
		{6, 32},
		{1, 32},
		{16, 32},
	} {
		if err := td.SetTdmSlot(0xff, 0xff, x.slots, x.width); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d x %d: got %v", x.slots, x.width, err)
		}
		if td.Tdm() {
			t.Errorf("%d x %d: tdm set", x.slots, x.width)
		}
	}
	for _, slots := range []int{2, 4, 8} {
		if err := td.SetTdmSlot(0, 0, slots, 32); err != nil {
			t.Errorf("%d slots: %v", slots, err)
		}
	}
	if !td.Tdm() {
		t.Error("tdm not set")
	}
	if err := td.SetTdmSlot(0, 0, 8, 16); err == nil || !td.Tdm() {
		t.Error("rejected slot width changed tdm")
	}
	if len(td.chip.writes) != 0 {
		t.Error("tdm negotiation wrote registers")
	}
}
