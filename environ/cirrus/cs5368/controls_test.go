// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import (
	"errors"
	"testing"
)

func TestControlDefaults(t *testing.T) {
	td := newTestDevice(t)
	for ch := 1; ch <= Channels; ch++ {
		if on, err := td.HighPass(ch); err != nil || !on {
			t.Errorf("AIN%d high pass: %v %v", ch, on, err)
		}
		if muted, err := td.Muted(ch); err != nil || muted {
			t.Errorf("AIN%d muted: %v %v", ch, muted, err)
		}
	}
	for pair := 1; pair <= AdcPairs; pair++ {
		if on, err := td.AdcPower(pair); err != nil || !on {
			t.Errorf("adc %d: %v %v", pair, on, err)
		}
	}
}

func TestControls(t *testing.T) {
	td := newTestDevice(t)
	td.resume(t)

	if err := td.SetHighPass(3, false); err != nil {
		t.Fatal(err)
	}
	if err := td.SetMute(8, true); err != nil {
		t.Fatal(err)
	}
	if err := td.SetAdcPower(2, false); err != nil {
		t.Fatal(err)
	}
	for _, x := range []struct {
		reg, val uint8
	}{
		{regHPF, 1 << 2},
		{regMUTE, 1 << 7},
		{regPDN, 1 << 1},
	} {
		if got := td.chip.regs[x.reg]; got != x.val {
			t.Errorf("0x%02x: got 0x%02x, want 0x%02x", x.reg, got, x.val)
		}
	}

	if on, _ := td.Control("AIN3 High-Pass Filter Switch"); on {
		t.Error("AIN3 high pass still on")
	}
	if on, _ := td.Control("AIN8 Capture Switch"); on {
		t.Error("AIN8 capture still on")
	}
	if err := td.SetControl("AIN8 Capture Switch", true); err != nil {
		t.Fatal(err)
	}
	if td.chip.regs[regMUTE] != 0 {
		t.Error("AIN8 still muted")
	}
}

func TestControlArgs(t *testing.T) {
	td := newTestDevice(t)
	for _, err := range []error{
		td.SetHighPass(0, true),
		td.SetMute(9, true),
		td.SetAdcPower(5, true),
		td.SetControl("AIN9 Capture Switch", true),
	} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Error("got", err)
		}
	}
}

func TestTopology(t *testing.T) {
	if got, want := len(Widgets), 8+4+8+8; got != want {
		t.Errorf("%d widgets, want %d", got, want)
	}
	if got, want := len(Routes), 24; got != want {
		t.Errorf("%d routes, want %d", got, want)
	}
	for _, r := range Routes {
		sink, err := FindWidget(r.Sink)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = FindWidget(r.Source); err != nil {
			t.Fatal(err)
		}
		if (sink.Kind == Switch) != (r.Control == "Switch") {
			t.Errorf("%s <- %s: control %q", r.Sink, r.Source, r.Control)
		}
	}
	for _, w := range Widgets {
		if w.Kind == Switch {
			if _, err := findControl(w.Control); err != nil {
				t.Error(w.Name, err)
			}
		}
	}
	w, err := FindWidget("TDM5")
	if err != nil {
		t.Fatal(err)
	}
	if w.Kind != AifOut || w.Slot != 4 || w.Stream != "Capture" {
		t.Error("wrong:", w)
	}
	w, err = FindWidget("AIN78")
	if err != nil {
		t.Fatal(err)
	}
	if w.Reg != int(regPDN) || w.Shift != 3 || !w.Invert {
		t.Error("wrong:", w)
	}
}
