// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cs5368

import "fmt"

type WidgetKind int

const (
	Input WidgetKind = iota
	Adc
	Switch
	AifOut
)

func (k WidgetKind) String() string {
	switch k {
	case Input:
		return "input"
	case Adc:
		return "adc"
	case Switch:
		return "switch"
	case AifOut:
		return "aif out"
	}
	return fmt.Sprintf("WidgetKind(%d)", int(k))
}

// NoPM marks a widget without a power register.
const NoPM = -1

// Widget is a node of the capture routing graph.
type Widget struct {
	Name   string
	Kind   WidgetKind
	Reg    int
	Shift  uint8
	Invert bool
	// Switch widgets name their Control.
	Control string
	// AifOut widgets carry Stream in TDM Slot.
	Stream string
	Slot   int
}

// Route connects Source to Sink, through the named switch control if any.
type Route struct {
	Sink    string
	Control string
	Source  string
}

func inputName(ch int) string  { return fmt.Sprintf("AIN%d", ch) }
func adcName(pair int) string  { return fmt.Sprintf("AIN%d%d", 2*pair-1, 2*pair) }
func switchName(ch int) string { return fmt.Sprintf("AIN%d Capture", ch) }
func tdmName(ch int) string    { return fmt.Sprintf("TDM%d", ch) }
func pairOfChannel(ch int) int { return (ch + 1) / 2 }

var Widgets = func() []Widget {
	var w []Widget
	for ch := 1; ch <= Channels; ch++ {
		w = append(w, Widget{Name: inputName(ch), Kind: Input, Reg: NoPM})
	}
	for pair := 1; pair <= AdcPairs; pair++ {
		w = append(w, Widget{
			Name:   adcName(pair),
			Kind:   Adc,
			Reg:    int(regPDN),
			Shift:  uint8(pair - 1),
			Invert: true,
		})
	}
	for ch := 1; ch <= Channels; ch++ {
		w = append(w, Widget{
			Name:    switchName(ch),
			Kind:    Switch,
			Reg:     NoPM,
			Control: captureName(ch),
		})
	}
	for ch := 1; ch <= Channels; ch++ {
		w = append(w, Widget{
			Name:   tdmName(ch),
			Kind:   AifOut,
			Reg:    NoPM,
			Stream: Capture.Name,
			Slot:   ch - 1,
		})
	}
	return w
}()

var Routes = func() []Route {
	var r []Route
	for ch := 1; ch <= Channels; ch++ {
		r = append(r, Route{adcName(pairOfChannel(ch)), "", inputName(ch)})
	}
	for ch := 1; ch <= Channels; ch++ {
		r = append(r, Route{switchName(ch), "Switch", adcName(pairOfChannel(ch))})
	}
	for ch := 1; ch <= Channels; ch++ {
		r = append(r, Route{tdmName(ch), "", switchName(ch)})
	}
	return r
}()

func FindWidget(name string) (*Widget, error) {
	for i := range Widgets {
		if Widgets[i].Name == name {
			return &Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q: no such widget", ErrInvalidArgument, name)
}

func adcWidget(pair int) (*Widget, error) {
	if pair < 1 || pair > AdcPairs {
		return nil, fmt.Errorf("%w: adc pair %d", ErrInvalidArgument, pair)
	}
	return FindWidget(adcName(pair))
}
