// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package devtree finds GPIO pins and I2C chips in a flattened device tree.
package devtree

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/gpio"
)

// Load parses the DTB file.
func Load(file string) (*fdt.Tree, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	if err = t.Parse(b); err != nil {
		return nil, fmt.Errorf("%s: %v", file, err)
	}
	return t, nil
}

// GpioInit builds gpio.Pins from the tree's gpio controllers then sets each
// pin's direction.
func GpioInit(t *fdt.Tree) error {
	gpio.Aliases = make(gpio.GpioAliasMap)
	gpio.Pins = make(gpio.PinMap)

	t.MatchNode("aliases", gatherAliases)
	t.EachProperty("gpio-controller", "", gatherPins)

	var first error
	for name, pin := range gpio.Pins {
		if err := pin.SetDirection(); err != nil && first == nil {
			first = fmt.Errorf("%s: %v", name, err)
		}
	}
	return first
}

// Pin looks up a named pin from GpioInit.
func Pin(name string) (gpio.Pin, error) {
	pin, found := gpio.Pins[name]
	if !found {
		return 0, fmt.Errorf("%s: gpio not found", name)
	}
	return pin, nil
}

func gatherAliases(n *fdt.Node) {
	for p, pn := range n.Properties {
		if strings.Contains(p, "gpio") {
			gpio.Aliases[p] = lastPathElement(pn)
		}
	}
}

func gatherPins(n *fdt.Node, name string, value string) {
	for bank, alias := range gpio.Aliases {
		if alias != n.Name {
			continue
		}
		for _, c := range n.Children {
			var pn []string
			var mode string
			for p := range c.Properties {
				switch p {
				case "gpio-pin-desc":
					pn = strings.Split(c.Name, "@")
				case "output-high", "output-low", "input":
					mode = p
				}
			}
			if mode == "" || len(pn) != 2 {
				continue
			}
			i, _ := strconv.Atoi(pn[1])
			gpio.Pins[pn[0]] = gpio.GpioPinMode[mode] |
				gpio.GpioBankToBase[bank] |
				gpio.Pin(i)
		}
	}
}

func lastPathElement(b []byte) string {
	val := strings.Split(string(b), "\x00")
	v := strings.Split(val[0], "/")
	return v[len(v)-1]
}
