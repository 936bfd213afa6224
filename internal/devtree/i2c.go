// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package devtree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/log"
)

// I2cChip locates a chip node by adapter index and slave address.
type I2cChip struct {
	Name string
	Bus  int
	Addr int
}

// I2cChips returns the chips with the given compatible string sorted by bus
// then address. A chip's bus index comes from the "i2cN" alias of its
// parent node. Nodes that can't be located are logged and skipped; it's
// an error only if none of the compatible nodes resolve.
func I2cChips(t *fdt.Tree, compatible string) ([]I2cChip, error) {
	if t.RootNode == nil {
		return nil, fmt.Errorf("empty device tree")
	}
	buses := make(map[string]int)
	t.MatchNode("aliases", func(n *fdt.Node) {
		for p, v := range n.Properties {
			if !strings.HasPrefix(p, "i2c") {
				continue
			}
			if i, err := strconv.Atoi(p[len("i2c"):]); err == nil {
				buses[lastPathElement(v)] = i
			}
		}
	})

	var chips []I2cChip
	var first error
	var walk func(parent, n *fdt.Node)
	walk = func(parent, n *fdt.Node) {
		if parent != nil && isCompatible(t, n, compatible) {
			var err error
			bus, found := buses[parent.Name]
			reg, hasReg := n.Properties["reg"]
			switch {
			case !found:
				err = fmt.Errorf("%s: %s: no i2c alias", n.Name, parent.Name)
			case !hasReg || len(reg) < 4:
				err = fmt.Errorf("%s: missing reg", n.Name)
			default:
				chips = append(chips, I2cChip{
					Name: n.Name,
					Bus:  bus,
					Addr: int(t.PropUint32(reg)),
				})
			}
			if err != nil {
				log.Print("daemon", "warning", err)
				if first == nil {
					first = err
				}
			}
		}
		for _, c := range n.Children {
			walk(n, c)
		}
	}
	walk(nil, t.RootNode)
	if len(chips) == 0 && first != nil {
		return nil, first
	}
	sort.Slice(chips, func(i, j int) bool {
		if chips[i].Bus != chips[j].Bus {
			return chips[i].Bus < chips[j].Bus
		}
		return chips[i].Addr < chips[j].Addr
	})
	return chips, nil
}

func isCompatible(t *fdt.Tree, n *fdt.Node, compatible string) bool {
	b, found := n.Properties["compatible"]
	if !found {
		return false
	}
	for _, s := range t.PropStringSlice(b) {
		if s == compatible {
			return true
		}
	}
	return false
}
