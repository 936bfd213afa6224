// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regmap

import (
	"fmt"

	"github.com/platinasystems/i2c"
)

// I2cBus is a chip at slave address Addr on /dev/i2c-Index. The adapter is
// opened for each transfer.
type I2cBus struct {
	Index int
	Addr  int
}

func (b *I2cBus) String() string {
	return fmt.Sprintf("i2c-%d.%02x", b.Index, b.Addr)
}

func (b *I2cBus) do(rw i2c.RW, addr uint8, buf []byte) (err error) {
	var (
		bus  i2c.Bus
		data i2c.SMBusData
	)

	if len(buf) > i2c.BlockMax {
		return fmt.Errorf("%s: %d byte transfer exceeds %d",
			b, len(buf), i2c.BlockMax)
	}

	err = bus.Open(b.Index)
	if err != nil {
		return
	}
	defer bus.Close()

	err = bus.ForceSlaveAddress(b.Addr)
	if err != nil {
		return
	}

	size := i2c.ByteData
	if len(buf) > 1 {
		size = i2c.I2CBlockData
	}

	if rw == i2c.Write {
		if size == i2c.ByteData {
			data[0] = buf[0]
		} else {
			data[0] = uint8(len(buf))
			copy(data[1:], buf)
		}
	} else if size != i2c.ByteData {
		data[0] = uint8(len(buf))
	}

	err = bus.Do(rw, addr, size, &data)
	if err != nil {
		return
	}

	if rw == i2c.Read {
		if size == i2c.ByteData {
			buf[0] = data[0]
		} else {
			copy(buf, data[1:])
		}
	}
	return
}

func (b *I2cBus) Read(addr uint8, buf []byte) error {
	return b.do(i2c.Read, addr, buf)
}

func (b *I2cBus) Write(addr uint8, buf []byte) error {
	return b.do(i2c.Write, addr, buf)
}
