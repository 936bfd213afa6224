// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regmap

import (
	"errors"
	"fmt"
)

var (
	ErrReserved  = errors.New("reserved register")
	ErrTransport = errors.New("transport failure")
)

// AccessError reports a register refused by the access tables.
type AccessError struct {
	Op  string
	Reg uint8
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s 0x%02x: %v", e.Op, e.Reg, ErrReserved)
}

func (e *AccessError) Is(target error) bool { return target == ErrReserved }

// BusError wraps a failed transaction; Unwrap yields the bus's own error.
type BusError struct {
	Op  string
	Reg uint8
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s 0x%02x: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

func (e *BusError) Is(target error) bool { return target == ErrTransport }
