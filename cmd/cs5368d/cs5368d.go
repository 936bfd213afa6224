// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cs5368d serves the CS5368 ADC's negotiation and power controls
// through redis hset of cs5368.* fields and publishes the resulting state.
package cs5368d

import (
	"errors"
	"fmt"
	"net/rpc"
	"strconv"
	"strings"
	"sync"

	"github.com/platinasystems/atsock"
	"github.com/platinasystems/cs5368/cmd"
	"github.com/platinasystems/cs5368/environ/cirrus/cs5368"
	"github.com/platinasystems/cs5368/lang"
	"github.com/platinasystems/log"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const (
	Name   = "cs5368d"
	prefix = "cs5368."
)

var ErrNoDevice = errors.New("no codec attached")

type Command struct {
	Info
	Init func()
	init sync.Once
	// Attach binds the codec; the machine sets it from its device tree
	// and command line.
	Attach func() (*cs5368.Device, error)
	// NoResume leaves the codec unpowered until cs5368.power is set.
	NoResume bool
}

type printer interface {
	Print(...interface{}) (int, error)
}

type Info struct {
	mutex sync.Mutex
	rpc   *atsock.RpcServer
	pub   printer
	stop  chan struct{}
	dev   *cs5368.Device
	last  map[string]string

	format string
	tdm    string
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return Name + ` [-probe] [-no-resume] [-dtb FILE] [-bus N] [-addr ADDR]
	[-reset PIN] [-va PIN] [-vd PIN] [-vlc PIN] [-vls PIN] [-vx PIN]`
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "cs5368 audio ADC daemon",
	}
}

func (*Command) Kind() cmd.Kind { return cmd.Daemon }

func (c *Command) Main(...string) error {
	c.stop = make(chan struct{})

	if c.Init != nil {
		c.init.Do(c.Init)
	}
	if c.Attach == nil {
		return ErrNoDevice
	}

	err := redis.IsReady()
	if err != nil {
		return err
	}

	pub, err := publisher.New()
	if err != nil {
		return err
	}
	defer pub.Close()

	if err = c.attach(pub); err != nil {
		return err
	}

	if c.rpc, err = atsock.NewRpcServer(Name); err != nil {
		c.detach()
		return err
	}
	defer c.rpc.Close()

	rpc.Register(&c.Info)
	err = redis.Assign(redis.DefaultHash+":"+prefix, Name, "Info")
	if err != nil {
		c.detach()
		return err
	}

	<-c.stop
	return c.detach()
}

// attach binds the codec, powers it unless NoResume, then publishes its
// state.
func (c *Command) attach(pub printer) error {
	dev, err := c.Attach()
	if err != nil {
		return err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.pub = pub
	c.last = make(map[string]string)
	c.dev = dev
	if !c.NoResume {
		if err = c.dev.Resume(); err != nil {
			log.Print("daemon", "err", c.dev, ": resume: ", err)
		}
	}
	c.publishAll()
	return nil
}

// detach powers the codec down and publishes its final state.
func (c *Command) detach() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.dev == nil {
		return nil
	}
	err := c.dev.Close()
	c.publish(prefix+"state", c.dev.State())
	return err
}

func (c *Command) Close() error {
	close(c.stop)
	return nil
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	v := strings.TrimRight(string(args.Value), "\n")
	err := i.set(args.Field, v)
	if err == nil {
		*reply = 1
	}
	return err
}

func (i *Info) set(field, value string) error {
	if i.dev == nil {
		return ErrNoDevice
	}
	key := strings.TrimPrefix(field, prefix)
	if key == field {
		return fmt.Errorf("%s: can't set", field)
	}
	value = strings.TrimSpace(value)
	v := strings.Fields(value)
	switch key {
	case "sysclk":
		return i.setSysclk(v)
	case "fmt":
		return i.setFormat(v)
	case "tdm":
		return i.setTdm(v)
	case "rate":
		return i.setRate(v)
	case "power":
		return i.setPower(value)
	}
	for ch := 1; ch <= cs5368.Channels; ch++ {
		switch key {
		case hpfKey(ch):
			on, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			if err = i.dev.SetHighPass(ch, on); err != nil {
				return err
			}
			i.publishControls()
			return nil
		case captureKey(ch):
			on, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			if err = i.dev.SetMute(ch, !on); err != nil {
				return err
			}
			i.publishControls()
			return nil
		}
	}
	for pair := 1; pair <= cs5368.AdcPairs; pair++ {
		if key == adcKey(pair) {
			on, err := parseOnOff(value)
			if err != nil {
				return err
			}
			if err = i.dev.SetAdcPower(pair, on); err != nil {
				return err
			}
			i.publishControls()
			return nil
		}
	}
	return fmt.Errorf("%s: can't set", field)
}

func (i *Info) setSysclk(v []string) error {
	if len(v) < 1 || len(v) > 2 {
		return fmt.Errorf("%w: FREQ [in|out]", cs5368.ErrInvalidArgument)
	}
	freq, err := parseUint32(v[0])
	if err != nil {
		return err
	}
	dir := cs5368.ClockIn
	if len(v) > 1 {
		switch v[1] {
		case "in":
		case "out":
			dir = cs5368.ClockOut
		default:
			return fmt.Errorf("%w: %q: direction",
				cs5368.ErrInvalidArgument, v[1])
		}
	}
	if err = i.dev.SetSysclk(freq, dir); err != nil {
		return err
	}
	i.publish(prefix+"mclk", i.dev.Mclk())
	return nil
}

func (i *Info) setFormat(v []string) error {
	if len(v) < 1 || len(v) > 2 {
		return fmt.Errorf("%w: FORMAT [ROLE]", cs5368.ErrInvalidArgument)
	}
	f, err := cs5368.ParseFormat(v[0])
	if err != nil {
		return err
	}
	role := cs5368.ClockConsumer
	if len(v) > 1 {
		if role, err = cs5368.ParseClockRole(v[1]); err != nil {
			return err
		}
	}
	if err = i.dev.SetFormat(f, role); err != nil {
		return err
	}
	i.format = fmt.Sprint(f, " ", role)
	i.publish(prefix+"fmt", i.format)
	return nil
}

func (i *Info) setTdm(v []string) error {
	if len(v) != 2 && len(v) != 4 {
		return fmt.Errorf("%w: SLOTS WIDTH [TXMASK RXMASK]",
			cs5368.ErrInvalidArgument)
	}
	var n [4]uint32
	for j, s := range v {
		x, err := parseUint32(s)
		if err != nil {
			return err
		}
		n[j] = x
	}
	if err := i.dev.SetTdmSlot(n[2], n[3], int(n[0]), int(n[1])); err != nil {
		return err
	}
	i.tdm = fmt.Sprint(n[0], "x", n[1])
	i.publish(prefix+"tdm", i.tdm)
	return nil
}

func (i *Info) setRate(v []string) error {
	if len(v) != 1 {
		return fmt.Errorf("%w: RATE", cs5368.ErrInvalidArgument)
	}
	rate, err := parseUint32(v[0])
	if err != nil {
		return err
	}
	if err = i.dev.HwParams(rate); err != nil {
		return err
	}
	i.publish(prefix+"rate", i.dev.Rate())
	i.publish(prefix+"mdiv", i.dev.Mdiv())
	return nil
}

func (i *Info) setPower(value string) error {
	on, err := parseOnOff(value)
	if err != nil {
		return err
	}
	if on {
		err = i.dev.Resume()
	} else {
		err = i.dev.Suspend()
	}
	i.publish(prefix+"state", i.dev.State())
	if err == nil && on {
		i.publishRevision()
	}
	return err
}

func (i *Info) publishAll() {
	i.publish(prefix+"state", i.dev.State())
	i.publish(prefix+"mclk", i.dev.Mclk())
	i.publish(prefix+"rate", i.dev.Rate())
	i.publish(prefix+"mdiv", i.dev.Mdiv())
	i.publish(prefix+"fmt", i.format)
	i.publish(prefix+"tdm", i.tdm)
	i.publishRevision()
	i.publishControls()
}

func (i *Info) publishRevision() {
	rev, err := i.dev.Revision()
	if err != nil {
		log.Print("daemon", "err", i.dev, ": revision: ", err)
		return
	}
	i.publish(prefix+"revision", fmt.Sprintf("0x%02x", rev))
}

func (i *Info) publishControls() {
	for ch := 1; ch <= cs5368.Channels; ch++ {
		if on, err := i.dev.HighPass(ch); err == nil {
			i.publish(prefix+hpfKey(ch), on)
		}
		if muted, err := i.dev.Muted(ch); err == nil {
			i.publish(prefix+captureKey(ch), !muted)
		}
	}
	for pair := 1; pair <= cs5368.AdcPairs; pair++ {
		if on, err := i.dev.AdcPower(pair); err == nil {
			i.publish(prefix+adcKey(pair), onOff(on))
		}
	}
}

// publish prints key if its value changed since last published.
func (i *Info) publish(key string, value interface{}) {
	s := fmt.Sprint(value)
	if last, found := i.last[key]; found && last == s {
		return
	}
	i.last[key] = s
	i.pub.Print(key, ": ", s)
}

func hpfKey(ch int) string     { return fmt.Sprintf("ain%d.hpf", ch) }
func captureKey(ch int) string { return fmt.Sprintf("ain%d.capture", ch) }
func adcKey(pair int) string   { return fmt.Sprintf("ain%d%d.adc", 2*pair-1, 2*pair) }

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q: neither on nor off",
		cs5368.ErrInvalidArgument, s)
}

func parseUint32(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", cs5368.ErrInvalidArgument, s)
	}
	return uint32(u), nil
}
