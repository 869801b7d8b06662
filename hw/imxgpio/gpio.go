// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tamago

// Package imxgpio implements scanner.Strober/scanner.Sampler and a
// keyboard.Pin backend over i.MX6 GPIO registers, adapted from
// usbarmory-tamago/soc/nxp/gpio/gpio.go's Pin type (DESIGN.md "hw/imxgpio").
package imxgpio

import (
	"errors"
	"fmt"

	"github.com/usbarmory/splitkb/hw/internal/reg"
)

// Register offsets within a GPIO controller's base, unchanged from
// usbarmory-tamago/soc/nxp/gpio/gpio.go.
const (
	drOffset   = 0x00
	gdirOffset = 0x04
)

// Controller is one i.MX6 GPIO bank.
type Controller struct {
	// Base is the GPIO bank's base register address.
	Base uint32
	// CCGR is the clock gate control register for this bank.
	CCGR uint32
	// CG is the clock gate field within CCGR.
	CG int

	clockEnabled bool
}

// Pin is a single GPIO line within a Controller.
type Pin struct {
	num  int
	data uint32
	dir  uint32
}

// Init configures pin num (0-31) of the controller, enabling its clock gate
// on first use.
func (c *Controller) Init(num int) (*Pin, error) {
	if c.Base == 0 || c.CCGR == 0 {
		return nil, errors.New("imxgpio: invalid controller instance")
	}
	if num < 0 || num > 31 {
		return nil, fmt.Errorf("imxgpio: invalid pin number %d", num)
	}

	p := &Pin{
		num:  num,
		data: c.Base + drOffset,
		dir:  c.Base + gdirOffset,
	}

	if !c.clockEnabled {
		reg.SetN(c.CCGR, c.CG, 2, 0b11)
		c.clockEnabled = true
	}

	return p, nil
}

// Out configures the pin as an output.
func (p *Pin) Out() { reg.Set(p.dir, p.num) }

// In configures the pin as an input.
func (p *Pin) In() { reg.Clear(p.dir, p.num) }

// High drives the pin high. Valid only when configured as output.
func (p *Pin) High() { reg.Set(p.data, p.num) }

// Low drives the pin low. Valid only when configured as output.
func (p *Pin) Low() { reg.Clear(p.data, p.num) }

// Value reads the pin's current signal level.
func (p *Pin) Value() bool {
	return reg.Get(p.data, p.num, 1) == 1
}
