// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tamago

package imxgpio

// Strober drives a matrix's strobe lines, one Pin per row, implementing
// scanner.Strober.
type Strober struct {
	Rows []*Pin
}

func (s *Strober) Activate(line int)   { s.Rows[line].High() }
func (s *Strober) Deactivate(line int) { s.Rows[line].Low() }

// Sampler reads a matrix's sense lines, one Pin per column, implementing
// scanner.Sampler. Bit i of the returned mask is column i's level.
type Sampler struct {
	Cols []*Pin
}

func (s *Sampler) Sample() uint32 {
	var mask uint32
	for i, p := range s.Cols {
		if p.Value() {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// RoleSensePin adapts a Pin to keyboard.Pin (a plain High() bool query),
// since gpio.Pin's own High()/Low() are imperative output-drive methods on
// the original tamago API this is adapted from.
type RoleSensePin struct {
	pin *Pin
}

// NewRoleSensePin wraps pin for use as a keyboard.RoleDetector sense line.
// The caller must have already configured pin as an input.
func NewRoleSensePin(pin *Pin) *RoleSensePin {
	return &RoleSensePin{pin: pin}
}

func (p *RoleSensePin) High() bool {
	return p.pin.Value()
}
