// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keyboard wires together the Link Engine, Matrix Scanner, Layered
// Layout and HID Assembler into the split-keyboard main-loop orchestrator
// (SPEC_FULL.md §2, §5): each tick, pick the master or slave role, scan the
// local matrix, then service the link.
package keyboard

// RoleDetector decides whether this half is currently master (USB-facing)
// or slave (forwarding scan events to the peer over the link), per
// SPEC_FULL.md §C. Implementations may be stateful (e.g. debounced pin
// sensing) so the interface is polled once per tick rather than queried
// once at boot.
type RoleDetector interface {
	IsCurrentMaster() bool
}

// AlwaysMaster is a RoleDetector for a half permanently wired as the
// USB-facing controller (e.g. single-sided test rigs).
type AlwaysMaster struct{}

func (AlwaysMaster) IsCurrentMaster() bool { return true }

// AlwaysSlave is a RoleDetector for a half permanently wired as the
// link-forwarding peer.
type AlwaysSlave struct{}

func (AlwaysSlave) IsCurrentMaster() bool { return false }

// Pin is the single GPIO input PinSenseRoleDetector needs: a pull-down
// biased sense line that reads high only when the opposite half is absent
// from the USB port (SPEC_FULL.md §C).
type Pin interface {
	High() bool
}

// PinSenseRoleDetector reads a GPIO sense pin each tick to decide role,
// grounded on original_source/crates/dxkb-core/src/keyboard.rs's
// PinMasterSense: the pin is biased pulled-down so it only reads high when
// the opposite half isn't driving it, i.e. when this half is the one
// actually enumerated on USB.
type PinSenseRoleDetector struct {
	pin Pin
}

// NewPinSenseRoleDetector wraps pin. The caller is responsible for
// configuring pin's internal pull-down resistor before first use.
func NewPinSenseRoleDetector(pin Pin) *PinSenseRoleDetector {
	return &PinSenseRoleDetector{pin: pin}
}

func (d *PinSenseRoleDetector) IsCurrentMaster() bool {
	return d.pin.High()
}
