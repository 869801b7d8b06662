// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyboard

import (
	"log"

	"github.com/usbarmory/splitkb/bus"
	"github.com/usbarmory/splitkb/hid"
	"github.com/usbarmory/splitkb/layout"
	"github.com/usbarmory/splitkb/link"
	"github.com/usbarmory/splitkb/scanner"
)

// Keyboard is the top-level per-tick orchestrator (SPEC_FULL.md §2/§5): it
// owns this half's scanner, link engine and HID report, shares a Layout
// State with its master-mode dispatch, and switches behavior based on
// RoleDetector each tick, grounded on original_source/crates/dxkb-core/
// src/keyboard.rs's SplitKeyboard::poll/poll_master/poll_slave.
type Keyboard struct {
	scanner  *scanner.Scanner
	engine   *link.Engine
	state    *layout.State
	report   *hid.Report
	detector RoleDetector
	hidEP    bus.HidEndpoint
	isRight  bool

	isMaster       bool
	loggedRoleOnce bool
}

// New constructs a Keyboard. isRight selects this half's coordinate offset
// when it is acting as master and mapping its own local scan events
// (SPEC_FULL.md §4.4); hidEP is the USB HID endpoint used only while master.
func New(sc *scanner.Scanner, engine *link.Engine, state *layout.State, report *hid.Report, detector RoleDetector, hidEP bus.HidEndpoint, isRight bool) *Keyboard {
	return &Keyboard{
		scanner:  sc,
		engine:   engine,
		state:    state,
		report:   report,
		detector: detector,
		hidEP:    hidEP,
		isRight:  isRight,
	}
}

// Poll runs one main-loop tick: role-dispatch to pollMaster/pollSlave,
// each of which scans the local matrix before servicing the link, so a
// same-tick local edge and remote edge are applied local-first
// (SPEC_FULL.md §5, "scanner events are processed before remote events;
// this is a deliberate tie-break").
func (k *Keyboard) Poll() {
	k.checkRole()

	if k.isMaster {
		k.pollMaster()
	} else {
		k.pollSlave()
	}
}

func (k *Keyboard) checkRole() {
	now := k.detector.IsCurrentMaster()
	if now == k.isMaster && k.loggedRoleOnce {
		return
	}
	k.isMaster = now
	k.loggedRoleOnce = true
	if now {
		log.Printf("keyboard: promoted to master")
	} else {
		log.Printf("keyboard: downgraded to slave")
	}
}

func (k *Keyboard) pollMaster() {
	k.scanner.Scan(func(ev scanner.Event) {
		k.state.HandleLocal(ev, k.isRight)
	})
	k.engine.Poll(k.handleLinkMessage)
	k.report.Poll(k.hidEP)
}

func (k *Keyboard) pollSlave() {
	k.scanner.Scan(func(ev scanner.Event) {
		body := encodeKeyEvent(bool(ev.State), byte(ev.Row), byte(ev.Col))
		if err := k.engine.Transfer(body); err != nil {
			log.Printf("keyboard: dropping scan event, link transfer failed: %v", err)
		}
	})
	k.engine.Poll(k.handleLinkMessage)
}

// handleLinkMessage is the link.RecvFunc for in-order user messages: while
// master, it decodes a remote scan edge and applies it on the opposite
// side's coordinate offset; while slave, an incoming scan edge is
// unexpected (a slave only ever sends, never receives, these messages) and
// is logged, mirroring original source's poll_slave warning.
func (k *Keyboard) handleLinkMessage(body []byte) {
	if !k.isMaster {
		log.Printf("keyboard: unexpected key-event message received while slave")
		return
	}
	pressed, row, col, err := decodeKeyEvent(body)
	if err != nil {
		log.Printf("keyboard: %v", err)
		return
	}
	k.state.HandleLocal(scanner.Event{Row: int(row), Col: int(col), State: scanner.KeyState(pressed)}, !k.isRight)
}
