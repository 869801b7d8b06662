// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command splitkb wires together the core runtime coordination engine
// (SPEC_FULL.md §2) end-to-end over in-memory stand-ins for the physical
// link and USB HID endpoint, demonstrating the wiring a real board's boot
// entrypoint would perform. It does not drive real hardware: see hw/imxuart
// and hw/imxgpio for the //go:build tamago backends a board main would use
// instead of the loopback wire and fake scanner below.
package main

import (
	"log"
	"time"

	"github.com/usbarmory/splitkb/bus"
	"github.com/usbarmory/splitkb/hid"
	"github.com/usbarmory/splitkb/hidendpoint"
	"github.com/usbarmory/splitkb/keyboard"
	"github.com/usbarmory/splitkb/layout"
	"github.com/usbarmory/splitkb/link"
	"github.com/usbarmory/splitkb/scanner"
)

// loopbackBus is an in-process bus.Bus standing in for the shared
// half-duplex wire between the two halves; its partner must be drained via
// relayTo after every tick, same as the link package's own test double.
type loopbackBus struct {
	sent    [][]byte
	rxQueue [][]byte
}

func (b *loopbackBus) Transfer(data []byte) error {
	b.sent = append(b.sent, append([]byte(nil), data...))
	return nil
}

func (b *loopbackBus) TxBusy() bool { return false }

func (b *loopbackBus) PollNext(dst []byte) (int, error) {
	if len(b.rxQueue) == 0 {
		return 0, bus.ErrWouldBlock
	}
	frame := b.rxQueue[0]
	b.rxQueue = b.rxQueue[1:]
	return copy(dst, frame), nil
}

func (b *loopbackBus) relayTo(dst *loopbackBus) {
	for _, f := range b.sent {
		dst.rxQueue = append(dst.rxQueue, f)
	}
	b.sent = nil
}

// idleSampler never reports a pressed key; used wherever a demo half's own
// local matrix isn't being exercised.
type idleSampler struct{}

func (idleSampler) Sample() uint32 { return 0 }

// oneShotSampler reports mask exactly once (on the first Scan call that
// reads it), simulating a single key press for the demo.
type oneShotSampler struct {
	mask uint32
	fired bool
}

func (s *oneShotSampler) Sample() uint32 {
	if s.fired {
		return 0
	}
	return s.mask
}

type noopStrober struct{}

func (noopStrober) Activate(int)   {}
func (noopStrober) Deactivate(int) {}

// trackingStrober marks row's sampler fired after it's been read once, so
// oneShotSampler only ever reports its key as pressed for a single tick.
type trackingStrober struct {
	sampler *oneShotSampler
}

func (s *trackingStrober) Activate(int) {}
func (s *trackingStrober) Deactivate(int) {
	s.sampler.fired = true
}

func buildLayout() *layout.Layout {
	const rows, cols = 1, 8
	base := make(layout.Layer, rows)
	for r := range base {
		base[r] = make([]layout.KeyDefinition, cols)
	}
	base[0][0] = layout.Standard(hid.UsageA)
	base[0][4] = layout.Standard(hid.UsageH) // right half, col 4 = local col 0 + offset 4

	lt, err := layout.Build([]layout.LayerSource{{Cells: base, Parent: -1}})
	if err != nil {
		log.Fatalf("splitkb: layout.Build: %v", err)
	}
	return lt
}

func main() {
	log.SetFlags(0)

	lt := buildLayout()
	report := hid.NewReport()
	state := layout.NewState(lt, 1, 8, 4, report, nil)

	masterBus := &loopbackBus{}
	slaveBus := &loopbackBus{}
	masterEngine := link.New(masterBus, link.DefaultTimings)
	slaveEngine := link.New(slaveBus, link.DefaultTimings)

	masterSampler := idleSampler{}
	masterScanner := scanner.New(1, 8, 20, noopStrober{}, masterSampler, func() byte { return 0 }, nil)
	hidEP := hidendpoint.New()
	masterKb := keyboard.New(masterScanner, masterEngine, state, report, keyboard.AlwaysMaster{}, hidEP, false)

	slaveSampler := &oneShotSampler{mask: 1} // presses local (0,0), which the master resolves as (0,4) -> UsageH
	slaveScanner := scanner.New(1, 1, 20, &trackingStrober{sampler: slaveSampler}, slaveSampler, func() byte { return 0 }, nil)
	slaveKb := keyboard.New(slaveScanner, slaveEngine, nil, nil, keyboard.AlwaysSlave{}, nil, true)

	for tick := 0; tick < 8; tick++ {
		slaveKb.Poll()
		masterBus.relayTo(slaveBus) // deliver anything master sent last tick
		slaveBus.relayTo(masterBus)
		masterKb.Poll()
		masterBus.relayTo(slaveBus)
		slaveBus.relayTo(masterBus)

		time.Sleep(time.Millisecond)
	}

	for _, r := range hidEP.Sent() {
		log.Printf("splitkb: HID IN report: % x", r)
	}
	log.Printf("splitkb: link status master=%s slave=%s", masterEngine.Status(), slaveEngine.Status())
}
