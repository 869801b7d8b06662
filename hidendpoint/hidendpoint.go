// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hidendpoint provides an in-memory bus.HidEndpoint, used by tests
// and the cmd/splitkb example in place of a real USB HID class driver
// (SPEC_FULL.md §6.3, DESIGN.md "Not wired / deleted" section).
package hidendpoint

import "github.com/usbarmory/splitkb/bus"

// inQueueCapacity bounds how many unconsumed IN reports this fake will
// buffer before the oldest is dropped; generous for test and example use.
const inQueueCapacity = 8

// Fake is a queue-backed bus.HidEndpoint: PushRawInput enqueues a copy of
// each report a caller can later inspect via Sent, and PullRawReport serves
// OUT reports a caller enqueues via Receive.
type Fake struct {
	in  [][]byte
	out [][]byte
}

// New constructs an empty Fake.
func New() *Fake {
	return &Fake{}
}

// PushRawInput enqueues b. It never blocks.
func (f *Fake) PushRawInput(b []byte) error {
	cp := append([]byte(nil), b...)
	f.in = append(f.in, cp)
	if len(f.in) > inQueueCapacity {
		f.in = f.in[len(f.in)-inQueueCapacity:]
	}
	return nil
}

// PullRawReport dequeues the oldest OUT report enqueued via Receive, or
// returns bus.ErrWouldBlock if none is pending.
func (f *Fake) PullRawReport(dst []byte) (bus.ReportInfo, error) {
	if len(f.out) == 0 {
		return bus.ReportInfo{}, bus.ErrWouldBlock
	}
	next := f.out[0]
	f.out = f.out[1:]
	n := copy(dst, next)
	var id byte
	if n > 0 {
		id = dst[0]
	}
	return bus.ReportInfo{ReportID: id, Len: n}, nil
}

// Poll reports whether any IN reports are pending consumption by a test.
func (f *Fake) Poll() bool {
	return len(f.in) > 0
}

// Sent returns and clears every IN report pushed so far, oldest first.
func (f *Fake) Sent() [][]byte {
	out := f.in
	f.in = nil
	return out
}

// Receive enqueues an OUT report (e.g. a simulated LED-state update from
// the host) to be returned by the next PullRawReport call.
func (f *Fake) Receive(report []byte) {
	f.out = append(f.out, append([]byte(nil), report...))
}
