// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bus defines the external collaborator interfaces consumed by the
// core (the half-duplex serial transport and the USB HID endpoint) along
// with the sentinel errors shared across the core packages. Concrete
// implementations of these interfaces live outside this package: see hw/
// for optional real-hardware backends and hidendpoint/ for an in-memory
// fake.
package bus

import "errors"

// Sentinel errors shared by the link, framer and hid packages. Each names a
// condition from SPEC_FULL.md §7 rather than a specific package's internal
// failure, so callers across package boundaries can compare against the
// same value.
var (
	// ErrWouldBlock indicates a non-blocking operation could not complete
	// without waiting; callers retry on the next poll tick.
	ErrWouldBlock = errors.New("bus: would block")

	// ErrBufferOverflow indicates a descriptor or queue could not hold the
	// requested data.
	ErrBufferOverflow = errors.New("bus: buffer overflow")

	// ErrLinkDown indicates an operation was attempted while the link
	// engine's connection state machine was not Up.
	ErrLinkDown = errors.New("bus: link down")
)

// Writer is the transmit half of the Bus interface (SPEC_FULL.md §6.2).
type Writer interface {
	// Transfer attempts to start transmitting b. It returns ErrWouldBlock
	// if the transport is currently busy transmitting a previous buffer.
	Transfer(b []byte) error

	// TxBusy reports whether a transmission is currently in progress.
	TxBusy() bool
}

// Reader is the receive half of the Bus interface (SPEC_FULL.md §6.2),
// implemented by framer.Framer for the portable core and by hw/imxuart for
// real hardware.
type Reader interface {
	// PollNext dequeues the oldest available frame into dst, returning the
	// number of bytes copied. Returns ErrWouldBlock if no frame is
	// pending, or ErrBufferOverflow if the pending frame exceeds len(dst)
	// (the descriptor is consumed either way).
	PollNext(dst []byte) (int, error)
}

// Bus is the full transport interface the link engine is built against.
type Bus interface {
	Writer
	Reader
}

// ReportInfo describes a report pulled from the HID endpoint via
// HidEndpoint.PullRawReport.
type ReportInfo struct {
	// ReportID is the first byte of the report, identifying which of the
	// two reports (keyboard or consumer-control) this is.
	ReportID byte
	// Len is the number of valid bytes written into the caller's buffer.
	Len int
}

// HidEndpoint is the consumed USB HID device interface (SPEC_FULL.md §6.3).
type HidEndpoint interface {
	// PushRawInput submits an IN report to the host. Returns ErrWouldBlock
	// if the endpoint is busy with a previous submission.
	PushRawInput(b []byte) error

	// PullRawReport attempts to read a pending OUT report (e.g. LED state)
	// into dst. Returns ErrWouldBlock if none is pending.
	PullRawReport(dst []byte) (ReportInfo, error)

	// Poll drives the hardware/software state pump and reports whether any
	// work was done.
	Poll() bool
}
