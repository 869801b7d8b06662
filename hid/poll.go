// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import (
	"log"

	"github.com/usbarmory/splitkb/bus"
)

// Poll pushes any dirty reports to ep and pulls a pending OUT report, per
// SPEC_FULL.md §4.5. On ErrWouldBlock pushing a report, the dirty flag is
// left set so the same report is retried next tick -- the report buffer
// itself may keep mutating in the meantime; only the most recent state at
// a successful push boundary is ever seen by the host (SPEC_FULL.md §4.5
// "Dirty discipline").
func (r *Report) Poll(ep bus.HidEndpoint) {
	if r.kbDirty {
		if err := ep.PushRawInput(r.KeyboardBytes()); err == nil {
			r.kbDirty = false
		} else if err != bus.ErrWouldBlock {
			log.Printf("hid: keyboard report push failed: %v", err)
		}
	}

	if r.ccDirty {
		if err := ep.PushRawInput(r.CCBytes()); err == nil {
			r.ccDirty = false
		} else if err != bus.ErrWouldBlock {
			log.Printf("hid: consumer control report push failed: %v", err)
		}
	}

	var out [16]byte
	info, err := ep.PullRawReport(out[:])
	if err != nil {
		return
	}
	r.ApplyOutReport(info.ReportID, out[:info.Len])
}
