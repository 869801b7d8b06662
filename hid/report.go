// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import (
	"log"

	"github.com/usbarmory/splitkb/bits"
)

const ccSlotCount = 31

// Report is the HID Assembler (SPEC_FULL.md §4.5): a keyboard usage
// bit-array, a fixed 31-slot consumer-control array, dirty flags per
// report, and the last LED byte received from the host.
type Report struct {
	keys      *bits.Array
	ccSlots   [ccSlotCount]CCUsage
	leds      byte
	kbDirty   bool
	ccDirty   bool
}

// NewReport allocates a zeroed Report.
func NewReport() *Report {
	return &Report{keys: bits.NewArray(keyUsageBits)}
}

func (r *Report) usageIndex(u Usage) (int, bool) {
	if u < UsageMin || u > UsageMax {
		return 0, false
	}
	return int(u - UsageMin), true
}

// PressKey sets u pressed in the keyboard report. Returns ErrUnsupported if
// u is out of range, ErrAlreadyPressed if it was already set (report left
// unchanged either way; SPEC_FULL.md §4.5).
func (r *Report) PressKey(u Usage) error {
	idx, ok := r.usageIndex(u)
	if !ok {
		return ErrUnsupported
	}
	if !r.keys.Set(idx) {
		return ErrAlreadyPressed
	}
	r.kbDirty = true
	return nil
}

// ReleaseKey clears u in the keyboard report. Returns ErrUnsupported if out
// of range, ErrNotPressed if it wasn't set.
func (r *Report) ReleaseKey(u Usage) error {
	idx, ok := r.usageIndex(u)
	if !ok {
		return ErrUnsupported
	}
	if !r.keys.Clear(idx) {
		return ErrNotPressed
	}
	r.kbDirty = true
	return nil
}

// KeyPressed reports whether u is currently marked pressed.
func (r *Report) KeyPressed(u Usage) bool {
	idx, ok := r.usageIndex(u)
	if !ok {
		return false
	}
	return r.keys.Get(idx)
}

// PressCC adds cc to the consumer-control report: ErrAlreadyPressed if
// present, ErrRollover if all 31 slots are occupied by other usages
// (SPEC_FULL.md §4.5).
func (r *Report) PressCC(cc CCUsage) error {
	free := -1
	for i, v := range r.ccSlots {
		if v == cc {
			return ErrAlreadyPressed
		}
		if v == 0 && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return ErrRollover
	}
	r.ccSlots[free] = cc
	r.ccDirty = true
	return nil
}

// ReleaseCC zeroes cc's slot. Returns ErrNotPressed if cc was not present.
func (r *Report) ReleaseCC(cc CCUsage) error {
	for i, v := range r.ccSlots {
		if v == cc {
			r.ccSlots[i] = 0
			r.ccDirty = true
			return nil
		}
	}
	return ErrNotPressed
}

// KeyboardBytes serializes the keyboard IN report: [ReportID, key bits...].
func (r *Report) KeyboardBytes() []byte {
	out := make([]byte, 1+len(r.keys.Bytes()))
	out[0] = KeyboardReportID
	copy(out[1:], r.keys.Bytes())
	return out
}

// CCBytes serializes the consumer-control IN report:
// [ReportID, pad, slot0_lo, slot0_hi, ..., slot30_lo, slot30_hi].
func (r *Report) CCBytes() []byte {
	out := make([]byte, 2+ccSlotCount*2)
	out[0] = CCReportID
	out[1] = 0
	for i, v := range r.ccSlots {
		out[2+i*2] = byte(v)
		out[2+i*2+1] = byte(v >> 8)
	}
	return out
}

// LEDs returns the last LED bit-flags byte received from the host.
func (r *Report) LEDs() byte {
	return r.leds
}

// ApplyOutReport interprets an OUT report pulled from the HID endpoint. Per
// SPEC_FULL.md §4.5: if the report ID is the keyboard ID and the report is
// at least 2 bytes, the second byte is the LED state. A keyboard-ID report
// shorter than that is malformed and logged, per SPEC_FULL.md §7.
func (r *Report) ApplyOutReport(reportID byte, data []byte) {
	if reportID != KeyboardReportID {
		return
	}
	if len(data) < 2 {
		log.Printf("hid: malformed keyboard OUT report (%d bytes)", len(data))
		return
	}
	r.leds = data[1]
}
