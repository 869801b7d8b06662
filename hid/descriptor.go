// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import "bytes"

// Report IDs advertised in the descriptor (SPEC_FULL.md §6.1); distinct
// 8-bit constants, values implementation-chosen but fixed across the
// firmware. Grounded on original_source's REPORT_HID_KEYBOARD_DESCRIPTOR,
// which uses report ID 4 for Consumer Control and 5 for Keyboard.
const (
	CCReportID       byte = 4
	KeyboardReportID byte = 5
)

// keyUsageBits is the number of one-bit input fields in the keyboard
// report: MAX-MIN+1 rounded up to a multiple of 8 (SPEC_FULL.md §4.5/§6.1).
const keyUsageBits = int((UsageMax - UsageMin + 1 + 7) / 8 * 8)

func init() {
	if keyUsageBits%8 != 0 {
		panic("hid: keyUsageBits must be a multiple of 8")
	}
}

// item builders for the HID short-item descriptor format.
func u8item(tag byte, v byte) []byte  { return []byte{tag, v} }
func u16item(tag byte, v uint16) []byte {
	return []byte{tag, byte(v), byte(v >> 8)}
}

// Descriptor returns the bit-exact HID report descriptor for the combined
// Consumer Control + Keyboard device (SPEC_FULL.md §6.1): two top-level
// application collections in one blob.
func Descriptor() []byte {
	var b bytes.Buffer

	// Consumer Control collection.
	b.Write(u8item(0x05, 0x0C))             // Usage Page (Consumer)
	b.Write(u8item(0x09, 0x01))             // Usage (Consumer Control)
	b.Write(u8item(0xA1, 0x01))             // Collection (Application)
	b.Write(u8item(0x85, CCReportID))       // Report ID
	b.Write(u8item(0x75, 0x08))             // Report Size (8)
	b.Write(u8item(0x95, 0x01))             // Report Count (1)
	b.Write(u8item(0x81, 0x03))             // Input (Const,Var,Abs) -- alignment pad
	b.Write(u16item(0x1A, uint16(CCUsageMin)))
	b.Write(u16item(0x2A, uint16(CCUsageMax)))
	b.Write(u8item(0x15, 0x00))             // Logical Minimum (0)
	b.Write(u16item(0x26, uint16(CCUsageMax))) // Logical Maximum
	b.Write(u8item(0x75, 0x10))             // Report Size (16)
	b.Write(u8item(0x95, 31))               // Report Count (31)
	b.Write(u8item(0x81, 0x00))             // Input (Data,Array,Abs)
	b.Write([]byte{0xC0})                   // End Collection

	// Keyboard collection.
	b.Write(u8item(0x05, 0x07))       // Usage Page (Keyboard)
	b.Write(u8item(0x09, 0x06))       // Usage (Keyboard)
	b.Write(u8item(0xA1, 0x01))       // Collection (Application)
	b.Write(u8item(0x85, KeyboardReportID))
	b.Write(u8item(0x05, 0x07))       // Usage Page (Keyboard), repeated per convention
	b.Write(u8item(0x19, byte(UsageMin)))
	b.Write(u8item(0x29, byte(UsageMax)))
	b.Write(u8item(0x15, 0x00))
	b.Write(u8item(0x25, 0x01))
	b.Write(u8item(0x75, 0x01))
	b.Write(u8item(0x95, byte(keyUsageBits)))
	b.Write(u8item(0x81, 0x02)) // Input (Data,Var,Abs)

	b.Write(u8item(0x05, 0x08)) // Usage Page (LEDs)
	b.Write(u8item(0x19, 0x01))
	b.Write(u8item(0x29, 0x05))
	b.Write(u8item(0x15, 0x00))
	b.Write(u8item(0x25, 0x01))
	b.Write(u8item(0x75, 0x01))
	b.Write(u8item(0x95, 0x05))
	b.Write(u8item(0x91, 0x02)) // Output (Data,Var,Abs)
	b.Write(u8item(0x95, 0x03))
	b.Write(u8item(0x75, 0x01))
	b.Write(u8item(0x91, 0x01)) // Output (Const) -- 3 pad bits
	b.Write([]byte{0xC0})       // End Collection

	return b.Bytes()
}
