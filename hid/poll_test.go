// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import (
	"testing"

	"github.com/usbarmory/splitkb/bus"
)

type fakeEndpoint struct {
	blockNextPush bool
	pushed        [][]byte
	outReports    [][]byte
}

func (f *fakeEndpoint) PushRawInput(b []byte) error {
	if f.blockNextPush {
		f.blockNextPush = false
		return bus.ErrWouldBlock
	}
	f.pushed = append(f.pushed, append([]byte(nil), b...))
	return nil
}

func (f *fakeEndpoint) PullRawReport(dst []byte) (bus.ReportInfo, error) {
	if len(f.outReports) == 0 {
		return bus.ReportInfo{}, bus.ErrWouldBlock
	}
	next := f.outReports[0]
	f.outReports = f.outReports[1:]
	n := copy(dst, next)
	return bus.ReportInfo{ReportID: next[0], Len: n}, nil
}

func (f *fakeEndpoint) Poll() bool { return false }

func TestPollWouldBlockLeavesDirty(t *testing.T) {
	r := NewReport()
	if err := r.PressKey(UsageA); err != nil {
		t.Fatalf("PressKey: %v", err)
	}

	ep := &fakeEndpoint{blockNextPush: true}
	r.Poll(ep)
	if !r.kbDirty {
		t.Fatalf("dirty flag must remain set after WouldBlock")
	}
	if len(ep.pushed) != 0 {
		t.Fatalf("no push should have succeeded")
	}

	r.Poll(ep)
	if r.kbDirty {
		t.Fatalf("dirty flag must clear after a successful push")
	}
	if len(ep.pushed) != 1 {
		t.Fatalf("expected exactly one successful push, got %d", len(ep.pushed))
	}
}

func TestPollAppliesLEDOutReport(t *testing.T) {
	r := NewReport()
	ep := &fakeEndpoint{outReports: [][]byte{{KeyboardReportID, 0x03}}}
	r.Poll(ep)
	if r.LEDs() != 0x03 {
		t.Fatalf("LEDs() = %#x, want 0x03", r.LEDs())
	}
}
