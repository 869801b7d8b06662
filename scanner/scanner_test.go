// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import "testing"

// fakeSampler returns the bitmask set for the currently strobed row;
// tests set it per-row via rowMasks.
type fakeSampler struct {
	rowMasks map[int]uint32
	curRow   int
}

func (s *fakeSampler) Sample() uint32 {
	return s.rowMasks[s.curRow]
}

func TestDebounceScenario(t *testing.T) {
	const rows, cols = 3, 4
	const debounceMs = 20

	sampler := &fakeSampler{rowMasks: map[int]uint32{}}
	var clockMs byte

	// Wrap Strober.Activate to track which row the sampler should answer
	// for, since Scan() calls Activate(row) immediately before Sample().
	strober := &trackingStrober{sampler: sampler}

	sc := New(rows, cols, debounceMs, strober, sampler, func() byte { return clockMs }, nil)

	var events []Event
	emit := func(e Event) { events = append(events, e) }

	set := func(pressed bool) {
		if pressed {
			sampler.rowMasks[2] = 1 << 3
		} else {
			sampler.rowMasks[2] = 0
		}
	}

	clockMs = 0
	set(false)
	sc.Scan(emit)
	if len(events) != 0 {
		t.Fatalf("t=0: expected no events, got %v", events)
	}

	clockMs = 10
	set(true)
	sc.Scan(emit)
	if len(events) != 1 || events[0] != (Event{Row: 2, Col: 3, State: Pressed}) {
		t.Fatalf("t=10: expected one Pressed event, got %v", events)
	}
	events = nil

	clockMs = 15
	set(false)
	sc.Scan(emit)
	if len(events) != 0 {
		t.Fatalf("t=15 (diff=5<20): expected no events (locked), got %v", events)
	}

	clockMs = 31
	sc.Scan(emit) // sample still Released; diff=21>=20 -> unlocked, re-evaluated
	if len(events) != 1 || events[0] != (Event{Row: 2, Col: 3, State: Released}) {
		t.Fatalf("t=31: expected one Released event, got %v", events)
	}
}

// trackingStrober records the currently active row into the sampler so
// fakeSampler.Sample can answer per-row.
type trackingStrober struct {
	sampler *fakeSampler
}

func (s *trackingStrober) Activate(line int) {
	s.sampler.curRow = line
}

func (s *trackingStrober) Deactivate(int) {}

// TestDebounceReArmsOnAccept reproduces spec.md §8 scenario 3's literal
// walkthrough: once a debounce timeout expires and the new read is
// accepted, the slot is re-armed to the current time (not left quiescent),
// so a second rapid bounce right after is debounced again rather than
// accepted immediately.
func TestDebounceReArmsOnAccept(t *testing.T) {
	var clockMs byte
	sampler := &fakeSampler{rowMasks: map[int]uint32{}}
	strober := &trackingStrober{sampler: sampler}
	sc := New(1, 1, 20, strober, sampler, func() byte { return clockMs }, nil)

	var events []Event
	emit := func(e Event) { events = append(events, e) }

	clockMs = 0
	sampler.rowMasks[0] = 1
	sc.Scan(emit) // Pressed, slot = 0
	events = nil

	clockMs = 31 // diff = 31 >= 20: unlocked, accepted
	sampler.rowMasks[0] = 0
	sc.Scan(emit)
	if len(events) != 1 || events[0] != (Event{Row: 0, Col: 0, State: Released}) {
		t.Fatalf("t=31: expected one Released event, got %v", events)
	}
	if got, want := sc.slot[0][0], byte(31%254); got != want {
		t.Fatalf("slot after accept = %d, want re-armed to %d (not left quiescent)", got, want)
	}
	events = nil

	clockMs = 40 // diff since re-armed slot(31) = 9 < 20: still locked
	sampler.rowMasks[0] = 1
	sc.Scan(emit)
	if len(events) != 0 {
		t.Fatalf("t=40 (diff=9<20 since re-arm): expected no events (locked), got %v", events)
	}
}

func TestDebounceBoundaryJustUnder(t *testing.T) {
	var clockMs byte
	sampler := &fakeSampler{rowMasks: map[int]uint32{}}
	strober := &trackingStrober{sampler: sampler}
	sc := New(1, 1, 20, strober, sampler, func() byte { return clockMs }, nil)

	var events []Event
	emit := func(e Event) { events = append(events, e) }

	clockMs = 0
	sampler.rowMasks[0] = 1
	sc.Scan(emit)
	events = nil

	clockMs = 19 // diff = 19 < 20: still locked
	sampler.rowMasks[0] = 0
	sc.Scan(emit)
	if len(events) != 0 {
		t.Fatalf("diff=19 should still be locked, got %v", events)
	}

	clockMs = 21 // diff since original slot(0) = 21 >= 20: unlocked
	sc.Scan(emit)
	if len(events) != 1 {
		t.Fatalf("diff=21 should unlock and emit, got %v", events)
	}
}
