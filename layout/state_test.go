// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/usbarmory/splitkb/hid"
	"github.com/usbarmory/splitkb/scanner"
)

func buildTwoLayerFixture(t *testing.T) *Layout {
	t.Helper()
	base := flatLayer(1, 3, NoOp)
	base[0][0] = Standard(hid.UsageA)
	base[0][1] = PushLayerTransient(1)
	base[0][2] = PopLayer()

	fn := flatLayer(1, 3, Transparent)
	fn[0][0] = Standard(hid.UsageF1)

	lt, err := Build([]LayerSource{
		{Cells: base, Parent: -1},
		{Cells: fn, Parent: 0},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return lt
}

func TestStandardKeyDispatch(t *testing.T) {
	lt := buildTwoLayerFixture(t)
	report := hid.NewReport()
	st := NewState(lt, 1, 3, 0, report, nil)

	st.HandleReal(0, 0, true)
	if !report.KeyPressed(hid.UsageA) {
		t.Fatalf("UsageA should be pressed")
	}
	st.HandleReal(0, 0, false)
	if report.KeyPressed(hid.UsageA) {
		t.Fatalf("UsageA should be released")
	}
}

// TestTransientLayerScenario reproduces SPEC_FULL.md §8 scenario 4: holding
// a transient layer key remaps a neighboring key, and releasing it restores
// the base layer's binding.
func TestTransientLayerScenario(t *testing.T) {
	lt := buildTwoLayerFixture(t)
	report := hid.NewReport()
	st := NewState(lt, 1, 3, 0, report, nil)

	if st.CurrentLayer() != 0 {
		t.Fatalf("initial layer = %d, want 0", st.CurrentLayer())
	}

	// Hold the transient-layer key at column 1.
	st.HandleReal(0, 1, true)
	if st.CurrentLayer() != 1 {
		t.Fatalf("after holding transient key, layer = %d, want 1", st.CurrentLayer())
	}

	// While held, column 0 resolves against layer 1's binding (F1).
	st.HandleReal(0, 0, true)
	if !report.KeyPressed(hid.UsageF1) {
		t.Fatalf("UsageF1 should be pressed while layer 1 is active")
	}
	st.HandleReal(0, 0, false)

	// Releasing the transient key pops back to the base layer.
	st.HandleReal(0, 1, false)
	if st.CurrentLayer() != 0 {
		t.Fatalf("after releasing transient key, layer = %d, want 0", st.CurrentLayer())
	}

	// Column 0 now resolves against the base layer's binding (A) again.
	st.HandleReal(0, 0, true)
	if !report.KeyPressed(hid.UsageA) {
		t.Fatalf("UsageA should be pressed after returning to base layer")
	}
}

func TestPushPopNonTransientActsOnlyOnKeyDown(t *testing.T) {
	lt := buildTwoLayerFixture(t)
	report := hid.NewReport()
	st := NewState(lt, 1, 3, 0, report, nil)

	st.HandleReal(0, 2, true) // pop key down -- no-op, stack already empty
	if st.CurrentLayer() != 0 {
		t.Fatalf("layer = %d, want 0", st.CurrentLayer())
	}
	st.HandleReal(0, 2, false) // pop key up -- must not itself act
	if st.CurrentLayer() != 0 {
		t.Fatalf("layer = %d, want 0 after pop-key release", st.CurrentLayer())
	}
}

func TestPressedCountInvariant(t *testing.T) {
	lt := buildTwoLayerFixture(t)
	report := hid.NewReport()
	st := NewState(lt, 1, 3, 0, report, nil)

	events := []scanner.Event{
		{Row: 0, Col: 0, State: scanner.Pressed},
		{Row: 0, Col: 2, State: scanner.Pressed},
		{Row: 0, Col: 0, State: scanner.Released},
	}
	for _, ev := range events {
		st.HandleLocal(ev, false)
	}
	if st.PressedCount() != 1 {
		t.Fatalf("PressedCount() = %d, want 1", st.PressedCount())
	}
}

func TestUserKeyDispatch(t *testing.T) {
	base := flatLayer(1, 1, User(42))
	lt, err := Build([]LayerSource{{Cells: base, Parent: -1}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var gotTag int
	var gotPressed bool
	report := hid.NewReport()
	st := NewState(lt, 1, 1, 0, report, func(tag int, pressed bool) {
		gotTag, gotPressed = tag, pressed
	})

	st.HandleReal(0, 0, true)
	if gotTag != 42 || !gotPressed {
		t.Fatalf("user handler got (%d, %v), want (42, true)", gotTag, gotPressed)
	}
}

func TestRightSideColumnOffset(t *testing.T) {
	lt := buildTwoLayerFixture(t)
	report := hid.NewReport()
	st := NewState(lt, 1, 6, 3, report, nil)

	row, col := st.RealCoordinate(0, 0, true)
	if row != 0 || col != 3 {
		t.Fatalf("RealCoordinate on right side = (%d,%d), want (0,3)", row, col)
	}

	row, col = st.RealCoordinate(0, 0, false)
	if row != 0 || col != 0 {
		t.Fatalf("RealCoordinate on left side = (%d,%d), want (0,0)", row, col)
	}
}
