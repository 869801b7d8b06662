// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"log"

	"github.com/usbarmory/splitkb/bits"
	"github.com/usbarmory/splitkb/hid"
	"github.com/usbarmory/splitkb/scanner"
)

// UserHandler is invoked when a KindUser key changes state.
type UserHandler func(tag int, pressed bool)

// State is the Keyboard State machine (SPEC_FULL.md §4.4): it owns the
// logical key matrix, the layer stack, and dispatches debounced scanner
// edges into HID reports or layer-stack transitions.
type State struct {
	layout *Layout
	stack  layerStack
	matrix *bits.Array

	realRows, realCols int
	rightColOffset     int

	pressedCount int

	hid    *hid.Report
	onUser UserHandler
}

// NewState constructs a State over a resolved Layout. realRows/realCols is
// the size of the combined two-half matrix; rightColOffset is added to a
// local column for keys scanned on the right-hand half (SPEC_FULL.md §4.4
// "real_col = local_col + (right-side ? right_col_offset : 0)").
func NewState(layout *Layout, realRows, realCols, rightColOffset int, report *hid.Report, onUser UserHandler) *State {
	return &State{
		layout:         layout,
		matrix:         bits.NewArray(realRows * realCols),
		realRows:       realRows,
		realCols:       realCols,
		rightColOffset: rightColOffset,
		hid:            report,
		onUser:         onUser,
	}
}

// RealCoordinate maps a local scanner coordinate to the combined matrix's
// real coordinate.
func (s *State) RealCoordinate(row, col int, isRight bool) (int, int) {
	if isRight {
		col += s.rightColOffset
	}
	return row, col
}

// CurrentLayer returns the active layer index.
func (s *State) CurrentLayer() int {
	return s.stack.current()
}

// PressedCount returns the number of matrix cells currently marked pressed.
// It is an invariant (checked by tests) that this always equals the
// population count of the logical matrix.
func (s *State) PressedCount() int {
	return s.pressedCount
}

// HandleLocal applies one scanner edge from a local half's matrix, mapping
// it to a real coordinate via isRight, then dispatching it.
func (s *State) HandleLocal(ev scanner.Event, isRight bool) {
	row, col := s.RealCoordinate(ev.Row, ev.Col, isRight)
	s.HandleReal(row, col, bool(ev.State))
}

// HandleReal applies one edge at a real (row, col) coordinate: it updates
// the logical matrix and, if that changed the cell's state, dispatches the
// resolved key definition (SPEC_FULL.md §4.4).
func (s *State) HandleReal(row, col int, pressed bool) {
	if row < 0 || row >= s.realRows || col < 0 || col >= s.realCols {
		log.Printf("layout: edge at out-of-range coordinate (%d,%d) ignored", row, col)
		return
	}

	idx := row*s.realCols + col
	var changed bool
	if pressed {
		changed = s.matrix.Set(idx)
	} else {
		changed = s.matrix.Clear(idx)
	}
	if !changed {
		return
	}

	if pressed {
		s.pressedCount++
	} else {
		s.pressedCount--
	}

	def := s.layout.Get(s.CurrentLayer(), row, col)
	s.dispatch(def, pressed)
}

func (s *State) dispatch(def KeyDefinition, pressed bool) {
	switch def.Kind {
	case KindNoOp:
		// nothing to do

	case KindStandard:
		var err error
		if pressed {
			err = s.hid.PressKey(def.Usage)
		} else {
			err = s.hid.ReleaseKey(def.Usage)
		}
		if err != nil {
			log.Printf("layout: standard key usage %#x: %v", def.Usage, err)
		}

	case KindConsumerControl:
		var err error
		if pressed {
			err = s.hid.PressCC(def.CCUsage)
		} else {
			err = s.hid.ReleaseCC(def.CCUsage)
		}
		if err != nil {
			log.Printf("layout: consumer control usage %#x: %v", def.CCUsage, err)
		}

	case KindLayer:
		s.dispatchLayer(def, pressed)

	case KindUser:
		if s.onUser != nil {
			s.onUser(def.UserTag, pressed)
		}
	}
}

// dispatchLayer implements the layer-key action table (SPEC_FULL.md §4.4,
// §9 Open Question 1: transient actions act on both edges unconditionally;
// non-transient actions act only on key-down).
func (s *State) dispatchLayer(def KeyDefinition, pressed bool) {
	switch def.LayerAction {
	case LayerPushNext:
		if pressed {
			s.pushNext()
		}
	case LayerPush:
		if pressed {
			s.pushLayer(def.LayerArg)
		}
	case LayerPop:
		if pressed {
			s.stack.pop()
		}
	case LayerPushNextTransient:
		if pressed {
			s.pushNext()
		} else {
			s.stack.pop()
		}
	case LayerPushTransient:
		if pressed {
			s.pushLayer(def.LayerArg)
		} else {
			s.stack.pop()
		}
	}
}

func (s *State) pushNext() {
	cur := s.CurrentLayer()
	if cur+1 < s.layout.NumLayers() {
		s.stack.push(cur + 1)
	}
}

func (s *State) pushLayer(n int) {
	if n < 0 || n >= s.layout.NumLayers() {
		log.Printf("layout: push of out-of-range layer %d ignored", n)
		return
	}
	s.stack.push(n)
}
