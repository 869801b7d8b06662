// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

// maxStackDepth bounds the layer stack (SPEC_FULL.md §4.4), grounded on
// original_source/crates/dxkb-core/src/keyboard.rs's fixed-capacity layer
// stack.
const maxStackDepth = 8

// layerStack is a bounded LIFO of layer indices. Pushing past capacity
// overwrites the top slot rather than growing or dropping the push
// (SPEC_FULL.md §4.4 "a push beyond capacity overwrites the current top").
type layerStack struct {
	items [maxStackDepth]int
	len   int
}

func (s *layerStack) push(layer int) {
	if s.len < maxStackDepth {
		s.items[s.len] = layer
		s.len++
		return
	}
	s.items[maxStackDepth-1] = layer
}

// pop removes the top entry. Popping an empty stack is a no-op: current()
// already falls back to layer 0 when the stack is empty.
func (s *layerStack) pop() {
	if s.len == 0 {
		return
	}
	s.len--
}

// current returns the active layer: the stack top, or layer 0 if the stack
// is empty (SPEC_FULL.md §4.4 "if the stack becomes empty, current reverts
// to layer 0").
func (s *layerStack) current() int {
	if s.len == 0 {
		return 0
	}
	return s.items[s.len-1]
}

func (s *layerStack) depth() int {
	return s.len
}
