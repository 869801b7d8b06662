// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyboard

import "fmt"

// messageTag discriminates the two link user-message shapes this keyboard
// exchanges between halves, grounded on original_source/crates/dxkb-core/
// src/keyboard.rs's SplitKeyboardLinkMessage enum (MatrixKeyDown/MatrixKeyUp).
type messageTag byte

const (
	tagMatrixKeyDown messageTag = iota
	tagMatrixKeyUp
)

// encodeKeyEvent packs a slave-side scan edge into a link user-message body:
// [tag, row, col]. The original source used a serde-derived encoding over a
// shared enum; three raw bytes is the idiomatic Go equivalent for a link
// whose payloads are this small and fixed-shape.
func encodeKeyEvent(pressed bool, row, col byte) []byte {
	tag := tagMatrixKeyUp
	if pressed {
		tag = tagMatrixKeyDown
	}
	return []byte{byte(tag), row, col}
}

// decodeKeyEvent unpacks a body built by encodeKeyEvent.
func decodeKeyEvent(body []byte) (pressed bool, row, col byte, err error) {
	if len(body) != 3 {
		return false, 0, 0, fmt.Errorf("keyboard: malformed key-event message: %d bytes", len(body))
	}
	switch messageTag(body[0]) {
	case tagMatrixKeyDown:
		return true, body[1], body[2], nil
	case tagMatrixKeyUp:
		return false, body[1], body[2], nil
	default:
		return false, 0, 0, fmt.Errorf("keyboard: unknown message tag %d", body[0])
	}
}
