// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keyboard

import "testing"

func TestEncodeDecodeKeyEventRoundTrip(t *testing.T) {
	for _, pressed := range []bool{true, false} {
		body := encodeKeyEvent(pressed, 3, 7)
		gotPressed, row, col, err := decodeKeyEvent(body)
		if err != nil {
			t.Fatalf("decodeKeyEvent: %v", err)
		}
		if gotPressed != pressed || row != 3 || col != 7 {
			t.Fatalf("round trip = (%v,%d,%d), want (%v,3,7)", gotPressed, row, col, pressed)
		}
	}
}

func TestDecodeKeyEventMalformed(t *testing.T) {
	if _, _, _, err := decodeKeyEvent([]byte{0, 1}); err == nil {
		t.Fatalf("expected error for short body")
	}
	if _, _, _, err := decodeKeyEvent([]byte{9, 0, 0}); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}
