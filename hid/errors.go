// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import "errors"

var (
	// ErrUnsupported indicates a usage outside the addressable range.
	ErrUnsupported = errors.New("hid: usage out of range")
	// ErrAlreadyPressed indicates press() was called on a usage already
	// marked pressed; the report is left unchanged.
	ErrAlreadyPressed = errors.New("hid: already pressed")
	// ErrNotPressed indicates release() was called on a usage that was not
	// pressed.
	ErrNotPressed = errors.New("hid: not pressed")
	// ErrRollover indicates the 31-slot consumer-control report has no
	// free slot for a new usage.
	ErrRollover = errors.New("hid: consumer control rollover")
)
