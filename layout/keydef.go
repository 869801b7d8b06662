// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the layered layout and keyboard state machine
// (SPEC_FULL.md §4.4): coordinate mapping, layer-stack semantics, and the
// key-event dispatch pipeline.
package layout

import "github.com/usbarmory/splitkb/hid"

// KeyAction selects what kind of Layer key-definition this is.
type KeyAction int

const (
	LayerPushNext KeyAction = iota
	LayerPush
	LayerPop
	LayerPushNextTransient
	LayerPushTransient
)

// KeyDefinition is the closed sum type replacing the original's
// trait-object dispatch (SPEC_FULL.md §9): a key is exactly one of NoOp,
// Standard, ConsumerControl, Layer or User. Kind discriminates which field
// is meaningful.
type KeyDefinition struct {
	Kind Kind

	// Standard usage, valid when Kind == KindStandard.
	Usage hid.Usage
	// CCUsage, valid when Kind == KindConsumerControl.
	CCUsage hid.CCUsage
	// LayerAction/LayerArg, valid when Kind == KindLayer.
	LayerAction KeyAction
	LayerArg    int
	// UserTag, valid when Kind == KindUser: an opaque tag a caller-supplied
	// handler dispatches on.
	UserTag int
}

// Kind discriminates KeyDefinition's sum-type payload.
type Kind int

const (
	KindNoOp Kind = iota
	KindStandard
	KindConsumerControl
	KindLayer
	KindUser
	// kindTransparent is a build-time-only marker: a cell in a child layer
	// deferring to its parent layer's cell for the same position. It never
	// appears in a frozen, resolved Layout (SPEC_FULL.md §4.4 "Layer
	// inheritance is resolved at build time (not runtime)").
	kindTransparent
)

// Transparent marks a cell that should inherit its parent layer's key
// definition at build time. Passing an unresolved layer containing
// Transparent cells directly to a Layout without first calling Build is a
// programming error.
var Transparent = KeyDefinition{Kind: kindTransparent}

// NoOp is the zero-value key definition: pressing it does nothing.
var NoOp = KeyDefinition{Kind: KindNoOp}

// Standard returns a key definition for a plain HID keyboard usage.
func Standard(u hid.Usage) KeyDefinition {
	return KeyDefinition{Kind: KindStandard, Usage: u}
}

// ConsumerControl returns a key definition for a consumer-control usage.
func ConsumerControl(u hid.CCUsage) KeyDefinition {
	return KeyDefinition{Kind: KindConsumerControl, CCUsage: u}
}

// PushNextLayer returns a momentary-free "push the next layer" key.
func PushNextLayer() KeyDefinition {
	return KeyDefinition{Kind: KindLayer, LayerAction: LayerPushNext}
}

// PushLayer returns a key that pushes layer n.
func PushLayer(n int) KeyDefinition {
	return KeyDefinition{Kind: KindLayer, LayerAction: LayerPush, LayerArg: n}
}

// PopLayer returns a key that pops the layer stack.
func PopLayer() KeyDefinition {
	return KeyDefinition{Kind: KindLayer, LayerAction: LayerPop}
}

// PushNextLayerTransient returns a key that pushes the next layer on
// key-down and pops on key-up.
func PushNextLayerTransient() KeyDefinition {
	return KeyDefinition{Kind: KindLayer, LayerAction: LayerPushNextTransient}
}

// PushLayerTransient returns a key that pushes layer n on key-down and pops
// on key-up.
func PushLayerTransient(n int) KeyDefinition {
	return KeyDefinition{Kind: KindLayer, LayerAction: LayerPushTransient, LayerArg: n}
}

// User returns a key definition deferring to a caller-supplied handler keyed
// by tag.
func User(tag int) KeyDefinition {
	return KeyDefinition{Kind: KindUser, UserTag: tag}
}
