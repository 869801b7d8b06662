// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/usbarmory/splitkb/hid"
)

func flatLayer(rows, cols int, fill KeyDefinition) Layer {
	l := make(Layer, rows)
	for r := range l {
		l[r] = make([]KeyDefinition, cols)
		for c := range l[r] {
			l[r][c] = fill
		}
	}
	return l
}

func TestBuildResolvesTransparentFromParent(t *testing.T) {
	base := flatLayer(1, 2, NoOp)
	base[0][0] = Standard(hid.UsageA)
	base[0][1] = Standard(hid.UsageB)

	child := flatLayer(1, 2, Transparent)
	child[0][1] = Standard(hid.UsageC)

	lt, err := Build([]LayerSource{
		{Cells: base, Parent: -1},
		{Cells: child, Parent: 0},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := lt.Get(1, 0, 0); got.Kind != KindStandard || got.Usage != hid.UsageA {
		t.Fatalf("inherited cell = %+v, want UsageA", got)
	}
	if got := lt.Get(1, 0, 1); got.Kind != KindStandard || got.Usage != hid.UsageC {
		t.Fatalf("overridden cell = %+v, want UsageC", got)
	}
}

func TestBuildRejectsCycle(t *testing.T) {
	a := flatLayer(1, 1, Transparent)
	b := flatLayer(1, 1, Transparent)

	_, err := Build([]LayerSource{
		{Cells: a, Parent: 1},
		{Cells: b, Parent: 0},
	})
	if err == nil {
		t.Fatalf("Build with a parent cycle must fail")
	}
}

func TestBuildRejectsMismatchedDimensions(t *testing.T) {
	a := flatLayer(2, 2, NoOp)
	b := flatLayer(1, 2, NoOp)

	_, err := Build([]LayerSource{
		{Cells: a, Parent: -1},
		{Cells: b, Parent: -1},
	})
	if err == nil {
		t.Fatalf("Build with mismatched layer dimensions must fail")
	}
}

func TestGetOutOfRangeReturnsNoOp(t *testing.T) {
	lt, err := Build([]LayerSource{{Cells: flatLayer(1, 1, NoOp), Parent: -1}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := lt.Get(5, 0, 0); got.Kind != KindNoOp {
		t.Fatalf("out-of-range layer = %+v, want NoOp", got)
	}
	if got := lt.Get(0, 9, 9); got.Kind != KindNoOp {
		t.Fatalf("out-of-range coordinate = %+v, want NoOp", got)
	}
}
