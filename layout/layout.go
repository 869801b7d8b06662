// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "fmt"

// Layer is one layer's key table, rows by columns, indexed by real
// (post side-offset) coordinates.
type Layer [][]KeyDefinition

// LayerSource describes one unresolved input layer to Build: its key table,
// which may contain Transparent cells, and the index of the layer it
// inherits from (or -1 for none).
type LayerSource struct {
	Cells  Layer
	Parent int
}

// Layout is a frozen, fully-resolved set of layers: no cell is Transparent.
type Layout struct {
	layers     []Layer
	rows, cols int
}

// Build resolves a set of layer sources -- each cell that is Transparent is
// replaced, at build time, with its parent layer's cell at the same
// position, recursively (SPEC_FULL.md §4.4 "Layer inheritance is resolved
// at build time, not runtime"). Cycles among parents are rejected.
func Build(sources []LayerSource) (*Layout, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("layout: at least one layer required")
	}
	rows := len(sources[0].Cells)
	cols := 0
	if rows > 0 {
		cols = len(sources[0].Cells[0])
	}
	for i, src := range sources {
		if src.Parent < -1 || src.Parent >= len(sources) {
			return nil, fmt.Errorf("layout: layer %d has out-of-range parent %d", i, src.Parent)
		}
		if len(src.Cells) != rows {
			return nil, fmt.Errorf("layout: layer %d has %d rows, want %d", i, len(src.Cells), rows)
		}
		for r, row := range src.Cells {
			if len(row) != cols {
				return nil, fmt.Errorf("layout: layer %d row %d has %d cols, want %d", i, r, len(row), cols)
			}
		}
	}

	resolved := make([]Layer, len(sources))
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(sources))

	var resolve func(i int) error
	resolve = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("layout: cycle detected in layer inheritance at layer %d", i)
		}
		state[i] = visiting

		var parent Layer
		if sources[i].Parent >= 0 {
			if err := resolve(sources[i].Parent); err != nil {
				return err
			}
			parent = resolved[sources[i].Parent]
		}

		out := make(Layer, rows)
		for r := 0; r < rows; r++ {
			out[r] = make([]KeyDefinition, cols)
			for c := 0; c < cols; c++ {
				cell := sources[i].Cells[r][c]
				if cell.Kind == kindTransparent {
					if parent != nil {
						cell = parent[r][c]
					} else {
						cell = NoOp
					}
				}
				out[r][c] = cell
			}
		}
		resolved[i] = out
		state[i] = done
		return nil
	}

	for i := range sources {
		if err := resolve(i); err != nil {
			return nil, err
		}
	}

	return &Layout{layers: resolved, rows: rows, cols: cols}, nil
}

// NumLayers returns how many layers the layout holds.
func (l *Layout) NumLayers() int { return len(l.layers) }

// Get returns the resolved key definition at (layer, row, col). Out-of-range
// coordinates return NoOp: a scanner misconfiguration should never panic the
// firmware (SPEC_FULL.md §7: no error terminates the core).
func (l *Layout) Get(layer, row, col int) KeyDefinition {
	if layer < 0 || layer >= len(l.layers) {
		return NoOp
	}
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return NoOp
	}
	return l.layers[layer][row][col]
}
