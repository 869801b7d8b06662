// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the Matrix Scanner (SPEC_FULL.md §4.3):
// strobe/sample key-matrix scanning with eager per-key debounce driven by a
// wrapping 8-bit millisecond timer.
package scanner

// KeyState is the logical state of a matrix cell.
type KeyState bool

const (
	Released KeyState = false
	Pressed  KeyState = true
)

// Event is an edge emitted by the scanner for a single local cell.
type Event struct {
	Row, Col int
	State    KeyState
}

// quiescent is the debounce-slot sentinel meaning "next edge accepted
// immediately" (SPEC_FULL.md §3).
const quiescent byte = 0xFF

// Strober drives the matrix strobe lines.
type Strober interface {
	Activate(line int)
	Deactivate(line int)
}

// Sampler reads all sense lines for the currently active strobe line in a
// single atomic read, returning one bit per column (bit set = pressed,
// after any electrical-polarity normalization the implementation performs).
type Sampler interface {
	Sample() uint32
}

// Clock returns the current wrapping 8-bit millisecond timestamp, derived
// from a monotonic cycle counter (SPEC_FULL.md §4.3).
type Clock func() byte

// Scanner scans an M_ROWS x M_COLS physical matrix and emits debounced edge
// events. It is not safe for concurrent use.
type Scanner struct {
	rows, cols int
	debounceMs byte
	strober    Strober
	sampler    Sampler
	clock      Clock
	settle     func()

	state [][]bool
	slot  [][]byte
}

// New constructs a Scanner. debounceMs must be < 255 (SPEC_FULL.md §4.3
// invariant). settle, if non-nil, is called after activating a strobe line
// and before sampling, to allow electrical settling time; it may be nil on
// platforms where the activate/sample call boundary already provides enough
// delay.
func New(rows, cols int, debounceMs byte, strober Strober, sampler Sampler, clock Clock, settle func()) *Scanner {
	state := make([][]bool, rows)
	slot := make([][]byte, rows)
	for r := 0; r < rows; r++ {
		state[r] = make([]bool, cols)
		slot[r] = make([]byte, cols)
		for c := 0; c < cols; c++ {
			slot[r][c] = quiescent
		}
	}

	return &Scanner{
		rows:       rows,
		cols:       cols,
		debounceMs: debounceMs,
		strober:    strober,
		sampler:    sampler,
		clock:      clock,
		settle:     settle,
		state:      state,
		slot:       slot,
	}
}

// wrappingElapsed returns the forward elapsed time (in wrapping 8-bit ms)
// from slot to now, i.e. now-slot mod 256.
func wrappingElapsed(now, slot byte) byte {
	return now - slot
}

// Scan performs one full strobe/sample pass over the matrix, invoking emit
// for each debounced edge.
func (s *Scanner) Scan(emit func(Event)) {
	for r := 0; r < s.rows; r++ {
		s.strober.Activate(r)
		if s.settle != nil {
			s.settle()
		}
		mask := s.sampler.Sample()
		s.strober.Deactivate(r)

		now := s.clock()

		for c := 0; c < s.cols; c++ {
			sampled := mask&(1<<uint(c)) != 0
			s.processCell(r, c, sampled, now, emit)
		}
	}
}

func (s *Scanner) processCell(row, col int, sampled bool, now byte, emit func(Event)) {
	stored := s.state[row][col]
	if sampled == stored {
		return
	}

	slot := s.slot[row][col]

	switch {
	case slot == quiescent:
		s.state[row][col] = sampled
		s.slot[row][col] = now % 254
		emit(Event{Row: row, Col: col, State: KeyState(sampled)})

	case wrappingElapsed(now, slot) < s.debounceMs:
		// Still locked: ignore the sample.

	default:
		s.slot[row][col] = now % 254
		if sampled != s.state[row][col] {
			s.state[row][col] = sampled
			emit(Event{Row: row, Col: col, State: KeyState(sampled)})
		}
	}
}
