// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import "time"

// Timings holds the three recovery timeouts and the idle-probe interval
// (SPEC_FULL.md §5). Two concrete profiles are supplied, grounded on
// dxkb-split-link's DefaultSplitLinkTimings/TestingTimings: a production
// profile, and a testing profile used by the unit tests, which drive the
// engine with a simulated clock.
type Timings struct {
	// MaxLinkIdle tears the link down from Up if no frame is received
	// within this duration.
	MaxLinkIdle time.Duration
	// ProbeInterval is the maximum gap between transmissions before a
	// LinkProbe is queued to keep the link discoverable/alive.
	ProbeInterval time.Duration
	// SyncTimeout tears the link down from Syncing back to Down.
	SyncTimeout time.Duration
	// ReplayDelay is how long a message may wait for its Ack before being
	// retransmitted.
	ReplayDelay time.Duration
}

// DefaultTimings is the production timing profile.
var DefaultTimings = Timings{
	MaxLinkIdle:   999999 * time.Millisecond,
	ProbeInterval: 100 * time.Millisecond,
	SyncTimeout:   1000 * time.Millisecond,
	ReplayDelay:   500 * time.Millisecond,
}

// TestingTimings is the profile for unit tests and simulated clocks. Its
// link-idle limit is far shorter than DefaultTimings', while its probe
// interval, sync timeout and replay delay are longer; unlike
// DefaultTimings, its probe interval exceeds both the sync timeout and the
// replay delay.
var TestingTimings = Timings{
	MaxLinkIdle:   5 * time.Second,
	ProbeInterval: 3 * time.Second,
	SyncTimeout:   2 * time.Second,
	ReplayDelay:   1 * time.Second,
}
