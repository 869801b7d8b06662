// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

// UserQueueCapacity is the typical user TX queue capacity (SPEC_FULL.md §3).
const UserQueueCapacity = 32

// ControlQueueCapacity is the typical control TX queue capacity.
const ControlQueueCapacity = 8

// userQueue is a bounded FIFO of opaque user-message payloads.
type userQueue struct {
	items [UserQueueCapacity][]byte
	head  int
	len   int
}

func (q *userQueue) full() bool { return q.len == len(q.items) }
func (q *userQueue) empty() bool { return q.len == 0 }

func (q *userQueue) push(msg []byte) bool {
	if q.full() {
		return false
	}
	q.items[(q.head+q.len)%len(q.items)] = msg
	q.len++
	return true
}

func (q *userQueue) front() ([]byte, bool) {
	if q.empty() {
		return nil, false
	}
	return q.items[q.head], true
}

func (q *userQueue) pop() {
	if q.empty() {
		return
	}
	q.items[q.head] = nil
	q.head = (q.head + 1) % len(q.items)
	q.len--
}

func (q *userQueue) reset() {
	*q = userQueue{}
}

// controlFrame is a queued no-payload control frame. seq is only meaningful
// for KindAck, carrying the sequence number being acknowledged.
type controlFrame struct {
	kind Kind
	seq  byte
}

type controlQueue struct {
	items [ControlQueueCapacity]controlFrame
	head  int
	len   int
}

func (q *controlQueue) full() bool  { return q.len == len(q.items) }
func (q *controlQueue) empty() bool { return q.len == 0 }

func (q *controlQueue) push(cf controlFrame) bool {
	if q.full() {
		return false
	}
	q.items[(q.head+q.len)%len(q.items)] = cf
	q.len++
	return true
}

func (q *controlQueue) front() (controlFrame, bool) {
	if q.empty() {
		return controlFrame{}, false
	}
	return q.items[q.head], true
}

func (q *controlQueue) pop() {
	if q.empty() {
		return
	}
	q.head = (q.head + 1) % len(q.items)
	q.len--
}

func (q *controlQueue) reset() {
	*q = controlQueue{}
}
