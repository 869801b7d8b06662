// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package link implements the Link Engine (SPEC_FULL.md §4.2): frame codec,
// sequence/ACK reliability, idle probing, retransmission and the three-state
// connection machine (Down/Syncing/Up) that multiplexes control and user
// traffic over a single half-duplex Bus.
package link

import (
	"log"
	"time"

	"github.com/usbarmory/splitkb/bus"
)

// State is the link connection state machine (SPEC_FULL.md §3/§4.2).
type State int

const (
	Down State = iota
	Syncing
	Up
)

func (s State) String() string {
	switch s {
	case Down:
		return "Down"
	case Syncing:
		return "Syncing"
	case Up:
		return "Up"
	default:
		return "Unknown"
	}
}

// RecvFunc is invoked with the body of each in-order user message.
type RecvFunc func(body []byte)

// maxFrameSize bounds a single RX buffer; generous for a microcontroller
// link where user payloads are small key-event messages.
const maxFrameSize = 256

// Engine implements the reliable link over a bus.Bus, per SPEC_FULL.md §4.2.
// It is not safe for concurrent use from multiple goroutines; on the target
// platform it is driven exclusively by the single-threaded main loop
// (SPEC_FULL.md §5).
type Engine struct {
	b       bus.Bus
	timings Timings
	now     func() time.Time

	state          State
	stateChangedAt time.Time
	lastRx         time.Time
	lastTx         time.Time
	lastUserTx     time.Time

	txSeq byte
	rxSeq byte

	pendingAck    bool
	pendingAckAt  time.Time

	user    userQueue
	control controlQueue

	rxBuf [maxFrameSize]byte
}

// New constructs an Engine bound to b, using timings for its recovery
// timeouts. The engine starts Down.
func New(b bus.Bus, timings Timings) *Engine {
	e := &Engine{
		b:       b,
		timings: timings,
		now:     time.Now,
	}
	e.stateChangedAt = e.now()
	return e
}

// SetClock overrides the time source, for deterministic tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.stateChangedAt = now()
}

// Status returns the current connection state.
func (e *Engine) Status() State {
	return e.state
}

// Transfer enqueues msg for reliable delivery. It returns bus.ErrLinkDown if
// the link is not Up, or bus.ErrBufferOverflow if the user queue is full
// (SPEC_FULL.md §4.2).
func (e *Engine) Transfer(msg []byte) error {
	if e.state != Up {
		return bus.ErrLinkDown
	}
	if !e.user.push(msg) {
		return bus.ErrBufferOverflow
	}
	return nil
}

// Poll drains received frames (invoking recv for each in-order user
// message), runs timed recovery/retransmission actions, then attempts
// transmission. It should be called once per main-loop tick.
func (e *Engine) Poll(recv RecvFunc) {
	e.doRx(recv)
	e.doTimedActions()
	e.doTx()
}

func (e *Engine) changeState(s State) {
	if e.state == s {
		return
	}
	if s == Down {
		e.user.reset()
		e.control.reset()
		e.pendingAck = false
	}
	e.state = s
	e.stateChangedAt = e.now()
}

func (e *Engine) resetSeqCounters() {
	e.txSeq = 0
	e.rxSeq = 0
}

func (e *Engine) enqueueControl(cf controlFrame) {
	if !e.control.push(cf) {
		log.Printf("link: control queue full, dropping %s", cf.kind)
	}
}

func (e *Engine) doRx(recv RecvFunc) {
	for {
		n, err := e.b.PollNext(e.rxBuf[:])
		switch {
		case err == bus.ErrWouldBlock:
			return
		case err == bus.ErrBufferOverflow:
			log.Printf("link: rx frame exceeded buffer, dropped")
			continue
		case err != nil:
			log.Printf("link: rx error: %v", err)
			continue
		}

		frame, ferr := DecodeFrame(e.rxBuf[:n])
		if ferr != nil {
			log.Printf("link: dropping malformed frame: %v", ferr)
			continue
		}

		e.lastRx = e.now()
		e.handleRxFrame(frame, recv)
	}
}

func (e *Engine) handleRxFrame(f Frame, recv RecvFunc) {
	switch f.Kind {
	case KindLinkProbe:
		if e.state == Down {
			e.changeState(Syncing)
			e.enqueueControl(controlFrame{kind: KindSync})
		}

	case KindSync:
		// A Sync may legitimately arrive while Down (peer discovered us
		// via our own probe), while Syncing (concurrent sync), or while
		// Up (peer lost its state): in every case the correct reaction is
		// to reset sequence counters, (re)enter Up, and answer with a
		// SyncAck.
		e.resetSeqCounters()
		e.changeState(Up)
		e.enqueueControl(controlFrame{kind: KindSyncAck})

	case KindSyncAck:
		if e.state == Syncing {
			e.resetSeqCounters()
			e.changeState(Up)
		} else {
			log.Printf("link: unexpected SyncAck in state %s, ignoring", e.state)
		}

	case KindAck:
		if seqDiff(f.Seq, e.txSeq) >= 0 && e.pendingAck {
			e.user.pop()
			e.pendingAck = false
			e.txSeq = f.Seq + 1
		}

	case KindUserMessage:
		if e.state != Up {
			log.Printf("link: received transport frame while %s, discarding", e.state)
			return
		}
		e.enqueueControl(controlFrame{kind: KindAck, seq: f.Seq})

		diff := seqDiff(f.Seq, e.rxSeq)
		if diff < 0 {
			// Duplicate: already delivered, drop body but we've already
			// queued the Ack above.
			return
		}
		if diff > 0 {
			log.Printf("link: sequence gap of %d accepted", diff)
		}
		e.rxSeq = f.Seq + 1
		if recv != nil {
			recv(f.Body)
		}

	default:
		log.Printf("link: unexpected control frame %s, ignoring", f.Kind)
	}
}

func (e *Engine) doTimedActions() {
	now := e.now()

	switch e.state {
	case Syncing:
		if now.Sub(e.stateChangedAt) > e.timings.SyncTimeout {
			log.Printf("link: sync timeout, link down")
			e.changeState(Down)
			return
		}
	case Up:
		if now.Sub(e.lastRx) > e.timings.MaxLinkIdle {
			log.Printf("link: idle timeout, link down")
			e.changeState(Down)
			return
		}
	}

	if now.Sub(e.lastTx) > e.timings.ProbeInterval {
		e.enqueueControl(controlFrame{kind: KindLinkProbe})
	}

	if e.pendingAck && now.Sub(e.pendingAckAt) > e.timings.ReplayDelay {
		if head, ok := e.user.front(); ok {
			e.sendUserFrame(head, now)
		}
	}
}

func (e *Engine) doTx() {
	now := e.now()

	if cf, ok := e.control.front(); ok {
		if e.b.TxBusy() {
			return
		}
		body := []byte(nil)
		frame := Frame{Seq: cf.seq, Kind: cf.kind, Body: body}
		if err := e.b.Transfer(EncodeFrame(frame)); err != nil {
			return
		}
		e.control.pop()
		e.lastTx = now
		return
	}

	if e.state != Up || e.pendingAck {
		return
	}
	if e.b.TxBusy() {
		return
	}
	head, ok := e.user.front()
	if !ok {
		return
	}
	e.sendUserFrame(head, now)
}

func (e *Engine) sendUserFrame(body []byte, now time.Time) {
	frame := Frame{Seq: e.txSeq, Kind: KindUserMessage, Body: body}
	if err := e.b.Transfer(EncodeFrame(frame)); err != nil {
		return
	}
	e.pendingAck = true
	e.pendingAckAt = now
	e.lastTx = now
	e.lastUserTx = now
}
