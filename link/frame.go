// Copyright 2026 The splitkb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"errors"
	"fmt"
	"log"

	"github.com/usbarmory/splitkb/crc8"
)

// Prefix is the fixed first byte of every on-wire frame (SPEC_FULL.md §3).
const Prefix = 0x99

// Kind tags the frame content (SPEC_FULL.md §3).
type Kind byte

const (
	KindLinkProbe   Kind = 0
	KindAck         Kind = 1
	KindSync        Kind = 2
	KindSyncAck     Kind = 3
	KindUserMessage Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindLinkProbe:
		return "LinkProbe"
	case KindAck:
		return "Ack"
	case KindSync:
		return "Sync"
	case KindSyncAck:
		return "SyncAck"
	case KindUserMessage:
		return "UserMessage"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Frame is a decoded on-wire frame (SPEC_FULL.md §3). Seq is carried by
// every kind: for UserMessage and Ack it carries reliability-protocol
// sequence state; for LinkProbe/Sync/SyncAck it is not interpreted.
type Frame struct {
	Seq  byte
	Kind Kind
	Body []byte
}

var (
	// ErrFrameTooShort indicates fewer than the minimum 4 header bytes
	// were available to decode.
	ErrFrameTooShort = errors.New("link: frame too short")
	// ErrBadPrefix indicates the first byte was not Prefix.
	ErrBadPrefix = errors.New("link: bad prefix byte")
	// ErrBadCRC indicates the CRC-8 field did not match the payload.
	ErrBadCRC = errors.New("link: crc mismatch")
	// ErrUnknownKind indicates the kind tag byte did not match a known
	// Kind value.
	ErrUnknownKind = errors.New("link: unknown frame kind")
)

// EncodeFrame serializes f as [Prefix, CRC8(payload), seq, kind, body...].
// The CRC is never computed over the prefix byte (SPEC_FULL.md §4.2).
func EncodeFrame(f Frame) []byte {
	payload := make([]byte, 0, 2+len(f.Body))
	payload = append(payload, f.Seq, byte(f.Kind))
	payload = append(payload, f.Body...)

	out := make([]byte, 0, 2+len(payload))
	out = append(out, Prefix, crc8.Checksum(payload))
	out = append(out, payload...)
	return out
}

// DecodeFrame parses data into a Frame, validating the prefix byte and the
// CRC-8 checksum. Per SPEC_FULL.md §3, trailing bytes beyond what a control
// frame's kind expects are permitted but logged; they are never an error by
// themselves.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < 4 {
		return Frame{}, ErrFrameTooShort
	}
	if data[0] != Prefix {
		return Frame{}, ErrBadPrefix
	}

	crcField := data[1]
	payload := data[2:]

	if crc8.Checksum(payload) != crcField {
		return Frame{}, ErrBadCRC
	}

	seq := payload[0]
	kind := Kind(payload[1])
	body := payload[2:]

	switch kind {
	case KindLinkProbe, KindAck, KindSync, KindSyncAck, KindUserMessage:
	default:
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownKind, byte(kind))
	}

	if kind != KindUserMessage && len(body) > 0 {
		log.Printf("link: %s frame carried %d unexpected trailing bytes", kind, len(body))
	}

	return Frame{Seq: seq, Kind: kind, Body: body}, nil
}

// seqDiff returns the signed difference new-cur in Z/256, interpreted in
// [-128, 127], per SPEC_FULL.md §3.
func seqDiff(new, cur byte) int8 {
	return int8(new - cur)
}
