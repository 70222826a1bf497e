/*
NAME
  packet.go

DESCRIPTION
  packet.go provides Packet, a borrowing view over a 188-byte MPEG-TS
  cell, and Parse, which decodes one from a byte slice.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tspacket provides decoding of 188-byte MPEG-TS packets,
// including the optional adaptation field and its PCR/OPCR.
package tspacket

import (
	"github.com/pkg/errors"

	"github.com/ausocean/isdbts/ts"
)

// Size is the size, in bytes, of one MPEG-TS packet.
const Size = 188

// SyncByte is the fixed first byte of every TS packet.
const SyncByte = 0x47

// Adaptation field control values (octet 3, bits 4-5).
const (
	AFCPayloadOnly            = 0x1
	AFCAdaptationOnly         = 0x2
	AFCAdaptationThenPayload  = 0x3
)

// Errors returned by Parse.
var (
	ErrShort    = errors.New("tspacket: data shorter than one packet")
	ErrBadSync  = errors.New("tspacket: bad sync byte")
	ErrAdaptLen = errors.New("tspacket: adaptation field length exceeds packet")
)

// Adaptation holds the optional adaptation field of a Packet.
type Adaptation struct {
	Discontinuity   bool
	RandomAccess    bool
	ESPriority      bool
	PCRFlag         bool
	OPCRFlag        bool
	SplicingPoint   bool
	PrivateDataFlag bool
	ExtensionFlag   bool
	PCR             ts.Timestamp // 33-bit 90kHz PCR base; see PCR27MHz for the full 27MHz value.
	PCRExt          uint16       // 9-bit PCR extension.
	OPCR            ts.Timestamp
	OPCRExt         uint16
	SpliceCountdown int8
	PrivateData     []byte
	Extension       []byte
}

// PCR27MHz returns the adaptation field's PCR in the 27MHz clock
// domain, base*300+ext. The PCR field itself carries only the 33-bit
// 90kHz base, which is what Timestamp arithmetic operates on.
func (a Adaptation) PCR27MHz() uint64 {
	return uint64(a.PCR)*300 + uint64(a.PCRExt)
}

// Packet is a decoded view over one 188-byte MPEG-TS cell. The Payload
// and adaptation Extension/PrivateData fields borrow directly from the
// input slice passed to Parse; Packet itself never copies.
type Packet struct {
	TEI      bool
	PUSI     bool
	Priority bool
	PID      ts.Pid
	TSC      byte
	AFC      byte
	CC       byte
	Adapt    *Adaptation // nil if AFC does not signal an adaptation field.
	Payload  []byte      // nil if AFC does not signal a payload.
}

// HasPayload reports whether p carries a payload per its AFC.
func (p *Packet) HasPayload() bool {
	return p.AFC == AFCPayloadOnly || p.AFC == AFCAdaptationThenPayload
}

// Parse decodes one 188-byte MPEG-TS packet from data. data must be at
// least Size bytes; only the first Size bytes are consulted. The returned
// Packet borrows from data — callers that need to retain it past the
// lifetime of data must copy.
func Parse(data []byte) (Packet, error) {
	if len(data) < Size {
		return Packet{}, ErrShort
	}
	data = data[:Size]
	if data[0] != SyncByte {
		return Packet{}, ErrBadSync
	}

	pid, _ := ts.ParsePid(data[1:3])
	p := Packet{
		TEI:      data[1]&0x80 != 0,
		PUSI:     data[1]&0x40 != 0,
		Priority: data[1]&0x20 != 0,
		PID:      pid,
		TSC:      (data[3] & 0xC0) >> 6,
		AFC:      (data[3] & 0x30) >> 4,
		CC:       data[3] & 0x0F,
	}

	rest := data[4:]
	if p.AFC == AFCAdaptationOnly || p.AFC == AFCAdaptationThenPayload {
		adapt, remaining, err := parseAdaptation(rest)
		if err != nil {
			return Packet{}, err
		}
		p.Adapt = adapt
		rest = remaining
	}
	if p.HasPayload() {
		p.Payload = rest
	}
	return p, nil
}

func parseAdaptation(b []byte) (*Adaptation, []byte, error) {
	if len(b) < 1 {
		return nil, nil, ErrAdaptLen
	}
	length := int(b[0])
	if length > len(b)-1 {
		return nil, nil, ErrAdaptLen
	}
	rest := b[1+length:]
	if length == 0 {
		return &Adaptation{}, rest, nil
	}
	flags := b[1]
	a := &Adaptation{
		Discontinuity:   flags&0x80 != 0,
		RandomAccess:    flags&0x40 != 0,
		ESPriority:      flags&0x20 != 0,
		PCRFlag:         flags&0x10 != 0,
		OPCRFlag:        flags&0x08 != 0,
		SplicingPoint:   flags&0x04 != 0,
		PrivateDataFlag: flags&0x02 != 0,
		ExtensionFlag:   flags&0x01 != 0,
	}
	off := 2
	if a.PCRFlag {
		if off+6 > 1+length {
			return nil, nil, ErrAdaptLen
		}
		base, ext := decodePCR(b[off : off+6])
		a.PCR = ts.NewTimestamp(base)
		a.PCRExt = ext
		off += 6
	}
	if a.OPCRFlag {
		if off+6 > 1+length {
			return nil, nil, ErrAdaptLen
		}
		base, ext := decodePCR(b[off : off+6])
		a.OPCR = ts.NewTimestamp(base)
		a.OPCRExt = ext
		off += 6
	}
	if a.SplicingPoint {
		if off >= 1+length {
			return nil, nil, ErrAdaptLen
		}
		a.SpliceCountdown = int8(b[off])
		off++
	}
	if a.PrivateDataFlag {
		if off >= 1+length {
			return nil, nil, ErrAdaptLen
		}
		n := int(b[off])
		off++
		if off+n > 1+length {
			return nil, nil, ErrAdaptLen
		}
		a.PrivateData = b[off : off+n]
		off += n
	}
	if a.ExtensionFlag && off < 1+length {
		a.Extension = b[off : 1+length]
	}
	return a, rest, nil
}

// decodePCR splits a 6-byte PCR field into its 33-bit base and 9-bit
// extension, per ISO/IEC 13818-1.
func decodePCR(b []byte) (base uint64, ext uint16) {
	base = uint64(b[0])<<25 | uint64(b[1])<<17 | uint64(b[2])<<9 | uint64(b[3])<<1 | uint64(b[4]>>7)
	ext = uint16(b[4]&0x01)<<8 | uint16(b[5])
	return
}
