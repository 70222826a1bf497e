/*
NAME
  pid.go

DESCRIPTION
  pid.go provides Pid, the 13-bit MPEG-TS packet identifier type.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ts provides the primitive value types shared across the
// packet, PSI, descriptor, table, PES and charset parsers: Pid, Timestamp,
// MjdDate, LangCode and the strongly-typed identifier wrappers.
package ts

// Pid is a 13-bit MPEG-TS packet identifier.
type Pid uint16

// Well-known PIDs, as per ISO/IEC 13818-1 and ARIB STD-B10.
const (
	PatPid  Pid = 0x0000
	CatPid  Pid = 0x0001
	TsdtPid Pid = 0x0002
	NitPid  Pid = 0x0010 // NIT / ST
	SdtPid  Pid = 0x0011 // SDT / BAT / ST
	EitPid  Pid = 0x0012 // EIT / ST / CIT
	RstPid  Pid = 0x0013 // RST / ST
	TdtPid  Pid = 0x0014 // TDT / TOT / ST
	BitPid  Pid = 0x001F // BIT
	NullPid Pid = 0x1FFF
)

const pidMask = 0x1FFF

// NewPid masks raw to the 13-bit PID range.
func NewPid(raw uint16) Pid {
	return Pid(raw & pidMask)
}

// ParsePid reads a 13-bit PID from the low 5 bits of data[0] and all of
// data[1]. Exactly two bytes are read: data[0:2]. It is the caller's
// responsibility to pass the correct two-byte window; some MPEG-TS header
// windows seen in practice are mis-sliced by one byte, and this
// function intentionally does not try to detect that. It tolerates
// whatever two bytes it is given.
func ParsePid(data []byte) (Pid, bool) {
	if len(data) < 2 {
		return 0, false
	}
	return Pid(uint16(data[0]&0x1f)<<8 | uint16(data[1])), true
}

// Valid reports whether p is within the 13-bit PID range. Since Pid is
// backed by uint16 and always masked on construction, this is primarily
// useful after arithmetic on a raw uint16.
func (p Pid) Valid() bool {
	return p <= pidMask
}
