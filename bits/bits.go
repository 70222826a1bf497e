/*
NAME
  bits.go

DESCRIPTION
  bits provides total, non-panicking helpers for reading big-endian
  integers and BCD-encoded fields out of borrowed byte slices, used
  throughout the ts/psi, ts/descriptor and ts/table packages.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides byte-level parsing helpers shared by the binary
// parsers in this module. Every function here is total: short or
// malformed input yields a false ok flag rather than a panic.
package bits

// ReadBE16 reads a big-endian uint16 from the first two bytes of b.
func ReadBE16(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// ReadBE32 reads a big-endian uint32 from the first four bytes of b.
func ReadBE32(b []byte) (uint32, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), true
}

// ReadBE64 reads a big-endian uint64 from the first eight bytes of b.
func ReadBE64(b []byte) (uint64, bool) {
	if len(b) < 8 {
		return 0, false
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, true
}

// SplitAtChecked splits b at n, returning (b[:n], b[n:], true), or
// (nil, nil, false) if b is shorter than n bytes.
func SplitAtChecked(b []byte, n int) ([]byte, []byte, bool) {
	if n < 0 || len(b) < n {
		return nil, nil, false
	}
	return b[:n], b[n:], true
}

// ReadBCD reads n BCD-encoded nibbles left-to-right from b, starting at
// the high nibble of b[0], and returns them as a decimal integer. ok is
// false if b does not contain enough bytes to hold n nibbles.
func ReadBCD(b []byte, n int) (v int, ok bool) {
	nbytes := (n + 1) / 2
	if len(b) < nbytes {
		return 0, false
	}
	for i := 0; i < n; i++ {
		byteIdx := i / 2
		var nibble byte
		if i%2 == 0 {
			nibble = b[byteIdx] >> 4
		} else {
			nibble = b[byteIdx] & 0x0f
		}
		if nibble > 9 {
			return 0, false
		}
		v = v*10 + int(nibble)
	}
	return v, true
}

// ReadBCDSecond decodes a 3-byte HHMMSS BCD field into total seconds.
func ReadBCDSecond(b []byte) (seconds int, ok bool) {
	if len(b) < 3 {
		return 0, false
	}
	h, ok := ReadBCD(b[0:1], 2)
	if !ok {
		return 0, false
	}
	m, ok := ReadBCD(b[1:2], 2)
	if !ok {
		return 0, false
	}
	s, ok := ReadBCD(b[2:3], 2)
	if !ok {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}

// ReadBCDMilli decodes a 5-byte HHMMSSsss (2 BCD digits each for hours,
// minutes and seconds, then 3 BCD digits of milliseconds) field into
// total milliseconds. The layout mirrors the HH:MM:SS.mmm BCD offset
// time used by ARIB data-group management data.
func ReadBCDMilli(b []byte) (millis int, ok bool) {
	if len(b) < 5 {
		return 0, false
	}
	h, ok := ReadBCD(b[0:1], 2)
	if !ok {
		return 0, false
	}
	m, ok := ReadBCD(b[1:2], 2)
	if !ok {
		return 0, false
	}
	s, ok := ReadBCD(b[2:3], 2)
	if !ok {
		return 0, false
	}
	ms, ok := ReadBCD(b[3:5], 3)
	if !ok {
		return 0, false
	}
	return ((h*3600+m*60+s)*1000 + ms), true
}
