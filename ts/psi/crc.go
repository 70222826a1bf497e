/*
NAME
  crc.go

DESCRIPTION
  crc.go provides the MPEG-2 CRC32 (polynomial 0x04C11DB7, initial
  0xFFFFFFFF, no final XOR) used to verify reassembled PSI/SI sections.

AUTHOR
  Dan Kortschak <dan@ausocean.org>
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package psi provides reassembly of MPEG-TS PSI/SI sections from packet
// payloads, and verification of their trailing MPEG-2 CRC32.
package psi

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"
)

var mpeg2Table = makeTable(crc32.IEEE)

// makeTable builds a CRC32 table for the bit-reversed IEEE polynomial, as
// used by MPEG-2 (poly 0x04C11DB7 applied MSB-first).
func makeTable(poly uint32) *crc32.Table {
	var t crc32.Table
	p := bits.Reverse32(poly)
	for i := range t {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ p
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// Checksum computes the MPEG-2 CRC32 of b.
func Checksum(b []byte) uint32 {
	crc := uint32(0xffffffff)
	for _, v := range b {
		crc = mpeg2Table[byte(crc>>24)^v] ^ (crc << 8)
	}
	return crc
}

// Verify reports whether the trailing 4 bytes of b (big-endian) match the
// MPEG-2 CRC32 of b[:len(b)-4].
func Verify(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	want := binary.BigEndian.Uint32(b[len(b)-4:])
	return Checksum(b[:len(b)-4]) == want
}

// AppendCRC appends the MPEG-2 CRC32 of b to b and returns the result,
// used by tests that need to construct a verifiable section.
func AppendCRC(b []byte) []byte {
	crc := Checksum(b)
	out := make([]byte, len(b)+4)
	copy(out, b)
	binary.BigEndian.PutUint32(out[len(b):], crc)
	return out
}
