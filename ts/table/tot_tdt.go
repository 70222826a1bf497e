/*
NAME
  tot_tdt.go

DESCRIPTION
  tot_tdt.go parses the Time and Date Table (current UTC time only) and
  the Time Offset Table (UTC time plus local-time-offset descriptors).
  Both carry section_syntax_indicator clear, but TOT is the one
  documented exception that still carries a trailing CRC32; TDT does
  not.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
)

const (
	TableIDTDT = 0x70
	TableIDTOT = 0x73
)

// TDT is the decoded Time and Date Table.
type TDT struct {
	UTCTime ts.DateTime
}

// ReadTDT decodes a TDT from a reassembled section. TDT carries no CRC,
// so sec.Data is the 5-byte MJD+BCD field in its entirety.
func ReadTDT(sec psi.Section) (TDT, bool) {
	if sec.TableID != TableIDTDT {
		return TDT{}, false
	}
	t, ok := ts.ParseMjdBCDTime(sec.Data)
	if !ok {
		return TDT{}, false
	}
	return TDT{UTCTime: t}, true
}

// TOT is the decoded Time Offset Table.
type TOT struct {
	UTCTime     ts.DateTime
	Descriptors descriptor.Block
}

// ReadTOT decodes a TOT from a reassembled section, verifying the CRC32
// that TOT carries despite its cleared syntax indicator.
func ReadTOT(sec psi.Section) (TOT, bool) {
	if sec.TableID != TableIDTOT {
		return TOT{}, false
	}
	if !psi.Verify(sec.Raw()) {
		return TOT{}, false
	}
	data := sec.Data
	if len(data) < 4 {
		return TOT{}, false
	}
	data = data[:len(data)-4] // strip trailing CRC32.
	utc, ok := ts.ParseMjdBCDTime(data)
	if !ok {
		return TOT{}, false
	}
	rest := data[5:]
	if len(rest) < 2 {
		return TOT{}, false
	}
	descLen := int(rest[0]&0x0F)<<8 | int(rest[1])
	rest = rest[2:]
	if len(rest) < descLen {
		return TOT{}, false
	}
	return TOT{UTCTime: utc, Descriptors: descriptor.Block(rest[:descLen])}, true
}
