/*
NAME
  pmt.go

DESCRIPTION
  pmt.go parses the Program Map Table: a program's PCR PID, program-level
  descriptors, and its elementary streams.

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

// TableIDPMT is the PMT's fixed table_id.
const TableIDPMT = 0x02

// PMTStream is one elementary stream entry within a PMT.
type PMTStream struct {
	StreamType  byte
	PID         ts.Pid
	Descriptors descriptor.Block
}

// PMT is the decoded Program Map Table for one program_number.
type PMT struct {
	ProgramNumber uint16
	Version       byte
	PCRPID        ts.Pid
	Descriptors   descriptor.Block
	Streams       []PMTStream
}

// ReadPMT decodes a PMT from a reassembled section.
func ReadPMT(sec psi.Section) (PMT, bool) {
	if sec.TableID != TableIDPMT {
		return PMT{}, false
	}
	if len(sec.Data) < 4 {
		return PMT{}, false
	}
	m := PMT{
		ProgramNumber: sec.TableIDExtension,
		Version:       sec.Version,
		PCRPID:        ts.NewPid(uint16(sec.Data[0]&0x1F)<<8 | uint16(sec.Data[1])),
	}
	programInfoLength := int(sec.Data[2]&0x0F)<<8 | int(sec.Data[3])
	rest := sec.Data[4:]
	if len(rest) < programInfoLength {
		return PMT{}, false
	}
	m.Descriptors = descriptor.Block(rest[:programInfoLength])
	rest = rest[programInfoLength:]

	for len(rest) >= 5 {
		streamType := rest[0]
		pid := ts.NewPid(uint16(rest[1]&0x1F)<<8 | uint16(rest[2]))
		esInfoLength := int(rest[3]&0x0F)<<8 | int(rest[4])
		rest = rest[5:]
		if len(rest) < esInfoLength {
			return PMT{}, false
		}
		m.Streams = append(m.Streams, PMTStream{
			StreamType:  streamType,
			PID:         pid,
			Descriptors: descriptor.Block(rest[:esInfoLength]),
		})
		rest = rest[esInfoLength:]
	}
	return m, true
}
