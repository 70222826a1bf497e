/*
NAME
  pat.go

DESCRIPTION
  pat.go parses the Program Association Table: the transport stream's
  program_number -> PMT PID map, plus the optional network_pid entry
  (program_number 0).

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
	"github.com/ausocean/isdbts/ts/psi"
)

// TableIDPAT is the PAT's fixed table_id.
const TableIDPAT = 0x00

// PATProgram is one (program_number, PMT PID) mapping.
type PATProgram struct {
	ProgramNumber uint16
	PID           ts.Pid
}

// PAT is the decoded Program Association Table for one
// transport_stream_id.
type PAT struct {
	TransportStreamID uint16
	Version           byte
	NetworkPID        ts.Pid
	HasNetworkPID     bool
	Programs          []PATProgram
}

// ReadPAT decodes a PAT from a reassembled section. It returns ok=false
// if sec is not a PAT section or is malformed.
func ReadPAT(sec psi.Section) (PAT, bool) {
	if sec.TableID != TableIDPAT {
		return PAT{}, false
	}
	p := PAT{TransportStreamID: sec.TableIDExtension, Version: sec.Version}
	rest := sec.Data
	for len(rest) >= 4 {
		programNumber := uint16(rest[0])<<8 | uint16(rest[1])
		pid := ts.NewPid(uint16(rest[2]&0x1F)<<8 | uint16(rest[3]))
		if programNumber == 0 {
			p.NetworkPID = pid
			p.HasNetworkPID = true
		} else {
			p.Programs = append(p.Programs, PATProgram{ProgramNumber: programNumber, PID: pid})
		}
		rest = rest[4:]
	}
	return p, true
}
