/*
NAME
  itt.go

DESCRIPTION
  itt.go parses the ARIB-specific Index Transmission Table, which
  attaches index descriptors to one event.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
)

// TableIDITT is the ITT's fixed table_id.
const TableIDITT = 0xD2

// ITT is the decoded Index Transmission Table for one event_id.
type ITT struct {
	EventID     uint16
	Version     byte
	Descriptors descriptor.Block
}

// ReadITT decodes an ITT from a reassembled section.
func ReadITT(sec psi.Section) (ITT, bool) {
	if sec.TableID != TableIDITT {
		return ITT{}, false
	}
	if len(sec.Data) < 2 {
		return ITT{}, false
	}
	descLen := int(sec.Data[0]&0x0F)<<8 | int(sec.Data[1])
	rest := sec.Data[2:]
	if len(rest) < descLen {
		return ITT{}, false
	}
	return ITT{
		EventID:     sec.TableIDExtension,
		Version:     sec.Version,
		Descriptors: descriptor.Block(rest[:descLen]),
	}, true
}
