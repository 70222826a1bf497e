/*
NAME
  lit.go

DESCRIPTION
  lit.go parses the ARIB-specific Local Event Information Table, which
  subdivides one EIT event into locally-identified segments.

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

// TableIDLIT is the LIT's fixed table_id.
const TableIDLIT = 0xD0

// LITLocalEvent is one local event entry within a LIT.
type LITLocalEvent struct {
	LocalEventID uint16
	Descriptors  descriptor.Block
}

// LIT is the decoded Local Event Information Table for one event_id.
type LIT struct {
	EventID           uint16
	Version           byte
	ServiceID         uint16
	TransportStreamID uint16
	OriginalNetworkID uint16
	LocalEvents       []LITLocalEvent
}

// ReadLIT decodes a LIT from a reassembled section.
func ReadLIT(sec psi.Section) (LIT, bool) {
	if sec.TableID != TableIDLIT {
		return LIT{}, false
	}
	if len(sec.Data) < 6 {
		return LIT{}, false
	}
	l := LIT{
		EventID:           sec.TableIDExtension,
		Version:           sec.Version,
		ServiceID:         uint16(sec.Data[0])<<8 | uint16(sec.Data[1]),
		TransportStreamID: uint16(sec.Data[2])<<8 | uint16(sec.Data[3]),
		OriginalNetworkID: uint16(sec.Data[4])<<8 | uint16(sec.Data[5]),
	}
	rest := sec.Data[6:]
	for len(rest) > 0 {
		if len(rest) < 4 {
			return LIT{}, false
		}
		localEventID := uint16(rest[0])<<8 | uint16(rest[1])
		descLen := int(rest[2]&0x0F)<<8 | int(rest[3])
		rest = rest[4:]
		if len(rest) < descLen {
			return LIT{}, false
		}
		l.LocalEvents = append(l.LocalEvents, LITLocalEvent{
			LocalEventID: localEventID,
			Descriptors:  descriptor.Block(rest[:descLen]),
		})
		rest = rest[descLen:]
	}
	return l, true
}
