/*
NAME
  bit.go

DESCRIPTION
  bit.go parses the ARIB-specific Broadcaster Information Table, which
  lists the broadcasters operating within a network.

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

// TableIDBIT is the BIT's fixed table_id.
const TableIDBIT = 0xC4

// BITBroadcaster is one broadcaster entry within a BIT.
type BITBroadcaster struct {
	BroadcasterID byte
	Descriptors   descriptor.Block
}

// BIT is the decoded Broadcaster Information Table for one
// original_network_id.
type BIT struct {
	OriginalNetworkID  uint16
	Version            byte
	BroadcastViewPropriety bool
	Descriptors        descriptor.Block // network-wide descriptors.
	Broadcasters       []BITBroadcaster
}

// ReadBIT decodes a BIT from a reassembled section.
func ReadBIT(sec psi.Section) (BIT, bool) {
	if sec.TableID != TableIDBIT {
		return BIT{}, false
	}
	if len(sec.Data) < 3 {
		return BIT{}, false
	}
	b := BIT{
		OriginalNetworkID:      sec.TableIDExtension,
		Version:                sec.Version,
		BroadcastViewPropriety: sec.Data[0]&0x80 != 0,
	}
	firstDescLen := int(sec.Data[1]&0x0F)<<8 | int(sec.Data[2])
	rest := sec.Data[3:]
	if len(rest) < firstDescLen {
		return BIT{}, false
	}
	b.Descriptors = descriptor.Block(rest[:firstDescLen])
	rest = rest[firstDescLen:]

	for len(rest) >= 3 {
		broadcasterID := rest[0]
		descLen := int(rest[1]&0x0F)<<8 | int(rest[2])
		rest = rest[3:]
		if len(rest) < descLen {
			return BIT{}, false
		}
		b.Broadcasters = append(b.Broadcasters, BITBroadcaster{
			BroadcasterID: broadcasterID,
			Descriptors:   descriptor.Block(rest[:descLen]),
		})
		rest = rest[descLen:]
	}
	return b, true
}
