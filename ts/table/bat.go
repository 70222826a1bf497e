/*
NAME
  bat.go

DESCRIPTION
  bat.go parses the Bouquet Association Table, which groups transport
  streams into a named bouquet with per-stream descriptor sets.

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

// TableIDBAT is the BAT's fixed table_id.
const TableIDBAT = 0x4A

// BATTransportStream is one transport stream entry within a BAT.
type BATTransportStream struct {
	TransportStreamID uint16
	OriginalNetworkID uint16
	Descriptors       descriptor.Block
}

// BAT is the decoded Bouquet Association Table for one bouquet_id.
type BAT struct {
	BouquetID        uint16
	Version          byte
	Descriptors      descriptor.Block // bouquet-wide descriptors.
	TransportStreams []BATTransportStream
}

// ReadBAT decodes a BAT from a reassembled section.
func ReadBAT(sec psi.Section) (BAT, bool) {
	if sec.TableID != TableIDBAT {
		return BAT{}, false
	}
	if len(sec.Data) < 2 {
		return BAT{}, false
	}
	b := BAT{
		BouquetID: sec.TableIDExtension,
		Version:   sec.Version,
	}
	bouquetDescLen := int(sec.Data[0]&0x0F)<<8 | int(sec.Data[1])
	rest := sec.Data[2:]
	if len(rest) < bouquetDescLen {
		return BAT{}, false
	}
	b.Descriptors = descriptor.Block(rest[:bouquetDescLen])
	rest = rest[bouquetDescLen:]

	if len(rest) < 2 {
		return BAT{}, false
	}
	loopLen := int(rest[0]&0x0F)<<8 | int(rest[1])
	rest = rest[2:]
	if len(rest) < loopLen {
		return BAT{}, false
	}
	loop := rest[:loopLen]
	for len(loop) > 0 {
		if len(loop) < 6 {
			return BAT{}, false
		}
		descLen := int(loop[4]&0x0F)<<8 | int(loop[5])
		if len(loop) < 6+descLen {
			return BAT{}, false
		}
		b.TransportStreams = append(b.TransportStreams, BATTransportStream{
			TransportStreamID: uint16(loop[0])<<8 | uint16(loop[1]),
			OriginalNetworkID: uint16(loop[2])<<8 | uint16(loop[3]),
			Descriptors:       descriptor.Block(loop[6 : 6+descLen]),
		})
		loop = loop[6+descLen:]
	}
	return b, true
}
