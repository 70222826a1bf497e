/*
NAME
  nit.go

DESCRIPTION
  nit.go parses the Network Information Table: network-wide descriptors
  plus, per transport stream in the network, its own descriptor block.

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

// NIT table_ids: describing this network, or another one known to it.
const (
	TableIDNITActual = 0x40
	TableIDNITOther  = 0x41
)

// NITTransportStream is one transport stream entry within a NIT.
type NITTransportStream struct {
	TransportStreamID uint16
	OriginalNetworkID uint16
	Descriptors       descriptor.Block
}

// NIT is the decoded Network Information Table for one network_id.
type NIT struct {
	NetworkID         uint16
	Version           byte
	Other             bool // true when parsed from TableIDNITOther.
	Descriptors       descriptor.Block // network-wide descriptors.
	TransportStreams  []NITTransportStream
}

// ReadNIT decodes a NIT from a reassembled section.
func ReadNIT(sec psi.Section) (NIT, bool) {
	if sec.TableID != TableIDNITActual && sec.TableID != TableIDNITOther {
		return NIT{}, false
	}
	if len(sec.Data) < 2 {
		return NIT{}, false
	}
	n := NIT{
		NetworkID: sec.TableIDExtension,
		Version:   sec.Version,
		Other:     sec.TableID == TableIDNITOther,
	}
	networkDescLen := int(sec.Data[0]&0x0F)<<8 | int(sec.Data[1])
	rest := sec.Data[2:]
	if len(rest) < networkDescLen {
		return NIT{}, false
	}
	n.Descriptors = descriptor.Block(rest[:networkDescLen])
	rest = rest[networkDescLen:]

	if len(rest) < 2 {
		return NIT{}, false
	}
	tsLoopLen := int(rest[0]&0x0F)<<8 | int(rest[1])
	rest = rest[2:]
	if len(rest) < tsLoopLen {
		return NIT{}, false
	}
	loop := rest[:tsLoopLen]
	for len(loop) >= 6 {
		tsID := uint16(loop[0])<<8 | uint16(loop[1])
		onID := uint16(loop[2])<<8 | uint16(loop[3])
		descLen := int(loop[4]&0x0F)<<8 | int(loop[5])
		loop = loop[6:]
		if len(loop) < descLen {
			return NIT{}, false
		}
		n.TransportStreams = append(n.TransportStreams, NITTransportStream{
			TransportStreamID: tsID,
			OriginalNetworkID: onID,
			Descriptors:       descriptor.Block(loop[:descLen]),
		})
		loop = loop[descLen:]
	}
	return n, true
}
