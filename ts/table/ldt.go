/*
NAME
  ldt.go

DESCRIPTION
  ldt.go parses the ARIB-specific Linkage Description Table, which
  attaches extra descriptor sets to a service identified by an external
  description_id.

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

// TableIDLDT is the LDT's fixed table_id.
const TableIDLDT = 0xC7

// LDTDescription is one description entry within an LDT.
type LDTDescription struct {
	DescriptionID uint16
	Descriptors   descriptor.Block
}

// LDT is the decoded Linkage Description Table for one
// original_service_id.
type LDT struct {
	OriginalServiceID uint16
	Version           byte
	TransportStreamID uint16
	OriginalNetworkID uint16
	Descriptions      []LDTDescription
}

// ReadLDT decodes an LDT from a reassembled section.
func ReadLDT(sec psi.Section) (LDT, bool) {
	if sec.TableID != TableIDLDT {
		return LDT{}, false
	}
	if len(sec.Data) < 4 {
		return LDT{}, false
	}
	l := LDT{
		OriginalServiceID: sec.TableIDExtension,
		Version:           sec.Version,
		TransportStreamID: uint16(sec.Data[0])<<8 | uint16(sec.Data[1]),
		OriginalNetworkID: uint16(sec.Data[2])<<8 | uint16(sec.Data[3]),
	}
	rest := sec.Data[4:]
	for len(rest) >= 4 {
		descriptionID := uint16(rest[0])<<8 | uint16(rest[1])
		descLen := int(rest[2]&0x0F)<<8 | int(rest[3])
		rest = rest[4:]
		if len(rest) < descLen {
			return LDT{}, false
		}
		l.Descriptions = append(l.Descriptions, LDTDescription{
			DescriptionID: descriptionID,
			Descriptors:   descriptor.Block(rest[:descLen]),
		})
		rest = rest[descLen:]
	}
	return l, true
}
