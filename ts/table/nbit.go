/*
NAME
  nbit.go

DESCRIPTION
  nbit.go parses the ARIB-specific Network Board Information Table,
  which carries bulletin-board style notices for a network. The table
  appears under two ids: one carrying the board information body, one
  carrying the reference information used to fetch it.

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

// TableIDNBITBody and TableIDNBITRef are the two table_ids the NBIT
// appears under.
const (
	TableIDNBITBody = 0xC5
	TableIDNBITRef  = 0xC6
)

// NBITInformationType is the 4-bit information_type field of an NBIT
// information entry.
type NBITInformationType byte

const (
	NBITInformationUndefined NBITInformationType = iota
	NBITInformationPlain
	NBITInformationWithServiceID
	NBITInformationWithGenre
	NBITInformationReserved
)

func decodeNBITInformationType(raw byte) NBITInformationType {
	if raw <= 3 {
		return NBITInformationType(raw)
	}
	return NBITInformationReserved
}

// NBITBodyLocation is the 2-bit description_body_position field of an
// NBIT information entry.
type NBITBodyLocation byte

const (
	NBITBodyLocationUndefined NBITBodyLocation = iota
	NBITBodyLocationActualTS
	NBITBodyLocationSIPrimeTS
	NBITBodyLocationReserved
)

// NBITInformation is one board information entry within an NBIT.
type NBITInformation struct {
	InformationID uint16
	Type          NBITInformationType
	BodyLocation  NBITBodyLocation
	UserDefined   byte
	KeyIDs        []uint16
	Descriptors   descriptor.Block
}

// NBIT is the decoded Network Board Information Table for one
// original_network_id.
type NBIT struct {
	OriginalNetworkID uint16
	Version           byte
	IsBody            bool // true when parsed from TableIDNBITBody.
	Informations      []NBITInformation
}

// ReadNBIT decodes an NBIT from a reassembled section.
func ReadNBIT(sec psi.Section) (NBIT, bool) {
	if sec.TableID != TableIDNBITBody && sec.TableID != TableIDNBITRef {
		return NBIT{}, false
	}
	n := NBIT{
		OriginalNetworkID: sec.TableIDExtension,
		Version:           sec.Version,
		IsBody:            sec.TableID == TableIDNBITBody,
	}
	rest := sec.Data
	for len(rest) > 0 {
		if len(rest) < 5 {
			return NBIT{}, false
		}
		info := NBITInformation{
			InformationID: uint16(rest[0])<<8 | uint16(rest[1]),
			Type:          decodeNBITInformationType(rest[2] >> 4),
			BodyLocation:  NBITBodyLocation((rest[2] >> 2) & 0x03),
			UserDefined:   rest[3],
		}
		numKeys := int(rest[4])
		rest = rest[5:]
		if len(rest) < numKeys*2 {
			return NBIT{}, false
		}
		for i := 0; i < numKeys; i++ {
			info.KeyIDs = append(info.KeyIDs, uint16(rest[i*2])<<8|uint16(rest[i*2+1]))
		}
		rest = rest[numKeys*2:]

		if len(rest) < 2 {
			return NBIT{}, false
		}
		descLen := int(rest[0]&0x0F)<<8 | int(rest[1])
		rest = rest[2:]
		if len(rest) < descLen {
			return NBIT{}, false
		}
		info.Descriptors = descriptor.Block(rest[:descLen])
		rest = rest[descLen:]
		n.Informations = append(n.Informations, info)
	}
	return n, true
}
