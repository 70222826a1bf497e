/*
NAME
  system_management.go

DESCRIPTION
  system_management.go parses the system management descriptor (0xFE),
  which identifies which ARIB broadcasting system a transport stream
  belongs to.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// BroadcastingSystem enumerates the ARIB broadcasting_identifier values
// (6-bit). The raw value is always preserved on SystemManagement
// alongside the decoded variant, since a handful of identifiers are
// ambiguous between
// revisions of the standard.
type BroadcastingSystem byte

const (
	BroadcastingSystemReserved BroadcastingSystem = iota
	// Digital satellite broadcasting, 27 MHz bandwidth in the
	// 12.2-12.75 GHz band.
	BroadcastingSystemSatellite27MHz
	// Digital satellite broadcasting, 34.5 MHz bandwidth in the
	// 11.7-12.2 GHz band.
	BroadcastingSystemSatellite34_5MHzLow
	// Digital terrestrial television broadcasting.
	BroadcastingSystemTerrestrialTelevision
	// Digital satellite broadcasting, 34.5 MHz bandwidth in the
	// 12.2-12.75 GHz band.
	BroadcastingSystemSatellite34_5MHzHigh
	// Digital terrestrial sound broadcasting.
	BroadcastingSystemTerrestrialSound
	// Broadcasting via broadcasting satellites or stations in the
	// 2630-2655 MHz band.
	BroadcastingSystemSatellites
	// Advanced narrow-band digital satellite broadcasting, 27 MHz
	// bandwidth in the 12.2-12.75 GHz band.
	BroadcastingSystemNarrowband
)

func decodeBroadcastingSystem(raw byte) BroadcastingSystem {
	switch raw & 0x3F {
	case 0x01:
		return BroadcastingSystemSatellite27MHz
	case 0x02:
		return BroadcastingSystemSatellite34_5MHzLow
	case 0x03:
		return BroadcastingSystemTerrestrialTelevision
	case 0x04:
		return BroadcastingSystemSatellite34_5MHzHigh
	case 0x05:
		return BroadcastingSystemTerrestrialSound
	case 0x06:
		return BroadcastingSystemSatellites
	case 0x07:
		return BroadcastingSystemNarrowband
	default:
		return BroadcastingSystemReserved
	}
}

// SystemManagement is the decoded form of the system management
// descriptor (0xFE).
type SystemManagement struct {
	BroadcastingFlag         byte // 2-bit
	System                   BroadcastingSystem
	RawIdentifier            byte // the raw 6-bit broadcasting_identifier.
	AdditionalBroadcastingID byte
	AdditionalInfo           []byte
}

// ReadSystemManagement parses a SystemManagement descriptor body. The
// system_management_id field spans body[0:2]: broadcasting_flag (2-bit)
// and broadcasting_identifier (6-bit) in body[0], then
// additional_broadcasting_identification in body[1].
func ReadSystemManagement(body []byte) (SystemManagement, bool) {
	if len(body) < 2 {
		return SystemManagement{}, false
	}
	raw := body[0] & 0x3F
	s := SystemManagement{
		BroadcastingFlag:         body[0] >> 6,
		System:                   decodeBroadcastingSystem(raw),
		RawIdentifier:            raw,
		AdditionalBroadcastingID: body[1],
		AdditionalInfo:           body[2:],
	}
	return s, true
}
