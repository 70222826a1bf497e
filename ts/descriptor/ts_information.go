/*
NAME
  ts_information.go

DESCRIPTION
  ts_information.go parses the TS information descriptor (0xCD), which
  names a transport stream and lists, per delivery-system transmission
  type, the services carried on it.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// TSInformationTransmission is one transmission-type group within a
// TSInformation descriptor: a transmission_type_info byte (modulation,
// coding rate etc., left opaque to callers) and the services carried
// under it.
type TSInformationTransmission struct {
	TransmissionTypeInfo byte
	ServiceIDs           []uint16
}

// TSInformation is the decoded form of the TS information descriptor
// (0xCD).
type TSInformation struct {
	RemoteControlKeyID byte
	Name               []byte
	Transmissions      []TSInformationTransmission
}

// ReadTSInformation parses a TSInformation descriptor body.
func ReadTSInformation(body []byte) (TSInformation, bool) {
	if len(body) < 2 {
		return TSInformation{}, false
	}
	t := TSInformation{RemoteControlKeyID: body[0]}
	nameLen := int(body[1] >> 2)
	transmissionCount := int(body[1] & 0x03)
	rest := body[2:]
	if len(rest) < nameLen {
		return TSInformation{}, false
	}
	t.Name = rest[:nameLen]
	rest = rest[nameLen:]
	for i := 0; i < transmissionCount; i++ {
		if len(rest) < 2 {
			return TSInformation{}, false
		}
		tr := TSInformationTransmission{TransmissionTypeInfo: rest[0]}
		n := int(rest[1])
		rest = rest[2:]
		if len(rest) < n*2 {
			return TSInformation{}, false
		}
		for j := 0; j < n; j++ {
			tr.ServiceIDs = append(tr.ServiceIDs, uint16(rest[0])<<8|uint16(rest[1]))
			rest = rest[2:]
		}
		t.Transmissions = append(t.Transmissions, tr)
	}
	return t, true
}
