/*
NAME
  ca_identifier.go

DESCRIPTION
  ca_identifier.go parses the CA identifier descriptor (0x53), which
  lists the conditional-access system ids associated with a service or
  event. The ids are surfaced for display; descrambling itself is a
  host concern.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// CAIdentifier is the decoded form of the CA identifier descriptor
// (0x53).
type CAIdentifier struct {
	SystemIDs []uint16
}

// ReadCAIdentifier parses a CAIdentifier descriptor body.
func ReadCAIdentifier(body []byte) (CAIdentifier, bool) {
	if len(body)%2 != 0 {
		return CAIdentifier{}, false
	}
	var c CAIdentifier
	for i := 0; i+1 < len(body); i += 2 {
		c.SystemIDs = append(c.SystemIDs, uint16(body[i])<<8|uint16(body[i+1]))
	}
	return c, true
}
