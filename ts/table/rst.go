/*
NAME
  rst.go

DESCRIPTION
  rst.go parses the Running Status Table, which announces event status
  changes without waiting for the next EIT revision.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import "github.com/ausocean/isdbts/ts/psi"

// TableIDRST is the RST's fixed table_id.
const TableIDRST = 0x71

// RSTStatus is one event status entry within an RST.
type RSTStatus struct {
	TransportStreamID uint16
	OriginalNetworkID uint16
	ServiceID         uint16
	EventID           uint16
	RunningStatus     RunningStatus
}

// RST is the decoded Running Status Table. RSTs carry no version or
// extension; each delivery is a standalone set of status updates.
type RST struct {
	Statuses []RSTStatus
}

// ReadRST decodes an RST from a reassembled section.
func ReadRST(sec psi.Section) (RST, bool) {
	if sec.TableID != TableIDRST {
		return RST{}, false
	}
	if len(sec.Data)%9 != 0 {
		return RST{}, false
	}
	var r RST
	for rest := sec.Data; len(rest) >= 9; rest = rest[9:] {
		r.Statuses = append(r.Statuses, RSTStatus{
			TransportStreamID: uint16(rest[0])<<8 | uint16(rest[1]),
			OriginalNetworkID: uint16(rest[2])<<8 | uint16(rest[3]),
			ServiceID:         uint16(rest[4])<<8 | uint16(rest[5]),
			EventID:           uint16(rest[6])<<8 | uint16(rest[7]),
			RunningStatus:     decodeRunningStatus(rest[8]),
		})
	}
	return r, true
}
