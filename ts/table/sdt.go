/*
NAME
  sdt.go

DESCRIPTION
  sdt.go parses the Service Description Table: per-service scheduling
  flags, running status and descriptors.

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

// TableIDSDTActual and TableIDSDTOther are the two table_ids the SDT
// appears under: describing services on this transport stream, or on
// another one.
const (
	TableIDSDTActual = 0x42
	TableIDSDTOther  = 0x46
)

// SDTService is one service entry within an SDT.
type SDTService struct {
	ServiceID            uint16
	EITScheduleFlag      bool
	EITPresentFollowing  bool
	RunningStatus        RunningStatus
	FreeCAMode           bool
	Descriptors          descriptor.Block
}

// SDT is the decoded Service Description Table for one
// transport_stream_id.
type SDT struct {
	TransportStreamID uint16
	Version           byte
	OriginalNetworkID uint16
	OtherTS           bool // true when parsed from TableIDSDTOther.
	Services          []SDTService
}

// ReadSDT decodes an SDT from a reassembled section.
func ReadSDT(sec psi.Section) (SDT, bool) {
	if sec.TableID != TableIDSDTActual && sec.TableID != TableIDSDTOther {
		return SDT{}, false
	}
	if len(sec.Data) < 3 {
		return SDT{}, false
	}
	s := SDT{
		TransportStreamID: sec.TableIDExtension,
		Version:           sec.Version,
		OriginalNetworkID: uint16(sec.Data[0])<<8 | uint16(sec.Data[1]),
		OtherTS:           sec.TableID == TableIDSDTOther,
	}
	rest := sec.Data[3:] // skip original_network_id + reserved_future_use byte.
	for len(rest) >= 5 {
		serviceID := uint16(rest[0])<<8 | uint16(rest[1])
		eitSchedule := rest[2]&0x02 != 0
		eitPF := rest[2]&0x01 != 0
		running := decodeRunningStatus(rest[3] >> 5)
		freeCA := rest[3]&0x10 != 0
		descLen := int(rest[3]&0x0F)<<8 | int(rest[4])
		rest = rest[5:]
		if len(rest) < descLen {
			return SDT{}, false
		}
		s.Services = append(s.Services, SDTService{
			ServiceID:           serviceID,
			EITScheduleFlag:     eitSchedule,
			EITPresentFollowing: eitPF,
			RunningStatus:       running,
			FreeCAMode:          freeCA,
			Descriptors:         descriptor.Block(rest[:descLen]),
		})
		rest = rest[descLen:]
	}
	return s, true
}
