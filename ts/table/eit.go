/*
NAME
  eit.go

DESCRIPTION
  eit.go parses the Event Information Table, covering both the
  present/following and full-schedule table_id ranges, for events on
  this transport stream or another one.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"time"

	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
)

// EIT table_id ranges. Present/following carries at most two events;
// schedule carries the full multi-day listing, split across the
// 0x50-0x5F (this TS) / 0x60-0x6F (other TS) ranges by segment.
const (
	TableIDEITPresentFollowingActual = 0x4E
	TableIDEITPresentFollowingOther  = 0x4F
	TableIDEITScheduleActualMin      = 0x50
	TableIDEITScheduleActualMax      = 0x5F
	TableIDEITScheduleOtherMin       = 0x60
	TableIDEITScheduleOtherMax       = 0x6F
)

// IsEITTableID reports whether id falls within any EIT table_id range.
func IsEITTableID(id byte) bool {
	switch {
	case id == TableIDEITPresentFollowingActual || id == TableIDEITPresentFollowingOther:
		return true
	case id >= TableIDEITScheduleActualMin && id <= TableIDEITScheduleActualMax:
		return true
	case id >= TableIDEITScheduleOtherMin && id <= TableIDEITScheduleOtherMax:
		return true
	default:
		return false
	}
}

// EITEvent is one scheduled event entry within an EIT section.
type EITEvent struct {
	EventID       uint16
	StartTime     ts.DateTime
	Duration      time.Duration
	RunningStatus RunningStatus
	FreeCAMode    bool
	Descriptors   descriptor.Block
}

// EIT is the decoded Event Information Table for one service_id.
type EIT struct {
	ServiceID                 uint16
	Version                   byte
	TransportStreamID         uint16
	OriginalNetworkID         uint16
	SegmentLastSectionNumber  byte
	LastTableID               byte
	Other                     bool // true for the other-TS table_id ranges.
	Events                    []EITEvent
}

// ReadEIT decodes an EIT from a reassembled section.
func ReadEIT(sec psi.Section) (EIT, bool) {
	if !IsEITTableID(sec.TableID) {
		return EIT{}, false
	}
	if len(sec.Data) < 6 {
		return EIT{}, false
	}
	e := EIT{
		ServiceID:                sec.TableIDExtension,
		Version:                  sec.Version,
		TransportStreamID:        uint16(sec.Data[0])<<8 | uint16(sec.Data[1]),
		OriginalNetworkID:        uint16(sec.Data[2])<<8 | uint16(sec.Data[3]),
		SegmentLastSectionNumber: sec.Data[4],
		LastTableID:              sec.Data[5],
		Other:                    sec.TableID == TableIDEITPresentFollowingOther || (sec.TableID >= TableIDEITScheduleOtherMin && sec.TableID <= TableIDEITScheduleOtherMax),
	}
	rest := sec.Data[6:]
	for len(rest) >= 12 {
		eventID := uint16(rest[0])<<8 | uint16(rest[1])
		start, ok := ts.ParseMjdBCDTime(rest[2:7])
		if !ok {
			return EIT{}, false
		}
		dur, ok := readBCDDuration(rest[7:10])
		if !ok {
			return EIT{}, false
		}
		running := decodeRunningStatus(rest[10] >> 5)
		freeCA := rest[10]&0x10 != 0
		descLen := int(rest[10]&0x0F)<<8 | int(rest[11])
		rest = rest[12:]
		if len(rest) < descLen {
			return EIT{}, false
		}
		e.Events = append(e.Events, EITEvent{
			EventID:       eventID,
			StartTime:     start,
			Duration:      dur,
			RunningStatus: running,
			FreeCAMode:    freeCA,
			Descriptors:   descriptor.Block(rest[:descLen]),
		})
		rest = rest[descLen:]
	}
	return e, true
}
