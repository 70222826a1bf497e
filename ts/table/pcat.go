/*
NAME
  pcat.go

DESCRIPTION
  pcat.go parses the ARIB-specific Partial Content Announcement Table,
  which lists scheduled content instances (e.g. repeat broadcasts) for a
  service.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
)

// TableIDPCAT is the PCAT's fixed table_id.
const TableIDPCAT = 0xC2

// PCATSchedule is one (start_time, duration) entry in a content's
// schedule description.
type PCATSchedule struct {
	StartTime ts.DateTime
	Duration  uint32 // BCD HHMMSS decoded to total seconds, via bcdDurationSeconds.
}

// PCATContent is one content entry within a PCAT.
type PCATContent struct {
	ContentID   uint32
	Schedules   []PCATSchedule
	Descriptors descriptor.Block
}

// PCAT is the decoded Partial Content Announcement Table for one
// service_id.
type PCAT struct {
	ServiceID uint16
	Version   byte
	Contents  []PCATContent
}

// ReadPCAT decodes a PCAT from a reassembled section.
func ReadPCAT(sec psi.Section) (PCAT, bool) {
	if sec.TableID != TableIDPCAT {
		return PCAT{}, false
	}
	p := PCAT{ServiceID: sec.TableIDExtension, Version: sec.Version}
	rest := sec.Data
	for len(rest) >= 6 {
		contentID := uint32(rest[0])<<24 | uint32(rest[1])<<16 | uint32(rest[2])<<8 | uint32(rest[3])
		scheduleLen := int(rest[4]&0x0F)<<8 | int(rest[5])
		rest = rest[6:]
		if len(rest) < scheduleLen {
			return PCAT{}, false
		}
		schedule := rest[:scheduleLen]
		rest = rest[scheduleLen:]

		c := PCATContent{ContentID: contentID}
		for len(schedule) >= 8 {
			start, ok := ts.ParseMjdBCDTime(schedule[0:5])
			if !ok {
				return PCAT{}, false
			}
			secs, ok := bcdDurationSeconds(schedule[5:8])
			if !ok {
				return PCAT{}, false
			}
			c.Schedules = append(c.Schedules, PCATSchedule{StartTime: start, Duration: secs})
			schedule = schedule[8:]
		}

		if len(rest) < 2 {
			return PCAT{}, false
		}
		descLen := int(rest[0]&0x0F)<<8 | int(rest[1])
		rest = rest[2:]
		if len(rest) < descLen {
			return PCAT{}, false
		}
		c.Descriptors = descriptor.Block(rest[:descLen])
		rest = rest[descLen:]

		p.Contents = append(p.Contents, c)
	}
	return p, true
}
