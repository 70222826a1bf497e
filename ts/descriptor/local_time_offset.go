/*
NAME
  local_time_offset.go

DESCRIPTION
  local_time_offset.go parses the local time offset descriptor (0x58),
  carried by the TOT to describe the offset between UTC and local time
  for one or more country/region pairs, including the next scheduled
  change.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import (
	"time"

	"github.com/ausocean/isdbts/bits"
	"github.com/ausocean/isdbts/ts"
)

// LocalTimeOffsetEntry is one country/region entry within a local time
// offset descriptor.
type LocalTimeOffsetEntry struct {
	CountryCode     [3]byte
	CountryRegionID byte // 6-bit
	// Negative reports the local_time_offset_polarity bit: the offset
	// is subtracted from UTC when set.
	Negative     bool
	Offset       time.Duration
	TimeOfChange ts.DateTime
	NextOffset   time.Duration
}

// LocalTimeOffset is the decoded form of the local time offset
// descriptor (0x58).
type LocalTimeOffset struct {
	Entries []LocalTimeOffsetEntry
}

// ReadLocalTimeOffset parses a LocalTimeOffset descriptor body.
func ReadLocalTimeOffset(body []byte) (LocalTimeOffset, bool) {
	var l LocalTimeOffset
	rest := body
	for len(rest) > 0 {
		if len(rest) < 13 {
			return LocalTimeOffset{}, false
		}
		var e LocalTimeOffsetEntry
		copy(e.CountryCode[:], rest[0:3])
		e.CountryRegionID = rest[3] >> 2
		e.Negative = rest[3]&0x01 != 0
		off, ok := readBCDHHMM(rest[4:6])
		if !ok {
			return LocalTimeOffset{}, false
		}
		e.Offset = off
		toc, ok := ts.ParseMjdBCDTime(rest[6:11])
		if !ok {
			return LocalTimeOffset{}, false
		}
		e.TimeOfChange = toc
		next, ok := readBCDHHMM(rest[11:13])
		if !ok {
			return LocalTimeOffset{}, false
		}
		e.NextOffset = next
		l.Entries = append(l.Entries, e)
		rest = rest[13:]
	}
	return l, true
}

// readBCDHHMM decodes a 2-byte BCD HHMM offset field.
func readBCDHHMM(b []byte) (time.Duration, bool) {
	h, ok := bits.ReadBCD(b[0:1], 2)
	if !ok {
		return 0, false
	}
	m, ok := bits.ReadBCD(b[1:2], 2)
	if !ok {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, true
}
