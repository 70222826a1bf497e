/*
NAME
  series.go

DESCRIPTION
  series.go parses the series descriptor (0xD5), which links an event to
  its position within a recurring series.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import "github.com/ausocean/isdbts/ts"

// ProgramPattern enumerates the ARIB series program_pattern values.
type ProgramPattern byte

const (
	ProgramPatternIrregular ProgramPattern = iota
	ProgramPatternSeriesRegular
	ProgramPatternSeriesIrregular
	ProgramPatternSeriesComplete
	ProgramPatternSeasonRegular
	ProgramPatternSeasonIrregular
	ProgramPatternSeasonComplete
	ProgramPatternOther
)

// Series is the decoded form of the series descriptor (0xD5).
type Series struct {
	SeriesID           uint16
	RepeatLabel        byte // 4-bit
	Pattern            ProgramPattern
	ExpireDateValid    bool
	ExpireDate         ts.MjdDate // valid only when ExpireDateValid.
	EpisodeNumber      uint16     // 12-bit
	LastEpisodeNumber  uint16     // 12-bit
	Name               []byte
}

// ReadSeries parses a Series descriptor body.
func ReadSeries(body []byte) (Series, bool) {
	if len(body) < 8 {
		return Series{}, false
	}
	s := Series{
		SeriesID:        uint16(body[0])<<8 | uint16(body[1]),
		RepeatLabel:     body[2] >> 4,
		Pattern:         ProgramPattern((body[2] >> 1) & 0x07),
		ExpireDateValid: body[2]&0x01 != 0,
		ExpireDate:      ts.MjdDate(uint16(body[3])<<8 | uint16(body[4])),
	}
	s.EpisodeNumber = uint16(body[5])<<4 | uint16(body[6]>>4)
	s.LastEpisodeNumber = (uint16(body[6]&0x0F) << 8) | uint16(body[7])
	s.Name = body[8:]
	return s, true
}
