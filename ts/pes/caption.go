/*
NAME
  caption.go

DESCRIPTION
  caption.go decodes the ARIB STD-B24 caption data carried in a PES
  private_stream_1 payload: the DataGroup wrapper, caption management
  data (language table, time-control mode), caption statement data,
  and the data_unit loop (statement text, DRCS, colormap, bitmap).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pes

import (
	"github.com/ausocean/isdbts/bits"
	"github.com/ausocean/isdbts/ts/charset"
)

// DataGroup is the outer framing every caption management/statement
// payload is wrapped in.
type DataGroup struct {
	DataGroupID      byte // 6 bits.
	DataGroupVersion byte // 2 bits.
	LinkNumber       byte
	LastLinkNumber   byte
	Data             []byte
}

// ReadDataGroup decodes a DataGroup from data.
func ReadDataGroup(data []byte) (DataGroup, bool) {
	if len(data) < 5 {
		return DataGroup{}, false
	}
	size := int(data[3])<<8 | int(data[4])
	if len(data) < 5+size {
		return DataGroup{}, false
	}
	return DataGroup{
		DataGroupID:      (data[0] & 0xFC) >> 2,
		DataGroupVersion: data[0] & 0x03,
		LinkNumber:       data[1],
		LastLinkNumber:   data[2],
		Data:             data[5 : 5+size],
	}, true
}

// TimeControlMode governs whether a management/statement payload
// carries an offset/start timestamp.
type TimeControlMode int

const (
	TimeControlFree TimeControlMode = iota
	TimeControlRealTime
	TimeControlOffsetTime
	TimeControlReserved
)

func decodeTimeControlMode(v byte) TimeControlMode {
	switch v & 0x3 {
	case 0:
		return TimeControlFree
	case 1:
		return TimeControlRealTime
	case 2:
		return TimeControlOffsetTime
	default:
		return TimeControlReserved
	}
}

// DisplayMode is a language's receive/playback display mode.
type DisplayMode int

const (
	DisplayAutoDisplay DisplayMode = iota
	DisplayAutoHide
	DisplaySelectable
	DisplayMayDisplay
)

func decodeDisplayMode(v byte) DisplayMode { return DisplayMode(v & 0x3) }

// CaptionFormat is a language's presentation format (density/orientation).
type CaptionFormat int

const (
	FormatStandardDensityHorz CaptionFormat = iota
	FormatStandardDensityVert
	FormatHighDensityHorz
	FormatHighDensityVert
	FormatWesternHorz
	FormatFhdHorz
	FormatFhdVert
	FormatQhdHorz
	FormatQhdVert
	FormatHdHorz
	FormatHdVert
	FormatSdHorz
	FormatSdVert
	FormatUnknown
)

func decodeCaptionFormat(v byte) CaptionFormat {
	switch v & 0xF {
	case 0x0:
		return FormatStandardDensityHorz
	case 0x1:
		return FormatStandardDensityVert
	case 0x2:
		return FormatHighDensityHorz
	case 0x3:
		return FormatHighDensityVert
	case 0x4:
		return FormatWesternHorz
	case 0x6:
		return FormatFhdHorz
	case 0x7:
		return FormatFhdVert
	case 0x8:
		return FormatQhdHorz
	case 0x9:
		return FormatQhdVert
	case 0xC:
		return FormatHdHorz
	case 0xD:
		return FormatHdVert
	case 0xA:
		return FormatSdHorz
	case 0xB:
		return FormatSdVert
	default:
		return FormatUnknown
	}
}

// CaptionCharCode names a language's text encoding.
type CaptionCharCode int

const (
	CharCodeEightUnit CaptionCharCode = iota
	CharCodeUCS
	CharCodeReserved
)

func decodeCaptionCharCode(v byte) CaptionCharCode {
	switch (v >> 2) & 0x3 {
	case 0:
		return CharCodeEightUnit
	case 1:
		return CharCodeUCS
	default:
		return CharCodeReserved
	}
}

// CaptionRollupMode names a language's rollup behaviour.
type CaptionRollupMode int

const (
	RollupNone CaptionRollupMode = iota
	RollupEnabled
	RollupReserved
)

func decodeCaptionRollupMode(v byte) CaptionRollupMode {
	switch v & 0x3 {
	case 0:
		return RollupNone
	case 1:
		return RollupEnabled
	default:
		return RollupReserved
	}
}

// CaptionLanguage is one entry in management data's language table.
type CaptionLanguage struct {
	LanguageTag byte // 0-7: 1st-8th language.
	DMFRecv     DisplayMode
	DMFPlayback DisplayMode
	DC          byte // Display condition; only valid when HasDC.
	HasDC       bool
	LangCode    [3]byte
	Format      CaptionFormat
	CharCode    CaptionCharCode
	RollupMode  CaptionRollupMode
}

// CaptionManagementData is the caption management_data payload (data
// group 0x00/0x20): per-language formatting, plus the data units that
// follow it (usually a single StatementBody with the caption's default
// display text, if any).
type CaptionManagementData struct {
	TMD          TimeControlMode
	HasOffset    bool
	OffsetMillis int
	Languages    []CaptionLanguage
	DataUnits    []DataUnit
}

// ReadCaptionManagementData decodes a CaptionManagementData payload.
func ReadCaptionManagementData(data []byte) (CaptionManagementData, bool) {
	if len(data) < 1 {
		return CaptionManagementData{}, false
	}
	md := CaptionManagementData{TMD: decodeTimeControlMode(data[0] >> 6)}
	data = data[1:]

	if md.TMD == TimeControlOffsetTime {
		if len(data) < 5 {
			return CaptionManagementData{}, false
		}
		ms, ok := bits.ReadBCDMilli(data[0:5])
		if !ok {
			return CaptionManagementData{}, false
		}
		md.HasOffset = true
		md.OffsetMillis = ms
		data = data[5:]
	}

	if len(data) < 1 {
		return CaptionManagementData{}, false
	}
	numLanguages := int(data[0])
	data = data[1:]

	md.Languages = make([]CaptionLanguage, 0, numLanguages)
	for i := 0; i < numLanguages; i++ {
		if len(data) < 1 {
			return CaptionManagementData{}, false
		}
		lang := CaptionLanguage{
			LanguageTag: (data[0] & 0xE0) >> 5,
			DMFRecv:     decodeDisplayMode((data[0] & 0x0C) >> 2),
			DMFPlayback: decodeDisplayMode(data[0] & 0x03),
		}
		data = data[1:]

		if lang.DMFRecv == DisplayMayDisplay && lang.DMFPlayback != DisplayMayDisplay {
			if len(data) < 1 {
				return CaptionManagementData{}, false
			}
			lang.DC = data[0]
			lang.HasDC = true
			data = data[1:]
		}

		if len(data) < 4 {
			return CaptionManagementData{}, false
		}
		copy(lang.LangCode[:], data[0:3])
		lang.Format = decodeCaptionFormat(data[3] >> 4)
		lang.CharCode = decodeCaptionCharCode(data[3])
		lang.RollupMode = decodeCaptionRollupMode(data[3])
		data = data[4:]

		md.Languages = append(md.Languages, lang)
	}

	units, ok := readDataUnits(data)
	if !ok {
		return CaptionManagementData{}, false
	}
	md.DataUnits = units
	return md, true
}

// CaptionData is a caption statement payload (data group 0x01-0x0F /
// 0x21-0x2F): the displayable text and inline formatting for one
// language track.
type CaptionData struct {
	TMD       TimeControlMode
	HasSTM    bool
	STMMillis int
	DataUnits []DataUnit
}

// ReadCaptionData decodes a CaptionData payload.
func ReadCaptionData(data []byte) (CaptionData, bool) {
	if len(data) < 1 {
		return CaptionData{}, false
	}
	cd := CaptionData{TMD: decodeTimeControlMode(data[0] >> 6)}
	data = data[1:]

	if cd.TMD == TimeControlRealTime || cd.TMD == TimeControlOffsetTime {
		if len(data) < 5 {
			return CaptionData{}, false
		}
		ms, ok := bits.ReadBCDMilli(data[0:5])
		if !ok {
			return CaptionData{}, false
		}
		cd.HasSTM = true
		cd.STMMillis = ms
		data = data[5:]
	}

	units, ok := readDataUnits(data)
	if !ok {
		return CaptionData{}, false
	}
	cd.DataUnits = units
	return cd, true
}

// DataUnitKind distinguishes the payload types inside a data_unit loop.
type DataUnitKind int

const (
	DataUnitStatementBody DataUnitKind = iota
	DataUnitGeometric
	DataUnitSynthesizedSound
	DataUnitDRCS1Byte
	DataUnitDRCS2Byte
	DataUnitColormap
	DataUnitBitmap
	DataUnitUnknown
)

func decodeDataUnitKind(parameter byte) DataUnitKind {
	switch parameter {
	case 0x20:
		return DataUnitStatementBody
	case 0x28:
		return DataUnitGeometric
	case 0x2C:
		return DataUnitSynthesizedSound
	case 0x30:
		return DataUnitDRCS1Byte
	case 0x31:
		return DataUnitDRCS2Byte
	case 0x34:
		return DataUnitColormap
	case 0x35:
		return DataUnitBitmap
	default:
		return DataUnitUnknown
	}
}

// DataUnit is one entry in a data_unit loop.
type DataUnit struct {
	Parameter byte
	Kind      DataUnitKind
	Data      []byte // Raw data_unit_data; decode via Drcs/Bitmap helpers as needed.
}

// DecodeText decodes a StatementBody data unit's 8-unit code bytes
// into text and control events, under the standard caption code state.
// It returns a zero Result for any other DataUnitKind.
func (u DataUnit) DecodeText() charset.Result {
	if u.Kind != DataUnitStatementBody {
		return charset.Result{}
	}
	return charset.Decode(u.Data, charset.Caption)
}

const dataUnitSeparator = 0x1F

// readDataUnits decodes the data_unit_loop_length-prefixed sequence of
// data units that terminates a management/statement payload.
func readDataUnits(data []byte) ([]DataUnit, bool) {
	if len(data) < 3 {
		return nil, false
	}
	loopLen := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	data = data[3:]
	if len(data) < loopLen {
		return nil, false
	}
	data = data[:loopLen]

	var units []DataUnit
	for len(data) > 0 {
		if len(data) < 5 || data[0] != dataUnitSeparator {
			return nil, false
		}
		parameter := data[1]
		size := int(data[2])<<16 | int(data[3])<<8 | int(data[4])
		data = data[5:]
		if len(data) < size {
			return nil, false
		}
		units = append(units, DataUnit{
			Parameter: parameter,
			Kind:      decodeDataUnitKind(parameter),
			Data:      data[:size],
		})
		data = data[size:]
	}
	return units, true
}
