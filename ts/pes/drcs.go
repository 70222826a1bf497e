/*
NAME
  drcs.go

DESCRIPTION
  drcs.go decodes the DRCS (Dynamically Redefinable Character Set) and
  bitmap data_unit payloads: the per-character font table and either
  uncompressed raster or compressed geometric glyph data.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pes

// DrcsCharCode identifies which DRCS code table (DRCS-0 through
// DRCS-15) a glyph belongs to, and its code point within it. DRCS-0 is
// 2-byte (Code1/Code2 both set); DRCS-1 through DRCS-15 are 1-byte
// (only Code1 set).
type DrcsCharCode struct {
	Set   int // 0-15.
	Code1 byte
	Code2 byte // Only meaningful when Set == 0.
}

// DrcsFontDataMode distinguishes the four DRCS font transmission modes.
type DrcsFontDataMode int

const (
	DrcsUncompressedTwotone DrcsFontDataMode = iota
	DrcsUncompressedMultitone
	DrcsCompressedMonochrome
	DrcsCompressedMulticolor
	DrcsUnknownMode
)

// DrcsUncompressedData is an uncompressed DRCS glyph raster.
type DrcsUncompressedData struct {
	Depth       byte
	Width       byte
	Height      byte
	PatternData []byte
}

// DrcsCompressedData is a compressed (geometric) DRCS glyph.
type DrcsCompressedData struct {
	RegionX      byte
	RegionY      byte
	GeometricData []byte
}

// DrcsFont is one font rendition of a DRCS code.
type DrcsFont struct {
	FontID     byte // 4 bits.
	Mode       DrcsFontDataMode
	Uncompressed DrcsUncompressedData
	Compressed   DrcsCompressedData
}

// DrcsCode is one DRCS character: its code and every font rendition
// transmitted for it.
type DrcsCode struct {
	CharCode DrcsCharCode
	Fonts    []DrcsFont
}

// Drcs is a decoded DRCS data_unit payload (DataUnitDRCS1Byte or
// DataUnitDRCS2Byte).
type Drcs struct {
	Codes []DrcsCode
}

// ReadDrcs decodes a DRCS data_unit payload. twoByte selects the
// DataUnitDRCS2Byte framing (DRCS-0, two code bytes) versus the 1-byte
// framing (DRCS-1 through DRCS-15, selected by a mode byte).
func ReadDrcs(data []byte, twoByte bool) (Drcs, bool) {
	if len(data) < 1 {
		return Drcs{}, false
	}
	numberOfCode := int(data[0])
	data = data[1:]

	codes := make([]DrcsCode, 0, numberOfCode)
	for i := 0; i < numberOfCode; i++ {
		if len(data) < 3 {
			return Drcs{}, false
		}

		var cc DrcsCharCode
		if twoByte {
			cc = DrcsCharCode{Set: 0, Code1: data[0], Code2: data[1]}
			data = data[2:]
		} else {
			if data[0] < 0x41 || data[0] > 0x4F {
				return Drcs{}, false
			}
			cc = DrcsCharCode{Set: int(data[0] - 0x40), Code1: data[1]}
			data = data[2:]
		}

		numberOfFont := int(data[0])
		data = data[1:]

		fonts := make([]DrcsFont, 0, numberOfFont)
		for j := 0; j < numberOfFont; j++ {
			if len(data) < 1 {
				return Drcs{}, false
			}
			font := DrcsFont{
				FontID: (data[0] & 0xF0) >> 4,
			}
			mode := data[0] & 0x0F
			data = data[1:]

			switch mode {
			case 0x0, 0x1:
				if len(data) < 3 {
					return Drcs{}, false
				}
				depth, width, height := data[0], data[1], data[2]
				data = data[3:]
				bpp := uncompressedBitsPerPixel(depth)
				size := int(width) * int(height)
				n := (size*bpp + 7) / 8
				if len(data) < n {
					return Drcs{}, false
				}
				font.Uncompressed = DrcsUncompressedData{Depth: depth, Width: width, Height: height, PatternData: data[:n]}
				data = data[n:]
				if mode == 0x0 {
					font.Mode = DrcsUncompressedTwotone
				} else {
					font.Mode = DrcsUncompressedMultitone
				}
			case 0x2, 0x3:
				if len(data) < 4 {
					return Drcs{}, false
				}
				regionX, regionY := data[0], data[1]
				n := int(data[2])<<8 | int(data[3])
				data = data[4:]
				if len(data) < n {
					return Drcs{}, false
				}
				font.Compressed = DrcsCompressedData{RegionX: regionX, RegionY: regionY, GeometricData: data[:n]}
				data = data[n:]
				if mode == 0x2 {
					font.Mode = DrcsCompressedMonochrome
				} else {
					font.Mode = DrcsCompressedMulticolor
				}
			default:
				font.Mode = DrcsUnknownMode
			}

			fonts = append(fonts, font)
		}

		codes = append(codes, DrcsCode{CharCode: cc, Fonts: fonts})
	}

	return Drcs{Codes: codes}, true
}

// uncompressedBitsPerPixel computes bits-per-pixel from a DRCS depth
// value: ceil(log2(depth + 2)).
func uncompressedBitsPerPixel(depth byte) int {
	levels := int(depth) + 2
	bpp := 0
	for (1 << bpp) < levels {
		bpp++
	}
	return bpp
}

// Bitmap is a decoded bitmap data_unit payload (DataUnitBitmap): a PNG
// image to be drawn at (XPosition, YPosition), with an optional list of
// palette indices to flash.
type Bitmap struct {
	XPosition    uint16
	YPosition    uint16
	ColorIndices []byte
	PNGData      []byte
}

// ReadBitmap decodes a Bitmap data_unit payload.
func ReadBitmap(data []byte) (Bitmap, bool) {
	if len(data) < 5 {
		return Bitmap{}, false
	}
	x := uint16(data[0])<<8 | uint16(data[1])
	y := uint16(data[2])<<8 | uint16(data[3])
	numFlcColors := int(data[4])
	data = data[5:]
	if len(data) < numFlcColors {
		return Bitmap{}, false
	}
	return Bitmap{
		XPosition:    x,
		YPosition:    y,
		ColorIndices: data[:numFlcColors],
		PNGData:      data[numFlcColors:],
	}, true
}
