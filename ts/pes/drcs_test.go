package pes

import "testing"

func TestReadDrcs1ByteUncompressed(t *testing.T) {
	// depth=0 -> bpp=1; width=8, height=8 -> 64 bits -> 8 bytes.
	pattern := make([]byte, 8)
	for i := range pattern {
		pattern[i] = byte(i)
	}
	data := []byte{
		0x01,       // number_of_code
		0x41, 0x21, // DRCS-1, code 0x21
		0x01,             // number_of_font
		0x00,             // font_id=0, mode=0000 (uncompressed twotone)
		0x00, 0x08, 0x08, // depth, width, height
	}
	data = append(data, pattern...)

	drcs, ok := ReadDrcs(data, false)
	if !ok {
		t.Fatal("ReadDrcs() ok = false, want true")
	}
	if len(drcs.Codes) != 1 {
		t.Fatalf("len(Codes) = %d, want 1", len(drcs.Codes))
	}
	code := drcs.Codes[0]
	if code.CharCode.Set != 1 || code.CharCode.Code1 != 0x21 {
		t.Fatalf("CharCode = %+v, want Set=1 Code1=0x21", code.CharCode)
	}
	if len(code.Fonts) != 1 {
		t.Fatalf("len(Fonts) = %d, want 1", len(code.Fonts))
	}
	font := code.Fonts[0]
	if font.Mode != DrcsUncompressedTwotone {
		t.Fatalf("Mode = %v, want DrcsUncompressedTwotone", font.Mode)
	}
	if len(font.Uncompressed.PatternData) != 8 {
		t.Fatalf("len(PatternData) = %d, want 8", len(font.Uncompressed.PatternData))
	}
}

func TestReadDrcs2ByteCompressed(t *testing.T) {
	data := []byte{
		0x01,       // number_of_code
		0x21, 0x22, // DRCS-0 code bytes
		0x01, // number_of_font
		0x02, // font_id=0, mode=0010 (compressed monochrome)
		0x03, 0x04, // region_x, region_y
		0x00, 0x02, // geometric_data_len = 2
		0xAA, 0xBB,
	}

	drcs, ok := ReadDrcs(data, true)
	if !ok {
		t.Fatal("ReadDrcs() ok = false, want true")
	}
	code := drcs.Codes[0]
	if code.CharCode.Set != 0 || code.CharCode.Code1 != 0x21 || code.CharCode.Code2 != 0x22 {
		t.Fatalf("CharCode = %+v, want Set=0 Code1=0x21 Code2=0x22", code.CharCode)
	}
	font := code.Fonts[0]
	if font.Mode != DrcsCompressedMonochrome {
		t.Fatalf("Mode = %v, want DrcsCompressedMonochrome", font.Mode)
	}
	if font.Compressed.RegionX != 3 || font.Compressed.RegionY != 4 {
		t.Fatalf("Compressed region = (%d,%d), want (3,4)", font.Compressed.RegionX, font.Compressed.RegionY)
	}
	if len(font.Compressed.GeometricData) != 2 {
		t.Fatalf("len(GeometricData) = %d, want 2", len(font.Compressed.GeometricData))
	}
}

func TestReadBitmap(t *testing.T) {
	data := []byte{0x00, 0x10, 0x00, 0x20, 0x02, 0x01, 0x02, 0x89, 0x50, 0x4E, 0x47}
	bmp, ok := ReadBitmap(data)
	if !ok {
		t.Fatal("ReadBitmap() ok = false, want true")
	}
	if bmp.XPosition != 0x10 || bmp.YPosition != 0x20 {
		t.Fatalf("Position = (%d,%d), want (16,32)", bmp.XPosition, bmp.YPosition)
	}
	if len(bmp.ColorIndices) != 2 || bmp.ColorIndices[0] != 1 || bmp.ColorIndices[1] != 2 {
		t.Fatalf("ColorIndices = %v, want [1 2]", bmp.ColorIndices)
	}
	if len(bmp.PNGData) != 4 {
		t.Fatalf("len(PNGData) = %d, want 4", len(bmp.PNGData))
	}
}

func TestDataUnitDecodeText(t *testing.T) {
	// Caption's default G0 is Kanji (2-byte); designate G0 = Alnum via
	// ESC ( J before the plain-ASCII payload so it decodes byte-for-byte.
	data := append([]byte{0x1B, 0x28, 0x4A}, []byte("HI")...)
	unit := DataUnit{Kind: DataUnitStatementBody, Data: data}
	res := unit.DecodeText()
	if got := res.String(); got != "HI" {
		t.Fatalf("DecodeText().String() = %q, want %q", got, "HI")
	}
}
