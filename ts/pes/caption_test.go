package pes

import "testing"

func TestReadDataGroup(t *testing.T) {
	data := []byte{
		(0x00 << 2) | 0x01, // data_group_id=0, version=1
		0x00,               // link_number
		0x00,               // last_link_number
		0x00, 0x03,          // data_group_size = 3
		0xAA, 0xBB, 0xCC,
	}
	dg, ok := ReadDataGroup(data)
	if !ok {
		t.Fatal("ReadDataGroup() ok = false, want true")
	}
	if dg.DataGroupVersion != 1 {
		t.Fatalf("DataGroupVersion = %d, want 1", dg.DataGroupVersion)
	}
	if len(dg.Data) != 3 || dg.Data[0] != 0xAA {
		t.Fatalf("Data = %v, want [0xAA 0xBB 0xCC]", dg.Data)
	}
}

func TestReadDataGroupTruncated(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x05, 0x01}
	if _, ok := ReadDataGroup(data); ok {
		t.Fatal("ReadDataGroup() ok = true for truncated data")
	}
}

// textDataUnit builds a single StatementBody data_unit containing text,
// wrapped in the data_unit_loop_length framing.
func textDataUnit(text []byte) []byte {
	var du []byte
	du = append(du, dataUnitSeparator, 0x20) // parameter = statement body
	size := len(text)
	du = append(du, byte(size>>16), byte(size>>8), byte(size))
	du = append(du, text...)

	var out []byte
	n := len(du)
	out = append(out, byte(n>>16), byte(n>>8), byte(n))
	out = append(out, du...)
	return out
}

func TestReadCaptionManagementDataFreeNoOffset(t *testing.T) {
	var data []byte
	data = append(data, 0x00) // TMD=Free(00), num_languages filled below
	data = append(data, 0x01) // num_languages = 1
	// language: tag=0, dmf_recv=AutoDisplay(00), dmf_playback=AutoDisplay(00)
	data = append(data, 0x00)
	data = append(data, 'j', 'p', 'n') // lang_code
	data = append(data, 0x00)          // format=StandardDensityHorz, tcs=EightUnit, rollup=None
	data = append(data, textDataUnit([]byte("HI"))...)

	md, ok := ReadCaptionManagementData(data)
	if !ok {
		t.Fatal("ReadCaptionManagementData() ok = false, want true")
	}
	if md.TMD != TimeControlFree || md.HasOffset {
		t.Fatalf("TMD/HasOffset = %v/%v, want Free/false", md.TMD, md.HasOffset)
	}
	if len(md.Languages) != 1 {
		t.Fatalf("len(Languages) = %d, want 1", len(md.Languages))
	}
	lang := md.Languages[0]
	if lang.LangCode != [3]byte{'j', 'p', 'n'} {
		t.Fatalf("LangCode = %s, want jpn", string(lang.LangCode[:]))
	}
	if len(md.DataUnits) != 1 || md.DataUnits[0].Kind != DataUnitStatementBody {
		t.Fatalf("DataUnits = %+v, want one StatementBody", md.DataUnits)
	}
	if string(md.DataUnits[0].Data) != "HI" {
		t.Fatalf("DataUnits[0].Data = %q, want %q", md.DataUnits[0].Data, "HI")
	}
}

func TestReadCaptionManagementDataWithOffset(t *testing.T) {
	var data []byte
	data = append(data, 0x02<<6) // TMD=OffsetTime(10)
	// OTM: 01:02:03.045 BCD -> 3723045 ms
	data = append(data, 0x01, 0x02, 0x03, 0x04, 0x50)
	data = append(data, 0x00) // num_languages = 0
	data = append(data, textDataUnit([]byte("X"))...)

	md, ok := ReadCaptionManagementData(data)
	if !ok {
		t.Fatal("ReadCaptionManagementData() ok = false, want true")
	}
	if !md.HasOffset {
		t.Fatal("HasOffset = false, want true")
	}
	wantMillis := (1*3600+2*60+3)*1000 + 45
	if md.OffsetMillis != wantMillis {
		t.Fatalf("OffsetMillis = %d, want %d", md.OffsetMillis, wantMillis)
	}
}

func TestReadCaptionDataRealTime(t *testing.T) {
	var data []byte
	data = append(data, 0x01<<6) // TMD=RealTime(01)
	data = append(data, 0x00, 0x00, 0x05, 0x00, 0x00) // STM = 5s = 5000ms
	data = append(data, textDataUnit([]byte("CAP"))...)

	cd, ok := ReadCaptionData(data)
	if !ok {
		t.Fatal("ReadCaptionData() ok = false, want true")
	}
	if !cd.HasSTM || cd.STMMillis != 5000 {
		t.Fatalf("HasSTM/STMMillis = %v/%d, want true/5000", cd.HasSTM, cd.STMMillis)
	}
	if len(cd.DataUnits) != 1 || string(cd.DataUnits[0].Data) != "CAP" {
		t.Fatalf("DataUnits = %+v, want one unit with data CAP", cd.DataUnits)
	}
}

func TestReadDataUnitsMultiple(t *testing.T) {
	var loop []byte
	first := textDataUnit([]byte("A"))[3:]  // strip the outer loop-length prefix
	second := textDataUnit([]byte("BB"))[3:]
	combined := append(append([]byte{}, first...), second...)
	n := len(combined)
	loop = append(loop, byte(n>>16), byte(n>>8), byte(n))
	loop = append(loop, combined...)

	units, ok := readDataUnits(loop)
	if !ok {
		t.Fatal("readDataUnits() ok = false, want true")
	}
	if len(units) != 2 {
		t.Fatalf("len(units) = %d, want 2", len(units))
	}
	if string(units[0].Data) != "A" || string(units[1].Data) != "BB" {
		t.Fatalf("units = %+v", units)
	}
}
