package ts

import "testing"

func TestMjdRoundTrip(t *testing.T) {
	// 2024-01-01 JST 00:00:00 -> MJD 60310.
	b := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	b[0] = byte(60310 >> 8)
	b[1] = byte(60310 & 0xFF)
	dt, ok := ParseMjdBCDTime(b)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	rt := dt.Bytes()
	for i := range b {
		if rt[i] != b[i] {
			t.Fatalf("round trip mismatch at byte %d: got %x, want %x", i, rt, b)
		}
	}
}

func TestParseMjdBCDTimeShort(t *testing.T) {
	if _, ok := ParseMjdBCDTime([]byte{0, 1, 2}); ok {
		t.Fatalf("expected ok=false on short input")
	}
}
