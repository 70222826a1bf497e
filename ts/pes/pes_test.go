package pes

import "testing"

func TestReadHeaderPTSOnly(t *testing.T) {
	// Fixed header (6) + flags/header-length (3) + 5-byte PTS + 2 payload bytes.
	data := []byte{
		0x00, 0x00, 0x01, StreamIDPrivateStream1,
		0x00, 0x0C, // PES_packet_length (not validated by ReadHeader)
		0x80,       // '10' + no other flag1 bits
		0x80,       // PDI=10 (PTS only)
		0x05,       // header_data_length
		0x21, 0x00, 0x01, 0x00, 0x01, // PTS field, '0010' marker + bits
		0xAB, 0xCD, // payload
	}
	h, ok := ReadHeader(data)
	if !ok {
		t.Fatal("ReadHeader() ok = false, want true")
	}
	if h.StreamID != StreamIDPrivateStream1 {
		t.Fatalf("StreamID = %#x, want %#x", h.StreamID, StreamIDPrivateStream1)
	}
	if !h.HasPTS || h.HasDTS {
		t.Fatalf("HasPTS/HasDTS = %v/%v, want true/false", h.HasPTS, h.HasDTS)
	}
	if len(h.Payload) != 2 || h.Payload[0] != 0xAB || h.Payload[1] != 0xCD {
		t.Fatalf("Payload = %v, want [0xAB 0xCD]", h.Payload)
	}
}

func TestReadHeaderNoOptionalFields(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x01, StreamIDPrivateStream1,
		0x00, 0x03,
		0x80, 0x00, 0x00, // no PTS/DTS, header_data_length = 0
		0x01, 0x02,
	}
	h, ok := ReadHeader(data)
	if !ok {
		t.Fatal("ReadHeader() ok = false, want true")
	}
	if h.HasPTS || h.HasDTS {
		t.Fatalf("HasPTS/HasDTS = %v/%v, want false/false", h.HasPTS, h.HasDTS)
	}
	if len(h.Payload) != 2 {
		t.Fatalf("len(Payload) = %d, want 2", len(h.Payload))
	}
}

func TestReadHeaderBadPrefix(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0xBD, 0x00, 0x00}
	if _, ok := ReadHeader(data); ok {
		t.Fatal("ReadHeader() ok = true for bad start code prefix")
	}
}
