package tspacket

import (
	"testing"

	"github.com/ausocean/isdbts/ts"
)

func buildPacket(pid ts.Pid, pusi bool, cc byte, payload []byte) []byte {
	p := make([]byte, Size)
	p[0] = SyncByte
	p[1] = byte(pid >> 8)
	if pusi {
		p[1] |= 0x40
	}
	p[2] = byte(pid)
	p[3] = AFCPayloadOnly<<4 | cc
	n := copy(p[4:], payload)
	for i := 4 + n; i < Size; i++ {
		p[i] = 0xFF
	}
	return p
}

func TestParseBasic(t *testing.T) {
	raw := buildPacket(0x101, true, 5, []byte("hello"))
	pkt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkt.PID != 0x101 || !pkt.PUSI || pkt.CC != 5 {
		t.Fatalf("unexpected packet fields: %+v", pkt)
	}
	if pkt.PID > 0x1FFF {
		t.Fatalf("PID out of range: %x", pkt.PID)
	}
}

func TestParseShort(t *testing.T) {
	if _, err := Parse(make([]byte, 10)); err != ErrShort {
		t.Fatalf("got %v, want ErrShort", err)
	}
}

func TestParseBadSync(t *testing.T) {
	raw := buildPacket(0, false, 0, nil)
	raw[0] = 0x00
	if _, err := Parse(raw); err != ErrBadSync {
		t.Fatalf("got %v, want ErrBadSync", err)
	}
}

func TestParseAdaptationWithPCR(t *testing.T) {
	raw := make([]byte, Size)
	raw[0] = SyncByte
	raw[1] = 0x01
	raw[2] = 0x00
	raw[3] = AFCAdaptationThenPayload<<4 | 3
	raw[4] = 7 // adaptation length
	raw[5] = 0x10 // PCR flag
	// PCR base=1, ext=0 encoded across 6 bytes.
	raw[6], raw[7], raw[8], raw[9], raw[10], raw[11] = 0x00, 0x00, 0x00, 0x00, 0x80, 0x00
	copy(raw[12:], []byte("pay"))
	pkt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkt.Adapt == nil || !pkt.Adapt.PCRFlag {
		t.Fatalf("expected adaptation field with PCR flag set")
	}
	if pkt.Adapt.PCR != 1 {
		t.Fatalf("got PCR %d, want 1", pkt.Adapt.PCR)
	}
	if pkt.Payload == nil || string(pkt.Payload[:3]) != "pay" {
		t.Fatalf("unexpected payload: %q", pkt.Payload)
	}
}

func TestEveryParsedPacketPidInRange(t *testing.T) {
	for _, pid := range []ts.Pid{0, 0x100, 0x1FFE, 0x1FFF} {
		raw := buildPacket(pid, false, 0, nil)
		pkt, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if pkt.PID > 0x1FFF || pkt.PID != pid {
			t.Fatalf("got PID %x, want %x", pkt.PID, pid)
		}
	}
}
