package demux

import (
	"testing"

	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/pes"
	"github.com/ausocean/isdbts/ts/psi"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// testLogger discards everything; demux tests care about Shooter calls,
// not log output.
type testLogger struct{}

func (testLogger) SetLevel(int8)                                {}
func (testLogger) Log(level int8, msg string, args ...interface{}) {}
func (testLogger) Debug(msg string, args ...interface{})          {}
func (testLogger) Info(msg string, args ...interface{})           {}
func (testLogger) Warning(msg string, args ...interface{})        {}
func (testLogger) Error(msg string, args ...interface{})          {}
func (testLogger) Fatal(msg string, args ...interface{})          {}

// buildTSPacket assembles one 188-byte TS packet carrying payload on
// pid, stuffed to size with 0xFF.
func buildTSPacket(pid uint16, pusi bool, payload []byte) []byte {
	pkt := make([]byte, tspacket.Size)
	pkt[0] = tspacket.SyncByte
	pusiBit := byte(0)
	if pusi {
		pusiBit = 0x40
	}
	pkt[1] = pusiBit | byte(pid>>8)&0x1F
	pkt[2] = byte(pid)
	pkt[3] = 0x10 // AFC=01 payload only, CC=0
	n := copy(pkt[4:], payload)
	for i := 4 + n; i < len(pkt); i++ {
		pkt[i] = 0xFF
	}
	return pkt
}

// buildPSIPacket wraps section bytes in a single TS packet's payload,
// with the pointer field set to 0.
func buildPSIPacket(pid uint16, section []byte) []byte {
	payload := append([]byte{0x00}, section...)
	return buildTSPacket(pid, true, payload)
}

// buildSection mirrors ts/table's test helper: wraps data in a full
// section with a valid CRC.
func buildSection(tableID byte, ext uint16, version byte, data []byte) []byte {
	header := []byte{
		byte(ext >> 8), byte(ext),
		0xC0 | (version << 1) | 0x01,
		0x00,
		0x00,
	}
	header = append(header, data...)
	sectionLength := len(header) + 4
	out := []byte{tableID, byte(0x80 | (sectionLength>>8)&0x0F), byte(sectionLength)}
	out = append(out, header...)
	return psi.AppendCRC(out)
}

// recordingShooter records every callback invocation for assertion.
type recordingShooter struct {
	pat      int
	pmt      []ServiceID
	eit      []ServiceID
	video    []struct {
		pid     ts.Pid
		payload []byte
	}
	audio []struct {
		pid     ts.Pid
		payload []byte
	}
	captions     []Caption
	superimposed []Caption
	pcrServices  []ServiceID
	tot          int
}

func (r *recordingShooter) OnPATUpdated(services ServiceMap) { r.pat++ }
func (r *recordingShooter) OnPMTUpdated(services ServiceMap, service *Service) {
	r.pmt = append(r.pmt, service.ServiceID)
}
func (r *recordingShooter) OnEITUpdated(services ServiceMap, service *Service, isPresent bool) {
	r.eit = append(r.eit, service.ServiceID)
}
func (r *recordingShooter) OnVideoPacket(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte) {
	r.video = append(r.video, struct {
		pid     ts.Pid
		payload []byte
	}{pid, payload})
}
func (r *recordingShooter) OnAudioPacket(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte) {
	r.audio = append(r.audio, struct {
		pid     ts.Pid
		payload []byte
	}{pid, payload})
}
func (r *recordingShooter) OnCaption(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption Caption) {
	r.captions = append(r.captions, caption)
}
func (r *recordingShooter) OnSuperimpose(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption Caption) {
	r.superimposed = append(r.superimposed, caption)
}
func (r *recordingShooter) OnPCR(services ServiceMap, serviceIDs []ServiceID, pcr ts.Timestamp) {
	r.pcrServices = append(r.pcrServices, serviceIDs...)
}
func (r *recordingShooter) OnTOT(services ServiceMap, utc ts.DateTime, offset *descriptor.LocalTimeOffset) {
	r.tot++
}

func patSection(programNumber uint16, pmtPID uint16) []byte {
	data := []byte{byte(programNumber >> 8), byte(programNumber), 0xE0 | byte(pmtPID>>8), byte(pmtPID)}
	return buildSection(0x00, 1, 0, data)
}

func pmtSection(programNumber uint16, pcrPID uint16, streamType byte, esPID uint16) []byte {
	data := []byte{
		0xE0 | byte(pcrPID>>8), byte(pcrPID),
		0xF0, 0x00, // program_info_length = 0
		streamType, 0xE0 | byte(esPID>>8), byte(esPID), 0xF0, 0x00,
	}
	return buildSection(0x02, programNumber, 0, data)
}

func TestSorterPATThenPMT(t *testing.T) {
	sh := &recordingShooter{}
	s := NewSorter(testLogger{}, sh)

	s.Feed(buildPSIPacket(uint16(ts.PatPid), patSection(1, 0x100)))
	if sh.pat != 1 {
		t.Fatalf("OnPATUpdated called %d times, want 1", sh.pat)
	}
	svc, ok := s.services.Services[1]
	if !ok || svc.HasPMT {
		t.Fatalf("service 1 should exist with no PMT yet: %+v", svc)
	}

	s.Feed(buildPSIPacket(0x100, pmtSection(1, 0x101, 0x1B, 0x102)))
	if len(sh.pmt) != 1 || sh.pmt[0] != 1 {
		t.Fatalf("OnPMTUpdated = %v, want [1]", sh.pmt)
	}
	svc = s.services.Services[1]
	if !svc.HasPMT || svc.PCRPID != 0x101 {
		t.Fatalf("service PMT state: %+v", svc)
	}
	if len(svc.Streams) != 1 || svc.Streams[0].PID != 0x102 || svc.Streams[0].Kind != StreamVideo {
		t.Fatalf("streams: %+v", svc.Streams)
	}
	if id, ok := s.ServiceForPID(0x102); !ok || id != 1 {
		t.Fatalf("ServiceForPID(0x102) = %v,%v, want 1,true", id, ok)
	}
}

func TestSorterVideoPacketDispatch(t *testing.T) {
	sh := &recordingShooter{}
	s := NewSorter(testLogger{}, sh)
	s.Feed(buildPSIPacket(uint16(ts.PatPid), patSection(1, 0x100)))
	s.Feed(buildPSIPacket(0x100, pmtSection(1, 0x101, 0x1B, 0x102)))

	pesPayload := []byte{0x00, 0x00, 0x01, 0xE0, 0x00, 0x00, 0x80, 0x00, 0x00, 0xAA, 0xBB}
	// First packet on the video PID (PUSI set) opens the PES; a second
	// packet with PUSI set flushes it to the Shooter.
	s.Feed(buildTSPacket(0x102, true, pesPayload))
	s.Feed(buildTSPacket(0x102, true, pesPayload))

	if len(sh.video) != 1 {
		t.Fatalf("video packets = %d, want 1", len(sh.video))
	}
	if sh.video[0].pid != 0x102 {
		t.Fatalf("video pid = %v, want 0x102", sh.video[0].pid)
	}
	if len(sh.video[0].payload) != 2 || sh.video[0].payload[0] != 0xAA {
		t.Fatalf("video payload = %v, want [0xAA 0xBB]", sh.video[0].payload)
	}
}

func TestSorterCaptionDispatch(t *testing.T) {
	sh := &recordingShooter{}
	s := NewSorter(testLogger{}, sh)
	s.Feed(buildPSIPacket(uint16(ts.PatPid), patSection(1, 0x100)))
	s.Feed(buildPSIPacket(0x100, pmtSection(1, 0x101, 0x06, 0x103)))

	// Caption management data: TMD=Free, 0 languages, one StatementBody
	// data unit containing "HI".
	var capData []byte
	capData = append(capData, 0x00, 0x00) // TMD=Free, num_languages=0
	du := []byte{0x1F, 0x20, 0x00, 0x00, 0x02, 'H', 'I'}
	capData = append(capData, byte(len(du)>>16), byte(len(du)>>8), byte(len(du)))
	capData = append(capData, du...)

	dataGroup := []byte{0x00, 0x00, 0x00, byte(len(capData) >> 8), byte(len(capData))}
	dataGroup = append(dataGroup, capData...)

	pesPayload := []byte{0x00, 0x00, 0x01, pes.StreamIDPrivateStream1, 0x00, 0x00, 0x80, 0x00, 0x00}
	pesPayload = append(pesPayload, dataGroup...)

	s.Feed(buildTSPacket(0x103, true, pesPayload))
	s.Feed(buildTSPacket(0x103, true, pesPayload)) // flush

	if len(sh.captions) != 1 {
		t.Fatalf("captions = %d, want 1", len(sh.captions))
	}
	got := sh.captions[0]
	if got.Management == nil {
		t.Fatal("caption Management = nil, want non-nil")
	}
	if len(got.Management.DataUnits) != 1 {
		t.Fatalf("DataUnits = %+v", got.Management.DataUnits)
	}
	if got.Management.DataUnits[0].DecodeText().String() == "" {
		t.Error("DecodeText().String() is empty")
	}
}

func TestDemuxerUnwatchedPIDIgnored(t *testing.T) {
	d := NewDemuxer()
	pkt, err := tspacket.Parse(buildTSPacket(0x200, true, []byte{0x01, 0x02}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d.Feed(&pkt) // must not panic with no filter installed.
}

func TestDemuxerPCRTap(t *testing.T) {
	d := NewDemuxer()
	var got ts.Timestamp
	var calls int
	d.WatchPCR(0x300, func(pcr ts.Timestamp, ext uint16) {
		got = pcr
		calls++
	})

	data := make([]byte, tspacket.Size)
	data[0] = tspacket.SyncByte
	data[1] = byte(0x300 >> 8)
	data[2] = byte(0x300 & 0xFF)
	data[3] = 0x20 // AFC=10 adaptation only
	data[4] = 7    // adaptation_field_length
	data[5] = 0x10 // PCR_flag set
	// 6-byte PCR field: base=12345, ext=0.
	base := uint64(12345)
	data[6] = byte(base >> 25)
	data[7] = byte(base >> 17)
	data[8] = byte(base >> 9)
	data[9] = byte(base >> 1)
	data[10] = byte((base&1)<<7) | 0x7E // reserved bits 6-1 set, ext bit0 = 0
	data[11] = 0x00

	pkt, err := tspacket.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d.Feed(&pkt)
	if calls != 1 {
		t.Fatalf("PCR callback called %d times, want 1", calls)
	}
	if got != ts.NewTimestamp(base) {
		t.Fatalf("PCR = %v, want %v", got, ts.NewTimestamp(base))
	}
}

// multiPATSection builds a PAT listing programs in the given wire
// order, which need not be numerically ascending.
func multiPATSection(version byte, programs ...[2]uint16) []byte {
	var data []byte
	for _, p := range programs {
		programNumber, pmtPID := p[0], p[1]
		data = append(data, byte(programNumber>>8), byte(programNumber), 0xE0|byte(pmtPID>>8), byte(pmtPID))
	}
	return buildSection(0x00, 1, version, data)
}

func TestDefaultServiceFollowsPATWireOrder(t *testing.T) {
	sh := &recordingShooter{}
	s := NewSorter(testLogger{}, sh)

	// Program numbers deliberately out of ascending order: the first
	// PAT entry, not the lowest id, is the default service.
	s.Feed(buildPSIPacket(uint16(ts.PatPid), multiPATSection(0, [2]uint16{0x0200, 0x100}, [2]uint16{0x0100, 0x110})))

	def, ok := s.services.Default()
	if !ok || def.ServiceID != 0x0200 {
		t.Fatalf("Default() = %+v,%v, want service 0x0200", def, ok)
	}
	sorted := s.services.Sorted()
	if len(sorted) != 2 || sorted[0].ServiceID != 0x0200 || sorted[1].ServiceID != 0x0100 {
		t.Fatalf("Sorted() order = %+v, want [0x0200 0x0100]", sorted)
	}

	// A revised PAT that swaps the order also swaps the default.
	s.Feed(buildPSIPacket(uint16(ts.PatPid), multiPATSection(1, [2]uint16{0x0100, 0x110}, [2]uint16{0x0200, 0x100})))
	def, ok = s.services.Default()
	if !ok || def.ServiceID != 0x0100 {
		t.Fatalf("Default() after PAT revision = %+v,%v, want service 0x0100", def, ok)
	}
}
