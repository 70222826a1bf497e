package extractor

import (
	"bytes"
	"testing"
	"time"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// testLogger discards everything, per demux's own test helper style
// (demux/demux_test.go).
type testLogger struct{}

func (testLogger) SetLevel(int8) {}
func (testLogger) Log(level int8, msg string, args ...interface{}) {}
func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{}) {}
func (testLogger) Warning(msg string, args ...interface{}) {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

// memSource is an in-memory Source over a fixed byte slice.
type memSource struct {
	*bytes.Reader
}

func newMemSource(data []byte) *memSource { return &memSource{bytes.NewReader(data)} }

func (m *memSource) Seek(offset int64, whence int) (int64, error) {
	return m.Reader.Seek(offset, whence)
}

// fakeSink records every callback for assertion and always reports it
// wants more ES.
type fakeSink struct {
	needsES bool

	servicesUpdated int
	streamsUpdated  int
	eventUpdated    int
	serviceChanged  []demux.ServiceID
	streamChanged   int
	video           [][]byte
	audio           [][]byte
	captions        int
	superimposed    int
	pcr             int
	tot             int
	seekCompleted   []time.Duration
	endOfStream     int
	streamErrors    []error
}

func newFakeSink() *fakeSink { return &fakeSink{needsES: true} }

func (s *fakeSink) NeedsES() bool { return s.needsES }
func (s *fakeSink) OnServicesUpdated(services demux.ServiceMap) { s.servicesUpdated++ }
func (s *fakeSink) OnStreamsUpdated(services demux.ServiceMap, service *demux.Service) {
	s.streamsUpdated++
}
func (s *fakeSink) OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool) {
	s.eventUpdated++
}
func (s *fakeSink) OnServiceChanged(serviceID demux.ServiceID) {
	s.serviceChanged = append(s.serviceChanged, serviceID)
}
func (s *fakeSink) OnStreamChanged(change StreamChange, selected SelectedStream) {
	s.streamChanged++
}
func (s *fakeSink) OnVideoPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	s.video = append(s.video, payload)
}
func (s *fakeSink) OnAudioPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	s.audio = append(s.audio, payload)
}
func (s *fakeSink) OnCaption(pos time.Duration, caption demux.Caption) { s.captions++ }
func (s *fakeSink) OnSuperimpose(pos time.Duration, caption demux.Caption) { s.superimposed++ }
func (s *fakeSink) OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID) { s.pcr++ }
func (s *fakeSink) OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset) { s.tot++ }
func (s *fakeSink) OnSeekCompleted(pos time.Duration) {
	s.seekCompleted = append(s.seekCompleted, pos)
}
func (s *fakeSink) OnEndOfStream() { s.endOfStream++ }
func (s *fakeSink) OnStreamError(err error) { s.streamErrors = append(s.streamErrors, err) }

// --- stream-building helpers, mirroring demux/demux_test.go's style ---

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

func buildPSIPacket(pid uint16, section []byte) []byte {
	payload := append([]byte{0x00}, section...)
	return buildTSPacket(pid, true, payload)
}

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

func patSection(programNumber uint16, pmtPID uint16) []byte {
	data := []byte{byte(programNumber >> 8), byte(programNumber), 0xE0 | byte(pmtPID>>8), byte(pmtPID)}
	return buildSection(0x00, 1, 0, data)
}

func pmtSection(programNumber, pcrPID uint16, videoType byte, videoPID uint16, audioType byte, audioPID uint16) []byte {
	data := []byte{
		0xE0 | byte(pcrPID>>8), byte(pcrPID),
		0xF0, 0x00, // program_info_length = 0
		videoType, 0xE0 | byte(videoPID>>8), byte(videoPID), 0xF0, 0x00,
		audioType, 0xE0 | byte(audioPID>>8), byte(audioPID), 0xF0, 0x00,
	}
	return buildSection(0x02, programNumber, 0, data)
}

// pcrPacket builds an adaptation-field-only packet carrying a PCR value
// on pid, following demux/demux_test.go's TestDemuxerPCRTap layout.
func pcrPacket(pid uint16, base uint64) []byte {
	data := make([]byte, tspacket.Size)
	data[0] = tspacket.SyncByte
	data[1] = byte(pid >> 8)
	data[2] = byte(pid)
	data[3] = 0x20 // AFC=10 adaptation only
	data[4] = 7    // adaptation_field_length
	data[5] = 0x10 // PCR_flag set
	data[6] = byte(base >> 25)
	data[7] = byte(base >> 17)
	data[8] = byte(base >> 9)
	data[9] = byte(base >> 1)
	data[10] = byte((base&1)<<7) | 0x7E
	data[11] = 0x00
	for i := 12; i < len(data); i++ {
		data[i] = 0xFF
	}
	return data
}

func videoPESPacket(pid uint16, payload byte) []byte {
	pesPayload := []byte{0x00, 0x00, 0x01, 0xE0, 0x00, 0x00, 0x80, 0x00, 0x00, payload}
	return buildTSPacket(pid, true, pesPayload)
}

func audioPESPacket(pid uint16, payload byte) []byte {
	pesPayload := []byte{0x00, 0x00, 0x01, 0xC0, 0x00, 0x00, 0x80, 0x00, 0x00, payload}
	return buildTSPacket(pid, true, pesPayload)
}

const (
	testPMTPID   = 0x100
	testPCRPID   = 0x101
	testVideoPID = 0x102
	testAudioPID = 0x103
)

// buildProbeableStream assembles a clip with a PAT, PMT (video+audio on
// one service), a PCR, and one video+audio PES packet each, sufficient
// for Spawn's probe pass to succeed and for a first PCR to be found,
// followed by extra filler packets so Spawn's tail probe (seeking past
// the assembled clip) degrades gracefully to "length unknown" rather
// than erroring.
func buildProbeableStream(pcrBase uint64) []byte {
	var out []byte
	out = append(out, buildPSIPacket(uint16(ts.PatPid), patSection(1, testPMTPID))...)
	out = append(out, buildPSIPacket(testPMTPID, pmtSection(1, testPCRPID, 0x02, testVideoPID, 0x0F, testAudioPID))...)
	out = append(out, pcrPacket(testPCRPID, pcrBase)...)
	out = append(out, videoPESPacket(testVideoPID, 0xAA)...)
	out = append(out, videoPESPacket(testVideoPID, 0xAA)...) // flush
	out = append(out, audioPESPacket(testAudioPID, 0xBB)...)
	out = append(out, audioPESPacket(testAudioPID, 0xBB)...) // flush
	return out
}

func spawnTestExtractor(t *testing.T, data []byte) (*Extractor, *fakeSink) {
	t.Helper()
	sink := newFakeSink()
	e, err := Spawn(newMemSource(data), testLogger{}, sink, ProbeSize(int64(len(data))), TailProbeSize(int64(tspacket.Size)))
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	return e, sink
}

// waitUntil polls cond until it is true or the deadline passes, giving
// the worker goroutine time to process queued commands.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSpawnProbeFindsSelectedStream(t *testing.T) {
	data := buildProbeableStream(90000)
	e, _ := spawnTestExtractor(t, data)
	defer e.Shutdown()

	sel, ok := e.SelectedStream()
	if !ok || !sel.HasVideo || !sel.HasAudio {
		t.Fatalf("SelectedStream() = %+v, %v, want video+audio selected", sel, ok)
	}
	if sel.Video.PID != testVideoPID || sel.Audio.PID != testAudioPID {
		t.Fatalf("selected PIDs = video %v audio %v", sel.Video.PID, sel.Audio.PID)
	}
}

func TestSpawnProbeFailsOnEmptyStream(t *testing.T) {
	sink := newFakeSink()
	_, err := Spawn(newMemSource([]byte{}), testLogger{}, sink, ProbeSize(188*4))
	if err == nil {
		t.Fatal("Spawn() error = nil, want a *StreamProbeError")
	}
	if _, ok := err.(*StreamProbeError); !ok {
		t.Fatalf("Spawn() error type = %T, want *StreamProbeError", err)
	}
}

func TestExtractorDeliversSelectedVideoAndAudio(t *testing.T) {
	data := buildProbeableStream(90000)
	// Append more of the same so the worker has packets to read after
	// the probe rewinds to its boundary.
	data = append(data, buildProbeableStream(90000+ts.ClockFrequency)...)
	e, sink := spawnTestExtractor(t, data)
	defer e.Shutdown()

	waitUntil(t, func() bool { return len(sink.video) > 0 && len(sink.audio) > 0 })
}

func TestSelectServiceIdempotentOnServiceChanged(t *testing.T) {
	data := buildProbeableStream(90000)
	e, sink := spawnTestExtractor(t, data)
	defer e.Shutdown()

	id := demux.ServiceID(1)
	if err := e.SelectService(&id); err != nil {
		t.Fatalf("SelectService() error = %v", err)
	}
	if err := e.SelectService(&id); err != nil {
		t.Fatalf("SelectService() error = %v", err)
	}

	waitUntil(t, func() bool { return len(sink.serviceChanged) >= 1 })
	// A brief settle window to catch any duplicate firing.
	time.Sleep(20 * time.Millisecond)
	if len(sink.serviceChanged) != 1 {
		t.Fatalf("OnServiceChanged fired %d times for the same service, want 1", len(sink.serviceChanged))
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	data := buildProbeableStream(90000)
	e, _ := spawnTestExtractor(t, data)

	if err := e.Shutdown(); err != nil {
		t.Fatalf("first Shutdown() error = %v, want nil", err)
	}
	e.Wait()

	if err := e.Shutdown(); err != AlreadyShutdown {
		t.Fatalf("second Shutdown() error = %v, want AlreadyShutdown", err)
	}
	if err := e.RequestES(); err != AlreadyShutdown {
		t.Fatalf("RequestES() after shutdown error = %v, want AlreadyShutdown", err)
	}
	// Duration is a read-only snapshot accessor and has no shutdown
	// guard; it should simply keep returning the last published value.
	_ = e.Duration()
}

func TestSetPositionUnseekableWithoutStreamLength(t *testing.T) {
	data := buildProbeableStream(90000)
	e, _ := spawnTestExtractor(t, data)
	defer e.Shutdown()

	// The tiny clip built above never yields a second tail PCR sample:
	// with TailProbeSize pinned to one packet, the tail scan starts at
	// the clip's last (non-PCR) packet and hits EOF before finding one,
	// so StreamLength stays unknown and any seek past the rewind
	// threshold must fail synchronously.
	if err := e.SetPosition(10 * time.Second); err != Unseekable {
		t.Fatalf("SetPosition() error = %v, want Unseekable", err)
	}
}

func TestSetPositionNearZeroAlwaysAllowed(t *testing.T) {
	data := buildProbeableStream(90000)
	e, sink := spawnTestExtractor(t, data)
	defer e.Shutdown()

	if err := e.SetPosition(0); err != nil {
		t.Fatalf("SetPosition(0) error = %v", err)
	}
	waitUntil(t, func() bool { return len(sink.seekCompleted) > 0 })
	if e.Duration() != 0 {
		t.Fatalf("Duration() after rewind = %v, want 0", e.Duration())
	}
}

