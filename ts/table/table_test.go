/*
NAME
  table_test.go

DESCRIPTION
  table_test.go exercises every typed table parser against hand-built
  reassembled sections.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"testing"
	"time"

	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/psi"
)

// buildSection wraps body (the syntax-section fields through the table
// data, excluding the trailing CRC) in a full section with the given
// table_id/extension/version, appending a valid CRC.
func buildSection(tableID byte, ext uint16, version byte, data []byte) psi.Section {
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
	full := psi.AppendCRC(out)
	sec, ok := psi.ParseSection(full)
	if !ok {
		panic("buildSection: generated section failed to parse")
	}
	return sec
}

func TestReadPAT(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0xE0, 0x10, // program 0 -> network_pid 0x10
		0x00, 0x01, 0xE1, 0x00, // program 1 -> pmt_pid 0x100
	}
	sec := buildSection(TableIDPAT, 1, 0, data)
	p, ok := ReadPAT(sec)
	if !ok {
		t.Fatal("ReadPAT failed")
	}
	if !p.HasNetworkPID || p.NetworkPID != 0x10 {
		t.Errorf("network pid: %+v", p)
	}
	if len(p.Programs) != 1 || p.Programs[0].ProgramNumber != 1 || p.Programs[0].PID != 0x100 {
		t.Errorf("programs: %+v", p.Programs)
	}
}

func TestReadPMT(t *testing.T) {
	data := []byte{
		0xE1, 0x00, // PCR_PID
		0xF0, 0x00, // program_info_length=0
		0x1B, 0xE1, 0x01, 0xF0, 0x00, // video stream, pid 0x101, no ES descriptors
	}
	sec := buildSection(TableIDPMT, 1, 0, data)
	m, ok := ReadPMT(sec)
	if !ok {
		t.Fatal("ReadPMT failed")
	}
	if m.PCRPID != 0x100 {
		t.Errorf("PCRPID = %v", m.PCRPID)
	}
	if len(m.Streams) != 1 || m.Streams[0].StreamType != 0x1B || m.Streams[0].PID != 0x101 {
		t.Errorf("streams: %+v", m.Streams)
	}
}

func TestReadSDT(t *testing.T) {
	data := []byte{
		0x00, 0x01, 0xFF, // original_network_id, reserved_future_use
		0x00, 0x02, 0x03, 0x80, 0x00, // service_id=2, eit flags, running=4, freeCA=0, desc_len=0
	}
	sec := buildSection(TableIDSDTActual, 1, 0, data)
	s, ok := ReadSDT(sec)
	if !ok {
		t.Fatal("ReadSDT failed")
	}
	if s.OriginalNetworkID != 1 || len(s.Services) != 1 {
		t.Fatalf("got %+v", s)
	}
	svc := s.Services[0]
	if svc.ServiceID != 2 || !svc.EITScheduleFlag || !svc.EITPresentFollowing {
		t.Errorf("service: %+v", svc)
	}
	if svc.RunningStatus != RunningStatusRunning {
		t.Errorf("RunningStatus = %v", svc.RunningStatus)
	}
}

func TestReadEIT(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("JST", 9*3600)).UTC()
	startBytes := mustMjdBytes(start)
	data := []byte{
		0x00, 0x01, 0x00, 0x02, // transport_stream_id, original_network_id
		0x00, 0xFF, // segment_last_section_number, last_table_id
	}
	event := append([]byte{0x00, 0x10}, startBytes...)
	event = append(event, 0x00, 0x01, 0x00) // duration = 1 minute
	event = append(event, 0x80, 0x00)       // running=4, freeCA=0, desc_len=0
	data = append(data, event...)

	sec := buildSection(TableIDEITPresentFollowingActual, 5, 0, data)
	e, ok := ReadEIT(sec)
	if !ok {
		t.Fatal("ReadEIT failed")
	}
	if e.ServiceID != 5 || len(e.Events) != 1 {
		t.Fatalf("got %+v", e)
	}
	if e.Events[0].EventID != 0x10 {
		t.Errorf("EventID = %x", e.Events[0].EventID)
	}
	if e.Events[0].Duration != time.Minute {
		t.Errorf("Duration = %v", e.Events[0].Duration)
	}
	if !e.Events[0].StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", e.Events[0].StartTime, start)
	}
}

func TestIsEITTableID(t *testing.T) {
	cases := map[byte]bool{
		0x4E: true, 0x4F: true, 0x50: true, 0x5F: true, 0x60: true, 0x6F: true,
		0x00: false, 0x42: false, 0x70: false,
	}
	for id, want := range cases {
		if got := IsEITTableID(id); got != want {
			t.Errorf("IsEITTableID(%#x) = %v, want %v", id, got, want)
		}
	}
}

func TestReadTDT(t *testing.T) {
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.FixedZone("JST", 9*3600)).UTC()
	body := mustMjdBytes(want)
	out := []byte{TableIDTDT, 0x00, byte(len(body))}
	out = append(out, body...)
	sec, ok := psi.ParseSection(out)
	if !ok {
		t.Fatal("ParseSection failed building TDT fixture")
	}
	d, ok := ReadTDT(sec)
	if !ok {
		t.Fatal("ReadTDT failed")
	}
	if !d.UTCTime.Equal(want) {
		t.Errorf("UTCTime = %v, want %v", d.UTCTime, want)
	}
}

func TestReadTOT(t *testing.T) {
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.FixedZone("JST", 9*3600)).UTC()
	body := mustMjdBytes(want)
	body = append(body, 0xF0, 0x00) // descriptors_loop_length=0
	sectionLength := len(body) + 4
	out := []byte{TableIDTOT, byte(sectionLength >> 8), byte(sectionLength)}
	out = append(out, body...)
	full := psi.AppendCRC(out)
	sec, ok := psi.ParseSection(full)
	if !ok {
		t.Fatal("ParseSection failed building TOT fixture")
	}
	tot, ok := ReadTOT(sec)
	if !ok {
		t.Fatal("ReadTOT failed")
	}
	if !tot.UTCTime.Equal(want) {
		t.Errorf("UTCTime = %v, want %v", tot.UTCTime, want)
	}
}

func TestReadBIT(t *testing.T) {
	data := []byte{
		0x80, 0xF0, 0x00, // view_propriety=1, first_descriptors_length=0
		0x01, 0xF0, 0x00, // broadcaster_id=1, descriptors_length=0
	}
	sec := buildSection(TableIDBIT, 7, 0, data)
	b, ok := ReadBIT(sec)
	if !ok {
		t.Fatal("ReadBIT failed")
	}
	if !b.BroadcastViewPropriety || len(b.Broadcasters) != 1 || b.Broadcasters[0].BroadcasterID != 1 {
		t.Errorf("got %+v", b)
	}
}

func TestReadNIT(t *testing.T) {
	tsLoop := []byte{0x00, 0x01, 0x00, 0x02, 0xF0, 0x00}
	data := []byte{0xF0, 0x00}
	data = append(data, byte(len(tsLoop)>>8)|0xF0, byte(len(tsLoop)))
	data = append(data, tsLoop...)
	sec := buildSection(TableIDNITActual, 9, 0, data)
	n, ok := ReadNIT(sec)
	if !ok {
		t.Fatal("ReadNIT failed")
	}
	if len(n.TransportStreams) != 1 || n.TransportStreams[0].TransportStreamID != 1 {
		t.Errorf("got %+v", n)
	}
}

func TestReadLDT(t *testing.T) {
	data := []byte{
		0x00, 0x01, 0x00, 0x02, // transport_stream_id, original_network_id
		0x00, 0x05, 0xF0, 0x00, // description_id=5, descriptors_length=0
	}
	sec := buildSection(TableIDLDT, 3, 0, data)
	l, ok := ReadLDT(sec)
	if !ok {
		t.Fatal("ReadLDT failed")
	}
	if len(l.Descriptions) != 1 || l.Descriptions[0].DescriptionID != 5 {
		t.Errorf("got %+v", l)
	}
}

func TestReadPCAT(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("JST", 9*3600)).UTC()
	schedule := append(mustMjdBytes(start), 0x00, 0x30, 0x00) // duration 30 minutes
	data := []byte{0x00, 0x00, 0x00, 0x01}                    // content_id
	data = append(data, byte(len(schedule))>>4|0xF0, byte(len(schedule)))
	data = append(data, schedule...)
	data = append(data, 0xF0, 0x00) // content descriptors_length=0
	sec := buildSection(TableIDPCAT, 4, 0, data)
	p, ok := ReadPCAT(sec)
	if !ok {
		t.Fatal("ReadPCAT failed")
	}
	if len(p.Contents) != 1 || p.Contents[0].ContentID != 1 {
		t.Fatalf("got %+v", p)
	}
	if len(p.Contents[0].Schedules) != 1 || p.Contents[0].Schedules[0].Duration != 1800 {
		t.Errorf("schedules: %+v", p.Contents[0].Schedules)
	}
}

func mustMjdBytes(tm time.Time) []byte {
	return ts.DateTime{Time: tm}.Bytes()
}

func TestReadCAT(t *testing.T) {
	data := []byte{0x09, 4, 0x00, 0x05, 0xE0, 0x31} // CA descriptor, system 5, EMM PID 0x31.
	sec := buildSection(TableIDCAT, 0, 2, data)
	c, ok := ReadCAT(sec)
	if !ok {
		t.Fatal("ReadCAT failed")
	}
	if c.Version != 2 {
		t.Errorf("Version = %d, want 2", c.Version)
	}
	if _, found := c.Descriptors.First(0x09); !found {
		t.Error("CA descriptor not found in CAT block")
	}
}

func TestReadBAT(t *testing.T) {
	data := []byte{
		0x00, 0x00, // no bouquet descriptors
		0x00, 0x08, // transport_stream_loop_length = 8
		0x7F, 0xE0, // transport_stream_id
		0x00, 0x04, // original_network_id
		0x00, 0x02, // descriptors_length = 2
		0x52, 0x00, // an (arbitrary) descriptor
	}
	sec := buildSection(TableIDBAT, 0x1234, 1, data)
	b, ok := ReadBAT(sec)
	if !ok {
		t.Fatal("ReadBAT failed")
	}
	if b.BouquetID != 0x1234 || len(b.TransportStreams) != 1 {
		t.Fatalf("got %+v", b)
	}
	tsEntry := b.TransportStreams[0]
	if tsEntry.TransportStreamID != 0x7FE0 || tsEntry.OriginalNetworkID != 0x0004 {
		t.Errorf("transport stream = %+v", tsEntry)
	}
}

func TestReadRST(t *testing.T) {
	data := []byte{
		0x7F, 0xE0, 0x00, 0x04, 0x04, 0xD2, 0x30, 0x39, 0x04,
	}
	sec := buildSection(TableIDRST, 0, 0, data)
	r, ok := ReadRST(sec)
	if !ok {
		t.Fatal("ReadRST failed")
	}
	if len(r.Statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(r.Statuses))
	}
	st := r.Statuses[0]
	if st.ServiceID != 1234 || st.EventID != 12345 || st.RunningStatus != RunningStatusRunning {
		t.Errorf("got %+v", st)
	}
	if _, ok := ReadRST(buildSection(TableIDRST, 0, 0, data[:5])); ok {
		t.Error("ragged RST unexpectedly parsed")
	}
}

func TestReadNBIT(t *testing.T) {
	data := []byte{
		0x00, 0x07, // information_id
		0x10 | 0x04, // type=Information, body in actual TS
		0xAA,        // user_defined
		0x01,        // one key
		0x00, 0x63,  // key id 0x63
		0x00, 0x00, // no descriptors
	}
	sec := buildSection(TableIDNBITBody, 0x0004, 3, data)
	n, ok := ReadNBIT(sec)
	if !ok {
		t.Fatal("ReadNBIT failed")
	}
	if !n.IsBody || n.OriginalNetworkID != 0x0004 || len(n.Informations) != 1 {
		t.Fatalf("got %+v", n)
	}
	info := n.Informations[0]
	if info.Type != NBITInformationPlain || info.BodyLocation != NBITBodyLocationActualTS {
		t.Errorf("info = %+v", info)
	}
	if len(info.KeyIDs) != 1 || info.KeyIDs[0] != 0x63 {
		t.Errorf("keys = %v", info.KeyIDs)
	}
}

func TestReadLIT(t *testing.T) {
	data := []byte{
		0x04, 0xD2, // service_id
		0x7F, 0xE0, // transport_stream_id
		0x00, 0x04, // original_network_id
		0x00, 0x01, 0x00, 0x00, // local event 1, no descriptors
		0x00, 0x02, 0x00, 0x00, // local event 2
	}
	sec := buildSection(TableIDLIT, 0x3039, 0, data)
	l, ok := ReadLIT(sec)
	if !ok {
		t.Fatal("ReadLIT failed")
	}
	if l.EventID != 0x3039 || l.ServiceID != 1234 || len(l.LocalEvents) != 2 {
		t.Fatalf("got %+v", l)
	}
	if l.LocalEvents[1].LocalEventID != 2 {
		t.Errorf("local events = %+v", l.LocalEvents)
	}
}

func TestReadERT(t *testing.T) {
	data := []byte{
		0x00, 0x09, // information_provider_id
		0x10, // relation_type = contents description
		0x00, 0x01, // node_id
		0x10,       // collection_mode = concatenation
		0x00, 0x00, // parent_node_id
		0x05,       // reference_number
		0x00, 0x00, // no descriptors
	}
	sec := buildSection(TableIDERT, 0x0102, 0, data)
	e, ok := ReadERT(sec)
	if !ok {
		t.Fatal("ReadERT failed")
	}
	if e.EventRelationID != 0x0102 || e.RelationType != ERTRelationContentsDescription {
		t.Fatalf("got %+v", e)
	}
	if len(e.Nodes) != 1 || e.Nodes[0].CollectionMode != ERTCollectionConcatenation || e.Nodes[0].ReferenceNumber != 5 {
		t.Errorf("nodes = %+v", e.Nodes)
	}
}

func TestReadITT(t *testing.T) {
	data := []byte{0x00, 0x02, 0x52, 0x00}
	sec := buildSection(TableIDITT, 0x3039, 1, data)
	i, ok := ReadITT(sec)
	if !ok {
		t.Fatal("ReadITT failed")
	}
	if i.EventID != 0x3039 || i.Version != 1 {
		t.Errorf("got %+v", i)
	}
	if _, found := i.Descriptors.First(0x52); !found {
		t.Error("descriptor not found in ITT block")
	}
}
