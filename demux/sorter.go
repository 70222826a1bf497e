/*
NAME
  sorter.go

DESCRIPTION
  sorter.go provides Sorter, which drives a Demuxer with the well-known
  and PAT/PMT-learned PIDs of an ARIB transport stream, maintains the
  live ServiceMap, and dispatches every table/PES delivery through a
  Shooter. A reverse PID->ServiceID index keeps ES packet dispatch to
  the owning service cheap.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package demux

import (
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/pes"
	"github.com/ausocean/isdbts/ts/psi"
	"github.com/ausocean/isdbts/ts/table"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// data_group_id ranges distinguishing caption/superimpose management and
// statement payloads.
const (
	dataGroupCaptionManagement    = 0x00
	dataGroupCaptionStatementMin  = 0x01
	dataGroupCaptionStatementMax  = 0x0F
	dataGroupSuperimposeManagement = 0x20
	dataGroupSuperimposeStatementMin = 0x21
	dataGroupSuperimposeStatementMax = 0x2F
)

// Sorter owns a Demuxer, the live ServiceMap it builds from PAT/PMT/EIT/
// SDT deliveries, and the reverse PID->ServiceID index used to attribute
// elementary-stream packets to their originating service. Construct one
// with NewSorter and feed it packets with Feed.
type Sorter struct {
	log     logging.Logger
	demux   *Demuxer
	shooter Shooter

	services ServiceMap

	pidToService map[ts.Pid]ServiceID
	pmtPID       map[ServiceID]ts.Pid
	pcrServices  map[ts.Pid][]ServiceID
}

// NewSorter returns a ready-to-use Sorter wired to shooter. It installs
// the PAT filter and the well-known SI filters (SDT, EIT, TDT/TOT)
// immediately; PMT and elementary-stream filters are installed as PAT
// and PMT deliveries reveal them. If log is nil, a discarding logger
// cannot be constructed here (logging.Logger has no no-op
// implementation in this module), so callers must always supply one.
func NewSorter(log logging.Logger, shooter Shooter) *Sorter {
	s := &Sorter{
		log:          log,
		demux:        NewDemuxer(),
		shooter:      shooter,
		services:     NewServiceMap(),
		pidToService: make(map[ts.Pid]ServiceID),
		pmtPID:       make(map[ServiceID]ts.Pid),
		pcrServices:  make(map[ts.Pid][]ServiceID),
	}
	s.demux.WatchSection(ts.PatPid, s.onPAT)
	s.demux.WatchSection(ts.SdtPid, s.onSDT)
	s.demux.WatchSection(ts.EitPid, s.onEIT)
	s.demux.WatchSection(ts.TdtPid, s.onTDTOrTOT)
	return s
}

// Services returns the Sorter's live ServiceMap.
func (s *Sorter) Services() ServiceMap { return s.services }

// ServiceForPID returns the service that owns pid, per the reverse index
// built from the union of every service's PMT streams.
func (s *Sorter) ServiceForPID(pid ts.Pid) (ServiceID, bool) {
	id, ok := s.pidToService[pid]
	return id, ok
}

// Feed decodes as many complete 188-byte TS packets as fit in data and
// routes each one through the Demuxer, returning the number of bytes
// consumed (a multiple of tspacket.Size). Malformed packets (bad sync,
// truncated adaptation field) are dropped with a debug log and decoding
// resumes at the next packet boundary.
func (s *Sorter) Feed(data []byte) int {
	consumed := 0
	for len(data) >= tspacket.Size {
		pkt, err := tspacket.Parse(data)
		if err != nil {
			s.log.Debug("dropping malformed TS packet", "error", err)
			data = data[tspacket.Size:]
			consumed += tspacket.Size
			continue
		}
		s.demux.Feed(&pkt)
		data = data[tspacket.Size:]
		consumed += tspacket.Size
	}
	return consumed
}

func (s *Sorter) onPAT(sec psi.Section) {
	pat, ok := table.ReadPAT(sec)
	if !ok {
		s.log.Debug("dropping malformed PAT section")
		return
	}
	s.services.TransportStreamID = pat.TransportStreamID
	s.services.HasTransportStreamID = true

	seen := make(map[ServiceID]bool, len(pat.Programs))
	for _, prog := range pat.Programs {
		seen[prog.ProgramNumber] = true
		if existingPID, ok := s.pmtPID[prog.ProgramNumber]; ok && existingPID == prog.PID {
			continue
		}
		s.services.service(prog.ProgramNumber)
		s.pmtPID[prog.ProgramNumber] = prog.PID
		pid := prog.PID
		programNumber := prog.ProgramNumber
		s.demux.WatchSection(pid, func(sec psi.Section) { s.onPMT(programNumber, sec) })
	}
	// Drop services no longer present in the PAT.
	for id, pid := range s.pmtPID {
		if !seen[id] {
			s.demux.UnwatchSection(pid)
			s.removeService(id)
			delete(s.pmtPID, id)
		}
	}

	// Rebuild the order index to follow the PAT's wire order, which a
	// revised PAT may have changed; services known only from SDT keep
	// their positions after the PAT-listed ones.
	order := make([]ServiceID, 0, len(s.services.Order))
	for _, prog := range pat.Programs {
		order = append(order, prog.ProgramNumber)
	}
	for _, id := range s.services.Order {
		if !seen[id] {
			order = append(order, id)
		}
	}
	s.services.Order = order

	s.shooter.OnPATUpdated(s.services)
}

// removeService tears down a service's ES filters and reverse-index
// entries when it drops out of the PAT.
func (s *Sorter) removeService(id ServiceID) {
	svc, ok := s.services.Services[id]
	if !ok {
		return
	}
	for _, st := range svc.Streams {
		s.demux.UnwatchSection(st.PID)
		delete(s.pidToService, st.PID)
	}
	if svc.HasPMT {
		s.demux.UnwatchPCR(svc.PCRPID)
		s.removeFromPCRIndex(svc.PCRPID, id)
	}
	s.services.remove(id)
}

func (s *Sorter) removeFromPCRIndex(pid ts.Pid, id ServiceID) {
	ids := s.pcrServices[pid]
	for i, existing := range ids {
		if existing == id {
			s.pcrServices[pid] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.pcrServices[pid]) == 0 {
		delete(s.pcrServices, pid)
	}
}

func (s *Sorter) onPMT(programNumber uint16, sec psi.Section) {
	pmt, ok := table.ReadPMT(sec)
	if !ok {
		s.log.Debug("dropping malformed PMT section", "programNumber", programNumber)
		return
	}

	svc := s.services.service(programNumber)

	// Tear down the previous layout's filters before installing the new
	// one, in case a stream's PID or kind changed between versions.
	if svc.HasPMT {
		for _, st := range svc.Streams {
			s.demux.UnwatchSection(st.PID)
			delete(s.pidToService, st.PID)
		}
		s.demux.UnwatchPCR(svc.PCRPID)
		s.removeFromPCRIndex(svc.PCRPID, programNumber)
	}

	svc.HasPMT = true
	svc.PMTVersion = pmt.Version
	svc.PCRPID = pmt.PCRPID
	svc.Streams = make([]Stream, 0, len(pmt.Streams))
	for _, st := range pmt.Streams {
		stream := newStream(st)
		svc.Streams = append(svc.Streams, stream)
		s.pidToService[stream.PID] = programNumber
		s.watchStream(programNumber, stream)
	}

	s.pcrServices[svc.PCRPID] = append(s.pcrServices[svc.PCRPID], programNumber)
	pcrPID := svc.PCRPID
	s.demux.WatchPCR(pcrPID, func(pcr ts.Timestamp, ext uint16) { s.onPCR(pcrPID, pcr) })

	s.shooter.OnPMTUpdated(s.services, svc)
}

// watchStream installs the appropriate PES filter for one of a service's
// elementary streams, based on its resolved StreamKind.
func (s *Sorter) watchStream(serviceID ServiceID, stream Stream) {
	pid := stream.PID
	switch stream.Kind {
	case StreamVideo:
		s.demux.WatchPES(pid, func(payload []byte) { s.onVideoPES(serviceID, pid, payload) })
	case StreamAudio:
		s.demux.WatchPES(pid, func(payload []byte) { s.onAudioPES(serviceID, pid, payload) })
	case StreamCaption:
		s.demux.WatchPES(pid, func(payload []byte) { s.onCaptionPES(serviceID, pid, payload) })
	}
}

func (s *Sorter) onVideoPES(serviceID ServiceID, pid ts.Pid, payload []byte) {
	h, ok := pes.ReadHeader(payload)
	if !ok {
		s.log.Debug("dropping malformed video PES", "pid", pid, "service", serviceID)
		return
	}
	s.shooter.OnVideoPacket(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), h.HasDTS, ts.NewTimestamp(h.DTS), h.Payload)
}

func (s *Sorter) onAudioPES(serviceID ServiceID, pid ts.Pid, payload []byte) {
	h, ok := pes.ReadHeader(payload)
	if !ok {
		s.log.Debug("dropping malformed audio PES", "pid", pid, "service", serviceID)
		return
	}
	s.shooter.OnAudioPacket(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), h.HasDTS, ts.NewTimestamp(h.DTS), h.Payload)
}

func (s *Sorter) onCaptionPES(serviceID ServiceID, pid ts.Pid, payload []byte) {
	h, ok := pes.ReadHeader(payload)
	if !ok {
		s.log.Debug("dropping malformed caption PES", "pid", pid, "service", serviceID)
		return
	}
	dg, ok := pes.ReadDataGroup(h.Payload)
	if !ok {
		s.log.Debug("dropping malformed caption data group", "pid", pid, "service", serviceID)
		return
	}

	switch {
	case dg.DataGroupID == dataGroupCaptionManagement:
		md, ok := pes.ReadCaptionManagementData(dg.Data)
		if !ok {
			s.log.Debug("dropping malformed caption management data", "pid", pid)
			return
		}
		s.shooter.OnCaption(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), Caption{Management: &md})
	case dg.DataGroupID >= dataGroupCaptionStatementMin && dg.DataGroupID <= dataGroupCaptionStatementMax:
		cd, ok := pes.ReadCaptionData(dg.Data)
		if !ok {
			s.log.Debug("dropping malformed caption statement data", "pid", pid)
			return
		}
		s.shooter.OnCaption(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), Caption{Data: &cd})
	case dg.DataGroupID == dataGroupSuperimposeManagement:
		md, ok := pes.ReadCaptionManagementData(dg.Data)
		if !ok {
			s.log.Debug("dropping malformed superimpose management data", "pid", pid)
			return
		}
		s.shooter.OnSuperimpose(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), Caption{Management: &md})
	case dg.DataGroupID >= dataGroupSuperimposeStatementMin && dg.DataGroupID <= dataGroupSuperimposeStatementMax:
		cd, ok := pes.ReadCaptionData(dg.Data)
		if !ok {
			s.log.Debug("dropping malformed superimpose statement data", "pid", pid)
			return
		}
		s.shooter.OnSuperimpose(s.services, pid, h.HasPTS, ts.NewTimestamp(h.PTS), Caption{Data: &cd})
	default:
		s.log.Debug("ignoring unknown caption data_group_id", "id", dg.DataGroupID)
	}
}

func (s *Sorter) onPCR(pid ts.Pid, pcr ts.Timestamp) {
	ids := s.pcrServices[pid]
	if len(ids) == 0 {
		return
	}
	s.shooter.OnPCR(s.services, ids, pcr)
}

func (s *Sorter) onSDT(sec psi.Section) {
	sdt, ok := table.ReadSDT(sec)
	if !ok || sdt.OtherTS {
		return
	}
	for _, svcEntry := range sdt.Services {
		svc := s.services.service(svcEntry.ServiceID)
		svc.SDTRunning = svcEntry.RunningStatus
		svc.HasSDT = true
	}
}

func (s *Sorter) onEIT(sec psi.Section) {
	eit, ok := table.ReadEIT(sec)
	if !ok || eit.Other {
		return
	}
	svc, ok := s.services.Services[eit.ServiceID]
	if !ok {
		return
	}
	isPresent := sec.TableID == table.TableIDEITPresentFollowingActual
	if !isPresent {
		// Full-schedule EIT sections are not folded into Present/Following.
		return
	}
	svc.EITVersion = eit.Version
	svc.HasEIT = true
	for i := range eit.Events {
		e := eit.Events[i]
		if i == 0 {
			svc.Present = &e
			s.shooter.OnEITUpdated(s.services, svc, true)
		} else if i == 1 {
			svc.Following = &e
			s.shooter.OnEITUpdated(s.services, svc, false)
		}
	}
}

func (s *Sorter) onTDTOrTOT(sec psi.Section) {
	if sec.TableID == table.TableIDTDT {
		tdt, ok := table.ReadTDT(sec)
		if !ok {
			s.log.Debug("dropping malformed TDT section")
			return
		}
		s.shooter.OnTOT(s.services, tdt.UTCTime, nil)
		return
	}
	tot, ok := table.ReadTOT(sec)
	if !ok {
		s.log.Debug("dropping malformed TOT section")
		return
	}
	var offset *descriptor.LocalTimeOffset
	if raw, found := tot.Descriptors.First(descriptor.TagLocalTimeOffset); found {
		if lto, ok := descriptor.ReadLocalTimeOffset(raw.Data); ok {
			offset = &lto
		} else {
			s.log.Debug("dropping malformed local time offset descriptor")
		}
	}
	s.shooter.OnTOT(s.services, tot.UTCTime, offset)
}
