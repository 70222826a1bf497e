/*
NAME
  service.go

DESCRIPTION
  service.go defines ServiceMap, the Sorter's published view of the
  transport stream's services: their elementary streams, PCR PID, and
  present/following events.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package demux assembles a transport stream's PSI/SI tables and PES
// streams into a live ServiceMap, dispatching updates through a Shooter
// callback.
package demux

import (
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/table"
)

// StreamKind classifies an elementary stream for dispatch purposes. It is
// derived from the PMT stream_type, not carried on the wire itself.
type StreamKind int

const (
	StreamUnknown StreamKind = iota
	StreamVideo
	StreamAudio
	StreamCaption
	StreamSuperimpose
)

// classifyStreamType maps a PMT stream_type to the StreamKind the sorter
// dispatches it under. Per ARIB STD-B10/STD-B32, caption and superimpose
// data both ride as private_stream_1 (stream_type 0x06); they are
// distinguished by their data_group_id, not stream_type, so both decode
// to StreamCaption here and the Sorter itself tells them apart once it
// has parsed the DataGroup.
func classifyStreamType(streamType byte) StreamKind {
	switch streamType {
	case 0x02, 0x1B, 0x24: // MPEG-2 video, H.264, H.265.
		return StreamVideo
	case 0x0F, 0x11: // ADTS AAC, LATM AAC.
		return StreamAudio
	case 0x06: // private_stream_1 — ARIB caption/superimpose.
		return StreamCaption
	default:
		return StreamUnknown
	}
}

// Stream is one elementary stream entry of a Service, generalised from
// table.PMTStream with a resolved Kind and optional ComponentTag.
type Stream struct {
	PID             ts.Pid
	StreamType      byte
	Kind            StreamKind
	ComponentTag    byte
	HasComponentTag bool
	Descriptors     descriptor.Block
}

func newStream(s table.PMTStream) Stream {
	out := Stream{PID: s.PID, StreamType: s.StreamType, Kind: classifyStreamType(s.StreamType), Descriptors: s.Descriptors}
	if si, ok := s.Descriptors.First(descriptor.TagStreamIdentifier); ok {
		if id, ok := descriptor.ReadStreamIdentifier(si.Data); ok {
			out.ComponentTag = id.ComponentTag
			out.HasComponentTag = true
		}
	}
	return out
}

// ServiceID is an ARIB/MPEG service_id (== PMT program_number).
type ServiceID = uint16

// Service is one program's live state: its PMT-derived ES layout plus the
// present/following EIT events the Sorter has most recently observed.
type Service struct {
	ServiceID      ServiceID
	PMTVersion     byte
	HasPMT         bool
	PCRPID         ts.Pid
	Streams        []Stream
	Present        *table.EITEvent
	Following      *table.EITEvent
	EITVersion     byte
	HasEIT         bool
	SDTRunning     table.RunningStatus
	HasSDT         bool
}

// VideoStream returns the service's first video stream, if any.
func (s *Service) VideoStream() (Stream, bool) {
	for _, st := range s.Streams {
		if st.Kind == StreamVideo {
			return st, true
		}
	}
	return Stream{}, false
}

// AudioStream returns the service's first audio stream, if any.
func (s *Service) AudioStream() (Stream, bool) {
	for _, st := range s.Streams {
		if st.Kind == StreamAudio {
			return st, true
		}
	}
	return Stream{}, false
}

// ServiceMap is the Sorter's complete, snapshot-friendly view of the
// transport stream. Sorter owns and mutates the live instance in place,
// including the *Service pointers it has already handed a caller, so any
// caller that retains a ServiceMap across Sorter calls — rather than
// reading it immediately and discarding it — must take a Clone.
type ServiceMap struct {
	TransportStreamID    uint16
	HasTransportStreamID bool
	Services             map[ServiceID]*Service

	// Order lists the service ids in PAT wire order (services known
	// only from SDT trail the PAT-listed ones). The first entry is the
	// default service; program_numbers need not be numerically
	// ascending on the wire, so this order is tracked explicitly
	// rather than derived from the ids.
	Order []ServiceID
}

// NewServiceMap returns an empty, ready-to-use ServiceMap.
func NewServiceMap() ServiceMap {
	return ServiceMap{Services: make(map[ServiceID]*Service)}
}

// Clone returns a deep copy of m: a new Services map holding copies of
// every *Service. A publisher
// handing a ServiceMap to a reader that runs concurrently with the
// Sorter's own goroutine must publish a Clone, not the live map, since
// the Sorter goes on mutating its *Service entries in place (onPMT
// replacing Streams, onEIT replacing Present/Following) after handing
// them out.
func (m ServiceMap) Clone() ServiceMap {
	out := ServiceMap{
		TransportStreamID:    m.TransportStreamID,
		HasTransportStreamID: m.HasTransportStreamID,
		Services:             make(map[ServiceID]*Service, len(m.Services)),
	}
	for id, svc := range m.Services {
		cp := *svc
		cp.Streams = append([]Stream(nil), svc.Streams...)
		out.Services[id] = &cp
	}
	out.Order = append([]ServiceID(nil), m.Order...)
	return out
}

// Sorted returns the map's services in PAT order, the stable iteration
// order a caller picking a "default" service wants.
func (m ServiceMap) Sorted() []*Service {
	out := make([]*Service, 0, len(m.Order))
	for _, id := range m.Order {
		if s, ok := m.Services[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Default returns the map's first service in PAT order, the service
// played when the caller has not selected one explicitly.
func (m ServiceMap) Default() (*Service, bool) {
	sorted := m.Sorted()
	if len(sorted) == 0 {
		return nil, false
	}
	return sorted[0], true
}

func (m *ServiceMap) service(id ServiceID) *Service {
	s, ok := m.Services[id]
	if !ok {
		s = &Service{ServiceID: id}
		m.Services[id] = s
		m.Order = append(m.Order, id)
	}
	return s
}

// remove drops id from both the map and the order index.
func (m *ServiceMap) remove(id ServiceID) {
	delete(m.Services, id)
	for i, existing := range m.Order {
		if existing == id {
			m.Order = append(m.Order[:i], m.Order[i+1:]...)
			break
		}
	}
}
