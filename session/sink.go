/*
NAME
  sink.go

DESCRIPTION
  sink.go makes *Session satisfy extractor.Sink directly: video/audio
  packets fill per-stream sample queues that RequestSample drains,
  OnEndOfStream/OnSeekCompleted drive the end-of-stream/end-of-
  presentation and seek-completed events, and every
  other Sink callback (table/service/stream/caption/PCR/TOT/error
  updates) is delegated to the optional Updates receiver, since those
  fall outside Session's own playback-control surface.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package session

import (
	"time"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/extractor"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
)

// Updates receives the extractor callbacks that fall outside the
// play/pause/seek/sample surface Session itself models: table/service/
// stream metadata, captions, PCR ticks and stream errors.
type Updates interface {
	OnServicesUpdated(services demux.ServiceMap)
	OnStreamsUpdated(services demux.ServiceMap, service *demux.Service)
	OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool)
	OnServiceChanged(serviceID demux.ServiceID)
	OnStreamChanged(change extractor.StreamChange, selected extractor.SelectedStream)
	OnCaption(pos time.Duration, caption demux.Caption)
	OnSuperimpose(pos time.Duration, caption demux.Caption)
	OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID)
	OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset)
	OnStreamError(err error)
}

// noopUpdates is the default Updates implementation when New is not
// given WithUpdates.
type noopUpdates struct{}

func (noopUpdates) OnServicesUpdated(demux.ServiceMap) {}
func (noopUpdates) OnStreamsUpdated(demux.ServiceMap, *demux.Service) {}
func (noopUpdates) OnEventUpdated(demux.ServiceMap, *demux.Service, bool) {}
func (noopUpdates) OnServiceChanged(demux.ServiceID) {}
func (noopUpdates) OnStreamChanged(extractor.StreamChange, extractor.SelectedStream) {}
func (noopUpdates) OnCaption(time.Duration, demux.Caption) {}
func (noopUpdates) OnSuperimpose(time.Duration, demux.Caption) {}
func (noopUpdates) OnPCR(demux.ServiceMap, []demux.ServiceID) {}
func (noopUpdates) OnTOT(ts.DateTime, *descriptor.LocalTimeOffset) {}
func (noopUpdates) OnStreamError(error) {}

var _ extractor.Sink = (*Session)(nil)

// NeedsES reports whether either stream endpoint's sample queue has
// room, the canonical back-pressure signal the extractor worker
// polls.
func (s *Session) NeedsES() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video.needsMore() || s.audio.needsMore()
}

func (s *Session) OnServicesUpdated(services demux.ServiceMap) {
	s.updates.OnServicesUpdated(services)
}

func (s *Session) OnStreamsUpdated(services demux.ServiceMap, service *demux.Service) {
	s.updates.OnStreamsUpdated(services, service)
}

func (s *Session) OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool) {
	s.updates.OnEventUpdated(services, service, isPresent)
}

func (s *Session) OnServiceChanged(serviceID demux.ServiceID) {
	s.updates.OnServiceChanged(serviceID)
}

func (s *Session) OnStreamChanged(change extractor.StreamChange, selected extractor.SelectedStream) {
	s.updates.OnStreamChanged(change, selected)
}

func (s *Session) OnVideoPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	s.pushSample(StreamVideo, pos, payload)
}

func (s *Session) OnAudioPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	s.pushSample(StreamAudio, pos, payload)
}

func (s *Session) pushSample(kind StreamKind, pos time.Duration, payload []byte) {
	buf := make([]byte, len(payload))
	copy(buf, payload)

	s.mu.Lock()
	s.queue(kind).push(Sample{Timestamp: pos, Payload: buf})
	s.mu.Unlock()
}

func (s *Session) OnCaption(pos time.Duration, caption demux.Caption) {
	s.updates.OnCaption(pos, caption)
}

func (s *Session) OnSuperimpose(pos time.Duration, caption demux.Caption) {
	s.updates.OnSuperimpose(pos, caption)
}

func (s *Session) OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID) {
	s.updates.OnPCR(services, serviceIDs)
}

func (s *Session) OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset) {
	s.updates.OnTOT(utc, offset)
}

// OnSeekCompleted relays the extractor's seek-completed notification
// and clears the outstanding seek marker.
func (s *Session) OnSeekCompleted(pos time.Duration) {
	s.mu.Lock()
	s.seekingPos = nil
	s.mu.Unlock()
	s.eventHandler.OnSeekCompleted(pos)
}

// OnEndOfStream raises end_of_stream on each stream endpoint that
// hasn't already reported it, then checks whether both endpoints are
// now eos and drained.
func (s *Session) OnEndOfStream() {
	s.mu.Lock()
	firstVideo := !s.video.eos
	firstAudio := !s.audio.eos
	s.video.eos = true
	s.audio.eos = true
	s.mu.Unlock()

	if firstVideo {
		s.eventHandler.OnStreamEndOfStream(StreamVideo)
	}
	if firstAudio {
		s.eventHandler.OnStreamEndOfStream(StreamAudio)
	}
	s.checkEndOfPresentation()
}

func (s *Session) OnStreamError(err error) {
	s.updates.OnStreamError(err)
}

// checkEndOfPresentation fires OnEndOfPresentation once both stream
// endpoints have reported end-of-stream and drained their queued
// samples. Called both from OnEndOfStream and from RequestSample,
// since draining happens progressively as the host pulls samples after
// eos is first reported.
func (s *Session) checkEndOfPresentation() {
	s.mu.Lock()
	fire := !s.presentationEnded && s.video.eos && s.audio.eos && s.video.drained() && s.audio.drained()
	if fire {
		s.presentationEnded = true
	}
	s.mu.Unlock()

	if fire {
		s.eventHandler.OnEndOfPresentation()
	}
}

func (s *Session) queue(kind StreamKind) *sampleQueue {
	if kind == StreamVideo {
		return &s.video
	}
	return &s.audio
}

// RequestSample is called by the host's renderer/output to pull the
// next sample for kind; the pull also tells the extractor more ES is
// wanted. ok is false when no sample is currently queued.
func (s *Session) RequestSample(kind StreamKind) (sample Sample, ok bool) {
	s.mu.Lock()
	sample, ok = s.queue(kind).pop()
	needsES := s.video.needsMore() || s.audio.needsMore()
	s.mu.Unlock()

	if needsES {
		if err := s.extract.RequestES(); err != nil {
			s.log.Debug("session: RequestES failed", "error", err)
		}
	}
	s.checkEndOfPresentation()
	return sample, ok
}
