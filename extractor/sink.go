/*
NAME
  sink.go

DESCRIPTION
  sink.go defines Sink, the user-level callback interface the Extractor
  drives, and the selection-aware types (SelectedStream, StreamChange)
  its callbacks carry. Sink generalises
  demux.Shooter with selection state, seek-suppression semantics and
  worker lifecycle events (end of stream, error, seek completion).

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package extractor provides the background extractor worker that
// drives a file/stream source through demux.Sorter, selects a service
// and its video/audio/caption streams, performs bitrate-based seeking,
// and delivers timestamped ES payloads to a Sink.
package extractor

import (
	"time"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
)

// StreamChange describes which parts of SelectedStream changed on a
// given update. VideoPID/AudioPID are set
// when the elementary stream's PID changed (a different physical
// stream was picked, whether by PMT revision or by an explicit
// select_*_stream call); VideoType/AudioType are set when the stream's
// kind/stream_type changed, which normally only happens alongside a
// PID change.
type StreamChange struct {
	VideoPID  bool
	VideoType bool
	AudioPID  bool
	AudioType bool
}

// Any reports whether any field of c is set.
func (c StreamChange) Any() bool {
	return c.VideoPID || c.VideoType || c.AudioPID || c.AudioType
}

// SelectedStream is the chosen playback triple: one service's video
// stream, audio stream and caption/superimpose PIDs.
type SelectedStream struct {
	ServiceID demux.ServiceID

	Video    demux.Stream
	HasVideo bool

	Audio    demux.Stream
	HasAudio bool

	CaptionPID    ts.Pid
	HasCaption    bool
	SuperimposePID ts.Pid
	HasSuperimpose bool
}

// StreamLength is the probe-derived duration estimate used for
// bitrate-based seeking.
type StreamLength struct {
	FirstPCR  ts.Timestamp
	LastPCR   ts.Timestamp
	FirstByte int64
	LastByte  int64
}

// Duration returns the estimated total playable duration.
func (l StreamLength) Duration() time.Duration {
	return l.LastPCR.Sub(l.FirstPCR)
}

// EstimateByte estimates the byte offset corresponding to a playback
// position diff from the start of the stream, by linear interpolation
// of bytes-per-second across the probed span.
func (l StreamLength) EstimateByte(pos time.Duration) int64 {
	total := l.Duration()
	if total <= 0 {
		return l.FirstByte
	}
	span := l.LastByte - l.FirstByte
	frac := float64(pos) / float64(total)
	return l.FirstByte + int64(float64(span)*frac)
}

// Sink is the caller-supplied consumer the Extractor drives as it
// processes the transport stream. Implementations
// must not block for long; a panicking Sink is fatal to the worker
// goroutine.
//
// While a seek is outstanding, OnServicesUpdated, OnStreamsUpdated,
// OnEventUpdated, OnServiceChanged and OnStreamChanged are suppressed
// and replayed in arrival order once the seek completes.

type Sink interface {
	// NeedsES reports whether the sink is ready for more elementary
	// stream data. The worker parks rather than reading ahead when this
	// is false; RequestES wakes it once more data is wanted.
	NeedsES() bool

	OnServicesUpdated(services demux.ServiceMap)
	OnStreamsUpdated(services demux.ServiceMap, service *demux.Service)
	OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool)

	// OnServiceChanged fires exactly once per distinct SelectService
	// resolution; reselecting the same service does not refire it.
	OnServiceChanged(serviceID demux.ServiceID)
	// OnStreamChanged fires whenever SelectedStream's video or audio
	// choice changes, without necessarily changing the service. A change
	// of caption or superimpose PID alone does not fire it.
	OnStreamChanged(change StreamChange, selected SelectedStream)

	OnVideoPacket(pos time.Duration, pid ts.Pid, payload []byte)
	OnAudioPacket(pos time.Duration, pid ts.Pid, payload []byte)
	OnCaption(pos time.Duration, caption demux.Caption)
	OnSuperimpose(pos time.Duration, caption demux.Caption)

	OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID)
	OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset)

	// OnSeekCompleted fires once a SetPosition request's seek has
	// settled and any suppressed updates have been replayed.
	OnSeekCompleted(pos time.Duration)

	// OnEndOfStream fires once when the source is exhausted, and again
	// on every subsequent RequestES while the worker remains in Eos.
	OnEndOfStream()
	// OnStreamError fires once, fatally, on a source I/O error or probe
	// failure. After a source I/O error the worker parks, still serving
	// commands; after a probe failure Spawn starts no worker.
	OnStreamError(err error)
}
