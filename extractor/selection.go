/*
NAME
  selection.go

DESCRIPTION
  selection.go resolves the Extractor's SelectedStream from the current
  ServiceMap plus any select_service/select_video_stream/
  select_audio_stream overrides, and computes the StreamChange diff
  against the previous resolution.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package extractor

import (
	"github.com/ausocean/isdbts/demux"
)

// selector holds the overrides a caller has requested and the most
// recently resolved SelectedStream, so resolve() can compute the
// StreamChange diff and fire OnServiceChanged only when the resolution
// actually changed.
type selector struct {
	serviceOverride  *demux.ServiceID // nil = default (first) service.
	videoTagOverride *byte
	audioTagOverride *byte

	have    bool
	current SelectedStream
}

// resolve picks the service (override or default), then that service's
// video/audio streams (tag override or first-of-kind) and caption/
// superimpose PIDs (the first and second caption-kind streams). It returns the new SelectedStream, the StreamChange
// diff against the previous resolution, and whether the service itself
// changed.
func (sel *selector) resolve(services demux.ServiceMap) (SelectedStream, StreamChange, bool, bool) {
	svc, ok := sel.pickService(services)
	if !ok {
		return SelectedStream{}, StreamChange{}, false, false
	}

	next := SelectedStream{ServiceID: svc.ServiceID}
	if v, ok := pickStream(svc, demux.StreamVideo, sel.videoTagOverride); ok {
		next.Video = v
		next.HasVideo = true
	}
	if a, ok := pickStream(svc, demux.StreamAudio, sel.audioTagOverride); ok {
		next.Audio = a
		next.HasAudio = true
	}
	captionPIDs := captionStreams(svc)
	if len(captionPIDs) > 0 {
		next.CaptionPID = captionPIDs[0].PID
		next.HasCaption = true
	}
	if len(captionPIDs) > 1 {
		next.SuperimposePID = captionPIDs[1].PID
		next.HasSuperimpose = true
	}

	serviceChanged := !sel.have || sel.current.ServiceID != next.ServiceID
	var change StreamChange
	if sel.have {
		change.VideoPID = sel.current.HasVideo != next.HasVideo || (next.HasVideo && sel.current.Video.PID != next.Video.PID)
		change.VideoType = sel.current.HasVideo != next.HasVideo || (next.HasVideo && sel.current.Video.StreamType != next.Video.StreamType)
		change.AudioPID = sel.current.HasAudio != next.HasAudio || (next.HasAudio && sel.current.Audio.PID != next.Audio.PID)
		change.AudioType = sel.current.HasAudio != next.HasAudio || (next.HasAudio && sel.current.Audio.StreamType != next.Audio.StreamType)
	} else {
		change = StreamChange{VideoPID: next.HasVideo, VideoType: next.HasVideo, AudioPID: next.HasAudio, AudioType: next.HasAudio}
	}

	sel.have = true
	sel.current = next
	return next, change, change.Any(), serviceChanged
}

func (sel *selector) pickService(services demux.ServiceMap) (*demux.Service, bool) {
	if sel.serviceOverride != nil {
		svc, ok := services.Services[*sel.serviceOverride]
		return svc, ok
	}
	return services.Default()
}

func pickStream(svc *demux.Service, kind demux.StreamKind, tag *byte) (demux.Stream, bool) {
	var first demux.Stream
	haveFirst := false
	for _, st := range svc.Streams {
		if st.Kind != kind {
			continue
		}
		if !haveFirst {
			first = st
			haveFirst = true
		}
		if tag != nil && st.HasComponentTag && st.ComponentTag == *tag {
			return st, true
		}
	}
	if tag == nil && haveFirst {
		return first, true
	}
	// Requested tag not found: fall back to the first stream of kind
	// rather than leaving the selection empty, matching demux.Service's
	// own VideoStream()/AudioStream() "first of kind" policy.
	if haveFirst {
		return first, true
	}
	return demux.Stream{}, false
}

func captionStreams(svc *demux.Service) []demux.Stream {
	var out []demux.Stream
	for _, st := range svc.Streams {
		if st.Kind == demux.StreamCaption {
			out = append(out, st)
		}
	}
	return out
}
