/*
NAME
  events.go

DESCRIPTION
  events.go defines EventHandler, the callback surface a Session drives
  as its requested transitions complete and samples drain:
  ready/started/paused/stopped/rate-changed/seek-completed plus the
  end-of-stream and end-of-presentation notifications raised while the
  sample queues drain.

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

import "time"

// EventHandler receives Session lifecycle notifications. Implementations
// must not block long, matching the Sink contract the underlying
// extractor imposes (the extractor worker's OnSeekCompleted call is on
// the path to OnSeekCompleted here).
type EventHandler interface {
	// OnReady fires once the session's topology is ready for playback,
	// before the first Play.
	OnReady()
	OnStarted()
	OnPaused()
	OnStopped()
	// OnRateChanged fires once a SetRate request applies, whether
	// immediately or after a flushed pending transition.
	OnRateChanged(rate float32)
	// OnSeekCompleted fires once a SetPosition request's seek settles,
	// relayed directly from the extractor's own OnSeekCompleted.
	OnSeekCompleted(pos time.Duration)
	// OnStreamEndOfStream fires once per stream endpoint (video, then
	// audio) when the extractor reports end-of-stream.

	OnStreamEndOfStream(kind StreamKind)
	// OnEndOfPresentation fires once, after both stream endpoints have
	// reported end-of-stream and their sample queues have drained.
	OnEndOfPresentation()
}
