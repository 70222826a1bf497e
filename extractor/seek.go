/*
NAME
  seek.go

DESCRIPTION
  seek.go implements the bitrate-based seek engine (estimate/seek/
  refine loop, idle-forward fast path, rewind-to-zero fast path, and
  event/caption suppression while a seek is outstanding).

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
	"time"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/internal/ring"
	"github.com/ausocean/isdbts/ts"
)

// Seek tuning constants.
const (
	rewindThreshold   = time.Second
	idleMax           = 30 * time.Second
	idleMin           = 500 * time.Millisecond
	fileOffset        = 3 * time.Second
	maxSeekIterations = 6
	captionRingSize   = 10
)

// cachedCaption is one ring-buffered caption/superimpose delivery held
// during a seek.
type cachedCaption struct {
	hasPos      bool
	pos         time.Duration
	superimpose bool
	caption     demux.Caption
}

// deferredUpdate is one suppressed Sink callback, captured as a closure
// so it can be replayed verbatim, in arrival order, once a seek
// completes.
type deferredUpdate func(Sink)

// seekInfo is the Extractor's in-flight seek state.
// It exists only while a seek is outstanding.
type seekInfo struct {
	targetPos time.Duration
	idle      bool // fast path: playing forward to target, no physical seek.

	original SelectedStream
	hasOriginal bool

	deferred []deferredUpdate
	captions *ring.Ring[cachedCaption]

	// estimate/refine loop state, used only for the non-idle path.
	iteration int
}

func newSeekInfo(target time.Duration, original SelectedStream, hasOriginal bool) *seekInfo {
	return &seekInfo{
		targetPos:   target,
		original:    original,
		hasOriginal: hasOriginal,
		captions:    ring.New[cachedCaption](captionRingSize),
	}
}

// addDeferred records a suppressed callback for later replay.
func (si *seekInfo) addDeferred(fn deferredUpdate) {
	si.deferred = append(si.deferred, fn)
}

// pushCaption records a caption/superimpose delivery observed while the
// seek is outstanding, into the 10-entry ring.
func (si *seekInfo) pushCaption(c cachedCaption) {
	si.captions.Push(c)
}

// flush replays every deferred update in arrival order, then every
// ring-buffered caption whose position is at or after the seek target,
// so the caption visible at the destination is correct.
func (si *seekInfo) flush(sink Sink, onCaption, onSuperimpose func(time.Duration, demux.Caption)) {
	for _, fn := range si.deferred {
		fn(sink)
	}
	for _, c := range si.captions.Items() {
		if c.hasPos && c.pos < si.targetPos {
			continue
		}
		if c.superimpose {
			onSuperimpose(c.pos, c.caption)
		} else {
			onCaption(c.pos, c.caption)
		}
	}
}

// estimateByteOffset applies a ±fileOffset safety
// margin: when stepping forward (short of target) the next probe point
// is biased further forward by fileOffset so the scan is likely to
// start past the target PCR rather than just short of it again; when
// stepping backward (overshot) it is biased further back by the same
// margin.
func estimateByteOffset(length StreamLength, currentByte int64, diff time.Duration, overshoot bool) int64 {
	total := length.Duration()
	if total <= 0 {
		return currentByte
	}
	bps := float64(length.LastByte-length.FirstByte) / total.Seconds()
	margin := fileOffset
	if overshoot {
		margin = -fileOffset
	}
	return currentByte + int64(bps*(diff+margin).Seconds())
}

// seekClass is the estimate/refine loop's classification of a probed
// (byte, PCR) sample relative to the seek target.
type seekClass int

const (
	seekShort seekClass = iota
	seekOvershoot
	seekInWindow
)

func classifySeek(estimatedDuration, target time.Duration) seekClass {
	switch {
	case estimatedDuration > target:
		return seekOvershoot
	case estimatedDuration < target-idleMax:
		return seekShort
	default:
		return seekInWindow
	}
}

// refineLength updates length's (byte, PCR) anchors toward the newly
// observed sample, tightening the linear byte<->duration mapping used
// by EstimateByte/estimateByteOffset on each refine iteration.
func refineLength(length StreamLength, byteOffset int64, pcr ts.Timestamp, estimatedDuration, target time.Duration) StreamLength {
	if estimatedDuration <= target {
		length.FirstByte = byteOffset
		length.FirstPCR = pcr
	} else {
		length.LastByte = byteOffset
		length.LastPCR = pcr
	}
	return length
}
