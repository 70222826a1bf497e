/*
NAME
  seekexec.go

DESCRIPTION
  seekexec.go drives the three seek fast paths (rewind, idle-forward,
  bitrate-estimate/refine) using the types and helpers seek.go
  defines.

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
	"io"
	"time"

	"github.com/ausocean/isdbts/ts"
)

// maxScanPackets bounds scanForDefaultPCR against a pathologically
// sparse PCR interval so a seek can never hang the worker forever.
const maxScanPackets = 1 << 20

// startSeek dispatches target to one of the three fast paths. It is
// called only from the worker goroutine,
// after SetPosition's synchronous Unseekable check has already passed.
func (e *Extractor) startSeek(target time.Duration) {
	if target <= rewindThreshold {
		e.doReset()
		e.sink.OnSeekCompleted(0)
		return
	}

	current := e.playback.Duration()
	diff := target - current
	orig, hasOrig := e.state.snapshotSelected()

	if diff >= 0 && diff <= idleMax {
		e.seek = newSeekInfo(target, orig, hasOrig)
		e.seek.idle = true
		return
	}

	length, ok := e.state.snapshotLength()
	if !ok {
		e.sink.OnStreamError(Unseekable)
		return
	}
	e.seek = newSeekInfo(target, orig, hasOrig)
	e.driveBigJumpSeek(length, diff < 0)
}

// doReset rewinds the source to byte 0 and clears accumulated playback
// state, serving both the Reset op and the session's Stop.
func (e *Extractor) doReset() {
	if err := e.seekSource(0); err != nil {
		e.state.setWorkerState(Error, err)
		e.sink.OnStreamError(err)
		return
	}
	e.playback.Reset()
	e.state.setDuration(0)
	e.seek = nil
	e.scanning = false
	e.state.setWorkerState(Working, nil)
}

// maybeCompleteIdleSeek is polled from the OnPCR handler while an idle-
// forward seek is outstanding: once PlaybackTime has played forward to
// within IDLE_MIN of the target, the seek completes and suppressed
// updates are flushed.
func (e *Extractor) maybeCompleteIdleSeek() {
	if e.seek == nil || !e.seek.idle {
		return
	}
	if e.playback.Duration() >= e.seek.targetPos-idleMin {
		e.completeSeek()
	}
}

// completeSeek flushes the outstanding seek's deferred updates and
// ring-buffered captions, then notifies the sink.
func (e *Extractor) completeSeek() {
	seek := e.seek
	e.seek = nil
	seek.flush(e.sink, e.sink.OnCaption, e.sink.OnSuperimpose)
	e.sink.OnSeekCompleted(seek.targetPos)
}

// abortSeek treats a seek-time I/O failure as fatal to the worker,
// just as a failing read during normal playback is.
func (e *Extractor) abortSeek(err error) {
	e.seek = nil
	e.state.setWorkerState(Error, err)
	e.sink.OnStreamError(err)
}

// driveBigJumpSeek runs the estimate/seek/refine loop for a long jump:
// estimate a byte offset from StreamLength,
// seek there, read the next default-service PCR, classify it against
// the target window, and either snap (in window), narrow forward
// (short) or narrow backward (overshoot). StreamLength is refined with
// every sample. After maxSeekIterations without convergence, it falls
// back to a linear scan.
func (e *Extractor) driveBigJumpSeek(length StreamLength, overshoot bool) {
	target := e.seek.targetPos
	lastEstimated := e.playback.Duration()
	currentByte := e.pos

	for iter := 0; iter < maxSeekIterations; iter++ {
		diff := target - lastEstimated
		offset := estimateByteOffset(length, currentByte, diff, overshoot)
		if offset < 0 {
			offset = 0
		}

		if err := e.seekSource(offset); err != nil {
			e.abortSeek(err)
			return
		}

		pcr, byteAt, err := e.scanForDefaultPCR()
		if err != nil {
			e.abortSeek(err)
			return
		}

		estimated := pcr.Sub(length.FirstPCR)
		class := classifySeek(estimated, target)
		length = refineLength(length, byteAt, pcr, estimated, target)
		e.state.setLength(length)

		if class == seekInWindow {
			e.snapSeek(pcr)
			return
		}
		overshoot = class == seekOvershoot
		lastEstimated = estimated
		currentByte = byteAt
	}

	e.linearSeekFallback(overshoot)
}

// snapSeek declares PlaybackTime == the seek target at the (byte, PCR)
// pair just observed, and completes the seek.
func (e *Extractor) snapSeek(pcr ts.Timestamp) {
	e.playback.Anchor(pcr, e.seek.targetPos)
	e.state.setDuration(e.seek.targetPos)
	e.completeSeek()
}

// linearSeekFallback handles the estimate/refine loop's non-convergence
// case: a short remainder is absorbed by switching to the idle-forward
// path from wherever the last probe landed; an overshoot rewinds to
// byte 0 and does the same.
func (e *Extractor) linearSeekFallback(overshoot bool) {
	if overshoot {
		if err := e.seekSource(0); err != nil {
			e.abortSeek(err)
			return
		}
		e.playback.Reset()
		e.state.setDuration(0)
	}
	e.seek.idle = true
}

// scanForDefaultPCR discards packets (suppressing all Sink delivery)
// until a PCR on the default service is observed, returning it and the
// byte offset immediately after the packet that carried it.
func (e *Extractor) scanForDefaultPCR() (ts.Timestamp, int64, error) {
	e.scanning = true
	e.scanFoundPCR = nil
	defer func() { e.scanning = false }()

	for i := 0; i < maxScanPackets; i++ {
		pkt, err := e.readPacket()
		if err != nil {
			return 0, 0, err
		}
		e.feedPacket(pkt)
		if e.scanFoundPCR != nil {
			pcr := *e.scanFoundPCR
			e.scanFoundPCR = nil
			return pcr, e.pos, nil
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}
