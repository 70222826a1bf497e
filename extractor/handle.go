/*
NAME
  handle.go

DESCRIPTION
  handle.go is the Extractor's public handle surface: the methods a
  host application calls on the Extractor returned by Spawn, from any
  goroutine, to read published state and submit commands to the worker.

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
)

// Duration returns the current accumulated playback position.
func (e *Extractor) Duration() time.Duration {
	return e.state.snapshotDuration()
}

// Timestamp returns the wall-clock time of the current playback
// position, extrapolated from the last TOT/TDT observed, and whether
// any TOT/TDT has been seen yet.
func (e *Extractor) Timestamp() (time.Time, bool) {
	return e.state.snapshotTimestamp()
}

// Services returns a snapshot of the current service map.
func (e *Extractor) Services() demux.ServiceMap {
	return e.state.snapshotServices()
}

// SelectedStream returns the currently resolved video/audio/caption
// selection, and whether a selection has been made yet.
func (e *Extractor) SelectedStream() (SelectedStream, bool) {
	return e.state.snapshotSelected()
}

// RequestES wakes the worker because the sink is ready for more
// elementary stream data.
func (e *Extractor) RequestES() error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.cmds.setRequestES()
	e.notifyWorker()
	return nil
}

// SelectService chooses a service by id, or the default (first in PAT
// order) service when id is nil.
func (e *Extractor) SelectService(id *demux.ServiceID) error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.cmds.setSelectService(id)
	e.notifyWorker()
	return nil
}

// SelectVideoStream chooses the video elementary stream carrying
// componentTag within the currently selected service.
func (e *Extractor) SelectVideoStream(componentTag byte) error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.cmds.setSelectVideo(componentTag)
	e.notifyWorker()
	return nil
}

// SelectAudioStream chooses the audio elementary stream carrying
// componentTag within the currently selected service.
func (e *Extractor) SelectAudioStream(componentTag byte) error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.cmds.setSelectAudio(componentTag)
	e.notifyWorker()
	return nil
}

// SetPosition requests a seek to pos. It fails synchronously with
// Unseekable if the stream length could not be determined during the
// startup probe.
func (e *Extractor) SetPosition(pos time.Duration) error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	if pos > rewindThreshold {
		if _, ok := e.state.snapshotLength(); !ok {
			return Unseekable
		}
	}
	e.cmds.setPositionCmd(pos)
	e.notifyWorker()
	return nil
}

// Reset rewinds playback to the start of the stream.
func (e *Extractor) Reset() error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.cmds.setReset()
	e.notifyWorker()
	return nil
}

// Shutdown terminates the worker. Every ExtractHandler method,
// including a repeated Shutdown, returns AlreadyShutdown once this has
// been called.
func (e *Extractor) Shutdown() error {
	if e.state.isShutdown() {
		return AlreadyShutdown
	}
	e.state.setShutdown()
	e.cmds.setShutdown()
	e.notifyWorker()
	return nil
}

// Wait blocks until the worker goroutine has exited following
// Shutdown, for callers (and tests) that need to know teardown is
// complete.
func (e *Extractor) Wait() {
	<-e.done
}
