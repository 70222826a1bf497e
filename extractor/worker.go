/*
NAME
  worker.go

DESCRIPTION
  worker.go implements the Extractor's background worker loop: drain
  pending commands, then either feed one packet to the demuxer or park,
  with Eos and Error as parked states that still serve commands.

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
)

// idlePollInterval bounds how long the worker can sleep between wake
// checks, guarding against a missed notifyWorker send racing a command
// being queued.
const idlePollInterval = 200 * time.Millisecond

// run is the worker goroutine's body, started by Spawn once the probe
// succeeds. It returns only after a shutdown command is processed.
func (e *Extractor) run() {
	for {
		cmds := e.cmds.take()
		if e.processCommands(cmds) {
			close(e.done)
			return
		}

		switch e.state.snapshotWorkerState() {
		case Eos:
			if cmds.requestES {
				e.sink.OnEndOfStream()
			}
			e.waitForWork()
			continue
		case Error:
			e.waitForWork()
			continue
		}

		if e.seek == nil && !e.sink.NeedsES() {
			e.waitForWork()
			continue
		}

		pkt, err := e.readPacket()
		if err != nil {
			if err == io.EOF {
				e.state.setWorkerState(Eos, nil)
				e.sink.OnEndOfStream()
				continue
			}
			e.state.setWorkerState(Error, err)
			e.sink.OnStreamError(err)
			continue
		}
		e.feedPacket(pkt)
	}
}

// processCommands applies every command drained from the queue this
// turn, in the fixed order select_service/select_video_stream/
// select_audio_stream/reset/set_position, and reports whether shutdown
// was among them.
func (e *Extractor) processCommands(cmds pendingCommands) bool {
	if cmds.hasSelectService {
		e.sel.serviceOverride = cmds.selectServiceID
		e.reresolveSelection(e.state.snapshotServices())
	}
	if cmds.hasSelectVideo {
		tag := cmds.selectVideoTag
		e.sel.videoTagOverride = &tag
		e.reresolveSelection(e.state.snapshotServices())
	}
	if cmds.hasSelectAudio {
		tag := cmds.selectAudioTag
		e.sel.audioTagOverride = &tag
		e.reresolveSelection(e.state.snapshotServices())
	}
	if cmds.reset {
		e.doReset()
	}
	if cmds.hasSetPosition {
		e.startSeek(cmds.setPosition)
	}
	return cmds.shutdown
}

// notifyWorker wakes the worker goroutine if it is parked; a pending
// wake that hasn't been consumed yet is not duplicated.
func (e *Extractor) notifyWorker() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// waitForWork parks the worker until notifyWorker fires or
// idlePollInterval elapses, the latter guarding against a command
// queued in the narrow window between a no-work check and the park.
func (e *Extractor) waitForWork() {
	select {
	case <-e.wake:
	case <-time.After(idlePollInterval):
	}
}
