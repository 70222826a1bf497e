/*
NAME
  commands.go

DESCRIPTION
  commands.go implements the extractor's command queue:
  a small mutex-guarded struct of "at most one pending value per
  command kind". Go's atomics don't carry an Option-shaped slot of the
  required width cheaply, so a mutex plus a small command struct serves
  instead.

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
	"sync"
	"time"
)

// commandQueue holds at most one pending value per command kind,
// overwriting an unconsumed value with a newer one of the same kind
// (the UI only ever cares about the most recent request).
type commandQueue struct {
	mu sync.Mutex

	hasSelectService bool
	selectServiceID  *uint16

	hasSelectVideo bool
	selectVideoTag byte

	hasSelectAudio bool
	selectAudioTag byte

	hasSetPosition bool
	setPosition    time.Duration

	reset     bool
	requestES bool
	shutdown  bool
}

func (q *commandQueue) setSelectService(id *uint16) {
	q.mu.Lock()
	q.hasSelectService = true
	q.selectServiceID = id
	q.mu.Unlock()
}

func (q *commandQueue) setSelectVideo(tag byte) {
	q.mu.Lock()
	q.hasSelectVideo = true
	q.selectVideoTag = tag
	q.mu.Unlock()
}

func (q *commandQueue) setSelectAudio(tag byte) {
	q.mu.Lock()
	q.hasSelectAudio = true
	q.selectAudioTag = tag
	q.mu.Unlock()
}

func (q *commandQueue) setPositionCmd(pos time.Duration) {
	q.mu.Lock()
	q.hasSetPosition = true
	q.setPosition = pos
	q.mu.Unlock()
}

func (q *commandQueue) setReset() {
	q.mu.Lock()
	q.reset = true
	q.mu.Unlock()
}

func (q *commandQueue) setRequestES() {
	q.mu.Lock()
	q.requestES = true
	q.mu.Unlock()
}

func (q *commandQueue) setShutdown() {
	q.mu.Lock()
	q.shutdown = true
	q.mu.Unlock()
}

func (q *commandQueue) isShutdown() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shutdown
}

// pendingCommands is a drained snapshot of whatever was pending at the
// moment take() was called.
type pendingCommands struct {
	hasSelectService bool
	selectServiceID  *uint16

	hasSelectVideo bool
	selectVideoTag byte

	hasSelectAudio bool
	selectAudioTag byte

	hasSetPosition bool
	setPosition    time.Duration

	reset     bool
	requestES bool
	shutdown  bool
}

// take atomically drains every pending command, leaving the queue
// empty except for the sticky shutdown flag (once set, shutdown is
// never cleared).
func (q *commandQueue) take() pendingCommands {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := pendingCommands{
		hasSelectService: q.hasSelectService,
		selectServiceID:  q.selectServiceID,
		hasSelectVideo:   q.hasSelectVideo,
		selectVideoTag:   q.selectVideoTag,
		hasSelectAudio:   q.hasSelectAudio,
		selectAudioTag:   q.selectAudioTag,
		hasSetPosition:   q.hasSetPosition,
		setPosition:      q.setPosition,
		reset:            q.reset,
		requestES:        q.requestES,
		shutdown:         q.shutdown,
	}
	q.hasSelectService = false
	q.hasSelectVideo = false
	q.hasSelectAudio = false
	q.hasSetPosition = false
	q.reset = false
	q.requestES = false
	return p
}

// any reports whether take() would return a non-empty snapshot.
func (q *commandQueue) any() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hasSelectService || q.hasSelectVideo || q.hasSelectAudio ||
		q.hasSetPosition || q.reset || q.requestES || q.shutdown
}
