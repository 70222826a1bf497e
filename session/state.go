/*
NAME
  state.go

DESCRIPTION
  state.go defines the Session's requested/observed state enums, the
  pending-command type and the OpRequest deferred-operation record.

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

// requestedState is the state the Session has asked the platform-side
// transition to reach; it only agrees with Status once the host's
// renderer pipeline acknowledges via NotifyTransitioned.
type requestedState int

const (
	stateClosed requestedState = iota
	stateOpenPending
	stateStarted
	statePaused
	stateStopped
	stateClosing
)

// Status is the last transition the host has acknowledged.
type Status int

const (
	StatusClosed Status = iota
	StatusReady
	StatusStarted
	StatusPaused
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusReady:
		return "ready"
	case StatusStarted:
		return "started"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// command is a deferred Play/Pause/Stop request, stored in OpRequest
// while a previous transition is still pending.
type command int

const (
	cmdStop command = iota
	cmdStart
	cmdPause
)

// opRequest holds the operations a caller issued while a transition
// was still pending. At most one of each kind is retained; a later
// call of the same kind overwrites the earlier one.
type opRequest struct {
	hasCommand bool
	command    command

	hasRate bool
	rate    float32

	hasPos bool
	pos    time.Duration
}

func (o *opRequest) clear() {
	*o = opRequest{}
}

// Bounds is the renderer's destination rectangle for SetBounds.
type Bounds struct {
	Left, Top, Right, Bottom uint32
}
