/*
NAME
  session.go

DESCRIPTION
  session.go implements Session, the mutex-guarded media session state
  machine: a requested State plus observed Status, an OpRequest that
  latches commands issued while a previous transition is still pending,
  and the deferred-flush discipline (position, then command, then rate;
  volume/mute/bounds applied eagerly).

  Modelled as a platform-neutral state machine driven by
  NotifyTransitioned acknowledgements from the host.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package session implements the playback control state machine that
// sits above an extractor.Extractor: Play/Pause/Stop/SetRate/
// SetPosition/SetVolume/SetMuted/SetBounds, the pending-transition
// flush discipline, and the ES sample-delivery pull protocol.
package session

import (
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

const (
	minRate float32 = 0
	maxRate float32 = 128
)

// extractHandle is the subset of extractor.Extractor's ExtractHandler
// surface Session needs. It is an interface, rather than a direct
// *extractor.Extractor field, so tests can exercise the flush
// discipline against a fake without spawning a real extractor.
type extractHandle interface {
	Reset() error
	RequestES() error
	SetPosition(pos time.Duration) error
	Duration() time.Duration
	Shutdown() error
}

// Session is the playback control state machine. Construct with New;
// the zero value is not usable.
type Session struct {
	mu sync.Mutex

	log          logging.Logger
	extract      extractHandle
	eventHandler EventHandler
	updates      Updates
	onRepaint    func()
	closeTimeout time.Duration

	state  requestedState
	status Status

	// seekingPos is set while a SetPosition-triggered seek is
	// outstanding; Position() reports it in preference to the
	// extractor's own Duration() so a caller polling Position
	// immediately after SetPosition sees the target, not stale state.
	seekingPos *time.Duration
	isPending  bool
	opRequest  opRequest

	rate   float32
	volume float32
	muted  bool
	bounds Bounds

	video sampleQueue
	audio sampleQueue

	presentationEnded bool

	closeAck chan struct{}
}

// New returns a ready Session driving extract, notifying eventHandler
// of lifecycle transitions. log must not be nil: as with
// demux.NewSorter, this package defines no discarding logging.Logger
// implementation, so callers always supply one (tests use a no-op
// logger).
func New(log logging.Logger, extract extractHandle, eventHandler EventHandler, opts ...Option) (*Session, error) {
	if log == nil {
		return nil, errors.New("session: log must not be nil")
	}
	if extract == nil {
		return nil, errors.New("session: extract must not be nil")
	}
	if eventHandler == nil {
		return nil, errors.New("session: eventHandler must not be nil")
	}

	s := &Session{
		log:          log,
		extract:      extract,
		eventHandler: eventHandler,
		updates:      noopUpdates{},
		rate:         1,
		volume:       1,
		closeTimeout: defaultCloseTimeout,
		status:       StatusClosed,
		state:        stateClosed,
		closeAck:     make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.Wrap(err, "session: apply option")
		}
	}

	s.state = stateOpenPending
	s.setStatus(StatusReady)

	return s, nil
}

// setStatus updates Status and fires the matching EventHandler
// callback if it actually changed, mirroring Inner::set_status.
func (s *Session) setStatus(status Status) {
	if s.status == status {
		return
	}
	s.status = status
	switch status {
	case StatusReady:
		s.eventHandler.OnReady()
	case StatusStarted:
		s.eventHandler.OnStarted()
	case StatusPaused:
		s.eventHandler.OnPaused()
	case StatusStopped:
		s.eventHandler.OnStopped()
	}
}

// Status returns the last acknowledged transition.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
