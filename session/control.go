/*
NAME
  control.go

DESCRIPTION
  control.go implements Session's public playback control surface
  (Play/Pause/Stop/PlayOrPause/SetRate/SetPosition/SetVolume/SetMuted/
  SetBounds/Repaint/RateRange/Position) plus the internal
  updatePlaybackStatus flush driven by NotifyTransitioned,
  substituting a platform-neutral NotifyTransitioned
  acknowledgement for the Media Foundation session events that drive
  the same logic there.

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

import (
	"time"

	"github.com/pkg/errors"
)

// Play requests a transition to Started. Valid from Ready (a freshly
// opened session), Paused or Stopped; a no-op from Started;
// ErrInvalidRequest otherwise.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpenPending, statePaused, stateStopped:
	case stateStarted:
		return nil
	default:
		return ErrInvalidRequest
	}

	if s.isPending {
		s.opRequest.hasCommand = true
		s.opRequest.command = cmdStart
		return nil
	}
	return s.startPlayback()
}

func (s *Session) startPlayback() error {
	s.state = stateStarted
	s.isPending = true
	return nil
}

// Pause requests a transition to Paused. Valid from Started; a no-op
// from Paused; ErrInvalidRequest otherwise.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateStarted:
	case statePaused:
		return nil
	default:
		return ErrInvalidRequest
	}

	if s.isPending {
		s.opRequest.hasCommand = true
		s.opRequest.command = cmdPause
		return nil
	}
	return s.pauseInternal()
}

func (s *Session) pauseInternal() error {
	s.state = statePaused
	s.isPending = true
	return nil
}

// Stop requests a transition to Stopped, which also resets the
// extractor to the start of the stream. Valid from
// Started or Paused; a no-op from Stopped; ErrInvalidRequest otherwise.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateStarted, statePaused:
	case stateStopped:
		return nil
	default:
		return ErrInvalidRequest
	}

	if s.isPending {
		s.opRequest.hasCommand = true
		s.opRequest.command = cmdStop
		return nil
	}
	return s.stopInternal()
}

func (s *Session) stopInternal() error {
	if err := s.extract.Reset(); err != nil {
		return errors.Wrap(err, "session: reset on stop")
	}
	s.state = stateStopped
	s.isPending = true
	return nil
}

// PlayOrPause toggles between Play and Pause depending on the current
// state, for a single play/pause UI button.
func (s *Session) PlayOrPause() error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case stateStarted:
		return s.Pause()
	case stateOpenPending, statePaused, stateStopped:
		return s.Play()
	default:
		return ErrInvalidRequest
	}
}

// NotifyTransitioned is called by the host once its renderer pipeline
// has completed the transition most recently requested (Start, Pause
// or Stop), mirroring IMFAsyncCallback::Invoke dispatching
// the platform acknowledging a requested transition. It drives the
// pending-request flush.
func (s *Session) NotifyTransitioned(status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var newState requestedState
	switch status {
	case StatusStarted:
		newState = stateStarted
	case StatusPaused:
		newState = statePaused
	case StatusStopped:
		newState = stateStopped
	default:
		return errors.Errorf("session: unexpected transition notification %v", status)
	}
	return s.updatePlaybackStatus(newState, status)
}

// updatePlaybackStatus is the pending-transition flush: once the
// acknowledged state matches what was requested, the
// latched op request is applied in order (a) position (which may
// subsume command), (b) command, (c) rate.
func (s *Session) updatePlaybackStatus(newState requestedState, newStatus Status) error {
	if s.state != newState || !s.isPending {
		return nil
	}
	s.isPending = false
	s.setStatus(newStatus)

	switch {
	case s.opRequest.hasPos:
		pos := s.opRequest.pos
		cmd, hasCmd := s.opRequest.command, s.opRequest.hasCommand
		s.opRequest.hasPos = false
		s.opRequest.hasCommand = false
		if err := s.setPositionInternal(pos, cmd, hasCmd); err != nil {
			return err
		}
	case s.opRequest.hasCommand:
		cmd := s.opRequest.command
		s.opRequest.hasCommand = false
		var err error
		switch cmd {
		case cmdStart:
			err = s.startPlayback()
		case cmdPause:
			err = s.pauseInternal()
		case cmdStop:
			err = s.stopInternal()
		}
		if err != nil {
			return err
		}
	}

	if s.opRequest.hasRate {
		rate := s.opRequest.rate
		s.opRequest.hasRate = false
		if rate != s.rate {
			return s.setRateInternal(rate)
		}
	}
	return nil
}

// SetPosition requests a seek to pos. If a transition is already
// pending it latches (subsuming any pending command), otherwise the
// seek starts immediately.
func (s *Session) SetPosition(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isPending {
		s.opRequest.hasPos = true
		s.opRequest.pos = pos
		return nil
	}
	return s.setPositionInternal(pos, cmdStop, false)
}

func (s *Session) setPositionInternal(pos time.Duration, cmd command, hasCmd bool) error {
	if hasCmd && cmd == cmdStop {
		return s.stopInternal()
	}

	if err := s.extract.SetPosition(pos); err != nil {
		return errors.Wrap(err, "session: seek")
	}

	switch {
	case hasCmd && cmd == cmdStart, !hasCmd && s.state == stateStarted:
		s.state = stateStarted
	case hasCmd && cmd == cmdPause, !hasCmd && s.state == statePaused:
		s.state = statePaused
	default:
		s.log.Debug("session: unclear state during seek", "state", int(s.state))
	}

	p := pos
	s.seekingPos = &p
	s.isPending = true
	return nil
}

// SetRate requests a new playback rate. Values outside 0..=128 forward
// are rejected synchronously.
func (s *Session) SetRate(rate float32) error {
	if rate < minRate || rate > maxRate {
		return ErrInvalidRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isPending {
		s.opRequest.hasRate = true
		s.opRequest.rate = rate
		return nil
	}
	return s.setRateInternal(rate)
}

func (s *Session) setRateInternal(rate float32) error {
	s.rate = rate
	s.eventHandler.OnRateChanged(rate)
	return nil
}

// RateRange returns the supported forward rate range.

func (s *Session) RateRange() (float32, float32) {
	return minRate, maxRate
}

// SetVolume sets the output volume. Applied eagerly regardless of any
// pending transition; volume is nominally idempotent.
func (s *Session) SetVolume(v float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
	return nil
}

// SetMuted mutes or unmutes output, applied eagerly.
func (s *Session) SetMuted(mute bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = mute
	return nil
}

// SetBounds sets the renderer's destination rectangle, applied
// eagerly.
func (s *Session) SetBounds(b Bounds) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = b
	return nil
}

// Repaint invokes the host-supplied repaint hook (WithRepaintFunc), if
// any.
func (s *Session) Repaint() error {
	s.mu.Lock()
	fn := s.onRepaint
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

// Position returns the current playback position: the pending seek
// target if one is latched or outstanding, otherwise the extractor's
// own accumulated duration.
func (s *Session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opRequest.hasPos {
		return s.opRequest.pos
	}
	if s.seekingPos != nil {
		return *s.seekingPos
	}
	return s.extract.Duration()
}
