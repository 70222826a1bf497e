/*
NAME
  config.go

DESCRIPTION
  config.go provides Option, functional-option configuration for New,
  as functional options of the func(*T) error form.

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

// defaultCloseTimeout is how long Close waits for NotifyClosed before
// proceeding anyway.
const defaultCloseTimeout = 5 * time.Second

// Option configures a Session at New time.
type Option func(*Session) error

// WithUpdates supplies the receiver for table/caption/PCR/error
// callbacks the extractor delivers that fall outside Session's own
// play/pause/seek/sample surface. If omitted, these are dropped.
func WithUpdates(u Updates) Option {
	return func(s *Session) error {
		s.updates = u
		return nil
	}
}

// WithRepaintFunc supplies the hook Repaint invokes, for hosts with a
// real video renderer to repaint.
func WithRepaintFunc(fn func()) Option {
	return func(s *Session) error {
		s.onRepaint = fn
		return nil
	}
}

// WithVolume sets the initial volume (default 1.0).
func WithVolume(v float32) Option {
	return func(s *Session) error {
		s.volume = v
		return nil
	}
}

// WithCloseTimeout overrides defaultCloseTimeout.
func WithCloseTimeout(d time.Duration) Option {
	return func(s *Session) error {
		s.closeTimeout = d
		return nil
	}
}
