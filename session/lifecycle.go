/*
NAME
  lifecycle.go

DESCRIPTION
  lifecycle.go implements Session's close protocol: Close requests a
  Closing transition and waits up to closeTimeout for the host's
  renderer to acknowledge via NotifyClosed before shutting down the
  extractor regardless; on timeout it proceeds and logs a trace.
  scopedUnlock (mutex.go) releases the session mutex while the wait is
  outstanding.

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

// Close transitions the session to Closed, waiting up to
// s.closeTimeout for NotifyClosed before shutting down the extractor
// regardless. Errors from the extractor's own Shutdown are logged, not
// returned, matching the original's "let _ = ...Shutdown()".
func (s *Session) Close() error {
	s.mu.Lock()
	s.state = stateClosing
	ack := s.closeAck
	timeout := s.closeTimeout
	log := s.log

	scopedUnlock(&s.mu, func() {
		select {
		case <-ack:
		case <-time.After(timeout):
			log.Debug("session: close timed out waiting for renderer acknowledgement")
		}
	})

	err := s.extract.Shutdown()
	if err != nil {
		log.Debug("session: extractor shutdown during close", "error", err)
	}

	s.state = stateClosed
	s.status = StatusClosed
	s.mu.Unlock()

	return nil
}

// NotifyClosed is called by the host once its renderer pipeline has
// torn down, unblocking a Close call waiting on it. Idempotent: a
// second call is a no-op.
func (s *Session) NotifyClosed() {
	s.mu.Lock()
	select {
	case <-s.closeAck:
		// Already closed.
	default:
		close(s.closeAck)
	}
	s.mu.Unlock()
}
