/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the Session's sentinel errors.

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

import "errors"

// ErrInvalidRequest is returned synchronously by Play/Pause/Stop when
// the requested transition is not valid from the Session's current
// state, e.g. Pause while Stopped.
var ErrInvalidRequest = errors.New("session: invalid request for current state")

// ErrInvalidRate is returned synchronously by SetRate for a rate
// outside 0..=128 forward; reverse and thinning rates are rejected.
var ErrInvalidRate = errors.New("session: rate must be within 0..=128 forward")
