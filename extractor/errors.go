/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the Extractor's sentinel and detailed error types.

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
	"errors"
	"fmt"
)

// AlreadyShutdown is returned by every ExtractHandler method once
// Shutdown has been called.
var AlreadyShutdown = errors.New("extractor: already shut down")

// Unseekable is returned by SetPosition when the source's StreamLength
// could not be determined during the probe pass.
var Unseekable = errors.New("extractor: stream length unknown, cannot seek")

// StreamProbeError is returned via Sink.OnStreamError when the initial
// probe selects no service with both a video and an audio stream within
// probeSize bytes.
type StreamProbeError struct {
	// BytesScanned is how far the probe read before giving up.
	BytesScanned int64
	// ServicesSeen is the number of services in the extractor's
	// published service map when the probe gave up.
	ServicesSeen int
}

func (e *StreamProbeError) Error() string {
	return fmt.Sprintf("extractor: probe found no playable service after %d bytes (%d services seen)", e.BytesScanned, e.ServicesSeen)
}
