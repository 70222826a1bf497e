/*
NAME
  config.go

DESCRIPTION
  config.go provides Option, functional-option configuration for
  Spawn, as functional options of the func(*T) error form.

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

// defaultProbeSize bounds how many bytes the startup probe reads while
// looking for a playable service.
const defaultProbeSize = 188 * 4096

// defaultTailProbeSize is how far from the end of a seekable source the
// probe pass looks for a second PCR sample.
const defaultTailProbeSize = 188 * 4096

// Option configures an Extractor at Spawn time.
type Option func(*Extractor) error

// ProbeSize overrides the default 188*4096-byte startup probe limit.
func ProbeSize(n int64) Option {
	return func(e *Extractor) error {
		e.probeSize = n
		return nil
	}
}

// TailProbeSize overrides how far from the end of the source the probe
// pass looks for its second PCR sample.
func TailProbeSize(n int64) Option {
	return func(e *Extractor) error {
		e.tailProbeSize = n
		return nil
	}
}
