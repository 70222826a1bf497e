/*
NAME
  timestamp.go

DESCRIPTION
  timestamp.go provides Timestamp, the 33-bit 90kHz wraparound clock used
  by PCR, PTS and DTS fields, plus PlaybackTime, which integrates a
  sequence of Timestamps into an unbounded, monotonic time.Duration.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ts

import "time"

// ClockFrequency is the 90kHz clock used by PTS/DTS and the PCR base.
const ClockFrequency = 90000

// timestampBits is the width, in bits, of the wraparound clock.
const timestampBits = 33

// TimestampModulus is 2^33, the point at which a Timestamp wraps to 0.
const TimestampModulus = 1 << timestampBits

// Timestamp is a 33-bit 90kHz clock value, always in [0, 2^33). Arithmetic
// on Timestamp wraps modulo 2^33, as PCR/PTS/DTS fields do on the wire.
type Timestamp uint64

// NewTimestamp masks raw to the 33-bit timestamp range.
func NewTimestamp(raw uint64) Timestamp {
	return Timestamp(raw % TimestampModulus)
}

// Add returns t+d (mod 2^33), where d is interpreted as a Timestamp delta.
func (t Timestamp) Add(d uint64) Timestamp {
	return Timestamp((uint64(t) + d) % TimestampModulus)
}

// Sub returns the modular short-way difference t-u, interpreted as a
// signed duration. If the short way around the 2^33 circle from u to t is
// forward, the result is positive; if u is ahead of t by less than half
// the circle, the result is negative.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	diff := (int64(t) - int64(u)) % TimestampModulus
	if diff > TimestampModulus/2 {
		diff -= TimestampModulus
	} else if diff < -TimestampModulus/2 {
		diff += TimestampModulus
	}
	return time.Duration(diff) * time.Second / ClockFrequency
}

// ToDuration converts t to a time.Duration since an arbitrary epoch,
// dividing by the 90kHz clock frequency.
func (t Timestamp) ToDuration() time.Duration {
	return time.Duration(t) * time.Second / ClockFrequency
}

// PlaybackTime integrates a sequence of PCR Timestamps from a single
// service into a monotone (modulo small backward corrections), unbounded
// time.Duration.
type PlaybackTime struct {
	have     bool
	prevPCR  Timestamp
	duration time.Duration
}

// Duration returns the current accumulated duration.
func (p *PlaybackTime) Duration() time.Duration { return p.duration }

// Reset clears the accumulated duration and the previous-PCR anchor, as
// happens on rewind-to-start.
func (p *PlaybackTime) Reset() {
	p.have = false
	p.duration = 0
}

// Advance folds a newly observed PCR into the accumulated duration. The
// first call after construction or Reset only anchors prevPCR and does
// not advance duration. Forward PCRs add the modular difference; backward
// PCRs (small corrections) subtract, floored at zero.
func (p *PlaybackTime) Advance(pcr Timestamp) {
	if !p.have {
		p.prevPCR = pcr
		p.have = true
		return
	}
	delta := pcr.Sub(p.prevPCR)
	p.prevPCR = pcr
	p.duration += delta
	if p.duration < 0 {
		p.duration = 0
	}
}

// SetDuration forcibly sets the accumulated duration, used when a seek
// snaps PlaybackTime to a target position.
func (p *PlaybackTime) SetDuration(d time.Duration) {
	p.duration = d
}

// LastPCR returns the most recently folded-in PCR and whether
// PlaybackTime has been anchored at all yet.
func (p *PlaybackTime) LastPCR() (Timestamp, bool) { return p.prevPCR, p.have }

// Anchor re-anchors PlaybackTime to pcr with duration as the current
// accumulated value, used when a seek lands on a known-good (byte,
// PCR) pair and the worker wants subsequent Advance calls to compute
// deltas from there rather than from wherever PlaybackTime last was.
func (p *PlaybackTime) Anchor(pcr Timestamp, duration time.Duration) {
	p.have = true
	p.prevPCR = pcr
	p.duration = duration
}
