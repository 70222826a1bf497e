/*
NAME
  probe.go

DESCRIPTION
  probe.go implements the Extractor's startup stream probe: read until a
  playable SelectedStream forms, record the default service's first PCR,
  then (if the source is seekable) sample a second PCR near the tail to
  derive StreamLength, before returning to the probe boundary.

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
	"io"

	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// probe drives the four-step startup scan. It
// returns a *StreamProbeError if no playable service (video + audio on
// one service) is found within probeSize bytes; any other error is a
// genuine I/O failure on the source.
func (e *Extractor) probe() error {
	var scanned int64
	for scanned < e.probeSize {
		pkt, err := e.readPacket()
		if err != nil {
			return e.probeFailure(scanned, err)
		}
		e.feedPacket(pkt)
		scanned += tspacket.Size
		if sel, ok := e.state.snapshotSelected(); ok && sel.HasVideo && sel.HasAudio {
			break
		}
	}
	sel, ok := e.state.snapshotSelected()
	if !ok || !sel.HasVideo || !sel.HasAudio {
		return &StreamProbeError{BytesScanned: scanned, ServicesSeen: len(e.state.snapshotServices().Services)}
	}

	// Step 2: continue until the first PCR on the default service's PCR
	// PID. postSelectionPos is where we fall back to if no PCR ever
	// turns up; stream length then stays unknown and seeking is
	// disabled, but playback proceeds.
	postSelectionPos := e.pos
	for {
		pkt, err := e.readPacket()
		if err != nil {
			e.seekSource(postSelectionPos)
			return nil
		}
		e.feedPacket(pkt)
		if _, have := e.playback.LastPCR(); have {
			break
		}
	}
	firstPCR, _ := e.playback.LastPCR()
	probeBoundary := e.pos

	if err := e.probeTail(firstPCR, probeBoundary); err != nil {
		e.log.Debug("tail probe for stream length failed, seeking disabled", "error", err)
	}

	// Step 4: return to the probe boundary and let the worker loop take
	// over from here.
	if err := e.seekSource(probeBoundary); err != nil {
		return err
	}
	e.playback.Reset()
	return nil
}

func (e *Extractor) probeFailure(scanned int64, err error) error {
	if err == io.EOF {
		return &StreamProbeError{BytesScanned: scanned, ServicesSeen: len(e.state.snapshotServices().Services)}
	}
	return err
}

// probeTail is the tail half of the probe: seek near the end of the
// source, scan forward for a second PCR on the default service, and
// record StreamLength. Any failure here (non-seekable source, short
// source, no second PCR found) leaves StreamLength unset; seeking is
// then disabled but playback proceeds normally.
func (e *Extractor) probeTail(firstPCR ts.Timestamp, probeBoundary int64) error {
	end, err := e.source.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	target := end - e.tailProbeSize
	if target < probeBoundary {
		target = probeBoundary
	}
	if err := e.seekSource(target); err != nil {
		return err
	}

	pcr, byteAt, err := e.scanForDefaultPCR()
	if err != nil {
		return err
	}

	length := StreamLength{
		FirstPCR:  firstPCR,
		LastPCR:   pcr,
		FirstByte: probeBoundary,
		LastByte:  byteAt,
	}
	if length.Duration() <= 0 {
		return nil
	}
	e.state.setLength(length)
	return nil
}
