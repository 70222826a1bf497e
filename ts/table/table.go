/*
NAME
  table.go

DESCRIPTION
  table.go provides RunningStatus and the BCD duration helper shared by
  every typed table parser in this package. Each parser in this package
  takes an already-reassembled, CRC-verified psi.Section and returns a
  typed struct or ok=false; none of them touch packet or section framing
  directly.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package table provides typed parsers for the ISDB PSI/SI tables:
// PAT, CAT, PMT, SDT, BAT, EIT (present/following and schedule), TDT,
// TOT, RST, BIT, NBIT, NIT, LDT, PCAT, LIT, ERT and ITT.
package table

import (
	"time"

	"github.com/ausocean/isdbts/bits"
)

// RunningStatus is the ARIB/DVB running_status enumeration carried by
// SDT and EIT event entries.
type RunningStatus byte

const (
	RunningStatusUndefined RunningStatus = iota
	RunningStatusNotRunning
	RunningStatusStartsShortly
	RunningStatusPausing
	RunningStatusRunning
	RunningStatusOffAir
	RunningStatusReserved // values 6-7.
)

func decodeRunningStatus(raw byte) RunningStatus {
	switch raw & 0x07 {
	case 0:
		return RunningStatusUndefined
	case 1:
		return RunningStatusNotRunning
	case 2:
		return RunningStatusStartsShortly
	case 3:
		return RunningStatusPausing
	case 4:
		return RunningStatusRunning
	case 5:
		return RunningStatusOffAir
	default:
		return RunningStatusReserved
	}
}

// readBCDDuration decodes a 3-byte BCD HHMMSS duration field, as carried
// by EIT's event duration, into a time.Duration.
func readBCDDuration(b []byte) (time.Duration, bool) {
	secs, ok := bcdDurationSeconds(b)
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// bcdDurationSeconds decodes a 3-byte BCD HHMMSS duration field into
// total seconds.
func bcdDurationSeconds(b []byte) (uint32, bool) {
	secs, ok := bits.ReadBCDSecond(b)
	if !ok {
		return 0, false
	}
	return uint32(secs), true
}
