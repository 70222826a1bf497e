/*
NAME
  scan.go

DESCRIPTION
  scan.go provides linear scanning helpers over a clip of concatenated
  TS packets.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tspacket

import (
	"github.com/pkg/errors"

	"github.com/ausocean/isdbts/ts"
)

// ErrNotFound is returned by Find/FindLast when no packet with the
// requested PID exists in the scanned range.
var ErrNotFound = errors.New("tspacket: no packet with requested PID found")

// Find returns the byte offset of the first packet in d with the given
// PID, scanning forward from the start of d. d need not be packet-aligned
// internally but is scanned in Size-byte strides from offset 0.
func Find(d []byte, pid ts.Pid) (offset int, err error) {
	for i := 0; i+Size <= len(d); i += Size {
		p, ok := ts.ParsePid(d[i+1 : i+3])
		if ok && p == pid {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// FindLast returns the byte offset of the last packet in d with the given
// PID, scanning backward from the end of d.
func FindLast(d []byte, pid ts.Pid) (offset int, err error) {
	n := (len(d) / Size) * Size
	for i := n - Size; i >= 0; i -= Size {
		p, ok := ts.ParsePid(d[i+1 : i+3])
		if ok && p == pid {
			return i, nil
		}
	}
	return -1, ErrNotFound
}
