/*
NAME
  filter.go

DESCRIPTION
  filter.go implements the two PID-indexed filter kinds a Demuxer routes
  packets through: a PSI/SI section assembler and a PES reassembler.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package demux

import (
	"github.com/ausocean/isdbts/ts/psi"
	"github.com/ausocean/isdbts/ts/tspacket"
)

type filterKind int

const (
	filterPSI filterKind = iota
	filterPES
)

// filter is one PID's routing slot: either a section assembler wired to a
// table-delivery callback, or a PES payload accumulator wired to a
// complete-packet callback. Demuxer.Feed dispatches by filter.kind.
type filter struct {
	kind filterKind

	asm       *psi.Assembler
	onSection func(psi.Section)

	pesBuf  []byte
	pesOpen bool
	onPES   func(payload []byte)
}

// feed routes one packet's payload through the filter. The slice passed
// to onPES stays valid after the call returns: the next PUSI
// replaces f.pesBuf with a fresh allocation rather than mutating the one
// already handed to a prior callback.
func (f *filter) feed(p *tspacket.Packet) {
	switch f.kind {
	case filterPSI:
		if p.Payload == nil {
			return
		}
		for _, s := range f.asm.Feed(p.Payload, p.PUSI) {
			f.onSection(s)
		}
	case filterPES:
		if p.PUSI {
			if f.pesOpen && len(f.pesBuf) > 0 {
				f.onPES(f.pesBuf)
			}
			f.pesBuf = nil
			f.pesOpen = true
		}
		if f.pesOpen && p.Payload != nil {
			f.pesBuf = append(f.pesBuf, p.Payload...)
		}
	}
}
