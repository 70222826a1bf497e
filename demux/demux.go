/*
NAME
  demux.go

DESCRIPTION
  demux.go provides Demuxer, a PID-indexed table of filter slots that
  routes parsed TS packets to PSI section assemblers, PES reassemblers,
  and PCR taps.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package demux

import (
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/psi"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// Demuxer owns a PID-indexed table of filter slots. A slot is either (a)
// a PSI section assembler wired to a table callback, or (b) a PES
// assembler wired to a payload callback; a PID may additionally carry a
// PCR tap independent of its main filter, since in practice the PCR PID
// is very often the same PID as the service's video elementary stream.
type Demuxer struct {
	filters    map[ts.Pid]*filter
	pcrWatches map[ts.Pid]func(pcr ts.Timestamp, ext uint16)
}

// NewDemuxer returns an empty Demuxer. Callers install filters with
// WatchSection/WatchPES/WatchPCR as PAT/PMT deliveries reveal the
// transport stream's PID layout; Sorter does this automatically.
func NewDemuxer() *Demuxer {
	return &Demuxer{
		filters:    make(map[ts.Pid]*filter),
		pcrWatches: make(map[ts.Pid]func(ts.Timestamp, uint16)),
	}
}

// WatchSection installs a PSI/SI section assembler on pid, replacing any
// main filter already installed there. onSection is invoked once per
// completed, de-duplicated section (see psi.Assembler.Feed).
func (d *Demuxer) WatchSection(pid ts.Pid, onSection func(psi.Section)) {
	d.filters[pid] = &filter{kind: filterPSI, asm: psi.NewAssembler(), onSection: onSection}
}

// WatchPES installs a PES reassembler on pid, replacing any main filter
// already installed there. onPES is invoked once per complete PES packet
// (the bytes from packet_start_code_prefix through the end of the last
// packet before the next payload_unit_start_indicator).
func (d *Demuxer) WatchPES(pid ts.Pid, onPES func(payload []byte)) {
	d.filters[pid] = &filter{kind: filterPES, onPES: onPES}
}

// WatchPCR registers onPCR to fire whenever a packet on pid carries an
// adaptation-field PCR, independent of whatever main filter (if any) is
// installed on the same PID.
func (d *Demuxer) WatchPCR(pid ts.Pid, onPCR func(pcr ts.Timestamp, ext uint16)) {
	d.pcrWatches[pid] = onPCR
}

// UnwatchSection removes pid's main filter (section or PES), if any.
func (d *Demuxer) UnwatchSection(pid ts.Pid) {
	delete(d.filters, pid)
}

// UnwatchPCR removes pid's PCR tap, if any.
func (d *Demuxer) UnwatchPCR(pid ts.Pid) {
	delete(d.pcrWatches, pid)
}

// Feed routes one parsed TS packet to its PID's installed filter(s).
// Packets on PIDs with no filter installed are silently discarded.
func (d *Demuxer) Feed(p *tspacket.Packet) {
	if f, ok := d.filters[p.PID]; ok {
		f.feed(p)
	}
	if p.Adapt != nil && p.Adapt.PCRFlag {
		if onPCR, ok := d.pcrWatches[p.PID]; ok {
			onPCR(p.Adapt.PCR, p.Adapt.PCRExt)
		}
	}
}
