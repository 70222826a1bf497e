/*
NAME
  extractor.go

DESCRIPTION
  extractor.go provides Extractor, the background worker that drives a
  file/stream Source through a demux.Sorter, surfaces services, selects
  a program plus video/audio/caption streams, performs bitrate-based
  seeking, and delivers timestamped ES payloads to a Sink. It implements demux.Shooter internally and translates the
  Sorter's raw table/PES deliveries into Sink's richer,
  selection-and-seek-aware callback surface.

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
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/tspacket"
)

// Extractor is both the background worker and the handle the host
// application uses to control it. Construct one with Spawn.
type Extractor struct {
	log    logging.Logger
	source Source
	sorter *demux.Sorter
	sink   Sink

	state *state
	cmds  *commandQueue
	wake  chan struct{}
	done  chan struct{}

	probeSize     int64
	tailProbeSize int64

	pos     int64
	readBuf [tspacket.Size]byte

	sel      selector
	playback ts.PlaybackTime

	seek *seekInfo

	scanning     bool
	scanFoundPCR *ts.Timestamp
}

// Spawn constructs an Extractor over source, wires it to sink, and
// starts its background worker goroutine after a successful stream
// probe. If the probe fails to find a playable service within the
// configured probe size, Spawn passes a *StreamProbeError to
// sink.OnStreamError, returns it, and starts no worker.
func Spawn(source Source, log logging.Logger, sink Sink, opts ...Option) (*Extractor, error) {
	e := &Extractor{
		log:           log,
		source:        source,
		sink:          sink,
		state:         newState(),
		cmds:          &commandQueue{},
		wake:          make(chan struct{}, 1),
		done:          make(chan struct{}),
		probeSize:     defaultProbeSize,
		tailProbeSize: defaultTailProbeSize,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.sorter = demux.NewSorter(log, shooterAdapter{e})

	if err := e.probe(); err != nil {
		e.sink.OnStreamError(err)
		return nil, err
	}

	go e.run()
	return e, nil
}

// shooterAdapter implements demux.Shooter, translating the Sorter's raw
// table/PES deliveries into Extractor state updates and Sink calls.
type shooterAdapter struct{ e *Extractor }

func (a shooterAdapter) OnPATUpdated(services demux.ServiceMap) {
	e := a.e
	snap := services.Clone()
	e.state.setServices(snap)
	e.forwardOrDefer(func(sink Sink) { sink.OnServicesUpdated(snap) })
	e.reresolveSelection(services)
}

func (a shooterAdapter) OnPMTUpdated(services demux.ServiceMap, service *demux.Service) {
	e := a.e
	snap := services.Clone()
	e.state.setServices(snap)
	snapService := snap.Services[service.ServiceID]
	e.forwardOrDefer(func(sink Sink) { sink.OnStreamsUpdated(snap, snapService) })
	e.reresolveSelection(services)
}

func (a shooterAdapter) OnEITUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool) {
	e := a.e
	snap := services.Clone()
	e.state.setServices(snap)
	snapService := snap.Services[service.ServiceID]
	e.forwardOrDefer(func(sink Sink) { sink.OnEventUpdated(snap, snapService, isPresent) })
}

func (a shooterAdapter) OnVideoPacket(services demux.ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte) {
	e := a.e
	if e.scanning {
		return
	}
	sel, ok := e.state.snapshotSelected()
	if !ok || !sel.HasVideo || sel.Video.PID != pid {
		return
	}
	e.sink.OnVideoPacket(e.esPosition(hasPTS, pts), pid, payload)
}

func (a shooterAdapter) OnAudioPacket(services demux.ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte) {
	e := a.e
	if e.scanning {
		return
	}
	sel, ok := e.state.snapshotSelected()
	if !ok || !sel.HasAudio || sel.Audio.PID != pid {
		return
	}
	e.sink.OnAudioPacket(e.esPosition(hasPTS, pts), pid, payload)
}

func (a shooterAdapter) OnCaption(services demux.ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption demux.Caption) {
	a.e.dispatchCaption(pid, hasPTS, pts, caption, false)
}

func (a shooterAdapter) OnSuperimpose(services demux.ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption demux.Caption) {
	a.e.dispatchCaption(pid, hasPTS, pts, caption, true)
}

func (e *Extractor) dispatchCaption(pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption demux.Caption, superimpose bool) {
	if e.scanning {
		return
	}
	sel, ok := e.state.snapshotSelected()
	if !ok {
		return
	}
	want := sel.CaptionPID
	have := sel.HasCaption
	if superimpose {
		want, have = sel.SuperimposePID, sel.HasSuperimpose
	}
	if !have || want != pid {
		return
	}
	pos, hasPos := e.esPositionOk(hasPTS, pts)
	if e.seek != nil {
		e.seek.pushCaption(cachedCaption{hasPos: hasPos, pos: pos, superimpose: superimpose, caption: caption})
		return
	}
	if superimpose {
		e.sink.OnSuperimpose(pos, caption)
	} else {
		e.sink.OnCaption(pos, caption)
	}
}

func (a shooterAdapter) OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID, pcr ts.Timestamp) {
	e := a.e
	def, ok := services.Default()
	isDefault := ok && containsServiceID(serviceIDs, def.ServiceID)

	if e.scanning {
		if isDefault {
			p := pcr
			e.scanFoundPCR = &p
		}
		return
	}

	if isDefault {
		e.playback.Advance(pcr)
		e.state.setDuration(e.playback.Duration())
		e.maybeCompleteIdleSeek()
	}
	e.sink.OnPCR(services, serviceIDs)
}

func (a shooterAdapter) OnTOT(services demux.ServiceMap, utc ts.DateTime, offset *descriptor.LocalTimeOffset) {
	a.e.state.setTOT(utc, offset)
	a.e.sink.OnTOT(utc, offset)
}

func containsServiceID(ids []demux.ServiceID, want demux.ServiceID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

// forwardOrDefer calls fn immediately with e.sink, unless a seek is
// outstanding, in which case it is recorded for replay in arrival
// order once the seek completes.
func (e *Extractor) forwardOrDefer(fn deferredUpdate) {
	if e.seek != nil {
		e.seek.addDeferred(fn)
		return
	}
	fn(e.sink)
}

// reresolveSelection recomputes SelectedStream and fires
// OnServiceChanged/OnStreamChanged (directly or deferred) if it
// changed.
func (e *Extractor) reresolveSelection(services demux.ServiceMap) {
	next, change, changed, serviceChanged := e.sel.resolve(services)
	if next.ServiceID == 0 && !e.sel.have {
		return
	}
	e.state.setSelected(next)
	if serviceChanged {
		id := next.ServiceID
		e.forwardOrDefer(func(sink Sink) { sink.OnServiceChanged(id) })
	}
	if changed {
		e.forwardOrDefer(func(sink Sink) { sink.OnStreamChanged(change, next) })
	}
}

// esPosition computes the playback position to report for an ES
// packet's timestamp: PlaybackTime + (PTS - current_PCR). When PTS is
// absent or PlaybackTime is not yet anchored, the current duration is
// used as a best-effort fallback.
func (e *Extractor) esPosition(hasPTS bool, pts ts.Timestamp) time.Duration {
	pos, _ := e.esPositionOk(hasPTS, pts)
	return pos
}

func (e *Extractor) esPositionOk(hasPTS bool, pts ts.Timestamp) (time.Duration, bool) {
	d := e.playback.Duration()
	if !hasPTS {
		return d, false
	}
	lastPCR, have := e.playback.LastPCR()
	if !have {
		return d, false
	}
	return d + pts.Sub(lastPCR), true
}

// readPacket reads exactly one 188-byte TS packet from e.source into
// e.readBuf, reused across calls since every consumer of its contents
// (the PSI/PES reassemblers) copies what it needs before returning, per
// demux/filter.go's documented reuse contract.
func (e *Extractor) readPacket() ([]byte, error) {
	n, err := io.ReadFull(e.source, e.readBuf[:])
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	e.pos += int64(n)
	return e.readBuf[:], nil
}

// feedPacket routes one packet through the Sorter.
func (e *Extractor) feedPacket(pkt []byte) {
	e.sorter.Feed(pkt)
}

// seekSource repositions the source and resets the extractor's own byte
// counter to match.
func (e *Extractor) seekSource(offset int64) error {
	n, err := e.source.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	e.pos = n
	return nil
}
