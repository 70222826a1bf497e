/*
NAME
  state.go

DESCRIPTION
  state.go provides Source (the opaque Read+Seek byte source) and the
  Extractor's published State: the RWMutex-guarded snapshot of
  services, selection, duration and wall-clock anchor that the worker
  writes and handle methods read.

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
	"sync"
	"time"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
)

// Source is the opaque, seekable byte source the Extractor reads a
// transport stream from. *os.File satisfies it
// directly.
type Source interface {
	io.Reader
	io.Seeker
}

// WorkerState is the extractor worker's top-level state.

type WorkerState int

const (
	Working WorkerState = iota
	Eos
	Error
)

func (s WorkerState) String() string {
	switch s {
	case Working:
		return "working"
	case Eos:
		return "eos"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// totAnchor anchors a TOT's wall-clock reading to the PlaybackTime
// duration observed when it was received, so ExtractHandler.Timestamp
// can extrapolate forward using later PCR/PTS ticks.
type totAnchor struct {
	utc        ts.DateTime
	atDuration time.Duration
	offset     *descriptor.LocalTimeOffset
}

// state is the Extractor's published, snapshot-friendly view. Every
// field is written only by the worker goroutine and read (under RLock)
// by ExtractHandler methods called from any goroutine.
type state struct {
	mu sync.RWMutex

	services demux.ServiceMap

	selected    SelectedStream
	hasSelected bool

	duration time.Duration
	length   *StreamLength

	lastTOT *totAnchor

	workerState WorkerState
	lastErr     error

	shutdown bool
}

func newState() *state {
	return &state{services: demux.NewServiceMap()}
}

// snapshotServices returns the published ServiceMap. It requires no
// further cloning by the caller: setServices only ever stores a
// ServiceMap that was already cloned off the Sorter's live instance.
func (s *state) snapshotServices() demux.ServiceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

func (s *state) snapshotSelected() (SelectedStream, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.hasSelected
}

func (s *state) snapshotDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

func (s *state) snapshotLength() (StreamLength, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.length == nil {
		return StreamLength{}, false
	}
	return *s.length, true
}

func (s *state) snapshotTimestamp() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastTOT == nil {
		return time.Time{}, false
	}
	elapsed := s.duration - s.lastTOT.atDuration
	return s.lastTOT.utc.Time.Add(elapsed), true
}

func (s *state) snapshotWorkerState() WorkerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workerState
}

func (s *state) isShutdown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shutdown
}

func (s *state) setShutdown() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
}

// setServices publishes m as the current snapshot. m must already be a
// demux.ServiceMap.Clone, not the Sorter's live instance, since the
// Sorter goes on mutating its *Service entries in place after this
// call returns and snapshotServices readers run on another goroutine.
func (s *state) setServices(m demux.ServiceMap) {
	s.mu.Lock()
	s.services = m
	s.mu.Unlock()
}

func (s *state) setSelected(sel SelectedStream) {
	s.mu.Lock()
	s.selected = sel
	s.hasSelected = true
	s.mu.Unlock()
}

func (s *state) setDuration(d time.Duration) {
	s.mu.Lock()
	s.duration = d
	s.mu.Unlock()
}

func (s *state) setLength(l StreamLength) {
	s.mu.Lock()
	s.length = &l
	s.mu.Unlock()
}

func (s *state) setTOT(dt ts.DateTime, offset *descriptor.LocalTimeOffset) {
	s.mu.Lock()
	s.lastTOT = &totAnchor{utc: dt, atDuration: s.duration, offset: offset}
	s.mu.Unlock()
}

func (s *state) setWorkerState(ws WorkerState, err error) {
	s.mu.Lock()
	s.workerState = ws
	s.lastErr = err
	s.mu.Unlock()
}
