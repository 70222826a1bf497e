/*
NAME
  main.go

DESCRIPTION
  isdbplay is a bare-bones command-line host application exercising
  the extractor+session pipeline against an ARIB TS file on disk: it
  opens the file, spawns an extractor.Extractor behind a sinkProxy,
  wraps it in a session.Session once constructed, drives Play
  immediately, logs every Updates/EventHandler callback, and reports
  periodic position/status lines until end of presentation or SIGINT.
  It stands in for a GUI/platform decoder host: samples are pulled and
  counted rather than decoded or rendered.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements isdbplay, a command-line driver for the
// extractor+session playback pipeline.
package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/isdbts/demux"
	"github.com/ausocean/isdbts/extractor"
	"github.com/ausocean/isdbts/session"
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
)

// Logging related constants.
const (
	logPath      = "/var/log/isdbplay/isdbplay.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = false
)

// statusInterval is how often the main loop reports position/status
// while playback runs.
const statusInterval = 2 * time.Second

func main() {
	pathPtr := flag.String("path", "", "path to an MPEG-2 TS file to play")
	logPathPtr := flag.String("log-path", logPath, "log file path")
	flag.Parse()

	if *pathPtr == "" {
		os.Stderr.WriteString("isdbplay: -path is required\n")
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   *logPathPtr,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	f, err := os.Open(*pathPtr)
	if err != nil {
		l.Fatal("could not open input file", "error", err)
	}
	defer f.Close()

	// session.Session implements extractor.Sink, but constructing a
	// Session requires an already-spawned Extractor: sinkProxy breaks
	// the cycle by standing in as Spawn's Sink until the Session exists,
	// then forwarding every call to it.
	proxy := &sinkProxy{}

	extract, err := extractor.Spawn(f, l, proxy)
	if err != nil {
		l.Fatal("could not spawn extractor", "error", err)
	}

	h := &host{log: l, done: make(chan struct{})}

	sess, err := session.New(l, extract, h, session.WithUpdates(h))
	if err != nil {
		l.Fatal("could not create session", "error", err)
	}
	h.session = sess
	proxy.setTarget(sess)

	if err := sess.Play(); err != nil {
		l.Error("play failed", "error", err)
	}
	// With no real renderer pipeline behind it, this host acknowledges
	// the Start transition itself; a platform host would call this from
	// its pipeline's state callback instead.
	if err := sess.NotifyTransitioned(session.StatusStarted); err != nil {
		l.Error("start acknowledgement failed", "error", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			l.Info("isdbplay: shutting down on signal")
			shutdown(l, extract)
			return
		case <-h.done:
			l.Info("isdbplay: end of presentation")
			shutdown(l, extract)
			return
		case <-ticker.C:
			l.Info("isdbplay: status",
				"status", sess.Status().String(),
				"position", sess.Position(),
				"videoBytes", h.videoBytes,
				"audioBytes", h.audioBytes)
		}
	}
}

func shutdown(l logging.Logger, extract *extractor.Extractor) {
	if err := extract.Shutdown(); err != nil {
		l.Debug("isdbplay: shutdown", "error", err)
	}
	extract.Wait()
}

// sinkProxy stands in as extractor.Sink until the real target (a
// *session.Session) is constructed, so Spawn can run its startup probe
// and start its worker before the Session that will ultimately consume
// its callbacks exists. NeedsES reports false with no target, so the
// worker simply parks rather than reading ahead during the brief
// construction window.
type sinkProxy struct {
	mu     sync.Mutex
	target extractor.Sink
}

func (p *sinkProxy) setTarget(s extractor.Sink) {
	p.mu.Lock()
	p.target = s
	p.mu.Unlock()
}

func (p *sinkProxy) get() extractor.Sink {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

func (p *sinkProxy) NeedsES() bool {
	t := p.get()
	return t != nil && t.NeedsES()
}
func (p *sinkProxy) OnServicesUpdated(services demux.ServiceMap) {
	if t := p.get(); t != nil {
		t.OnServicesUpdated(services)
	}
}
func (p *sinkProxy) OnStreamsUpdated(services demux.ServiceMap, service *demux.Service) {
	if t := p.get(); t != nil {
		t.OnStreamsUpdated(services, service)
	}
}
func (p *sinkProxy) OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool) {
	if t := p.get(); t != nil {
		t.OnEventUpdated(services, service, isPresent)
	}
}
func (p *sinkProxy) OnServiceChanged(serviceID demux.ServiceID) {
	if t := p.get(); t != nil {
		t.OnServiceChanged(serviceID)
	}
}
func (p *sinkProxy) OnStreamChanged(change extractor.StreamChange, selected extractor.SelectedStream) {
	if t := p.get(); t != nil {
		t.OnStreamChanged(change, selected)
	}
}
func (p *sinkProxy) OnVideoPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	if t := p.get(); t != nil {
		t.OnVideoPacket(pos, pid, payload)
	}
}
func (p *sinkProxy) OnAudioPacket(pos time.Duration, pid ts.Pid, payload []byte) {
	if t := p.get(); t != nil {
		t.OnAudioPacket(pos, pid, payload)
	}
}
func (p *sinkProxy) OnCaption(pos time.Duration, caption demux.Caption) {
	if t := p.get(); t != nil {
		t.OnCaption(pos, caption)
	}
}
func (p *sinkProxy) OnSuperimpose(pos time.Duration, caption demux.Caption) {
	if t := p.get(); t != nil {
		t.OnSuperimpose(pos, caption)
	}
}
func (p *sinkProxy) OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID) {
	if t := p.get(); t != nil {
		t.OnPCR(services, serviceIDs)
	}
}
func (p *sinkProxy) OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset) {
	if t := p.get(); t != nil {
		t.OnTOT(utc, offset)
	}
}
func (p *sinkProxy) OnSeekCompleted(pos time.Duration) {
	if t := p.get(); t != nil {
		t.OnSeekCompleted(pos)
	}
}
func (p *sinkProxy) OnEndOfStream() {
	if t := p.get(); t != nil {
		t.OnEndOfStream()
	}
}
func (p *sinkProxy) OnStreamError(err error) {
	if t := p.get(); t != nil {
		t.OnStreamError(err)
	}
}

var _ extractor.Sink = (*sinkProxy)(nil)

// host implements session.EventHandler and session.Updates, logging
// every callback and pulling samples off the session as they become
// ready. It counts bytes delivered per stream rather than decoding
// them.
type host struct {
	log     logging.Logger
	session *session.Session

	videoBytes int64
	audioBytes int64

	done chan struct{}
}

func (h *host) OnReady() { h.log.Info("isdbplay: ready") }
func (h *host) OnStarted() {
	h.log.Info("isdbplay: started")
	go h.pump(session.StreamVideo)
	go h.pump(session.StreamAudio)
}
func (h *host) OnPaused()  { h.log.Info("isdbplay: paused") }
func (h *host) OnStopped() { h.log.Info("isdbplay: stopped") }
func (h *host) OnRateChanged(rate float32) {
	h.log.Info("isdbplay: rate changed", "rate", rate)
}
func (h *host) OnSeekCompleted(pos time.Duration) {
	h.log.Info("isdbplay: seek completed", "position", pos)
}
func (h *host) OnStreamEndOfStream(kind session.StreamKind) {
	h.log.Info("isdbplay: stream end of stream", "stream", kind.String())
}
func (h *host) OnEndOfPresentation() {
	h.log.Info("isdbplay: end of presentation")
	close(h.done)
}

// pump repeatedly pulls samples for kind, standing in for a platform
// decode/render sink.
func (h *host) pump(kind session.StreamKind) {
	for {
		sample, ok := h.session.RequestSample(kind)
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if kind == session.StreamVideo {
			h.videoBytes += int64(len(sample.Payload))
		} else {
			h.audioBytes += int64(len(sample.Payload))
		}
	}
}

func (h *host) OnServicesUpdated(services demux.ServiceMap) {
	h.log.Debug("isdbplay: services updated", "count", len(services.Services))
}
func (h *host) OnStreamsUpdated(services demux.ServiceMap, service *demux.Service) {
	h.log.Debug("isdbplay: streams updated", "service", service.ServiceID)
}
func (h *host) OnEventUpdated(services demux.ServiceMap, service *demux.Service, isPresent bool) {
	h.log.Debug("isdbplay: event updated", "service", service.ServiceID, "present", isPresent)
}
func (h *host) OnServiceChanged(serviceID demux.ServiceID) {
	h.log.Info("isdbplay: service changed", "service", serviceID)
}
func (h *host) OnStreamChanged(change extractor.StreamChange, selected extractor.SelectedStream) {
	h.log.Info("isdbplay: stream changed", "videoPID", change.VideoPID, "audioPID", change.AudioPID)
}
func (h *host) OnCaption(pos time.Duration, caption demux.Caption) {
	h.log.Debug("isdbplay: caption", "position", pos)
}
func (h *host) OnSuperimpose(pos time.Duration, caption demux.Caption) {
	h.log.Debug("isdbplay: superimpose", "position", pos)
}
func (h *host) OnPCR(services demux.ServiceMap, serviceIDs []demux.ServiceID) {
	h.log.Debug("isdbplay: pcr", "services", len(serviceIDs))
}
func (h *host) OnTOT(utc ts.DateTime, offset *descriptor.LocalTimeOffset) {
	h.log.Debug("isdbplay: tot", "hasOffset", offset != nil)
}
func (h *host) OnStreamError(err error) {
	h.log.Error("isdbplay: stream error", "error", err)
}

var _ session.EventHandler = (*host)(nil)
var _ session.Updates = (*host)(nil)
