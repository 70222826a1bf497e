/*
NAME
  session_test.go

DESCRIPTION
  session_test.go tests Session's pending-transition flush discipline
  (position subsumes command, then command, then rate) and the sample
  delivery end-of-stream/end-of-presentation protocol, exercised
  against a fake extractHandle/EventHandler.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package session

import (
	"testing"
	"time"
)

// testLogger discards everything, matching extractor's own test helper
// style (extractor/extractor_test.go).
type testLogger struct{}

func (testLogger) SetLevel(int8)                                   {}
func (testLogger) Log(level int8, msg string, args ...interface{}) {}
func (testLogger) Debug(msg string, args ...interface{})           {}
func (testLogger) Info(msg string, args ...interface{})            {}
func (testLogger) Warning(msg string, args ...interface{})         {}
func (testLogger) Error(msg string, args ...interface{})           {}
func (testLogger) Fatal(msg string, args ...interface{})           {}

// fakeExtract is a minimal extractHandle recording calls.
type fakeExtract struct {
	resetCalls    int
	requestCalls  int
	setPositions  []time.Duration
	duration      time.Duration
	shutdownCalls int
	failSeek      bool
}

func (f *fakeExtract) Reset() error       { f.resetCalls++; return nil }
func (f *fakeExtract) RequestES() error   { f.requestCalls++; return nil }
func (f *fakeExtract) Duration() time.Duration { return f.duration }
func (f *fakeExtract) Shutdown() error    { f.shutdownCalls++; return nil }
func (f *fakeExtract) SetPosition(pos time.Duration) error {
	f.setPositions = append(f.setPositions, pos)
	return nil
}

// fakeEventHandler records every callback invocation.
type fakeEventHandler struct {
	ready, started, paused, stopped int
	rates                           []float32
	seekCompleted                   []time.Duration
	eos                             []StreamKind
	endOfPresentation               int
}

func (f *fakeEventHandler) OnReady()                 { f.ready++ }
func (f *fakeEventHandler) OnStarted()                { f.started++ }
func (f *fakeEventHandler) OnPaused()                 { f.paused++ }
func (f *fakeEventHandler) OnStopped()                { f.stopped++ }
func (f *fakeEventHandler) OnRateChanged(r float32)   { f.rates = append(f.rates, r) }
func (f *fakeEventHandler) OnSeekCompleted(pos time.Duration) {
	f.seekCompleted = append(f.seekCompleted, pos)
}
func (f *fakeEventHandler) OnStreamEndOfStream(kind StreamKind) { f.eos = append(f.eos, kind) }
func (f *fakeEventHandler) OnEndOfPresentation()                { f.endOfPresentation++ }

func newTestSession(t *testing.T, opts ...Option) (*Session, *fakeExtract, *fakeEventHandler) {
	t.Helper()
	extract := &fakeExtract{}
	handler := &fakeEventHandler{}
	s, err := New(testLogger{}, extract, handler, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, extract, handler
}

func TestNewFiresOnReady(t *testing.T) {
	_, _, handler := newTestSession(t)
	if handler.ready != 1 {
		t.Fatalf("OnReady called %d times, want 1", handler.ready)
	}
}

func TestPlayPauseInvalidTransitions(t *testing.T) {
	s, _, _ := newTestSession(t)

	// Session starts life requesting OpenPending, not a Started/Paused/
	// Stopped state, so Pause is invalid before any Play.
	if err := s.Pause(); err != ErrInvalidRequest {
		t.Fatalf("Pause() before Play = %v, want ErrInvalidRequest", err)
	}

	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := s.Play(); err != nil {
		t.Fatalf("Play() while already pending Started = %v, want nil (no-op)", err)
	}
}

// TestPendingFlushOrder is the central "op request" flush-order test:
// while a Play transition is pending, a Pause command and a seek both
// latch, then a rate change also latches; NotifyTransitioned must
// flush them as position first (subsuming the pause command into the
// seek's final state), then command, then rate.
func TestPendingFlushOrder(t *testing.T) {
	s, extract, handler := newTestSession(t)

	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !s.isPending {
		t.Fatalf("expected isPending after Play()")
	}

	if err := s.Pause(); err != nil {
		t.Fatalf("Pause() while pending error = %v", err)
	}
	if err := s.SetPosition(5 * time.Second); err != nil {
		t.Fatalf("SetPosition() while pending error = %v", err)
	}
	if err := s.SetRate(2); err != nil {
		t.Fatalf("SetRate() while pending error = %v", err)
	}

	// Nothing should have reached the extractor yet.
	if len(extract.setPositions) != 0 {
		t.Fatalf("SetPosition reached extractor before flush: %v", extract.setPositions)
	}
	if len(handler.rates) != 0 {
		t.Fatalf("OnRateChanged fired before flush: %v", handler.rates)
	}

	if err := s.NotifyTransitioned(StatusStarted); err != nil {
		t.Fatalf("NotifyTransitioned() error = %v", err)
	}

	if len(extract.setPositions) != 1 || extract.setPositions[0] != 5*time.Second {
		t.Fatalf("extract.SetPosition calls = %v, want [5s]", extract.setPositions)
	}
	if handler.started != 1 {
		t.Fatalf("OnStarted called %d times, want 1", handler.started)
	}
	if handler.paused != 0 {
		t.Fatalf("OnPaused called %d times, want 0 (status only follows an ack)", handler.paused)
	}
	if len(handler.rates) != 1 || handler.rates[0] != 2 {
		t.Fatalf("OnRateChanged calls = %v, want [2]", handler.rates)
	}

	s.mu.Lock()
	gotState := s.state
	gotPending := s.isPending
	s.mu.Unlock()
	if gotState != statePaused {
		t.Fatalf("state after flush = %v, want statePaused (command subsumed into seek)", gotState)
	}
	if !gotPending {
		t.Fatalf("expected isPending still true: the repositioned Paused state awaits its own ack")
	}

	// The seek itself completes independently, via the extractor's
	// OnSeekCompleted relay.
	s.OnSeekCompleted(5 * time.Second)
	if len(handler.seekCompleted) != 1 || handler.seekCompleted[0] != 5*time.Second {
		t.Fatalf("OnSeekCompleted relay = %v, want [5s]", handler.seekCompleted)
	}
}

func TestStopResetsExtractor(t *testing.T) {
	s, extract, _ := newTestSession(t)

	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := s.NotifyTransitioned(StatusStarted); err != nil {
		t.Fatalf("NotifyTransitioned() error = %v", err)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if extract.resetCalls != 1 {
		t.Fatalf("extract.Reset called %d times, want 1", extract.resetCalls)
	}
}

func TestSetRateRejectsOutOfRange(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.SetRate(-1); err != ErrInvalidRate {
		t.Fatalf("SetRate(-1) = %v, want ErrInvalidRate", err)
	}
	if err := s.SetRate(129); err != ErrInvalidRate {
		t.Fatalf("SetRate(129) = %v, want ErrInvalidRate", err)
	}
	if err := s.SetRate(128); err != nil {
		t.Fatalf("SetRate(128) error = %v, want nil", err)
	}
}

func TestVolumeMuteBoundsApplyEagerlyWhilePending(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !s.isPending {
		t.Fatalf("expected isPending after Play()")
	}
	if err := s.SetVolume(0.5); err != nil {
		t.Fatalf("SetVolume() error = %v", err)
	}
	if err := s.SetMuted(true); err != nil {
		t.Fatalf("SetMuted() error = %v", err)
	}
	if err := s.SetBounds(Bounds{Right: 1920, Bottom: 1080}); err != nil {
		t.Fatalf("SetBounds() error = %v", err)
	}
	s.mu.Lock()
	vol, muted, bounds := s.volume, s.muted, s.bounds
	s.mu.Unlock()
	if vol != 0.5 || !muted || bounds.Right != 1920 {
		t.Fatalf("volume/mute/bounds not applied eagerly: %v %v %v", vol, muted, bounds)
	}
}

func TestSampleDeliveryEndOfStreamAndPresentation(t *testing.T) {
	s, extract, handler := newTestSession(t)

	s.OnVideoPacket(0, 0x101, []byte{0x01})
	s.OnAudioPacket(0, 0x102, []byte{0x02})

	if _, ok := s.RequestSample(StreamVideo); !ok {
		t.Fatalf("RequestSample(video) ok = false, want true")
	}
	if _, ok := s.RequestSample(StreamAudio); !ok {
		t.Fatalf("RequestSample(audio) ok = false, want true")
	}
	if extract.requestCalls == 0 {
		t.Fatalf("expected RequestES to have been called at least once")
	}

	// Queues are now empty; report end-of-stream.
	s.OnEndOfStream()
	if len(handler.eos) != 2 {
		t.Fatalf("OnStreamEndOfStream fired %d times, want 2 (video, audio)", len(handler.eos))
	}
	if handler.endOfPresentation != 1 {
		t.Fatalf("OnEndOfPresentation fired %d times, want 1 (queues were already drained)", handler.endOfPresentation)
	}

	// A repeated OnEndOfStream (matching the extractor's own re-invoke
	// policy while the sink still asks for ES) must not refire either
	// event.
	s.OnEndOfStream()
	if len(handler.eos) != 2 || handler.endOfPresentation != 1 {
		t.Fatalf("repeated OnEndOfStream refired events: eos=%v, endOfPresentation=%d", handler.eos, handler.endOfPresentation)
	}
}

func TestSampleDeliveryPresentationEndsOnlyAfterDrain(t *testing.T) {
	s, _, handler := newTestSession(t)

	s.OnVideoPacket(0, 0x101, []byte{0x01})
	// Audio queue is empty and audio is never fed, so audio drains
	// immediately; video has one undelivered sample.
	s.OnEndOfStream()
	if len(handler.eos) != 2 {
		t.Fatalf("OnStreamEndOfStream fired %d times, want 2", len(handler.eos))
	}
	if handler.endOfPresentation != 0 {
		t.Fatalf("OnEndOfPresentation fired early, before the video queue drained")
	}

	if _, ok := s.RequestSample(StreamVideo); !ok {
		t.Fatalf("RequestSample(video) ok = false, want true")
	}
	if handler.endOfPresentation != 1 {
		t.Fatalf("OnEndOfPresentation fired %d times after drain, want 1", handler.endOfPresentation)
	}
}

func TestCloseWaitsForAckThenTimesOut(t *testing.T) {
	s, extract, _ := newTestSession(t, WithCloseTimeout(20*time.Millisecond))

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("Close() returned after %v, want >= timeout", elapsed)
	}
	if extract.shutdownCalls != 1 {
		t.Fatalf("extract.Shutdown called %d times, want 1", extract.shutdownCalls)
	}
	if s.Status() != StatusClosed {
		t.Fatalf("Status() = %v, want StatusClosed", s.Status())
	}
}

func TestCloseReturnsImmediatelyOnAck(t *testing.T) {
	s, _, _ := newTestSession(t, WithCloseTimeout(5*time.Second))

	done := make(chan struct{})
	go func() {
		s.NotifyClosed()
		close(done)
	}()
	<-done

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Close() took %v, want near-immediate given the ack fired first", elapsed)
	}
}
