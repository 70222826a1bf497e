/*
NAME
  sample.go

DESCRIPTION
  sample.go implements sample delivery: ES payloads wrapped with a
  100-ns timestamp, pulled by the host's renderer via RequestSample,
  with NeedsES back-pressure towards the extractor.

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

import "time"

// StreamKind distinguishes the session's two sample endpoints. End of
// stream is raised independently on each.
type StreamKind int

const (
	StreamVideo StreamKind = iota
	StreamAudio
)

func (k StreamKind) String() string {
	if k == StreamAudio {
		return "audio"
	}
	return "video"
}

// Sample is one ES payload wrapped with its playback timestamp.
// HundredNanos converts Timestamp into the 100-ns tick count platform
// media pipelines conventionally use.
type Sample struct {
	Timestamp time.Duration
	Payload   []byte
}

// HundredNanos returns Timestamp in 100-ns units.
func (s Sample) HundredNanos() int64 {
	return int64(s.Timestamp / 100)
}

// sampleQueueCapacity is the queue length at which a stream endpoint
// stops asking for samples. NeedsES, the canonical back-pressure signal,
// reports false only once both endpoints reach it; push does not bound
// a queue.
const sampleQueueCapacity = 8

// sampleQueue is a small FIFO of pulled-but-undelivered samples for one
// stream endpoint, plus whether that endpoint has seen end-of-stream.
type sampleQueue struct {
	items []Sample
	eos   bool
}

func (q *sampleQueue) push(s Sample) {
	q.items = append(q.items, s)
}

func (q *sampleQueue) pop() (Sample, bool) {
	if len(q.items) == 0 {
		return Sample{}, false
	}
	s := q.items[0]
	q.items = q.items[1:]
	return s, true
}

func (q *sampleQueue) needsMore() bool {
	return len(q.items) < sampleQueueCapacity
}

func (q *sampleQueue) drained() bool {
	return len(q.items) == 0
}
