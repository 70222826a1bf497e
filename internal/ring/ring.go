/*
NAME
  ring.go

DESCRIPTION
  ring.go provides Ring, a fixed-capacity circular buffer used to hold
  the last N entries of a stream, overwriting the oldest when full. It
  backs the extractor's 10-entry caption buffer held during a seek.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ring provides a small fixed-capacity circular buffer.
package ring

// Ring is a fixed-capacity circular buffer of T. Push overwrites the
// oldest entry once the buffer is full; Items returns the retained
// entries in insertion order (oldest first).
type Ring[T any] struct {
	buf   []T
	start int
	count int
}

// New returns a Ring with the given capacity. Capacity must be positive.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, discarding the oldest entry if the ring is already at
// capacity.
func (r *Ring[T]) Push(v T) {
	idx := (r.start + r.count) % len(r.buf)
	r.buf[idx] = v
	if r.count < len(r.buf) {
		r.count++
	} else {
		r.start = (r.start + 1) % len(r.buf)
	}
}

// Len returns the number of entries currently retained.
func (r *Ring[T]) Len() int { return r.count }

// Items returns the retained entries, oldest first. The returned slice
// is a fresh copy; mutating it does not affect the ring.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Reset empties the ring without releasing its backing array.
func (r *Ring[T]) Reset() {
	r.start = 0
	r.count = 0
}
