package ts

import "testing"

func TestTimestampWrap(t *testing.T) {
	max := Timestamp(TimestampModulus - 1)
	if got := max.Add(1); got != 0 {
		t.Fatalf("wrap: got %d, want 0", got)
	}
}

func TestTimestampSubModularShortWay(t *testing.T) {
	max := Timestamp(TimestampModulus - 1)
	// Timestamp(0) - Timestamp(2^33 - 1) = 1, the short way (wrap forward).
	d := Timestamp(0).Sub(max)
	want := Timestamp(1).ToDuration()
	if d != want {
		t.Fatalf("got %v, want %v", d, want)
	}
}

func TestPlaybackTimeMonotone(t *testing.T) {
	var pt PlaybackTime
	pt.Advance(Timestamp(0))
	pt.Advance(Timestamp(ClockFrequency)) // +1 second
	if pt.Duration().Seconds() < 1 {
		t.Fatalf("expected at least 1s of accumulated duration, got %v", pt.Duration())
	}
}

func TestPlaybackTimeBackwardFloored(t *testing.T) {
	var pt PlaybackTime
	pt.Advance(Timestamp(ClockFrequency))
	pt.Advance(Timestamp(0)) // goes backward by 1s from a near-zero baseline
	if pt.Duration() < 0 {
		t.Fatalf("duration should never go negative, got %v", pt.Duration())
	}
}
