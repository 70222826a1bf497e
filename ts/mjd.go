/*
NAME
  mjd.go

DESCRIPTION
  mjd.go decodes the Modified Julian Date + BCD time fields used by TDT,
  TOT and EIT start_time, into a DateTime.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ts

import (
	"time"

	"github.com/ausocean/isdbts/bits"
)

// DateTime is a broadcast wall-clock time, always interpreted as JST
// (UTC+9) per ARIB STD-B10, represented internally as a UTC time.Time.
type DateTime struct {
	time.Time
}

// MjdDate is a 16-bit Modified Julian Date as carried on the wire.
type MjdDate uint16

// ToGregorian converts an MJD to a Gregorian (year, month, day), using the
// standard algorithm from ETSI EN 300 468 Annex C.
func (m MjdDate) ToGregorian() (year, month, day int) {
	mjd := int(m)
	yp := int((float64(mjd) - 15078.2) / 365.25)
	mp := int((float64(mjd) - 14956.1 - float64(int(float64(yp)*365.25))) / 30.6001)
	day = mjd - 14956 - int(float64(yp)*365.25) - int(float64(mp)*30.6001)
	k := 0
	if mp == 14 || mp == 15 {
		k = 1
	}
	year = yp + k + 1900
	month = mp - 1 - k*12
	return
}

// ParseMjdBCDTime decodes a 5-byte MJD (2 bytes) + BCD HHMMSS (3 bytes)
// field, as used by EIT start_time and TDT/TOT UTC_time, into a DateTime
// in JST. ok is false on malformed/short input; this never panics.
func ParseMjdBCDTime(b []byte) (DateTime, bool) {
	if len(b) < 5 {
		return DateTime{}, false
	}
	mjdRaw, ok := bits.ReadBE16(b[0:2])
	if !ok {
		return DateTime{}, false
	}
	secs, ok := bits.ReadBCDSecond(b[2:5])
	if !ok {
		return DateTime{}, false
	}
	y, mo, d := MjdDate(mjdRaw).ToGregorian()
	jst := time.FixedZone("JST", 9*3600)
	t := time.Date(y, time.Month(mo), d, 0, 0, secs, 0, jst)
	return DateTime{t.UTC()}, true
}

// Bytes re-encodes dt into its 5-byte MJD+BCD wire form, the inverse of
// ParseMjdBCDTime, used to round-trip EIT event times in tests.
func (dt DateTime) Bytes() []byte {
	jst := dt.Time.In(time.FixedZone("JST", 9*3600))
	mjd := gregorianToMjd(jst.Year(), int(jst.Month()), jst.Day())
	out := make([]byte, 5)
	out[0] = byte(mjd >> 8)
	out[1] = byte(mjd)
	h, m, s := jst.Hour(), jst.Minute(), jst.Second()
	out[2] = toBCD(h)
	out[3] = toBCD(m)
	out[4] = toBCD(s)
	return out
}

func toBCD(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

// gregorianToMjd is the inverse of MjdDate.ToGregorian, per ETSI EN 300
// 468 Annex C.
func gregorianToMjd(year, month, day int) int {
	l := 0
	if month <= 2 {
		l = 1
	}
	return 14956 + day + int(float64(year-l-1900)*365.25) + int(float64(month+1+l*12)*30.6001)
}
