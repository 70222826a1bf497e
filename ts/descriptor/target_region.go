/*
NAME
  target_region.go

DESCRIPTION
  target_region.go parses the target region descriptor (0xC6), which
  narrows an event or service to a geographic subset of Japan.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// TargetRegionSpecType identifies how TargetRegion.Raw is shaped.
// Only the prefecture-bitmap spec (0x01) is interpreted; others are
// preserved as raw bytes.
type TargetRegionSpecType byte

const (
	TargetRegionSpecBSPrefecture TargetRegionSpecType = 0x01
)

// TargetRegion is the decoded form of the target region descriptor
// (0xC6). Prefectures[i] is region bit i+1 of the 50-region bitmap:
// 1-47 are the prefectures (with east/west Hokkaido split and Tokyo and
// Kagoshima excluding their islands), 48 is Okinawa, 49 the Tokyo
// islands (Izu/Ogasawara) and 50 the Kagoshima islands.
type TargetRegion struct {
	SpecType    TargetRegionSpecType
	Prefectures [50]bool // valid only when SpecType == TargetRegionSpecBSPrefecture.
	Raw         []byte   // the region-spec bytes, verbatim, for any spec type.
}

// ReadTargetRegion parses a TargetRegion descriptor body.
func ReadTargetRegion(body []byte) (TargetRegion, bool) {
	if len(body) < 1 {
		return TargetRegion{}, false
	}
	t := TargetRegion{
		SpecType: TargetRegionSpecType(body[0]),
		Raw:      body[1:],
	}
	if t.SpecType == TargetRegionSpecBSPrefecture {
		if len(t.Raw) < 7 {
			return TargetRegion{}, false
		}
		// 56-bit field: region bit b (1..50) is bit (b-1)%8, LSB first,
		// of byte (b-1)/8; the remaining 6 bits are reserved.
		for i := 0; i < 50; i++ {
			t.Prefectures[i] = t.Raw[i/8]&(1<<uint(i%8)) != 0
		}
	}
	return t, true
}
