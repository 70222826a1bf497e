/*
NAME
  escape.go

DESCRIPTION
  escape.go implements the ISO 2022 / ARIB STD-B24 ESC sequence
  grammar: designating a code set to one of G0-G3 (single- or
  double-byte, including the DRCS intermediate byte), and invoking a
  G-register into GL or GR via locking shifts.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// final1Byte maps a 1-byte G-set final byte to its GraphicSet, per
// ARIB STD-B24 Table 7-14.
var final1Byte = map[byte]GraphicSet{
	0x4A: Alnum,
	0x30: Hira,
	0x31: Kata,
	0x32: MosaicA,
	0x33: MosaicB,
	0x34: MosaicC,
	0x35: MosaicD,
	0x36: PropAlnum,
	0x37: PropHira,
	0x38: PropKata,
	0x39: JisXKata,
	0x70: Macro,
}

// final2Byte maps a 2-byte (ESC $ ...) G-set final byte to its
// GraphicSet, per ARIB STD-B24 Table 7-15.
var final2Byte = map[byte]GraphicSet{
	0x42: Kanji,          // JIS X 0208-1990
	0x40: Kanji,          // JIS X 0208-1978, treated identically
	0x39: JisKanjiPlane1, // 1990 JIS compatible plane 1
	0x3A: JisKanjiPlane2,
	0x3B: ExtraSymbols,
}

// drcs1ByteSet and drcs2ByteSet map the DRCS final byte (following the
// 0x20 intermediate byte) to its Drcs GraphicSet.
func drcs1ByteSet(f byte) (GraphicSet, bool) {
	if f < 0x41 || f > 0x4F {
		return 0, false
	}
	return Drcs1 + GraphicSet(f-0x41), true
}

func drcs2ByteSet(f byte) (GraphicSet, bool) {
	if f != 0x40 {
		return 0, false
	}
	return Drcs0, true
}

// handleEscape consumes an ESC sequence starting immediately after the
// 0x1B byte, updating Decoder designation/invocation state. It reports
// whether a complete, recognised sequence was consumed; on a truncated
// stream it stops and returns false, discarding whatever was read.
func (d *Decoder) handleEscape() bool {
	x1, ok := d.readByte()
	if !ok {
		return false
	}
	switch x1 {
	case 0x6E: // LS2
		d.gl = G2
		return true
	case 0x6F: // LS3
		d.gl = G3
		return true
	case 0x7E: // LS1R
		d.gr = G1
		return true
	case 0x7D: // LS2R
		d.gr = G2
		return true
	case 0x7C: // LS3R
		d.gr = G3
		return true
	case 0x24: // '$': 2-byte G-set designation.
		return d.escape2Byte()
	case 0x28: // '(': G0, 1-byte.
		return d.escape1Byte(G0)
	case 0x29: // ')': G1, 1-byte.
		return d.escape1Byte(G1)
	case 0x2A: // '*': G2, 1-byte.
		return d.escape1Byte(G2)
	case 0x2B: // '+': G3, 1-byte.
		return d.escape1Byte(G3)
	default:
		// Shorthand ESC F form, designating G0 directly.
		if set, ok := final1Byte[x1]; ok {
			d.designate(G0, set)
			return true
		}
		return false
	}
}

// escape1Byte handles "ESC I F", where I selects g and F (possibly
// preceded by the DRCS intermediate byte 0x20) names the GraphicSet.
func (d *Decoder) escape1Byte(g Designator) bool {
	f, ok := d.readByte()
	if !ok {
		return false
	}
	if f == 0x20 {
		f2, ok := d.readByte()
		if !ok {
			return false
		}
		if f2 == 0x70 {
			d.designate(g, Macro)
			return true
		}
		set, ok := drcs1ByteSet(f2)
		if !ok {
			return false
		}
		d.designate(g, set)
		return true
	}
	set, ok := final1Byte[f]
	if !ok {
		return false
	}
	d.designate(g, set)
	return true
}

// escape2Byte handles "ESC $ ..." forms: either the old-style "ESC $ F"
// shorthand for G0, or "ESC $ I F" for an explicit register.
func (d *Decoder) escape2Byte() bool {
	x2, ok := d.readByte()
	if !ok {
		return false
	}
	var g Designator
	switch x2 {
	case 0x28:
		g = G0
	case 0x29:
		g = G1
	case 0x2A:
		g = G2
	case 0x2B:
		g = G3
	default:
		// "ESC $ F": shorthand designating G0 to a 2-byte set.
		if set, ok := final2Byte[x2]; ok {
			d.designate(G0, set)
			return true
		}
		return false
	}

	f, ok := d.readByte()
	if !ok {
		return false
	}
	if f == 0x20 {
		f2, ok := d.readByte()
		if !ok {
			return false
		}
		set, ok := drcs2ByteSet(f2)
		if !ok {
			return false
		}
		d.designate(g, set)
		return true
	}
	set, ok := final2Byte[f]
	if !ok {
		return false
	}
	d.designate(g, set)
	return true
}
