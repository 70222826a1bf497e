/*
NAME
  macro.go

DESCRIPTION
  macro.go provides the ARIB STD-B24 default macro table: the
  predefined byte sequences that codes 0x60-0x6F expand to when a
  MACRO code is invoked and no broadcaster macro has been defined for
  it.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// macroTableSize is the number of macro slots, one per GraphicCode in
// 0x21-0x7E.
const macroTableSize = 0x7E - 0x21 + 1

// defaultMacros holds the ARIB-specified default expansions for codes
// 0x60-0x6F. Each body designates G0-G2 to a fixed set combination,
// designates G3 to the macro set, then issues LS0 and LS2R so GL=G0
// and GR=G2. Codes outside 0x60-0x6F expand to nothing; an unassigned
// macro is a no-op, not an error.
var defaultMacros = func() [macroTableSize][]byte {
	var t [macroTableSize][]byte
	// Every body ends with: ESC + SP 0x70 (G3 = Macro), LS0, ESC 0x7D
	// (LS2R).
	tail := []byte{0x1B, 0x2B, 0x20, 0x70, 0x0F, 0x1B, 0x7D}
	set := func(n byte, head ...byte) {
		t[n-0x21] = append(head, tail...)
	}
	// 0x60-0x62: kanji-based combinations.
	set(0x60, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x4A, 0x1B, 0x2A, 0x30)       // Kanji / Alnum / Hira
	set(0x61, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x31, 0x1B, 0x2A, 0x30)       // Kanji / Kata / Hira
	set(0x62, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x20, 0x41, 0x1B, 0x2A, 0x30) // Kanji / DRCS-1 / Hira
	// 0x63-0x65: mosaic combinations.
	set(0x63, 0x1B, 0x28, 0x32, 0x1B, 0x29, 0x34, 0x1B, 0x2A, 0x35)       // MosaicA / MosaicC / MosaicD
	set(0x64, 0x1B, 0x28, 0x32, 0x1B, 0x29, 0x33, 0x1B, 0x2A, 0x35)       // MosaicA / MosaicB / MosaicD
	set(0x65, 0x1B, 0x28, 0x32, 0x1B, 0x29, 0x20, 0x41, 0x1B, 0x2A, 0x35) // MosaicA / DRCS-1 / MosaicD
	// 0x66-0x6A: consecutive DRCS triples.
	set(0x66, 0x1B, 0x28, 0x20, 0x41, 0x1B, 0x29, 0x20, 0x42, 0x1B, 0x2A, 0x20, 0x43) // DRCS-1/2/3
	set(0x67, 0x1B, 0x28, 0x20, 0x44, 0x1B, 0x29, 0x20, 0x45, 0x1B, 0x2A, 0x20, 0x46) // DRCS-4/5/6
	set(0x68, 0x1B, 0x28, 0x20, 0x47, 0x1B, 0x29, 0x20, 0x48, 0x1B, 0x2A, 0x20, 0x49) // DRCS-7/8/9
	set(0x69, 0x1B, 0x28, 0x20, 0x4A, 0x1B, 0x29, 0x20, 0x4B, 0x1B, 0x2A, 0x20, 0x4C) // DRCS-10/11/12
	set(0x6A, 0x1B, 0x28, 0x20, 0x4D, 0x1B, 0x29, 0x20, 0x4E, 0x1B, 0x2A, 0x20, 0x4F) // DRCS-13/14/15
	// 0x6B-0x6D: kanji with a single DRCS register.
	set(0x6B, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x20, 0x42, 0x1B, 0x2A, 0x30) // Kanji / DRCS-2 / Hira
	set(0x6C, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x20, 0x43, 0x1B, 0x2A, 0x30) // Kanji / DRCS-3 / Hira
	set(0x6D, 0x1B, 0x24, 0x42, 0x1B, 0x29, 0x20, 0x44, 0x1B, 0x2A, 0x30) // Kanji / DRCS-4 / Hira
	// 0x6E-0x6F: kana combinations.
	set(0x6E, 0x1B, 0x28, 0x31, 0x1B, 0x29, 0x30, 0x1B, 0x2A, 0x4A)       // Kata / Hira / Alnum
	set(0x6F, 0x1B, 0x28, 0x4A, 0x1B, 0x29, 0x32, 0x1B, 0x2A, 0x20, 0x41) // Alnum / MosaicA / DRCS-1
	return t
}()

// macroExpansion returns the macro body for code n (0x21-0x7E), preferring
// custom over the default table.
func (d *Decoder) macroExpansion(n byte) []byte {
	idx := int(n - 0x21)
	if idx < 0 || idx >= macroTableSize {
		return nil
	}
	if d.customMacros != nil && d.customMacros[idx] != nil {
		return d.customMacros[idx]
	}
	return defaultMacros[idx]
}
