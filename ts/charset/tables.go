/*
NAME
  tables.go

DESCRIPTION
  tables.go maps the single-byte ARIB graphic code sets (alphanumeric,
  hiragana, katakana, JIS X 0201 katakana) to Unicode, and the 2-byte
  kanji-compatible sets via golang.org/x/text's JIS X 0208 (EUC-JP)
  table.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// decodeAlnum maps the ARIB alphanumeric set (JIS X 0201 Roman-based) to
// Unicode. It is ASCII save for two code points STD-B24 repurposes.
func decodeAlnum(c1 byte) rune {
	switch c1 {
	case 0x5C:
		return '¥'
	case 0x7E:
		return '‾'
	default:
		return rune(c1)
	}
}

// decodeHira maps the ARIB hiragana set to Unicode. Codes 0x21-0x73
// align contiguously with the Unicode Hiragana block starting at
// U+3041; codes above that are punctuation marks handled specially.
func decodeHira(c1 byte) (rune, bool) {
	switch {
	case c1 >= 0x21 && c1 <= 0x73:
		return rune(0x3041 + int(c1-0x21)), true
	case c1 == 0x77:
		return '゛', true // combining voiced sound mark
	case c1 == 0x78:
		return '゜', true // combining semi-voiced sound mark
	case c1 == 0x79:
		return '「', true
	case c1 == 0x7A:
		return '」', true
	case c1 == 0x7B:
		return '。', true
	case c1 == 0x7C:
		return '、', true
	case c1 == 0x7D:
		return '・', true
	default:
		return 0, false
	}
}

// decodeKata maps the ARIB katakana set to Unicode, contiguous with the
// Unicode Katakana block starting at U+30A1 for codes 0x21-0x76.
func decodeKata(c1 byte) (rune, bool) {
	switch {
	case c1 >= 0x21 && c1 <= 0x76:
		return rune(0x30A1 + int(c1-0x21)), true
	case c1 == 0x77:
		return '゛', true
	case c1 == 0x78:
		return '゜', true
	case c1 == 0x79:
		return '「', true
	case c1 == 0x7A:
		return '」', true
	case c1 == 0x7B:
		return '。', true
	case c1 == 0x7C:
		return '、', true
	case c1 == 0x7D:
		return '・', true
	case c1 == 0x7E:
		return 'ー', true
	default:
		return 0, false
	}
}

// decodeJisXKata maps the JIS X 0201 katakana set (half-width katakana)
// to its Unicode half-width katakana block counterpart.
func decodeJisXKata(c1 byte) (rune, bool) {
	if c1 < 0x21 || c1 > 0x5F {
		return 0, false
	}
	return rune(0xFF61 + int(c1-0x21)), true
}

// decodeKanji decodes a JIS X 0208 row/cell pair (each 0x21-0x7E) to its
// Unicode rune using golang.org/x/text's EUC-JP mapping table: an
// EUC-JP-encoded JIS X 0208 character is simply the two GL bytes with
// their high bit set. A fresh decoder per call keeps this safe from
// any goroutine.
func decodeKanji(c1, c2 byte) (rune, bool) {
	src := []byte{c1 | 0x80, c2 | 0x80}
	out, _, err := transform.Bytes(japanese.EUCJP.NewDecoder(), src)
	if err != nil || len(out) == 0 {
		return 0, false
	}
	r := []rune(string(out))
	if len(r) == 0 || r[0] == 0xFFFD {
		return 0, false
	}
	return r[0], true
}

// The *PUABase constants expose DRCS and ARIB extra-symbol code
// points with no standard Unicode mapping as Private Use Area runes,
// following the common convention of ISDB caption renderers (mpv's
// aribcaption, TVTest's extra-symbol table) rather than inventing a
// scheme of our own.
const (
	drcsPUABase        = 0xE000
	extraSymbolPUABase = 0xE100
	jisKanjiPlane2PUABase = 0xE200
	mosaicPUABase      = 0xE300
)

func drcsRune(set GraphicSet, c1, c2 byte) rune {
	idx := int(c1 - 0x21)
	if set.twoByte() {
		idx = idx*94 + int(c2-0x21)
	}
	return rune(drcsPUABase + idx)
}

func extraSymbolRune(c1, c2 byte) rune {
	return rune(extraSymbolPUABase + int(c1-0x21)*94 + int(c2-0x21))
}

func jisKanjiPlane2Rune(c1, c2 byte) rune {
	return rune(jisKanjiPlane2PUABase + int(c1-0x21)*94 + int(c2-0x21))
}

func mosaicRune(c1 byte) rune {
	return rune(mosaicPUABase + int(c1-0x21))
}
