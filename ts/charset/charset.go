/*
NAME
  charset.go

DESCRIPTION
  charset.go defines GraphicSet, Designator and Options, the ARIB STD-B24
  8-unit code state that a Decoder carries: which code set is designated
  to each of the four G-registers (G0-G3) and which register is currently
  invoked into GL/GR.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package charset decodes the ARIB STD-B24 8-unit character code used by
// ISDB captions and superimposed text. Decode walks a
// byte stream maintaining G0-G3 designation/invocation state and DRCS
// macro state, emitting a Result of decoded text runs and control
// Events; it never panics on malformed input, instead stopping decode
// at the point of failure and returning what it has.
package charset

// Designator names one of the four G-register code-set slots that ESC
// sequences designate into, and that GL/GR invoke from.
type Designator int

const (
	G0 Designator = iota
	G1
	G2
	G3
)

// GraphicSet enumerates every character code set a G-register can be
// designated to.
type GraphicSet int

const (
	Kanji GraphicSet = iota // 2-byte, JIS X 0208-compatible.
	Alnum                   // 1-byte, JIS X 0201 Roman-based alphanumerics.
	Hira                    // 1-byte, hiragana.
	Kata                    // 1-byte, katakana.
	MosaicA
	MosaicB
	MosaicC
	MosaicD
	PropAlnum
	PropHira
	PropKata
	JisXKata       // JIS X 0201 katakana.
	JisKanjiPlane1 // 2-byte, JIS X 0208 plane 1 (same repertoire as Kanji).
	JisKanjiPlane2 // 2-byte, JIS X 0212-ish supplementary kanji.
	ExtraSymbols   // 2-byte, ARIB gaiji/extra symbols.
	Drcs0          // 2-byte DRCS.
	Drcs1
	Drcs2
	Drcs3
	Drcs4
	Drcs5
	Drcs6
	Drcs7
	Drcs8
	Drcs9
	Drcs10
	Drcs11
	Drcs12
	Drcs13
	Drcs14
	Drcs15
	Macro
)

// twoByte reports whether a GraphicSet consumes two code bytes per
// character.
func (g GraphicSet) twoByte() bool {
	switch g {
	case Kanji, JisKanjiPlane1, JisKanjiPlane2, ExtraSymbols, Drcs0:
		return true
	default:
		return false
	}
}

// Options is the initial decode state: which set is designated to each
// G-register, and which register GL/GR start out invoking. PlainText
// suppresses every control event except carriage return and character
// size, for plain-text extraction.
type Options struct {
	GraphicSets [4]GraphicSet
	GL, GR      Designator
	PlainText   bool
}

// Default is the code state for ordinary (non-caption) text.
var Default = Options{
	GraphicSets: [4]GraphicSet{Kanji, Alnum, Hira, Kata},
	GL:          G0,
	GR:          G2,
}

// Caption is the code state used for STD-B24 caption/superimpose text,
// which designates G3 to the macro set instead of katakana.
var Caption = Options{
	GraphicSets: [4]GraphicSet{Kanji, Alnum, Hira, Macro},
	GL:          G0,
	GR:          G2,
}

// OnesegCaption is the code state used for one-seg (mobile) captions,
// which swap G1 to a DRCS set and invoke G1 into GL.
var OnesegCaption = Options{
	GraphicSets: [4]GraphicSet{Kanji, Drcs1, Hira, Macro},
	GL:          G1,
	GR:          G0,
}
