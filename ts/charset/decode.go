/*
NAME
  decode.go

DESCRIPTION
  decode.go implements Decoder, the ARIB STD-B24 8-unit code-to-Unicode
  decoder: G0-G3 designation via ESC sequences, GL/GR invocation
  (LS0/LS1/LS2R/LS3R), single shifts (SS2/SS3), macro expansion, and the
  C0/C1 control codes that affect caption layout.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// Token is one decoded unit: either a run of text or a control Event,
// never both. Result preserves wire order across the two.
type Token struct {
	Text  string
	Event *Event
}

// Result is the decoded form of an 8-unit code byte stream.
type Result struct {
	Tokens []Token
}

// String concatenates every text Token, discarding control Events; a
// quick way to get plain text when layout doesn't matter.
func (r Result) String() string {
	var out []rune
	for _, t := range r.Tokens {
		if t.Event == nil {
			out = append(out, []rune(t.Text)...)
		}
	}
	return string(out)
}

// Decoder holds the mutable ISO-2022-style state (G-register
// designation, GL/GR invocation, active macro) used while decoding one
// byte stream.
type Decoder struct {
	main []byte
	pos  int

	macro    []byte
	macroPos int
	inMacro  bool

	graphicSets  [4]GraphicSet
	gl, gr       Designator
	customMacros *[macroTableSize][]byte
}

// NewDecoder returns a Decoder over data initialised to opts.
func NewDecoder(data []byte, opts Options) *Decoder {
	return &Decoder{
		main:        data,
		graphicSets: opts.GraphicSets,
		gl:          opts.GL,
		gr:          opts.GR,
	}
}

func (d *Decoder) readByte() (byte, bool) {
	if d.inMacro {
		b := d.macro[d.macroPos]
		d.macroPos++
		if d.macroPos >= len(d.macro) {
			d.inMacro = false
		}
		return b, true
	}
	if d.pos >= len(d.main) {
		return 0, false
	}
	b := d.main[d.pos]
	d.pos++
	return b, true
}

func (d *Decoder) startMacro(n byte) {
	body := d.macroExpansion(n)
	if len(body) == 0 {
		return
	}
	// A macro invoked while another is still running replaces the
	// active buffer; STD-B24 macros are not written to call each other
	// in practice.
	d.macro = body
	d.macroPos = 0
	d.inMacro = true
}

func (d *Decoder) designate(g Designator, set GraphicSet) {
	d.graphicSets[g] = set
}

// Decode decodes the full byte stream data under opts, returning every
// text run and control event in wire order. Decode never panics; on
// malformed or truncated multi-byte sequences it stops and returns the
// tokens produced so far.
func Decode(data []byte, opts Options) Result {
	d := NewDecoder(data, opts)
	var tokens []Token
	var textBuf []rune

	flush := func() {
		if len(textBuf) > 0 {
			tokens = append(tokens, Token{Text: string(textBuf)})
			textBuf = nil
		}
	}
	emit := func(e Event) {
		if opts.PlainText && !plainTextKeeps(e.Kind) {
			return
		}
		flush()
		tokens = append(tokens, Token{Event: &e})
	}
	appendRune := func(r rune, ok bool) {
		if ok {
			textBuf = append(textBuf, r)
		}
	}

loop:
	for {
		b, ok := d.readByte()
		if !ok {
			break
		}
		switch {
		case b == 0x20:
			textBuf = append(textBuf, ' ')
		case b == 0x7F:
			// DEL: no visible effect modelled.
		case b < 0x20:
			if !d.handleC0(b, emit, appendRune) {
				break loop
			}
		case b >= 0x21 && b <= 0x7E:
			appendRune(d.decodeGraphic(d.gl, b))
		case b >= 0x80 && b <= 0x9F:
			d.handleC1(b, emit)
		case b == 0xA0 || b == 0xFF:
			// Reserved; no standard interpretation.
		case b >= 0xA1 && b <= 0xFE:
			appendRune(d.decodeGraphic(d.gr, b&0x7F))
		}
	}
	flush()
	return Result{Tokens: tokens}
}

// plainTextKeeps reports whether kind survives a PlainText decode:
// only the carriage return and character-size events that still shape
// extracted text are kept; every other control is invisible.
func plainTextKeeps(kind EventKind) bool {
	switch kind {
	case EventActivePositionReturn, EventSmallSize, EventMediumSize,
		EventNormalSize, EventSizeControl:
		return true
	default:
		return false
	}
}

// ExtractPlainText decodes data under opts in PlainText mode and joins
// the result into a string, rendering each carriage return as a
// newline. It is the quick path for callers that want an event's
// caption text without caring about layout.
func ExtractPlainText(data []byte, opts Options) string {
	opts.PlainText = true
	var out []rune
	for _, t := range Decode(data, opts).Tokens {
		if t.Event == nil {
			out = append(out, []rune(t.Text)...)
		} else if t.Event.Kind == EventActivePositionReturn {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// decodeGraphic decodes one graphic character invoked from register g,
// reading a second code byte from the stream if the designated set is
// two-byte.
func (d *Decoder) decodeGraphic(g Designator, c1 byte) (rune, bool) {
	set := d.graphicSets[g]
	if set.twoByte() {
		c2, ok := d.readByte()
		if !ok || c2 < 0x21 || c2 > 0x7E {
			return 0, false
		}
		switch set {
		case Kanji, JisKanjiPlane1:
			return decodeKanji(c1, c2)
		case JisKanjiPlane2:
			return jisKanjiPlane2Rune(c1, c2), true
		case ExtraSymbols:
			return extraSymbolRune(c1, c2), true
		case Drcs0:
			return drcsRune(set, c1, c2), true
		default:
			return 0, false
		}
	}

	switch set {
	case Alnum, PropAlnum:
		return decodeAlnum(c1), true
	case Hira, PropHira:
		return decodeHira(c1)
	case Kata, PropKata:
		return decodeKata(c1)
	case JisXKata:
		return decodeJisXKata(c1)
	case MosaicA, MosaicB, MosaicC, MosaicD:
		return mosaicRune(c1), true
	case Drcs1, Drcs2, Drcs3, Drcs4, Drcs5, Drcs6, Drcs7, Drcs8,
		Drcs9, Drcs10, Drcs11, Drcs12, Drcs13, Drcs14, Drcs15:
		return drcsRune(set, c1, 0), true
	case Macro:
		d.startMacro(c1)
		return 0, false
	default:
		return 0, false
	}
}
