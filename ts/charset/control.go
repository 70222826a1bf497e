/*
NAME
  control.go

DESCRIPTION
  control.go translates the ARIB STD-B24 C0 and C1 control code sets
  into Event values (or direct Decoder state changes, for the locking
  shifts and single shifts).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// handleC0 handles a C0 control code (0x00-0x1F). emit appends an
// Event to the token stream; appendRune appends a decoded graphic rune,
// used by SS2/SS3 to inline their one-shot character. It reports
// whether the code, and any parameter bytes it consumes, were read in
// full; false on a truncated stream.
func (d *Decoder) handleC0(b byte, emit func(Event), appendRune func(rune, bool)) bool {
	switch b {
	case 0x00: // NUL
		return true
	case 0x07: // BEL
		return true
	case 0x08: // APB
		emit(Event{Kind: EventActivePositionBackward})
		return true
	case 0x09: // APF
		emit(Event{Kind: EventActivePositionForward})
		return true
	case 0x0A: // APD
		emit(Event{Kind: EventActivePositionDown})
		return true
	case 0x0B: // APU
		emit(Event{Kind: EventActivePositionUp})
		return true
	case 0x0C: // CS
		emit(Event{Kind: EventClearScreen})
		return true
	case 0x0D: // APR
		emit(Event{Kind: EventActivePositionReturn})
		return true
	case 0x0E: // LS1
		d.gl = G1
		return true
	case 0x0F: // LS0
		d.gl = G0
		return true
	case 0x16: // PAPF: one parameter byte, column count in the low 6 bits.
		p, ok := d.readByte()
		if !ok {
			return false
		}
		emit(Event{Kind: EventActivePositionForward, Count: int(p & 0x3F)})
		return true
	case 0x18: // CAN
		return true
	case 0x19: // SS2: next GL-range byte decodes from G2.
		nb, ok := d.readByte()
		if !ok {
			return false
		}
		appendRune(d.decodeGraphic(G2, nb))
		return true
	case 0x1B: // ESC
		return d.handleEscape()
	case 0x1C: // APS: two parameter bytes, row then column.
		row, ok := d.readByte()
		if !ok {
			return false
		}
		col, ok := d.readByte()
		if !ok {
			return false
		}
		emit(Event{Kind: EventActivePositionSet, Row: int(row & 0x3F), Col: int(col & 0x3F)})
		return true
	case 0x1D: // SS3: next GL-range byte decodes from G3.
		nb, ok := d.readByte()
		if !ok {
			return false
		}
		appendRune(d.decodeGraphic(G3, nb))
		return true
	case 0x1E: // RS
		emit(Event{Kind: EventRecordSeparator})
		return true
	case 0x1F: // US
		emit(Event{Kind: EventUnitSeparator})
		return true
	default:
		return true
	}
}

// macroDefineStart and macroDefineEnd bracket a runtime macro
// redefinition block following the MACRO control code; this decoder
// does not support broadcaster-supplied macro redefinition, so it
// skips the block rather than misinterpreting its bytes as text.
const (
	macroDefineStart = 0x40
	macroDefineEnd   = 0x4F
)

// handleC1 handles a C1 control code (0x80-0x9F). emit appends an
// Event to the token stream.
func (d *Decoder) handleC1(b byte, emit func(Event)) {
	switch {
	case b >= 0x80 && b <= 0x87: // BKF/RDF/GRF/YLF/BLF/MGF/CNF/WHF
		emit(Event{Kind: EventColor, Color: b - 0x80})
	case b == 0x88: // SSZ
		emit(Event{Kind: EventSmallSize})
	case b == 0x89: // MSZ
		emit(Event{Kind: EventMediumSize})
	case b == 0x8A: // NSZ
		emit(Event{Kind: EventNormalSize})
	case b == 0x8B: // SZX
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventSizeControl, Size: p})
	case b == 0x90: // COL
		p, ok := d.readByte()
		if !ok {
			return
		}
		if p == 0x20 {
			p2, ok := d.readByte()
			if !ok {
				return
			}
			emit(Event{Kind: EventParameterizedColor, Color: p2})
			return
		}
		emit(Event{Kind: EventParameterizedColor, Color: p})
	case b == 0x91: // FLC
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventFlashingControl, Size: p})
	case b == 0x92: // CDC
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventConcealmentMode, Size: p})
	case b == 0x93: // POL
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventPatternPolarityControl, Size: p})
	case b == 0x94: // WMM
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventWritingModeModification, Size: p})
	case b == 0x95: // MACRO: skip a broadcaster macro-redefinition block.
		p, ok := d.readByte()
		if !ok {
			return
		}
		if p != macroDefineStart {
			return
		}
		for {
			n, ok := d.readByte()
			if !ok || n == macroDefineEnd {
				return
			}
		}
	case b == 0x97: // HLC
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventHighlightingCharacterBlock, Size: p})
	case b == 0x98: // RPC
		p, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventRepeatCharacter, Count: int(p & 0x3F)})
	case b == 0x99: // SPL
		emit(Event{Kind: EventStopLining})
	case b == 0x9A: // STL
		emit(Event{Kind: EventStartLining})
	case b == 0x9B: // CSI
		d.handleCSI(emit)
	case b == 0x9D: // TIME
		d.handleTime(emit)
	default:
	}
}

// handleCSI reads a CSI (0x9B) sequence: up to four decimal parameters
// separated by ';', terminated either by an intermediate byte (0x20)
// followed by a final byte, or directly by one of the three final bytes
// that take no parameters (PLD 0x5B, PLU 0x5C, SCS 0x6F). The
// terminated sequence is dispatched to a typed Event by dispatchCSI.
func (d *Decoder) handleCSI(emit func(Event)) {
	var params []int
	param := 0
	push := func() bool {
		if len(params) >= 4 {
			return false
		}
		params = append(params, param)
		param = 0
		return true
	}

	var f byte
loop:
	for {
		b, ok := d.readByte()
		if !ok {
			return
		}
		switch {
		case b >= 0x30 && b <= 0x39: // decimal digit
			param = param*10 + int(b-0x30)
		case b == 0x3B: // parameter separator
			if !push() {
				d.skipCSIToEnd()
				return
			}
		case b == 0x20: // intermediate byte, final byte follows
			if !push() {
				d.readByte() // the final byte
				return
			}
			nb, ok := d.readByte()
			if !ok {
				return
			}
			f = nb
			break loop
		case b == 0x5B || b == 0x5C || b == 0x6F: // PLD/PLU/SCS, no intermediate
			f = b
			break loop
		default: // ill-formed: ignore the whole sequence
			d.skipCSIToEnd()
			return
		}
	}
	d.dispatchCSI(f, params, emit)
}

// skipCSIToEnd discards the remainder of an ill-formed CSI sequence up
// to and including its intermediate byte and the final byte that
// follows it.
func (d *Decoder) skipCSIToEnd() {
	for {
		b, ok := d.readByte()
		if !ok {
			return
		}
		if b == 0x20 {
			d.readByte()
			return
		}
	}
}

// dispatchCSI maps a CSI sequence's final byte and parameters to a
// typed Event per STD-B24's CSI command set. An
// unrecognised (final byte, parameter shape) pair, or the deprecated
// PLD/PLU commands, emit nothing.
func (d *Decoder) dispatchCSI(f byte, params []int, emit func(Event)) {
	switch f {
	case 0x53: // SWF
		switch len(params) {
		case 1:
			if params[0] <= 12 {
				emit(Event{Kind: EventSetWritingFormatInit, P1: params[0]})
			}
		case 3:
			if params[1] <= 2 {
				emit(Event{Kind: EventSetWritingFormatDetails, Flag: params[0] == 8, P2: params[1], P3: params[2]})
			}
		case 4:
			if params[1] <= 2 {
				emit(Event{Kind: EventSetWritingFormatDetails, Flag: params[0] == 8, P2: params[1], P3: params[2], P4: params[3], HasP4: true})
			}
		}
	case 0x54: // CCC
		if len(params) != 1 {
			return
		}
		switch params[0] {
		case 2:
			emit(Event{Kind: EventCompositeCharacterCompositionStartOr})
		case 3:
			emit(Event{Kind: EventCompositeCharacterCompositionStartAnd})
		case 4:
			emit(Event{Kind: EventCompositeCharacterCompositionStartXor})
		case 0:
			emit(Event{Kind: EventCompositeCharacterCompositionEnd})
		}
	case 0x6E: // RCS
		if len(params) == 1 && params[0] <= 15 {
			emit(Event{Kind: EventRasterColorCommand, P1: params[0]})
		}
	case 0x61: // ACPS
		if len(params) == 2 {
			emit(Event{Kind: EventActiveCoordinatePositionSet, P1: params[0], P2: params[1]})
		}
	case 0x56: // SDF
		if len(params) == 2 {
			emit(Event{Kind: EventSetDisplayFormat, P1: params[0], P2: params[1]})
		}
	case 0x5F: // SDP
		if len(params) == 2 {
			emit(Event{Kind: EventSetDisplayPosition, P1: params[0], P2: params[1]})
		}
	case 0x57: // SSM
		if len(params) == 2 {
			emit(Event{Kind: EventCharacterCompositionDotDesignation, P1: params[0], P2: params[1]})
		}
	case 0x5B, 0x5C: // PLD/PLU, deprecated
	case 0x58: // SHS
		if len(params) == 1 {
			emit(Event{Kind: EventSetHorizontalSpacing, P1: params[0]})
		}
	case 0x59: // SVS
		if len(params) == 1 {
			emit(Event{Kind: EventSetVerticalSpacing, P1: params[0]})
		}
	case 0x42: // GSM
		if len(params) == 2 {
			emit(Event{Kind: EventCharacterDeformation, P1: params[0], P2: params[1]})
		}
	case 0x5D: // GAA
		if len(params) == 1 && (params[0] == 0 || params[0] == 1) {
			emit(Event{Kind: EventColoringBlock, Flag: params[0] == 0})
		}
	case 0x5E: // SRC
		if len(params) == 2 && params[0] <= 3 {
			emit(Event{Kind: EventRasterColorDesignation, P1: params[0], P2: bcdPack(params[1])})
		}
	case 0x62: // TCC
		if len(params) == 3 && params[0] <= 9 && params[1] <= 3 {
			emit(Event{Kind: EventSwitchControl, P1: params[0], P2: params[1], P3: params[2]})
		}
	case 0x65: // CFS
		if len(params) == 1 {
			emit(Event{Kind: EventCharacterFontSet, P1: params[0]})
		}
	case 0x63: // ORN
		if len(params) == 1 || len(params) == 2 {
			switch params[0] {
			case 0:
				emit(Event{Kind: EventOrnamentControlClear})
			case 1:
				if len(params) == 2 {
					emit(Event{Kind: EventOrnamentControlHemming, P1: bcdPack(params[1])})
				}
			case 2:
				if len(params) == 2 {
					emit(Event{Kind: EventOrnamentControlShade, P1: bcdPack(params[1])})
				}
			case 3:
				emit(Event{Kind: EventOrnamentControlHollow})
			}
		}
	case 0x64: // MDF
		if len(params) == 1 {
			switch params[0] {
			case 0:
				emit(Event{Kind: EventFontStandard})
			case 1:
				emit(Event{Kind: EventFontBold})
			case 2:
				emit(Event{Kind: EventFontSlated})
			case 3:
				emit(Event{Kind: EventFontBoldSlated})
			}
		}
	case 0x66: // XCS
		if len(params) == 1 {
			switch params[0] {
			case 0:
				emit(Event{Kind: EventExternalCharacterSetStart})
			case 1:
				emit(Event{Kind: EventExternalCharacterSetEnd})
			}
		}
	case 0x68: // PRA
		if len(params) == 1 {
			emit(Event{Kind: EventBuiltinSoundReplay, P1: params[0]})
		}
	case 0x69: // ACS
		if len(params) == 1 {
			switch params[0] {
			case 0:
				emit(Event{Kind: EventAlternativeCharacterSetStart})
			case 1:
				emit(Event{Kind: EventAlternativeCharacterSetEnd})
			case 2:
				emit(Event{Kind: EventAlternativeCharacterSetAlnumKataStart})
			case 3:
				emit(Event{Kind: EventAlternativeCharacterSetAlnumKataEnd})
			case 4:
				emit(Event{Kind: EventAlternativeCharacterSetSpeechStart})
			case 5:
				emit(Event{Kind: EventAlternativeCharacterSetSpeechEnd})
			}
		}
	case 0x6A: // UED
		if len(params) == 1 {
			switch params[0] {
			case 0:
				emit(Event{Kind: EventEmbedInvisibleDataStart})
			case 1:
				emit(Event{Kind: EventEmbedInvisibleDataEnd})
			case 2:
				emit(Event{Kind: EventEmbedInvisibleDataLinkedCaptionStart})
			case 3:
				emit(Event{Kind: EventEmbedInvisibleDataLinkedCaptionEnd})
			}
		}
	case 0x6F: // SCS
		if len(params) == 0 {
			emit(Event{Kind: EventSkipCharacterSet})
		}
	}
}

// bcdPack reproduces STD-B24's repacking of a SRC/ORN color-index
// parameter into a single byte: (p/100) in the high nibble, (p%100) in
// the low nibble, both masked to 4 bits.
func bcdPack(p int) int {
	return (((p / 100) & 0xF) << 4) | ((p % 100) & 0x0F)
}

// handleTime parses the ARIB TIME control: either "TIME 0x20 P" for a
// wait of P-0x40 units (each unit one frame, approximated here as 100
// milliseconds since frame rate is not decoder state), or
// "TIME 0x28 ... 0x29" for a time offset, whose inner bytes are decimal
// digit characters read until the terminator.
func (d *Decoder) handleTime(emit func(Event)) {
	p, ok := d.readByte()
	if !ok {
		return
	}
	switch p {
	case 0x20:
		p2, ok := d.readByte()
		if !ok {
			return
		}
		emit(Event{Kind: EventTimeControlWait, Millis: int(p2&0x3F) * 100})
	case 0x28:
		millis := 0
		for {
			b, ok := d.readByte()
			if !ok {
				return
			}
			if b == 0x29 {
				break
			}
			if b >= '0' && b <= '9' {
				millis = millis*10 + int(b-'0')
			}
		}
		emit(Event{Kind: EventTimeControlOffset, Millis: millis})
	}
}
