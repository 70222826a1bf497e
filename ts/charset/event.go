/*
NAME
  event.go

DESCRIPTION
  event.go defines Event, the non-text control codes a Decoder surfaces
  alongside decoded text: cursor movement, screen/line clearing, color
  and size attributes, and ARIB TIME control.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

// EventKind distinguishes the control codes a Decoder can emit. Cursor
// positioning (APB/APF/APD/APU/APR/APS) is surfaced as events rather
// than tracked internally: maintaining an (x, y) cursor is the caption
// renderer's job, not this package's.
type EventKind int

const (
	EventActivePositionBackward EventKind = iota
	EventActivePositionForward
	EventActivePositionDown
	EventActivePositionUp
	EventActivePositionReturn
	EventActivePositionSet // parameters: Row, Col.
	EventClearScreen
	EventParameterizedColor   // parameter: Color (COL).
	EventColor                // parameter: Color (BKF/RDF/GRF/YLF/BLF/MGF/CNF/WHF).
	EventSmallSize
	EventMediumSize
	EventNormalSize
	EventSizeControl // parameter: Size (SZX).
	EventFlashingControl
	EventConcealmentMode
	EventPatternPolarityControl
	EventWritingModeModification
	EventHighlightingCharacterBlock
	EventRepeatCharacter // parameter: Count.
	EventStopLining
	EventStartLining
	EventTimeControlWait    // parameter: Millis.
	EventTimeControlOffset  // parameter: Millis.
	EventRecordSeparator
	EventUnitSeparator

	// CSI (0x9B) commands, per STD-B24. Parameters ride
	// on the generic P1-P4/Flag fields documented alongside Event below.
	EventSetWritingFormatInit        // SWF, one parameter: P1.
	EventSetWritingFormatDetails     // SWF, parameters: Flag, P2, P3, P4/HasP4.
	EventCompositeCharacterCompositionStartOr  // CCC.
	EventCompositeCharacterCompositionStartAnd // CCC.
	EventCompositeCharacterCompositionStartXor // CCC.
	EventCompositeCharacterCompositionEnd      // CCC.
	EventRasterColorCommand          // RCS, parameter: P1.
	EventActiveCoordinatePositionSet // ACPS, parameters: P1, P2.
	EventSetDisplayFormat             // SDF, parameters: P1, P2.
	EventSetDisplayPosition            // SDP, parameters: P1, P2.
	EventCharacterCompositionDotDesignation // SSM, parameters: P1, P2.
	EventSetHorizontalSpacing // SHS, parameter: P1.
	EventSetVerticalSpacing   // SVS, parameter: P1.
	EventCharacterDeformation // GSM, parameters: P1, P2.
	EventColoringBlock        // GAA, parameter: Flag.
	EventRasterColorDesignation // SRC, parameters: P1, P2.
	EventSwitchControl          // TCC, parameters: P1, P2, P3.
	EventCharacterFontSet        // CFS, parameter: P1.
	EventOrnamentControlClear   // ORN.
	EventOrnamentControlHemming // ORN, parameter: P1.
	EventOrnamentControlShade   // ORN, parameter: P1.
	EventOrnamentControlHollow  // ORN.
	EventFontStandard   // MDF.
	EventFontBold       // MDF.
	EventFontSlated     // MDF.
	EventFontBoldSlated // MDF.
	EventExternalCharacterSetStart // XCS.
	EventExternalCharacterSetEnd   // XCS.
	EventBuiltinSoundReplay // PRA, parameter: P1.
	EventAlternativeCharacterSetStart          // ACS.
	EventAlternativeCharacterSetEnd             // ACS.
	EventAlternativeCharacterSetAlnumKataStart  // ACS.
	EventAlternativeCharacterSetAlnumKataEnd    // ACS.
	EventAlternativeCharacterSetSpeechStart     // ACS.
	EventAlternativeCharacterSetSpeechEnd       // ACS.
	EventEmbedInvisibleDataStart               // UED.
	EventEmbedInvisibleDataEnd                 // UED.
	EventEmbedInvisibleDataLinkedCaptionStart  // UED.
	EventEmbedInvisibleDataLinkedCaptionEnd    // UED.
	EventSkipCharacterSet // SCS.
)

// Event is one non-text control code encountered during decode.
type Event struct {
	Kind   EventKind
	Color  byte // 0-7 for EventColor, CSI parameter for EventParameterizedColor.
	Size   byte
	Row    int
	Col    int
	Count  int
	Millis int

	// P1-P4, HasP4 and Flag carry a CSI command's parameters, per the
	// EventKind's own comment above for which fields it uses. HasP4
	// distinguishes SWF's optional fourth parameter from an explicit 0.
	P1, P2, P3, P4 int
	HasP4          bool
	Flag           bool
}
