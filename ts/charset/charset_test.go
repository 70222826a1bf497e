package charset

import "testing"

// alnumOpts designates every 1-byte GL slot to Alnum so tests can
// decode plain ASCII without first emitting a designation sequence;
// Default's G0 is Kanji (2-byte), which would otherwise swallow a
// second text byte as a kanji cell.
var alnumOpts = Options{
	GraphicSets: [4]GraphicSet{Alnum, Alnum, Hira, Kata},
	GL:          G0,
	GR:          G2,
}

func TestDecodeAlnumText(t *testing.T) {
	data := []byte("HELLO")
	res := Decode(data, alnumOpts)
	if got := res.String(); got != "HELLO" {
		t.Fatalf("String() = %q, want %q", got, "HELLO")
	}
}

func TestDecodeHiragana(t *testing.T) {
	opts := Options{GraphicSets: [4]GraphicSet{Hira, Alnum, Hira, Kata}, GL: G0, GR: G2}
	data := []byte{0x22} // -> U+3041 + 1 = U+3042 'あ'
	res := Decode(data, opts)
	want := string(rune(0x3042))
	if got := res.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestDecodeKanjiViaEUCJP(t *testing.T) {
	// JIS X 0208 row 4 cell 2, code bytes 0x24 0x22 in GL form.
	data := []byte{0x24, 0x22}
	res := Decode(data, Default) // Default's G0 is Kanji.
	got := res.String()
	if len([]rune(got)) != 1 {
		t.Fatalf("String() = %q, want a single kanji rune", got)
	}
	if []rune(got)[0] == 0xFFFD {
		t.Fatalf("decodeKanji produced the replacement character")
	}
}

func TestDecodeMixedTextAndControl(t *testing.T) {
	data := []byte{'A', 'B', 0x0D, 'C'} // A B <APR> C
	res := Decode(data, alnumOpts)
	if len(res.Tokens) != 3 {
		t.Fatalf("len(Tokens) = %d, want 3", len(res.Tokens))
	}
	if res.Tokens[0].Text != "AB" {
		t.Fatalf("Tokens[0].Text = %q, want %q", res.Tokens[0].Text, "AB")
	}
	if res.Tokens[1].Event == nil || res.Tokens[1].Event.Kind != EventActivePositionReturn {
		t.Fatalf("Tokens[1] = %+v, want EventActivePositionReturn", res.Tokens[1])
	}
	if res.Tokens[2].Text != "C" {
		t.Fatalf("Tokens[2].Text = %q, want %q", res.Tokens[2].Text, "C")
	}
}

func TestColorControl(t *testing.T) {
	data := []byte{0x81, 'X'} // RDF, then 'X'
	res := Decode(data, alnumOpts)
	if len(res.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2", len(res.Tokens))
	}
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventColor || ev.Color != 1 {
		t.Fatalf("Tokens[0] = %+v, want EventColor{Color:1}", res.Tokens[0])
	}
	if res.Tokens[1].Text != "X" {
		t.Fatalf("Tokens[1].Text = %q, want %q", res.Tokens[1].Text, "X")
	}
}

func TestPAPFParameter(t *testing.T) {
	data := []byte{0x16, 0x45} // PAPF, count = 0x45 & 0x3F = 5
	res := Decode(data, alnumOpts)
	if len(res.Tokens) != 1 {
		t.Fatalf("len(Tokens) = %d, want 1", len(res.Tokens))
	}
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventActivePositionForward || ev.Count != 5 {
		t.Fatalf("Tokens[0] = %+v, want EventActivePositionForward{Count:5}", res.Tokens[0])
	}
}

func TestAPSParameters(t *testing.T) {
	data := []byte{0x1C, 0x43, 0x47} // APS row=3 col=7, masked to 6 bits
	res := Decode(data, alnumOpts)
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventActivePositionSet || ev.Row != 3 || ev.Col != 7 {
		t.Fatalf("Tokens[0] = %+v, want EventActivePositionSet{Row:3,Col:7}", res.Tokens[0])
	}
}

func TestEscapeDesignatesG0ToKanji(t *testing.T) {
	data := []byte{
		0x1B, 0x24, 0x42, // ESC $ B -> G0 = Kanji
		0x24, 0x22, // kanji code bytes
	}
	res := Decode(data, alnumOpts) // starts with G0 = Alnum
	got := res.String()
	if len([]rune(got)) != 1 {
		t.Fatalf("String() = %q, want a single kanji rune", got)
	}
	if []rune(got)[0] == 0xFFFD {
		t.Fatalf("decodeKanji produced the replacement character")
	}
}

func TestLS1InvokesG1(t *testing.T) {
	data := []byte{
		0x1B, 0x29, 0x31, // ESC ) 1 -> G1 = Kata
		0x0E,   // LS1 -> GL = G1
		0x22,   // -> U+30A1 + 1 = U+30A2 'ア'
		0x0F,   // LS0 -> GL = G0 (Alnum)
		'Z',
	}
	res := Decode(data, alnumOpts)
	want := string(rune(0x30A2)) + "Z"
	if got := res.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestSingleShift2(t *testing.T) {
	data := []byte{0x19, 0x22, 'Z'} // SS2 'あ' (G2 default Hira), then plain GL 'Z'
	res := Decode(data, alnumOpts)
	want := string(rune(0x3042)) + "Z"
	if got := res.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestMacroExpansionDesignatesRegisters(t *testing.T) {
	// Macro 0x60 resets G0-G3; designate G3 = Macro then invoke it via
	// GR so the macro's own ESC sequences run, then confirm G2 ends up
	// designated to Hira by decoding through it.
	opts := Options{GraphicSets: [4]GraphicSet{Kanji, Kata, Kata, Macro}, GL: G0, GR: G3}
	data := []byte{0xE0, 0x19, 0x22} // GR 0x60 (Macro), then SS2 'あ' via G2
	res := Decode(data, opts)
	want := string(rune(0x3042))
	if got := res.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestReservedBytesIgnored(t *testing.T) {
	data := []byte{0xA0, 'A', 0xFF}
	res := Decode(data, alnumOpts)
	if got := res.String(); got != "A" {
		t.Fatalf("String() = %q, want %q", got, "A")
	}
}

func TestCSISetWritingFormatDetails(t *testing.T) {
	// CSI 5;2;0 SWF -> SetWritingFormatDetails(false, 2, 0, None), then 'A'.
	data := []byte{0x9B, 0x35, 0x3B, 0x32, 0x3B, 0x30, 0x20, 0x53, 'A'}
	res := Decode(data, alnumOpts)
	if len(res.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2", len(res.Tokens))
	}
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventSetWritingFormatDetails {
		t.Fatalf("Tokens[0] = %+v, want EventSetWritingFormatDetails", res.Tokens[0])
	}
	if ev.Flag || ev.P2 != 2 || ev.P3 != 0 || ev.HasP4 {
		t.Fatalf("Tokens[0].Event = %+v, want {Flag:false P2:2 P3:0 HasP4:false}", ev)
	}
	if res.Tokens[1].Text != "A" {
		t.Fatalf("Tokens[1].Text = %q, want %q", res.Tokens[1].Text, "A")
	}
}

func TestCSICompositeCharacterComposition(t *testing.T) {
	// CSI 2 SP T -> CompositeCharacterCompositionStartOr, then 'A'.
	data := []byte{0x9B, 0x32, 0x20, 0x54, 'A'}
	res := Decode(data, alnumOpts)
	if len(res.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2", len(res.Tokens))
	}
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventCompositeCharacterCompositionStartOr {
		t.Fatalf("Tokens[0] = %+v, want EventCompositeCharacterCompositionStartOr", res.Tokens[0])
	}
	if res.Tokens[1].Text != "A" {
		t.Fatalf("Tokens[1].Text = %q, want %q", res.Tokens[1].Text, "A")
	}
}

func TestCSISkipCharacterSet(t *testing.T) {
	// CSI SCS (no intermediate byte, no parameters), then 'A'.
	data := []byte{0x9B, 0x6F, 'A'}
	res := Decode(data, alnumOpts)
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventSkipCharacterSet {
		t.Fatalf("Tokens[0] = %+v, want EventSkipCharacterSet", res.Tokens[0])
	}
	if res.Tokens[1].Text != "A" {
		t.Fatalf("Tokens[1].Text = %q, want %q", res.Tokens[1].Text, "A")
	}
}

func TestCSITooManyParamsIgnored(t *testing.T) {
	// Five parameters exceeds the four-parameter limit: the whole
	// sequence is discarded with no event, then 'A' decodes normally.
	data := []byte{0x9B, 0x30, 0x3B, 0x31, 0x3B, 0x32, 0x3B, 0x33, 0x3B, 0x34, 0x20, 0x53, 'A'}
	res := Decode(data, alnumOpts)
	if got := res.String(); got != "A" {
		t.Fatalf("String() = %q, want %q", got, "A")
	}
	for _, tok := range res.Tokens {
		if tok.Event != nil {
			t.Fatalf("unexpected event %+v for an over-parameterised CSI sequence", tok.Event)
		}
	}
}

func TestTimeControlWait(t *testing.T) {
	data := []byte{0x9D, 0x20, 0x41} // TIME wait, param 0x41 & 0x3F = 1 -> 100ms
	res := Decode(data, alnumOpts)
	ev := res.Tokens[0].Event
	if ev == nil || ev.Kind != EventTimeControlWait || ev.Millis != 100 {
		t.Fatalf("Tokens[0] = %+v, want EventTimeControlWait{Millis:100}", res.Tokens[0])
	}
}

func TestMacroDefinitionBlockSkipped(t *testing.T) {
	data := []byte{0x95, 0x40, 0x21, 0x22, 0x23, 0x4F, 'A'} // MACRO define ... end, then 'A'
	res := Decode(data, alnumOpts)
	if got := res.String(); got != "A" {
		t.Fatalf("String() = %q, want %q", got, "A")
	}
}

func TestExtractPlainTextKeepsGlyphsAndNewlines(t *testing.T) {
	data := []byte{
		0x88,       // SSZ: a size control, kept by PlainText mode but not rendered.
		'H', 'i',
		0x0D,       // APR -> newline.
		0x80,       // BKF color: invisible, dropped.
		'!',
	}
	if got := ExtractPlainText(data, alnumOpts); got != "Hi\n!" {
		t.Fatalf("ExtractPlainText() = %q, want %q", got, "Hi\n!")
	}
}

func TestPlainTextOptionDropsInvisibleEvents(t *testing.T) {
	opts := alnumOpts
	opts.PlainText = true
	data := []byte{0x80, 'A', 0x88} // BKF dropped, SSZ kept.
	res := Decode(data, opts)
	if len(res.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2 (text + size event)", len(res.Tokens))
	}
	if res.Tokens[0].Text != "A" {
		t.Fatalf("Tokens[0].Text = %q, want %q", res.Tokens[0].Text, "A")
	}
	if ev := res.Tokens[1].Event; ev == nil || ev.Kind != EventSmallSize {
		t.Fatalf("Tokens[1] = %+v, want EventSmallSize", res.Tokens[1])
	}
}
