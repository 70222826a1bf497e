/*
NAME
  block.go

DESCRIPTION
  block.go provides Block, a lazy, restartable view over a concatenation
  of (tag, length, body) descriptor records, as carried in PMT/SDT/EIT/NIT
  etc. sections.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package descriptor provides a lazy view over MPEG-TS/ARIB descriptor
// blocks and typed parsers for the ARIB STD-B10 descriptor tags.
// A Block never parses eagerly: typed accessors parse on demand, so a
// consumer that never reads a given descriptor type never pays for it.
package descriptor

// Raw is one undecoded (tag, length, data) descriptor record.
type Raw struct {
	Tag  byte
	Data []byte // length(Data) == the wire length byte; body only.
}

// Block is a restartable, cheap-to-clone view over descriptor bytes. It
// holds bytes only; First/All parse on demand.
type Block []byte

// Descriptor tags from ARIB STD-B10 and ISO/IEC 13818-1.
const (
	TagVideoStream        = 0x02
	TagAudioStream        = 0x03
	TagISO639Language     = 0x0A
	TagStreamIdentifier   = 0x52
	TagService            = 0x48
	TagShortEvent         = 0x4D
	TagExtendedEvent      = 0x4E
	TagComponent          = 0x50
	TagContentDescriptor  = 0x54
	TagLocalTimeOffset    = 0x58
	TagVideoDecodeControl = 0xC8
	TagAudioComponent     = 0xC4
	TagDigitalCopyControl = 0xC1
	TagHyperlink          = 0xC5
	TagTargetRegion       = 0xC6
	TagSeries             = 0xD5
	TagEventGroup         = 0xD6
	TagTSInformation      = 0xCD
	TagSystemManagement   = 0xFE
	TagDataContent        = 0xC7
	TagBroadcasterName    = 0xD8
	TagCAIdentifier       = 0x53
	TagLogoTransmission   = 0xCF
)

// Raws decodes the (tag, length, data) framing only, without interpreting
// any descriptor body; it is total and stops (rather than panicking) at
// the first malformed record.
func (b Block) Raws() []Raw {
	var out []Raw
	rest := []byte(b)
	for len(rest) >= 2 {
		tag := rest[0]
		n := int(rest[1])
		if len(rest) < 2+n {
			break
		}
		out = append(out, Raw{Tag: tag, Data: rest[2 : 2+n]})
		rest = rest[2+n:]
	}
	return out
}

// First returns the first raw descriptor matching tag, if any.
func (b Block) First(tag byte) (Raw, bool) {
	for _, r := range b.Raws() {
		if r.Tag == tag {
			return r, true
		}
	}
	return Raw{}, false
}

// All returns every raw descriptor matching tag, in order.
func (b Block) All(tag byte) []Raw {
	var out []Raw
	for _, r := range b.Raws() {
		if r.Tag == tag {
			out = append(out, r)
		}
	}
	return out
}
