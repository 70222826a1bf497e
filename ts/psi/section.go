/*
NAME
  section.go

DESCRIPTION
  section.go provides Section, the reassembled-table-section view handed
  to the ts/table and ts/descriptor parsers, and the wire-level header
  fields shared by every PSI/SI table.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package psi

import "github.com/ausocean/isdbts/bits"

// Section is one reassembled, CRC-verified PSI/SI table section.
type Section struct {
	TableID         byte
	SyntaxIndicator bool
	TableIDExtension uint16 // "table_id_extension" e.g. transport_stream_id, service_id.
	Version         byte
	CurrentNext     bool
	SectionNumber   byte
	LastSection     byte
	Data            []byte // table-specific payload, after the 8-byte syntax header, before the CRC.
	raw             []byte // entire section including header and CRC, for re-verification/debugging.
}

// Raw returns the complete section bytes (header through CRC) that this
// Section was parsed from. For a multi-section table instance returned
// by Assembler.Feed, Raw reflects only the most recently parsed
// section, not the whole table; Data is the one that is complete.
func (s Section) Raw() []byte { return s.raw }

// ParseSection decodes a complete PSI/SI section (starting at table_id,
// i.e. after any pointer_field, through and including any trailing CRC32)
// from b. Sections with the syntax indicator set always carry a CRC32 and
// are verified; sections without it (e.g. TDT) carry no CRC at all and are
// taken as-is. TOT is the one documented exception — syntax indicator
// clear but a CRC32 present regardless — and goes through the same
// syntax-clear path: its CRC32 is left unverified at the end of Data,
// for table.ReadTOT to verify and strip. ParseSection returns
// ok=false on any malformed or CRC-mismatched input; it never panics.
func ParseSection(b []byte) (Section, bool) {
	if len(b) < 3 {
		return Section{}, false
	}
	tableID := b[0]
	lenField, ok := bits.ReadBE16(b[1:3])
	if !ok {
		return Section{}, false
	}
	syntaxIndicator := lenField&0x8000 != 0
	sectionLength := int(lenField & 0x0FFF)
	total := 3 + sectionLength
	if total > len(b) {
		return Section{}, false
	}
	full := b[:total]
	if !syntaxIndicator {
		s := Section{TableID: tableID, SyntaxIndicator: false, raw: full}
		s.Data = full[3:]
		return s, true
	}
	if !Verify(full) {
		return Section{}, false
	}

	s := Section{TableID: tableID, SyntaxIndicator: syntaxIndicator, raw: full}
	body := full[3 : total-4] // strip header fixed part and trailing CRC.
	if len(body) < 5 {
		return Section{}, false
	}
	ext, ok := bits.ReadBE16(body[0:2])
	if !ok {
		return Section{}, false
	}
	s.TableIDExtension = ext
	s.Version = (body[2] >> 1) & 0x1F
	s.CurrentNext = body[2]&0x01 != 0
	s.SectionNumber = body[3]
	s.LastSection = body[4]
	s.Data = body[5:]
	return s, true
}
