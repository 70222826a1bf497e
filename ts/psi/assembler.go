/*
NAME
  assembler.go

DESCRIPTION
  assembler.go reassembles PSI/SI sections from a sequence of per-PID TS
  packet payloads, honouring payload_unit_start_indicator and the pointer
  field, and de-duplicates by (table_id, table_id_extension, version,
  section_number).

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

// Assembler reassembles sections from a sequence of payloads belonging to
// a single PID. Construct one Assembler per PID of interest.
type Assembler struct {
	buf     []byte
	started bool

	// seen tracks, for each (table_id, table_id_extension), the version
	// whose sections we're currently collecting and which section
	// numbers of that version we've already delivered, so that a table
	// instance is only delivered once all of its sections for the
	// current version have completed, or the version has advanced.
	seen map[tableKey]*versionState
}

type tableKey struct {
	tableID byte
	ext     uint16
}

// versionState accumulates every section of one (table_id,
// table_id_extension) pair's current version, so that the table is
// delivered to the filter only once section_number 0..last has been
// collected in full. delivered guards against
// redelivering the same version on every retransmission cycle once it
// has already completed.
type versionState struct {
	version   byte
	last      byte
	sections  map[byte][]byte
	delivered bool
	envelope  Section // last section parsed for this version, for its header fields.
}

// NewAssembler returns a ready-to-use Assembler.
func NewAssembler() *Assembler {
	return &Assembler{seen: make(map[tableKey]*versionState)}
}

// Feed processes one TS packet's payload (the bytes after the MPEG-TS
// header/adaptation field). pusi is the packet's
// payload_unit_start_indicator. Feed returns the sections that completed
// as a result of this payload — normally 0 or 1, occasionally more if a
// payload both finishes a pending section and starts+finishes another.
// Sections with a bad CRC or malformed framing are dropped; Assembler
// has no logger, so nothing is logged. Feed itself never errors.
func (a *Assembler) Feed(payload []byte, pusi bool) []Section {
	if len(payload) == 0 {
		return nil
	}
	var out []Section

	if pusi {
		pointer := int(payload[0])
		rest := payload[1:]
		if pointer > len(rest) {
			// Malformed pointer field; drop whatever we had buffered and
			// resync on the next PUSI.
			a.buf = nil
			a.started = false
			return nil
		}
		completion := rest[:pointer]
		if a.started {
			a.buf = append(a.buf, completion...)
			if s, ok := a.tryComplete(); ok {
				out = append(out, s)
			}
		}
		a.buf = a.buf[:0]
		a.started = true
		a.buf = append(a.buf, rest[pointer:]...)
		for {
			s, ok := a.tryComplete()
			if !ok {
				break
			}
			out = append(out, s)
		}
		return out
	}

	if !a.started {
		return nil
	}
	a.buf = append(a.buf, payload...)
	for {
		s, ok := a.tryComplete()
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}

// tryComplete attempts to parse one section off the front of a.buf. On
// success it advances a.buf past the consumed section. A section with
// the syntax indicator set is folded into its (table, ext, version)'s
// versionState and only returned once every section_number from 0 to
// last_section_number has been collected, at which point the returned
// Section's Data is the concatenation of every section's Data in
// section_number order — a complete table instance, not a single
// section —. Sections arriving after their version has
// already completed (retransmission cycles) are consumed but not
// re-returned (ok=false).
func (a *Assembler) tryComplete() (Section, bool) {
	if len(a.buf) == 0 || a.buf[0] == 0xFF {
		// Stuffing bytes fill the remainder of a TS packet after the last
		// section; nothing more to parse from this buffer right now.
		a.buf = nil
		return Section{}, false
	}
	if len(a.buf) < 3 {
		return Section{}, false
	}
	sectionLength := int(a.buf[1]&0x0F)<<8 | int(a.buf[2])
	total := 3 + sectionLength
	if total > len(a.buf) {
		return Section{}, false
	}
	chunk := a.buf[:total]
	a.buf = a.buf[total:]

	s, ok := ParseSection(chunk)
	if !ok {
		return Section{}, false
	}
	if !s.SyntaxIndicator {
		return s, true
	}
	if s.SectionNumber > s.LastSection {
		return Section{}, false
	}

	key := tableKey{tableID: s.TableID, ext: s.TableIDExtension}
	vs, exists := a.seen[key]
	if !exists || vs.version != s.Version {
		vs = &versionState{version: s.Version, last: s.LastSection, sections: map[byte][]byte{}}
		a.seen[key] = vs
	}
	if vs.delivered {
		return Section{}, false
	}
	vs.envelope = s
	vs.sections[s.SectionNumber] = s.Data

	for n := byte(0); ; n++ {
		if _, ok := vs.sections[n]; !ok {
			return Section{}, false
		}
		if n == vs.last {
			break
		}
	}

	combined := vs.envelope
	combined.Data = make([]byte, 0, len(vs.sections)*len(s.Data))
	for n := byte(0); ; n++ {
		combined.Data = append(combined.Data, vs.sections[n]...)
		if n == vs.last {
			break
		}
	}
	vs.delivered = true
	return combined, true
}
