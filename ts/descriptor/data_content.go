/*
NAME
  data_content.go

DESCRIPTION
  data_content.go parses the data content descriptor (0xC7), which
  announces a data broadcasting component (captions, superimpose, data
  carousel) within an event, with a component-specific selector blob.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import "github.com/ausocean/isdbts/ts"

// DataContent is the decoded form of the data content descriptor
// (0xC7). Selector is component-specific and left as raw bytes; Text is
// the ARIB-encoded human-readable label.
type DataContent struct {
	DataComponentID uint16
	EntryComponent  byte
	Selector        []byte
	ComponentRefs   []byte
	Lang            ts.LangCode
	Text            []byte
}

// ReadDataContent parses a DataContent descriptor body.
func ReadDataContent(body []byte) (DataContent, bool) {
	if len(body) < 4 {
		return DataContent{}, false
	}
	d := DataContent{
		DataComponentID: uint16(body[0])<<8 | uint16(body[1]),
		EntryComponent:  body[2],
	}
	selLen := int(body[3])
	rest := body[4:]
	if len(rest) < selLen {
		return DataContent{}, false
	}
	d.Selector = rest[:selLen]
	rest = rest[selLen:]

	if len(rest) < 1 {
		return DataContent{}, false
	}
	refLen := int(rest[0])
	rest = rest[1:]
	if len(rest) < refLen {
		return DataContent{}, false
	}
	d.ComponentRefs = rest[:refLen]
	rest = rest[refLen:]

	if len(rest) < 4 {
		return DataContent{}, false
	}
	copy(d.Lang[:], rest[0:3])
	textLen := int(rest[3])
	rest = rest[4:]
	if len(rest) < textLen {
		return DataContent{}, false
	}
	d.Text = rest[:textLen]
	return d, true
}
