/*
NAME
  cat.go

DESCRIPTION
  cat.go parses the Conditional Access Table, which carries the CA
  descriptors locating each CA system's EMM stream. The descriptors are
  surfaced as-is; descrambling is a host concern.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package table

import (
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/psi"
)

// TableIDCAT is the CAT's fixed table_id.
const TableIDCAT = 0x01

// CAT is the decoded Conditional Access Table. Its body is one
// descriptor block, conventionally CA descriptors (0x09).
type CAT struct {
	Version     byte
	Descriptors descriptor.Block
}

// ReadCAT decodes a CAT from a reassembled section.
func ReadCAT(sec psi.Section) (CAT, bool) {
	if sec.TableID != TableIDCAT {
		return CAT{}, false
	}
	return CAT{
		Version:     sec.Version,
		Descriptors: descriptor.Block(sec.Data),
	}, true
}
