/*
NAME
  ert.go

DESCRIPTION
  ert.go parses the ARIB-specific Event Relation Table, which describes
  a tree of nodes relating events for content description or
  navigation.

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

// TableIDERT is the ERT's fixed table_id.
const TableIDERT = 0xD1

// ERTRelationType is the 4-bit relation_type field of an ERT.
type ERTRelationType byte

const (
	ERTRelationContentsDescription ERTRelationType = 1
	ERTRelationNavigation          ERTRelationType = 2
	ERTRelationReserved            ERTRelationType = 0xFF
)

func decodeERTRelationType(raw byte) ERTRelationType {
	switch raw {
	case 1:
		return ERTRelationContentsDescription
	case 2:
		return ERTRelationNavigation
	default:
		return ERTRelationReserved
	}
}

// ERTCollectionMode is the 4-bit collection_mode field of an ERT node.
type ERTCollectionMode byte

const (
	ERTCollectionGroup ERTCollectionMode = iota
	ERTCollectionConcatenation
	ERTCollectionSelection
	ERTCollectionParallel
	ERTCollectionReserved
)

func decodeERTCollectionMode(raw byte) ERTCollectionMode {
	if raw <= 3 {
		return ERTCollectionMode(raw)
	}
	return ERTCollectionReserved
}

// ERTNode is one node entry within an ERT.
type ERTNode struct {
	NodeID          uint16
	CollectionMode  ERTCollectionMode
	ParentNodeID    uint16
	ReferenceNumber byte
	Descriptors     descriptor.Block
}

// ERT is the decoded Event Relation Table for one event_relation_id.
type ERT struct {
	EventRelationID       uint16
	Version               byte
	InformationProviderID uint16
	RelationType          ERTRelationType
	Nodes                 []ERTNode
}

// ReadERT decodes an ERT from a reassembled section.
func ReadERT(sec psi.Section) (ERT, bool) {
	if sec.TableID != TableIDERT {
		return ERT{}, false
	}
	if len(sec.Data) < 3 {
		return ERT{}, false
	}
	e := ERT{
		EventRelationID:       sec.TableIDExtension,
		Version:               sec.Version,
		InformationProviderID: uint16(sec.Data[0])<<8 | uint16(sec.Data[1]),
		RelationType:          decodeERTRelationType(sec.Data[2] >> 4),
	}
	rest := sec.Data[3:]
	for len(rest) > 0 {
		if len(rest) < 8 {
			return ERT{}, false
		}
		node := ERTNode{
			NodeID:          uint16(rest[0])<<8 | uint16(rest[1]),
			CollectionMode:  decodeERTCollectionMode(rest[2] >> 4),
			ParentNodeID:    uint16(rest[3])<<8 | uint16(rest[4]),
			ReferenceNumber: rest[5],
		}
		descLen := int(rest[6]&0x0F)<<8 | int(rest[7])
		rest = rest[8:]
		if len(rest) < descLen {
			return ERT{}, false
		}
		node.Descriptors = descriptor.Block(rest[:descLen])
		rest = rest[descLen:]
		e.Nodes = append(e.Nodes, node)
	}
	return e, true
}
