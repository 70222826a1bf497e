/*
NAME
  event.go

DESCRIPTION
  event.go parses the short event (0x4D) and extended event (0x4E)
  descriptors.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import "github.com/ausocean/isdbts/ts"

// ShortEvent is the decoded form of the short event descriptor (0x4D).
type ShortEvent struct {
	Lang      ts.LangCode
	EventName []byte
	Text      []byte
}

// ReadShortEvent parses a ShortEvent descriptor body.
func ReadShortEvent(body []byte) (ShortEvent, bool) {
	lc, ok := ts.ParseLangCode(body)
	if !ok {
		return ShortEvent{}, false
	}
	rest := body[3:]
	if len(rest) < 1 {
		return ShortEvent{}, false
	}
	nameLen := int(rest[0])
	if len(rest) < 1+nameLen {
		return ShortEvent{}, false
	}
	name := rest[1 : 1+nameLen]
	rest = rest[1+nameLen:]
	if len(rest) < 1 {
		return ShortEvent{}, false
	}
	textLen := int(rest[0])
	if len(rest) < 1+textLen {
		return ShortEvent{}, false
	}
	return ShortEvent{Lang: lc, EventName: name, Text: rest[1 : 1+textLen]}, true
}

// ExtendedEventItem is one (item_description, item) pair within an
// ExtendedEvent descriptor.
type ExtendedEventItem struct {
	Description []byte
	Item        []byte
}

// ExtendedEvent is the decoded form of the extended event descriptor
// (0x4E). A full event's text may span multiple ExtendedEvent descriptors
// (descriptor_number/last_descriptor_number); callers needing the
// complete text should concatenate Items/Text across all such descriptors
// for the event in descriptor_number order.
type ExtendedEvent struct {
	DescriptorNumber     byte
	LastDescriptorNumber byte
	Lang                 ts.LangCode
	Items                []ExtendedEventItem
	Text                 []byte
}

// ReadExtendedEvent parses an ExtendedEvent descriptor body.
func ReadExtendedEvent(body []byte) (ExtendedEvent, bool) {
	if len(body) < 1 {
		return ExtendedEvent{}, false
	}
	e := ExtendedEvent{
		DescriptorNumber:     body[0] >> 4,
		LastDescriptorNumber: body[0] & 0x0F,
	}
	lc, ok := ts.ParseLangCode(body[1:])
	if !ok {
		return ExtendedEvent{}, false
	}
	e.Lang = lc
	rest := body[4:]
	if len(rest) < 1 {
		return ExtendedEvent{}, false
	}
	itemsLen := int(rest[0])
	if len(rest) < 1+itemsLen {
		return ExtendedEvent{}, false
	}
	items := rest[1 : 1+itemsLen]
	for len(items) >= 1 {
		descLen := int(items[0])
		if len(items) < 1+descLen+1 {
			return ExtendedEvent{}, false
		}
		desc := items[1 : 1+descLen]
		items = items[1+descLen:]
		itemLen := int(items[0])
		if len(items) < 1+itemLen {
			return ExtendedEvent{}, false
		}
		item := items[1 : 1+itemLen]
		items = items[1+itemLen:]
		e.Items = append(e.Items, ExtendedEventItem{Description: desc, Item: item})
	}
	rest = rest[1+itemsLen:]
	if len(rest) < 1 {
		return ExtendedEvent{}, false
	}
	textLen := int(rest[0])
	if len(rest) < 1+textLen {
		return ExtendedEvent{}, false
	}
	e.Text = rest[1 : 1+textLen]
	return e, true
}
