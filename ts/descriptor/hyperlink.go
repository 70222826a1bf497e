/*
NAME
  hyperlink.go

DESCRIPTION
  hyperlink.go parses the hyperlink descriptor (0xC5), whose selector
  shape depends on link_destination_type (seven known variants plus
  Unknown).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// LinkDestinationType enumerates the known hyperlink destination shapes.
// Unknown raw values are kept as-is and parse with an empty Selector
// rather than rejecting the descriptor.
type LinkDestinationType byte

const (
	LinkDestinationUnknown                   LinkDestinationType = 0x00
	LinkDestinationAnotherTS                 LinkDestinationType = 0x01
	LinkDestinationAnotherTSService          LinkDestinationType = 0x02
	LinkDestinationAnotherTSEvent             LinkDestinationType = 0x03
	LinkDestinationThisTSModule               LinkDestinationType = 0x10
	LinkDestinationThisTSModuleWithContentID LinkDestinationType = 0x11
	LinkDestinationERTNode                    LinkDestinationType = 0x20
	LinkDestinationERTInformation              LinkDestinationType = 0x21
)

// Hyperlink is the decoded form of the hyperlink descriptor (0xC5). The
// Selector field is the tagged-union-shaped body specific to
// LinkDestinationType; its byte layout varies per destination type and is
// documented in selectorLength.
type Hyperlink struct {
	HyperlinkageType    byte
	LinkDestinationType LinkDestinationType
	Selector            []byte
	PrivateData         []byte
}

// ReadHyperlink parses a Hyperlink descriptor body.
func ReadHyperlink(body []byte) (Hyperlink, bool) {
	if len(body) < 2 {
		return Hyperlink{}, false
	}
	h := Hyperlink{
		HyperlinkageType:    body[0],
		LinkDestinationType: LinkDestinationType(body[1]),
	}
	rest := body[2:]
	selLen, selector, ok := selectorLength(h.LinkDestinationType, rest)
	if !ok {
		return Hyperlink{}, false
	}
	h.Selector = selector
	h.PrivateData = rest[selLen:]
	return h, true
}

// selectorLength returns the byte length of the selector field for a
// given destination type and the selector bytes themselves; unknown
// destination types consume zero selector bytes (selector is caller's to
// interpret from PrivateData, i.e. the whole remainder).
func selectorLength(t LinkDestinationType, rest []byte) (int, []byte, bool) {
	switch t {
	case LinkDestinationAnotherTS:
		if len(rest) < 4 {
			return 0, nil, false
		}
		return 4, rest[:4], true // transport_stream_id + original_network_id
	case LinkDestinationAnotherTSService:
		if len(rest) < 6 {
			return 0, nil, false
		}
		return 6, rest[:6], true // + service_id
	case LinkDestinationAnotherTSEvent:
		if len(rest) < 8 {
			return 0, nil, false
		}
		return 8, rest[:8], true // + event_id
	case LinkDestinationThisTSModule:
		if len(rest) < 2 {
			return 0, nil, false
		}
		return 2, rest[:2], true // module_id
	case LinkDestinationThisTSModuleWithContentID:
		if len(rest) < 6 {
			return 0, nil, false
		}
		return 6, rest[:6], true // content_id + module_id
	case LinkDestinationERTNode:
		if len(rest) < 2 {
			return 0, nil, false
		}
		return 2, rest[:2], true // node_id
	case LinkDestinationERTInformation:
		if len(rest) < 3 {
			return 0, nil, false
		}
		return 3, rest[:3], true // information_id
	default:
		return 0, nil, true
	}
}
