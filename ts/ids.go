/*
NAME
  ids.go

DESCRIPTION
  ids.go provides strongly-typed, non-zero identifier wrappers for
  service, event, network and transport-stream IDs, and LangCode, the
  3-byte ISO 639-2 language code carried by short/extended event and
  audio component descriptors.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ts

import "fmt"

// ServiceID identifies a single service (programme/channel) within a
// transport stream. The zero value is never a valid ServiceID on the
// wire; NewServiceID reports this via its ok return.
type ServiceID uint16

// EventID identifies a single scheduled event (broadcast) within a
// service's EIT.
type EventID uint16

// NetworkID identifies the originating network of a transport stream.
type NetworkID uint16

// TransportStreamID identifies a single transport stream within a
// network.
type TransportStreamID uint16

// NewServiceID validates that raw is non-zero and returns a ServiceID.
func NewServiceID(raw uint16) (ServiceID, bool) { return ServiceID(raw), raw != 0 }

// NewEventID validates that raw is non-zero and returns an EventID.
func NewEventID(raw uint16) (EventID, bool) { return EventID(raw), raw != 0 }

// NewNetworkID validates that raw is non-zero and returns a NetworkID.
func NewNetworkID(raw uint16) (NetworkID, bool) { return NetworkID(raw), raw != 0 }

// NewTransportStreamID validates that raw is non-zero and returns a
// TransportStreamID.
func NewTransportStreamID(raw uint16) (TransportStreamID, bool) {
	return TransportStreamID(raw), raw != 0
}

// LangCode is a 3-byte ISO 639-2 language code, e.g. "jpn", "eng".
type LangCode [3]byte

// ParseLangCode reads a 3-byte language code from b.
func ParseLangCode(b []byte) (LangCode, bool) {
	if len(b) < 3 {
		return LangCode{}, false
	}
	var lc LangCode
	copy(lc[:], b[:3])
	return lc, true
}

// String implements fmt.Stringer.
func (lc LangCode) String() string {
	return fmt.Sprintf("%c%c%c", lc[0], lc[1], lc[2])
}
