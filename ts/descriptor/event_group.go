/*
NAME
  event_group.go

DESCRIPTION
  event_group.go parses the event group descriptor (0xD6), which links
  an event to related events either on the same network or, for the
  relay/movement group types, on another network entirely.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// EventGroupType enumerates the ARIB event group descriptor's
// group_type values. Relay and movement types carry an additional
// other-network event list; the rest only reference events on this
// network.
type EventGroupType byte

const (
	EventGroupShared EventGroupType = iota + 1
	EventGroupRelay
	EventGroupMovement
	EventGroupRelayToOtherNetwork
	EventGroupMovementToOtherNetwork
)

// EventGroupRef is one (service_id, event_id) pair referencing an event
// on this network.
type EventGroupRef struct {
	ServiceID uint16
	EventID   uint16
}

// EventGroupOtherNetworkRef is one entry of the other-network event list
// carried by the relay/movement-to-other-network group types.
type EventGroupOtherNetworkRef struct {
	OriginalNetworkID uint16
	TransportStreamID uint16
	ServiceID         uint16
	EventID           uint16
}

// EventGroup is the decoded form of the event group descriptor (0xD6).
type EventGroup struct {
	GroupType    EventGroupType
	Events       []EventGroupRef
	OtherNetwork []EventGroupOtherNetworkRef // only populated for the two OtherNetwork group types.
}

// ReadEventGroup parses an EventGroup descriptor body.
func ReadEventGroup(body []byte) (EventGroup, bool) {
	if len(body) < 1 {
		return EventGroup{}, false
	}
	g := EventGroup{
		GroupType: EventGroupType(body[0] >> 4),
	}
	count := int(body[0] & 0x0F)
	rest := body[1:]
	if len(rest) < count*4 {
		return EventGroup{}, false
	}
	for i := 0; i < count; i++ {
		g.Events = append(g.Events, EventGroupRef{
			ServiceID: uint16(rest[0])<<8 | uint16(rest[1]),
			EventID:   uint16(rest[2])<<8 | uint16(rest[3]),
		})
		rest = rest[4:]
	}
	switch g.GroupType {
	case EventGroupRelayToOtherNetwork, EventGroupMovementToOtherNetwork:
		if len(rest)%8 != 0 {
			return EventGroup{}, false
		}
		for len(rest) >= 8 {
			g.OtherNetwork = append(g.OtherNetwork, EventGroupOtherNetworkRef{
				OriginalNetworkID: uint16(rest[0])<<8 | uint16(rest[1]),
				TransportStreamID: uint16(rest[2])<<8 | uint16(rest[3]),
				ServiceID:         uint16(rest[4])<<8 | uint16(rest[5]),
				EventID:           uint16(rest[6])<<8 | uint16(rest[7]),
			})
			rest = rest[8:]
		}
	}
	return g, true
}
