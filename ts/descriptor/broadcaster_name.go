/*
NAME
  broadcaster_name.go

DESCRIPTION
  broadcaster_name.go parses the broadcaster name descriptor (0xD8),
  carried by the BIT to name a broadcaster.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// BroadcasterName is the decoded form of the broadcaster name
// descriptor (0xD8). Name is a raw ARIB-encoded byte string; decoding
// it to Unicode is the charset package's job.
type BroadcasterName struct {
	Name []byte
}

// ReadBroadcasterName parses a BroadcasterName descriptor body.
func ReadBroadcasterName(body []byte) (BroadcasterName, bool) {
	return BroadcasterName{Name: body}, true
}
