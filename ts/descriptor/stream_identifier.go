/*
NAME
  stream_identifier.go

DESCRIPTION
  stream_identifier.go parses the stream identifier descriptor (0x52),
  whose component_tag is the key that user-level stream selection
  (SelectVideoStream/SelectAudioStream) is keyed on.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// StreamIdentifier is the decoded form of the stream identifier
// descriptor (0x52).
type StreamIdentifier struct {
	ComponentTag byte
}

// ReadStreamIdentifier parses a StreamIdentifier descriptor body.
func ReadStreamIdentifier(body []byte) (StreamIdentifier, bool) {
	if len(body) < 1 {
		return StreamIdentifier{}, false
	}
	return StreamIdentifier{ComponentTag: body[0]}, true
}
