/*
NAME
  content.go

DESCRIPTION
  content.go parses the content descriptor (0x54), which classifies an
  event by genre nibble pairs plus broadcaster-defined user nibbles.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// ContentGenre is one genre entry within a content descriptor. The
// level-1 nibble is the broad category, level 2 the sub-category; the
// user nibbles carry broadcaster-defined refinement.
type ContentGenre struct {
	Level1     byte // 4-bit
	Level2     byte // 4-bit
	UserNibble byte // both user nibbles, packed as received.
}

// Content is the decoded form of the content descriptor (0x54).
type Content struct {
	Genres []ContentGenre
}

// ReadContent parses a Content descriptor body.
func ReadContent(body []byte) (Content, bool) {
	if len(body)%2 != 0 {
		return Content{}, false
	}
	var c Content
	for i := 0; i+1 < len(body); i += 2 {
		c.Genres = append(c.Genres, ContentGenre{
			Level1:     body[i] >> 4,
			Level2:     body[i] & 0x0F,
			UserNibble: body[i+1],
		})
	}
	return c, true
}
