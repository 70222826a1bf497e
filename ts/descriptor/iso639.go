/*
NAME
  iso639.go

DESCRIPTION
  iso639.go parses the ISO 639 language descriptor (0x0A), which labels
  an elementary stream with one or more language/audio-type pairs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import "github.com/ausocean/isdbts/ts"

// AudioType is the ISO 13818-1 audio_type field of an ISO 639 language
// descriptor entry.
type AudioType byte

const (
	AudioTypeUndefined AudioType = iota
	AudioTypeCleanEffects
	AudioTypeHearingImpaired
	AudioTypeVisualImpairedCommentary
	// Values 4-255 are reserved.
	AudioTypeReserved
)

func decodeAudioType(raw byte) AudioType {
	if raw <= 3 {
		return AudioType(raw)
	}
	return AudioTypeReserved
}

// ISO639LanguageEntry is one language entry within an ISO 639 language
// descriptor.
type ISO639LanguageEntry struct {
	Lang ts.LangCode
	Type AudioType
	Raw  byte // the audio_type byte, verbatim.
}

// ISO639Language is the decoded form of the ISO 639 language descriptor
// (0x0A).
type ISO639Language struct {
	Entries []ISO639LanguageEntry
}

// ReadISO639Language parses an ISO639Language descriptor body.
func ReadISO639Language(body []byte) (ISO639Language, bool) {
	if len(body)%4 != 0 {
		return ISO639Language{}, false
	}
	var l ISO639Language
	for i := 0; i+3 < len(body); i += 4 {
		var e ISO639LanguageEntry
		copy(e.Lang[:], body[i:i+3])
		e.Raw = body[i+3]
		e.Type = decodeAudioType(body[i+3])
		l.Entries = append(l.Entries, e)
	}
	return l, true
}
