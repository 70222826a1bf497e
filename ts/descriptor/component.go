/*
NAME
  component.go

DESCRIPTION
  component.go parses the component (0x50) and audio component (0xC4)
  descriptors, which carry the component_tag used for user-level stream
  selection.

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

// Component is the decoded form of the component descriptor (0x50).
type Component struct {
	StreamContent byte // 4-bit stream content type.
	ComponentType byte
	ComponentTag  byte
	Lang          ts.LangCode
	Text          []byte
}

// ReadComponent parses a Component descriptor body.
func ReadComponent(body []byte) (Component, bool) {
	if len(body) < 6 {
		return Component{}, false
	}
	c := Component{
		StreamContent: body[0] & 0x0F,
		ComponentType: body[1],
		ComponentTag:  body[2],
	}
	lc, ok := ts.ParseLangCode(body[3:6])
	if !ok {
		return Component{}, false
	}
	c.Lang = lc
	c.Text = body[6:]
	return c, true
}

// SamplingFrequency is the decoded ARIB audio sampling_rate enum. The
// raw 3-bit value is always preserved alongside the decoded variant.
type SamplingFrequency struct {
	Value SamplingFrequencyValue
	Raw   byte
}

// SamplingFrequencyValue enumerates the known ARIB audio sampling rates.
// Reserved/unknown raw values decode to SamplingFrequencyReserved rather
// than failing.
type SamplingFrequencyValue byte

const (
	SamplingFrequencyReserved SamplingFrequencyValue = iota
	SamplingFrequency16kHz
	SamplingFrequency22_05kHz
	SamplingFrequency24kHz
	SamplingFrequency32kHz
	SamplingFrequency44_1kHz
	SamplingFrequency48kHz
)

func decodeSamplingFrequency(raw byte) SamplingFrequency {
	var v SamplingFrequencyValue
	switch raw & 0x07 {
	case 0x01:
		v = SamplingFrequency16kHz
	case 0x02:
		v = SamplingFrequency22_05kHz
	case 0x03:
		v = SamplingFrequency24kHz
	case 0x05:
		v = SamplingFrequency32kHz
	case 0x06:
		v = SamplingFrequency44_1kHz
	case 0x07:
		v = SamplingFrequency48kHz
	default:
		v = SamplingFrequencyReserved
	}
	return SamplingFrequency{Value: v, Raw: raw & 0x07}
}

// AudioComponent is the decoded form of the audio component descriptor
// (0xC4), which in addition to the Component fields carries the audio
// sampling rate and dual-mono/multi-lingual flags used to distinguish
// alternate audio tracks.
type AudioComponent struct {
	StreamContent   byte
	ComponentType   byte
	ComponentTag    byte
	SimulcastGroup  byte
	ESMultiLingual  bool
	MainComponent   bool
	QualityIndicator byte
	SamplingRate    SamplingFrequency
	Lang            ts.LangCode
	Lang2           ts.LangCode // only valid if ESMultiLingual is set.
	HasLang2        bool
	Text            []byte
}

// ReadAudioComponent parses an AudioComponent descriptor body.
func ReadAudioComponent(body []byte) (AudioComponent, bool) {
	if len(body) < 9 {
		return AudioComponent{}, false
	}
	a := AudioComponent{
		StreamContent:    body[0] & 0x0F,
		ComponentType:    body[1],
		ComponentTag:     body[2],
		SimulcastGroup:   body[3],
		ESMultiLingual:   body[4]&0x80 != 0,
		MainComponent:    body[4]&0x40 != 0,
		QualityIndicator: (body[4] >> 4) & 0x03,
		SamplingRate:     decodeSamplingFrequency(body[4] >> 1),
	}
	lc, ok := ts.ParseLangCode(body[5:8])
	if !ok {
		return AudioComponent{}, false
	}
	a.Lang = lc
	rest := body[8:]
	if a.ESMultiLingual {
		lc2, ok := ts.ParseLangCode(rest)
		if !ok {
			return AudioComponent{}, false
		}
		a.Lang2 = lc2
		a.HasLang2 = true
		rest = rest[3:]
	}
	a.Text = rest
	return a, true
}
