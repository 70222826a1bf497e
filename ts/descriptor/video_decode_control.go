/*
NAME
  video_decode_control.go

DESCRIPTION
  video_decode_control.go parses the video decode control descriptor
  (0xC8), which tells a decoder whether the next frame is a still
  picture or a stream-ending sentinel, and what raster format to expect.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// VideoEncodeFormat enumerates the ARIB video_encode_format values.
// Reserved/unrecognised raw values decode to VideoEncodeFormatReserved.
type VideoEncodeFormat byte

const (
	VideoEncodeFormat1080P VideoEncodeFormat = iota
	VideoEncodeFormat1080I
	VideoEncodeFormat720P
	VideoEncodeFormat480P
	VideoEncodeFormat480I
	VideoEncodeFormat240P
	VideoEncodeFormat120P
	VideoEncodeFormat2160P60
	VideoEncodeFormat180P
	VideoEncodeFormat2160P120
	VideoEncodeFormat4320P60
	VideoEncodeFormat4320P120
	VideoEncodeFormatReserved
)

func decodeVideoEncodeFormat(raw byte) VideoEncodeFormat {
	switch raw & 0x0F {
	case 0x0:
		return VideoEncodeFormat1080P
	case 0x1:
		return VideoEncodeFormat1080I
	case 0x2:
		return VideoEncodeFormat720P
	case 0x3:
		return VideoEncodeFormat480P
	case 0x4:
		return VideoEncodeFormat480I
	case 0x5:
		return VideoEncodeFormat240P
	case 0x6:
		return VideoEncodeFormat120P
	case 0x7:
		return VideoEncodeFormat2160P60
	case 0x8:
		return VideoEncodeFormat180P
	case 0x9:
		return VideoEncodeFormat2160P120
	case 0xA:
		return VideoEncodeFormat4320P60
	case 0xB:
		return VideoEncodeFormat4320P120
	default:
		return VideoEncodeFormatReserved
	}
}

// VideoDecodeControl is the decoded form of the video decode control
// descriptor (0xC8).
type VideoDecodeControl struct {
	StillPicture    bool
	SequenceEndCode bool
	EncodeFormat    VideoEncodeFormat
	RawEncodeFormat byte
}

// ReadVideoDecodeControl parses a VideoDecodeControl descriptor body.
func ReadVideoDecodeControl(body []byte) (VideoDecodeControl, bool) {
	if len(body) < 1 {
		return VideoDecodeControl{}, false
	}
	raw := (body[0] >> 2) & 0x0F
	return VideoDecodeControl{
		StillPicture:    body[0]&0x80 != 0,
		SequenceEndCode: body[0]&0x40 != 0,
		EncodeFormat:    decodeVideoEncodeFormat(raw),
		RawEncodeFormat: raw,
	}, true
}
