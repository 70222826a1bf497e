/*
NAME
  digital_copy_control.go

DESCRIPTION
  digital_copy_control.go parses the digital copy control descriptor
  (0xC1), whose shape depends on flag bits signalling the presence of a
  max-bitrate field and a per-component control sub-loop.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// DigitalCopyControl is the decoded form of the digital copy control
// descriptor (0xC1).
type DigitalCopyControl struct {
	CopyControlType  byte // 2-bit
	APSControlData   byte // 2-bit, valid only when CopyControlType indicates copy-one-generation.
	MaximumBitrate   byte // valid only if HasMaxBitrate.
	HasMaxBitrate    bool
	Components       []ComponentCopyControl
}

// ComponentCopyControl is one entry of the optional per-component control
// sub-loop.
type ComponentCopyControl struct {
	ComponentTag    byte
	CopyControlType byte
	APSControlData  byte
	MaximumBitrate  byte
	HasMaxBitrate   bool
}

// ReadDigitalCopyControl parses a DigitalCopyControl descriptor body.
func ReadDigitalCopyControl(body []byte) (DigitalCopyControl, bool) {
	if len(body) < 1 {
		return DigitalCopyControl{}, false
	}
	d := DigitalCopyControl{
		CopyControlType: (body[0] >> 6) & 0x03,
		APSControlData:  (body[0] >> 4) & 0x03,
	}
	d.HasMaxBitrate = body[0]&0x08 != 0
	componentControl := body[0]&0x04 != 0
	rest := body[1:]
	if d.HasMaxBitrate {
		if len(rest) < 1 {
			return DigitalCopyControl{}, false
		}
		d.MaximumBitrate = rest[0]
		rest = rest[1:]
	}
	if !componentControl {
		return d, true
	}
	if len(rest) < 1 {
		return DigitalCopyControl{}, false
	}
	count := int(rest[0])
	rest = rest[1:]
	for i := 0; i < count; i++ {
		if len(rest) < 2 {
			return DigitalCopyControl{}, false
		}
		c := ComponentCopyControl{
			ComponentTag:    rest[0],
			CopyControlType: (rest[1] >> 6) & 0x03,
			APSControlData:  (rest[1] >> 4) & 0x03,
			HasMaxBitrate:   rest[1]&0x08 != 0,
		}
		rest = rest[2:]
		if c.HasMaxBitrate {
			if len(rest) < 1 {
				return DigitalCopyControl{}, false
			}
			c.MaximumBitrate = rest[0]
			rest = rest[1:]
		}
		d.Components = append(d.Components, c)
	}
	return d, true
}
