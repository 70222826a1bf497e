/*
NAME
  pes.go

DESCRIPTION
  pes.go decodes PES (Packetized Elementary Stream) packet headers:
  the packet_start_code_prefix/stream_id/PES_packet_length fixed
  header, the optional flags/header-data-length byte trio, and the
  PTS/DTS timestamp fields they gate.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pes decodes PES packets, including the ARIB STD-B24 caption
// data carried as private_stream_1 payload.
package pes

// StreamIDPrivateStream1 is the PES stream_id ARIB captions and
// superimposed text are carried under.
const StreamIDPrivateStream1 = 0xBD

// Header is a decoded PES packet header.
type Header struct {
	StreamID     byte
	PacketLength uint16 // Bytes following the length field; 0 means unbounded.

	ScramblingControl      byte
	Priority               bool
	DataAlignmentIndicator bool
	Copyright              bool
	Original               bool

	PTSDTSIndicator        byte // 0b00 none, 0b10 PTS only, 0b11 PTS+DTS.
	ESCRFlag               bool
	ESRFlag                bool
	DSMTrickModeFlag       bool
	AdditionalCopyInfoFlag bool
	CRCFlag                bool
	ExtensionFlag          bool

	HasPTS bool
	PTS    uint64
	HasDTS bool
	DTS    uint64

	// Payload is the PES packet's elementary stream data, following the
	// header and any stuffing bytes.
	Payload []byte
}

// ReadHeader decodes a PES packet header from data, which must start at
// the 00 00 01 packet_start_code_prefix. It reports false on a
// malformed or truncated header.
func ReadHeader(data []byte) (Header, bool) {
	if len(data) < 6 || data[0] != 0x00 || data[1] != 0x00 || data[2] != 0x01 {
		return Header{}, false
	}
	h := Header{
		StreamID:     data[3],
		PacketLength: uint16(data[4])<<8 | uint16(data[5]),
	}
	rest := data[6:]
	if len(rest) < 3 {
		return h, false
	}

	flags1 := rest[0]
	flags2 := rest[1]
	headerDataLength := rest[2]
	h.ScramblingControl = (flags1 >> 4) & 0x3
	h.Priority = flags1&0x08 != 0
	h.DataAlignmentIndicator = flags1&0x04 != 0
	h.Copyright = flags1&0x02 != 0
	h.Original = flags1&0x01 != 0

	h.PTSDTSIndicator = (flags2 >> 6) & 0x3
	h.ESCRFlag = flags2&0x20 != 0
	h.ESRFlag = flags2&0x10 != 0
	h.DSMTrickModeFlag = flags2&0x08 != 0
	h.AdditionalCopyInfoFlag = flags2&0x04 != 0
	h.CRCFlag = flags2&0x02 != 0
	h.ExtensionFlag = flags2&0x01 != 0

	optional := rest[3:]
	if len(optional) < int(headerDataLength) {
		return h, false
	}
	fields := optional[:headerDataLength]
	h.Payload = optional[headerDataLength:]

	switch h.PTSDTSIndicator {
	case 0x2:
		if len(fields) < 5 {
			return h, false
		}
		h.PTS = extractTimestamp(fields[0:5])
		h.HasPTS = true
	case 0x3:
		if len(fields) < 10 {
			return h, false
		}
		h.PTS = extractTimestamp(fields[0:5])
		h.DTS = extractTimestamp(fields[5:10])
		h.HasPTS = true
		h.HasDTS = true
	}
	return h, true
}

// extractTimestamp decodes a 5-byte 33-bit PTS or DTS field.
func extractTimestamp(d []byte) uint64 {
	return (uint64((d[0]>>1)&0x07) << 30) | (uint64(d[1]) << 22) |
		(uint64((d[2]>>1)&0x7f) << 15) | (uint64(d[3]) << 7) | uint64((d[4]>>1)&0x7f)
}
