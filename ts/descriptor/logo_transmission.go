/*
NAME
  logo_transmission.go

DESCRIPTION
  logo_transmission.go parses the logo transmission descriptor (0xCF),
  which tells a receiver where to find a service's logo: CDT download
  ids for the two transmission schemes, or a simple character logo.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

// LogoTransmissionType enumerates the logo_transmission_type values.
type LogoTransmissionType byte

const (
	// LogoTransmissionCDT1 is scheme 1: logo id + version + download
	// data id, resolved through the CDT.
	LogoTransmissionCDT1 LogoTransmissionType = 0x01
	// LogoTransmissionCDT2 is scheme 2: logo id only.
	LogoTransmissionCDT2 LogoTransmissionType = 0x02
	// LogoTransmissionChar is a simple character logo.
	LogoTransmissionChar LogoTransmissionType = 0x03
)

// LogoTransmission is the decoded form of the logo transmission
// descriptor (0xCF). Which fields are meaningful depends on Type:
// CDT1 fills LogoID/LogoVersion/DownloadDataID, CDT2 fills LogoID, and
// Char fills Chars. Unknown types preserve the body in Chars.
type LogoTransmission struct {
	Type           LogoTransmissionType
	LogoID         uint16 // 9-bit
	LogoVersion    uint16 // 12-bit
	DownloadDataID uint16
	Chars          []byte
}

// ReadLogoTransmission parses a LogoTransmission descriptor body.
func ReadLogoTransmission(body []byte) (LogoTransmission, bool) {
	if len(body) < 1 {
		return LogoTransmission{}, false
	}
	l := LogoTransmission{Type: LogoTransmissionType(body[0])}
	rest := body[1:]
	switch l.Type {
	case LogoTransmissionCDT1:
		if len(rest) < 6 {
			return LogoTransmission{}, false
		}
		l.LogoID = (uint16(rest[0]&0x01) << 8) | uint16(rest[1])
		l.LogoVersion = (uint16(rest[2]&0x0F) << 8) | uint16(rest[3])
		l.DownloadDataID = uint16(rest[4])<<8 | uint16(rest[5])
	case LogoTransmissionCDT2:
		if len(rest) < 2 {
			return LogoTransmission{}, false
		}
		l.LogoID = (uint16(rest[0]&0x01) << 8) | uint16(rest[1])
	default:
		// LogoTransmissionChar and any unknown type: keep the bytes.
		l.Chars = rest
	}
	return l, true
}
