/*
NAME
  service.go

DESCRIPTION
  service.go parses the service descriptor (tag 0x48): a service_type byte
  followed by two length-prefixed ARIB-encoded strings (provider, name).

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

// Service is the decoded form of the service descriptor (tag 0x48).
// ProviderName and Name are raw ARIB-encoded byte strings; decoding them
// to Unicode is the charset package's job.
type Service struct {
	ServiceType  byte
	ProviderName []byte
	Name         []byte
}

// ReadService parses a Service descriptor body. It returns ok=false on
// any short or inconsistent input.
func ReadService(body []byte) (Service, bool) {
	if len(body) < 2 {
		return Service{}, false
	}
	s := Service{ServiceType: body[0]}
	rest := body[1:]

	provLen := int(rest[0])
	if len(rest) < 1+provLen {
		return Service{}, false
	}
	s.ProviderName = rest[1 : 1+provLen]
	rest = rest[1+provLen:]

	if len(rest) < 1 {
		return Service{}, false
	}
	nameLen := int(rest[0])
	if len(rest) < 1+nameLen {
		return Service{}, false
	}
	s.Name = rest[1 : 1+nameLen]
	return s, true
}
