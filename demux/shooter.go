/*
NAME
  shooter.go

DESCRIPTION
  shooter.go defines Shooter, the user-level callback interface the
  Sorter drives as it learns the transport stream's structure and
  content.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package demux

import (
	"github.com/ausocean/isdbts/ts"
	"github.com/ausocean/isdbts/ts/descriptor"
	"github.com/ausocean/isdbts/ts/pes"
)

// Caption wraps the two payload shapes that ride under the caption or
// superimpose data-group ranges: a management payload (language table,
// delivered once per DataGroupVersion) or a statement payload (the
// displayable text/DRCS/bitmap units for one language track). Exactly
// one of Management or Data is non-nil.
type Caption struct {
	Management *pes.CaptionManagementData
	Data       *pes.CaptionData
}

// Shooter is the caller-supplied sink the Sorter drives as it processes
// the transport stream. Implementations must not block for long and
// must not panic; the Extractor worker that owns the Sorter treats a
// panicking Shooter as fatal to the whole pipeline.
type Shooter interface {
	// OnPATUpdated fires whenever the program set changes: a service was
	// added, removed, or the PAT's version advanced.
	OnPATUpdated(services ServiceMap)

	// OnPMTUpdated fires whenever one service's elementary-stream layout
	// changes.
	OnPMTUpdated(services ServiceMap, service *Service)

	// OnEITUpdated fires whenever a service's present or following event
	// changes. isPresent distinguishes which of the two slots changed.
	OnEITUpdated(services ServiceMap, service *Service, isPresent bool)

	// OnVideoPacket and OnAudioPacket fire once per reassembled PES
	// packet on a PID the Sorter has learned from a PMT.
	// hasPTS/hasDTS mirror the PES header's PTS_DTS_flags; pts/dts are
	// meaningless when their has-flag is false.
	OnVideoPacket(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte)
	OnAudioPacket(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, hasDTS bool, dts ts.Timestamp, payload []byte)

	// OnCaption and OnSuperimpose fire once per reassembled caption PES
	// packet, classified by the DataGroup's data_group_id range.
	OnCaption(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption Caption)
	OnSuperimpose(services ServiceMap, pid ts.Pid, hasPTS bool, pts ts.Timestamp, caption Caption)

	// OnPCR fires once per adaptation-field PCR observed on a watched
	// PCR PID, naming the services that share that PID.
	OnPCR(services ServiceMap, serviceIDs []ServiceID, pcr ts.Timestamp)

	// OnTOT fires on every Time Offset/Date Table delivery. offset is
	// nil for a TDT (which carries no descriptors) or a TOT with no
	// local_time_offset_descriptor present.
	OnTOT(services ServiceMap, utc ts.DateTime, offset *descriptor.LocalTimeOffset)
}
