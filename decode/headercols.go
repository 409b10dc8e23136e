package decode

import (
	"github.com/CCSDSPy/ccsdspy/column"
	"github.com/CCSDSPy/ccsdspy/header"
)

// headerColumnNames lists the seven primary-header pseudo-columns in the
// order they are inserted ahead of the body columns when
// WithIncludePrimaryHeader is set (SPEC_FULL.md supplement #2).
var headerColumnNames = []string{
	"CCSDS_VERSION_NUMBER",
	"CCSDS_SECONDARY_FLAG",
	"CCSDS_PACKET_TYPE",
	"CCSDS_APID",
	"CCSDS_SEQUENCE_FLAG",
	"CCSDS_SEQUENCE_COUNT",
	"CCSDS_PACKET_LENGTH",
}

type headerAccs struct {
	version, secFlag, pktType, apid, seqFlag, seqCount, pktLen []uint64
}

func newHeaderAccs(n int) *headerAccs {
	return &headerAccs{
		version:  make([]uint64, 0, n),
		secFlag:  make([]uint64, 0, n),
		pktType:  make([]uint64, 0, n),
		apid:     make([]uint64, 0, n),
		seqFlag:  make([]uint64, 0, n),
		seqCount: make([]uint64, 0, n),
		pktLen:   make([]uint64, 0, n),
	}
}

func (h *headerAccs) append(hdr header.Header) {
	h.version = append(h.version, uint64(hdr.Version))
	h.secFlag = append(h.secFlag, uint64(hdr.SecondaryFlag))
	h.pktType = append(h.pktType, uint64(hdr.Type))
	h.apid = append(h.apid, uint64(hdr.APID))
	h.seqFlag = append(h.seqFlag, uint64(hdr.SequenceFlag))
	h.seqCount = append(h.seqCount, uint64(hdr.SequenceCount))
	h.pktLen = append(h.pktLen, uint64(hdr.PacketLength))
}

func (h *headerAccs) insertInto(cols *column.Set) {
	cols.Set(headerColumnNames[0], column.Column{Kind: column.Uint, Uint: h.version})
	cols.Set(headerColumnNames[1], column.Column{Kind: column.Uint, Uint: h.secFlag})
	cols.Set(headerColumnNames[2], column.Column{Kind: column.Uint, Uint: h.pktType})
	cols.Set(headerColumnNames[3], column.Column{Kind: column.Uint, Uint: h.apid})
	cols.Set(headerColumnNames[4], column.Column{Kind: column.Uint, Uint: h.seqFlag})
	cols.Set(headerColumnNames[5], column.Column{Kind: column.Uint, Uint: h.seqCount})
	cols.Set(headerColumnNames[6], column.Column{Kind: column.Uint, Uint: h.pktLen})
}
