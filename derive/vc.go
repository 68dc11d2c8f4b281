package derive

import (
	"github.com/sarchlab/radflow/validation"
)

// PacketTypes are the BookSim flit types in the order their virtual
// channels are handed out.
var PacketTypes = []string{
	"read_request",
	"write_request",
	"write_data",
	"read_reply",
	"write_reply",
}

// VCRange is the inclusive range of virtual channels of one packet type.
type VCRange struct {
	Type       string
	Begin, End int
}

// VCRanges splits vcs virtual channels evenly across the first types packet
// types.
func VCRanges(vcs, types int) ([]VCRange, error) {
	if types < 1 || vcs%types != 0 {
		return nil, validation.Errorf(validation.Arithmetic, "noc_vcs",
			"%d virtual channels cannot be split across %d packet types", vcs, types)
	}
	if types > len(PacketTypes) {
		return nil, validation.Errorf(validation.Arithmetic, "noc_num_packet_types",
			"at most %d packet types are supported, got %d", len(PacketTypes), types)
	}

	per := vcs / types
	ranges := make([]VCRange, types)
	next := 0
	for t := range ranges {
		ranges[t] = VCRange{Type: PacketTypes[t], Begin: next, End: next + per - 1}
		next += per
	}

	return ranges, nil
}
