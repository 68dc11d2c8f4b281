// Package derive computes the values the simulator needs but the user does
// not write down: bit widths, node counts, virtual-channel ranges and the
// inter-RAD link timing.
package derive

import (
	"math/bits"

	"github.com/sarchlab/radflow/validation"
)

// BitWidth returns the number of bits needed to index m items. A single
// item still takes one bit.
func BitWidth(m int) (int, error) {
	if m < 1 {
		return 0, validation.Errorf(validation.Arithmetic, "",
			"cannot size a field for %d values", m)
	}
	if m == 1 {
		return 1, nil
	}
	return bits.Len(uint(m - 1)), nil
}

// DestinationWidths returns the width of one destination field and of the
// whole destination, which holds the RAD id, the remote node and the local
// node.
func DestinationWidths(maxNodes int) (field, total int, err error) {
	field, err = BitWidth(maxNodes)
	if err != nil {
		return 0, 0, err
	}
	return field, 3 * field, nil
}

// HeaderWidths are the link sub-widths shared by every instance.
type HeaderWidths struct {
	Payload       int
	VCID          int
	PacketID      int
	TypeID        int
	Dest          int
	DestField     int
	DestInterface int
}

// Link is the total NoC link width.
func (w HeaderWidths) Link() int {
	return w.Payload + w.VCID + w.PacketID + w.Dest + w.DestInterface
}
