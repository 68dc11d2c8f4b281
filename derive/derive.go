package derive

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/validation"
)

// Network is one NoC of an instance with everything derived for it.
type Network struct {
	Spec  config.NetworkSpec
	Shape Shape
	VCs   []VCRange
}

// Derived holds every computed value of a run.
type Derived struct {
	// Networks is indexed by instance ordinal, then by network id.
	Networks [][]Network

	Widths         HeaderWidths
	MaxVCs         int
	MaxPacketTypes int
	MaxNodes       int

	LatencyCycles int
	Bandwidth     CycleRatio

	Warnings []validation.Warning
}

// NodeCounts returns the node count of every network of an instance.
func (d *Derived) NodeCounts(ordinal int) []int {
	nets := d.Networks[ordinal]
	out := make([]int, len(nets))
	for i, n := range nets {
		out[i] = n.Shape.Nodes
	}
	return out
}

// Derive computes the derived values of a validated model. Every
// topology or arithmetic problem is reported.
func Derive(m *config.Model) (*Derived, error) {
	d := &Derived{Networks: make([][]Network, len(m.Instances))}

	var errs error
	for _, inst := range m.Instances {
		nets, err := deriveInstance(inst)
		errs = multierr.Append(errs, validation.Locate(err, inst.Pos))
		d.Networks[inst.Ordinal] = nets
	}
	if errs != nil {
		return nil, errs
	}

	if err := d.deriveHeader(m); err != nil {
		return nil, err
	}

	if err := d.deriveLink(m); err != nil {
		return nil, err
	}

	return d, nil
}

func deriveInstance(inst *config.Instance) ([]Network, error) {
	var (
		nets []Network
		errs error
	)

	for i := 0; i < inst.Topology.NumNetworks(); i++ {
		spec, err := inst.Topology.Network(i)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		anynetNodes := 0
		if spec.Topology == "anynet" {
			anynetNodes, err = inst.Knobs.IntAt("noc_num_nodes", i)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
		}

		shape, err := NodeCount(spec, anynetNodes)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		vcs, err := VCRanges(spec.VCs, spec.NumPacketTypes)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		nets = append(nets, Network{Spec: spec, Shape: shape, VCs: vcs})
	}

	return nets, errs
}

func (d *Derived) deriveHeader(m *config.Model) error {
	h := m.Header

	payload := maxOf(h.Ints("noc_payload_width"))
	d.MaxVCs = maxOf(h.Ints("noc_vcs"))
	d.MaxPacketTypes = maxOf(h.Ints("noc_num_packet_types"))
	d.MaxNodes = maxOf(h.Ints("noc_num_nodes"))

	for _, inst := range m.Instances {
		payload = max(payload, maxOf(inst.Knobs.Ints("noc_payload_width")))
		d.MaxVCs = max(d.MaxVCs,
			maxOf(inst.Topology.Ints("noc_vcs")),
			maxOf(inst.Knobs.Ints("noc_vcs")))
		d.MaxPacketTypes = max(d.MaxPacketTypes,
			maxOf(inst.Topology.Ints("noc_num_packet_types")))
		d.MaxNodes = max(d.MaxNodes, maxOf(d.NodeCounts(inst.Ordinal)))
	}

	w := HeaderWidths{
		Payload:  payload,
		PacketID: h.Int("noc_packet_id_width"),
	}

	var errs error
	widthOf := func(param string, count int, dst *int) {
		v, err := BitWidth(count)
		if err != nil {
			var ve *validation.Error
			if errors.As(err, &ve) {
				ve.Param = param
			}
			errs = multierr.Append(errs, err)
			return
		}
		*dst = v
	}

	widthOf("noc_vcs", d.MaxVCs, &w.VCID)
	widthOf("noc_num_packet_types", d.MaxPacketTypes, &w.TypeID)
	widthOf("noc_max_num_router_dest_interfaces",
		h.Int("noc_max_num_router_dest_interfaces"), &w.DestInterface)

	field, dest, err := DestinationWidths(d.MaxNodes)
	if err != nil {
		errs = multierr.Append(errs, validation.Errorf(validation.Arithmetic,
			"noc_num_nodes", "no network has any node"))
	}
	w.DestField, w.Dest = field, dest

	d.Widths = w
	return errs
}

func (d *Derived) deriveLink(m *config.Model) error {
	c := m.Cluster
	period := c.DriverPeriod()

	cycles, err := LatencyCycles(c.InterInstanceLatency(), period)
	if err != nil {
		return err
	}
	d.LatencyCycles = cycles

	ratio, warn := Bandwidth(c.InterInstanceBandwidth(), period,
		m.Header.Int("interfaces_max_axis_tdata_width"))
	d.Bandwidth = ratio
	if warn != nil {
		d.Warnings = append(d.Warnings, *warn)
	}

	return nil
}

func maxOf(v []int) int {
	m := 0
	for _, x := range v {
		m = max(m, x)
	}
	return m
}
