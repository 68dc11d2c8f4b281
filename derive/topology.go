package derive

import (
	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/validation"
)

// Concentration is the number of nodes per router of a 3D RAD, modelled as
// a concentrated mesh of the FPGA node, the base die node and two empty
// nodes.
const Concentration = 4

// Shape is the BookSim rendering of one network.
type Shape struct {
	Topology string
	Radix    int
	Nodes    int

	// Concentrated marks a 3D mesh emitted as a cmesh.
	Concentrated bool
}

// NodeCount works out the BookSim shape of a network. anynetNodes is the
// user supplied node count, only read for anynet networks.
func NodeCount(n config.NetworkSpec, anynetNodes int) (Shape, error) {
	switch n.Topology {
	case "mesh", "torus":
		side := n.DimX
		if n.DimY > side {
			side = n.DimY
		}

		switch {
		case n.Type == "2d":
			return Shape{Topology: n.Topology, Radix: side, Nodes: side * side}, nil
		case n.Type == "3d" && n.Topology == "mesh":
			return Shape{
				Topology:     "cmesh",
				Radix:        side,
				Nodes:        side * side * Concentration,
				Concentrated: true,
			}, nil
		default:
			return Shape{}, validation.Errorf(validation.Topology, "noc_type",
				"network %d: %s %s is not supported, noc_type has to be 2d or 3d mesh",
				n.ID, n.Type, n.Topology)
		}

	case "anynet":
		if anynetNodes == 0 {
			return Shape{}, validation.Errorf(validation.Topology, "noc_num_nodes",
				"network %d: anynet topologies need the number of nodes", n.ID)
		}
		return Shape{Topology: "anynet", Nodes: anynetNodes}, nil

	default:
		return Shape{}, validation.Errorf(validation.Topology, "noc_topology",
			"network %d: unsupported topology %q", n.ID, n.Topology)
	}
}
