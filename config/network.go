package config

import (
	"github.com/sarchlab/radflow/params"
)

// NetworkSpec gathers the parameters of one NoC of an instance.
type NetworkSpec struct {
	ID         int
	Topology   string
	Type       string
	AnynetFile string
	DimX, DimY int

	RoutingFunc      string
	VCs              int
	VCBufferSize     int
	OutputBufferSize int
	NumPacketTypes   int

	RouterUarch string
	VCAllocator string
	SWAllocator string

	CreditDelay  int
	RoutingDelay int
	VCAllocDelay int
	SWAllocDelay int
}

// TopologyParams holds the BookSim-facing parameters of one instance. Every
// per-network field is a list indexed by network id.
type TopologyParams struct {
	*params.Table
}

// RootDir is where the instance's BookSim descriptors are written.
func (p TopologyParams) RootDir() string { return p.Text("radsim_root_dir") }

// NumNetworks is the number of NoCs in the instance.
func (p TopologyParams) NumNetworks() int { return p.Int("noc_num_nocs") }

// Network collects the parameters of network i.
func (p TopologyParams) Network(i int) (NetworkSpec, error) {
	n := NetworkSpec{ID: i}
	r := fieldReader{t: p.Table, i: i}

	r.str("noc_topology", &n.Topology)
	r.str("noc_type", &n.Type)
	r.str("noc_routing_func", &n.RoutingFunc)
	r.str("noc_router_uarch", &n.RouterUarch)
	r.str("noc_vc_allocator", &n.VCAllocator)
	r.str("noc_sw_allocator", &n.SWAllocator)
	r.num("noc_vcs", &n.VCs)
	r.num("noc_vc_buffer_size", &n.VCBufferSize)
	r.num("noc_output_buffer_size", &n.OutputBufferSize)
	r.num("noc_num_packet_types", &n.NumPacketTypes)
	r.num("noc_credit_delay", &n.CreditDelay)
	r.num("noc_routing_delay", &n.RoutingDelay)
	r.num("noc_vc_alloc_delay", &n.VCAllocDelay)
	r.num("noc_sw_alloc_delay", &n.SWAllocDelay)

	switch n.Topology {
	case "anynet":
		r.str("noc_anynet_file", &n.AnynetFile)
	default:
		r.num("noc_dim_x", &n.DimX)
		r.num("noc_dim_y", &n.DimY)
	}

	return n, r.err
}

// fieldReader reads element i of many list fields, keeping the first error.
type fieldReader struct {
	t   *params.Table
	i   int
	err error
}

func (r *fieldReader) str(name string, dst *string) {
	if r.err != nil {
		return
	}
	*dst, r.err = r.t.StringAt(name, r.i)
}

func (r *fieldReader) num(name string, dst *int) {
	if r.err != nil {
		return
	}
	*dst, r.err = r.t.IntAt(name, r.i)
}
