package params

import (
	"fmt"
	"path/filepath"
)

// Namespace names a group of parameters consumed by one artifact.
type Namespace string

// The parameter namespaces.
const (
	// Topology parameters are read by the BookSim descriptor of each
	// instance.
	Topology Namespace = "topology"
	// Header parameters size the constants shared by every instance.
	Header Namespace = "header"
	// Knobs are the per-instance runtime knobs.
	Knobs Namespace = "knobs"
	// Cluster knobs are shared by the whole cluster.
	Cluster Namespace = "cluster"
)

// Namespaces lists every namespace in a fixed order.
var Namespaces = []Namespace{Topology, Header, Knobs, Cluster}

// DerivedWorkDir is the knob holding an instance's working directory.
const DerivedWorkDir = "radsim_user_design_root_dir"

// Catalog is the ordered set of fields recognised in one namespace.
type Catalog struct {
	ns     Namespace
	fields []Field
	index  map[string]int
}

func newCatalog(ns Namespace, fields ...Field) *Catalog {
	c := &Catalog{
		ns:     ns,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := c.index[f.Name]; dup {
			panic(fmt.Sprintf("field %s declared twice in %s", f.Name, ns))
		}
		c.index[f.Name] = i
	}
	return c
}

// Namespace returns the namespace the catalog describes.
func (c *Catalog) Namespace() Namespace { return c.ns }

// Fields returns the fields in declaration order.
func (c *Catalog) Fields() []Field { return c.fields }

// Field looks up a field by name.
func (c *Catalog) Field(name string) (Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Settable reports whether a document may set the named field.
func (c *Catalog) Settable(name string) bool {
	f, ok := c.Field(name)
	return ok && !f.Derived
}

// NewTable creates a table holding the defaults of every field.
func (c *Catalog) NewTable() *Table {
	t := &Table{cat: c, values: make([]any, len(c.fields))}
	for i, f := range c.fields {
		t.values[i] = cloneValue(f.Default)
	}
	return t
}

// Schema is the full parameter registry for one simulator root.
type Schema struct {
	catalogs map[Namespace]*Catalog
	routes   map[string]Targets
}

// NewSchema builds the registry. Defaults that are paths are placed under
// root, the simulator root directory.
func NewSchema(root string) *Schema {
	s := &Schema{
		catalogs: map[Namespace]*Catalog{
			Topology: topologyCatalog(root),
			Header:   headerCatalog(root),
			Knobs:    knobsCatalog(),
			Cluster:  clusterCatalog(root),
		},
		routes: make(map[string]Targets),
	}

	for _, ns := range []Namespace{Topology, Header, Knobs} {
		for _, f := range s.catalogs[ns].fields {
			if !f.Derived {
				s.routes[f.Name] |= targetOf(ns)
			}
		}
	}

	return s
}

// Catalog returns the catalog of a namespace.
func (s *Schema) Catalog(ns Namespace) *Catalog {
	c, ok := s.catalogs[ns]
	if !ok {
		panic(fmt.Sprintf("unknown namespace %q", ns))
	}
	return c
}

// Resolve returns the namespaces a parameter routes to when it appears in a
// section of the given scope. An empty result means the name is unknown.
func (s *Schema) Resolve(scope Scope, name string) Targets {
	if scope == ClusterScope {
		if s.catalogs[Cluster].Settable(name) {
			return targetOf(Cluster)
		}
		return 0
	}
	return s.routes[name]
}

func topologyCatalog(root string) *Catalog {
	return newCatalog(Topology,
		Field{Name: "radsim_root_dir", Kind: StringKind, Default: root},
		Field{Name: "noc_type", Kind: StringKind, Shape: List, Default: strs("2d")},
		Field{Name: "noc_num_nocs", Kind: IntKind, Constraint: Positive, Default: 1},
		Field{Name: "noc_topology", Kind: StringKind, Shape: List, Default: strs("mesh")},
		Field{Name: "noc_anynet_file", Kind: StringKind, Shape: List,
			Default: strs(filepath.Join(root, "sim", "noc", "anynet_file"))},
		Field{Name: "noc_dim_x", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(8)},
		Field{Name: "noc_dim_y", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(8)},
		Field{Name: "noc_routing_func", Kind: StringKind, Shape: List, Default: strs("dim_order")},
		Field{Name: "noc_vcs", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(5)},
		Field{Name: "noc_vc_buffer_size", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(8)},
		Field{Name: "noc_output_buffer_size", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(8)},
		Field{Name: "noc_num_packet_types", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(3)},
		Field{Name: "noc_router_uarch", Kind: StringKind, Shape: List, Default: strs("iq")},
		Field{Name: "noc_vc_allocator", Kind: StringKind, Shape: List, Default: strs("islip")},
		Field{Name: "noc_sw_allocator", Kind: StringKind, Shape: List, Default: strs("islip")},
		Field{Name: "noc_credit_delay", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(1)},
		Field{Name: "noc_routing_delay", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(1)},
		Field{Name: "noc_vc_alloc_delay", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(1)},
		Field{Name: "noc_sw_alloc_delay", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(1)},
	)
}

func headerCatalog(root string) *Catalog {
	return newCatalog(Header,
		Field{Name: "radsim_root_dir", Kind: StringKind, Default: root},
		Field{Name: "noc_payload_width", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(166)},
		Field{Name: "noc_packet_id_width", Kind: IntKind, Constraint: Positive, Default: 32},
		Field{Name: "noc_vcs", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(3)},
		Field{Name: "noc_num_packet_types", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(3)},
		Field{Name: "noc_num_nodes", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(0)},
		Field{Name: "noc_max_num_router_dest_interfaces", Kind: IntKind, Constraint: Positive, Default: 32},
		Field{Name: "interfaces_max_axis_tdata_width", Kind: IntKind, Constraint: Positive, Default: 512},
		Field{Name: "interfaces_axis_tkeep_width", Kind: IntKind, Constraint: NonNegative, Default: 8},
		Field{Name: "interfaces_axis_tstrb_width", Kind: IntKind, Constraint: NonNegative, Default: 8},
		Field{Name: "interfaces_axis_tuser_width", Kind: IntKind, Constraint: NonNegative, Default: 75},
		Field{Name: "interfaces_axi_id_width", Kind: IntKind, Constraint: NonNegative, Default: 8},
		Field{Name: "interfaces_axi_user_width", Kind: IntKind, Constraint: NonNegative, Default: 64},
		Field{Name: "interfaces_max_axi_data_width", Kind: IntKind, Constraint: Positive, Default: 512},
	)
}

func knobsCatalog() *Catalog {
	return newCatalog(Knobs,
		Field{Name: "design_name", Kind: StringKind, Default: ""},
		Field{Name: "noc_num_nocs", Kind: IntKind, Constraint: Positive, Default: 1},
		Field{Name: "noc_clk_period", Kind: FloatKind, Shape: List, Constraint: Positive, Default: floats(0.571)},
		Field{Name: "noc_vcs", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(3)},
		Field{Name: "noc_payload_width", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(146)},
		Field{Name: "noc_num_nodes", Kind: IntKind, Shape: List, Constraint: NonNegative, Default: ints(0)},
		Field{Name: "design_noc_placement", Kind: StringKind, Shape: List, Default: strs("noc.place")},
		Field{Name: "noc_adapters_clk_period", Kind: FloatKind, Shape: List, Constraint: Positive, Default: floats(1.25)},
		Field{Name: "noc_adapters_fifo_size", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(16)},
		Field{Name: "noc_adapters_obuff_size", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(2)},
		Field{Name: "noc_adapters_in_arbiter", Kind: StringKind, Shape: List, Default: strs("fixed_rr")},
		Field{Name: "noc_adapters_out_arbiter", Kind: StringKind, Shape: List, Default: strs("priority_rr")},
		Field{Name: "noc_adapters_vc_mapping", Kind: StringKind, Shape: List, Default: strs("direct")},
		Field{Name: "design_clk_periods", Kind: FloatKind, Shape: List, Constraint: Positive, Default: floats(5.0)},
		Field{Name: "dram_num_controllers", Kind: IntKind, Constraint: NonNegative, Default: 0},
		Field{Name: "dram_clk_periods", Kind: FloatKind, Shape: List, Constraint: Positive, Default: floats(2.0)},
		Field{Name: "dram_queue_sizes", Kind: IntKind, Shape: List, Constraint: Positive, Default: ints(64)},
		Field{Name: "dram_config_files", Kind: StringKind, Shape: List, Default: strs("HBM2_8Gb_x128")},
		Field{Name: DerivedWorkDir, Kind: StringKind, Default: "", Derived: true},
	)
}

func clusterCatalog(root string) *Catalog {
	return newCatalog(Cluster,
		Field{Name: "radsim_root_dir", Kind: StringKind, Default: root},
		Field{Name: "sim_driver_period", Kind: FloatKind, Constraint: Positive, Default: 5.0},
		Field{Name: "telemetry_log_verbosity", Kind: IntKind, Constraint: NonNegative, Default: 0},
		Field{Name: "telemetry_traces", Kind: StringKind, Shape: List, Default: strs("trace0", "trace1")},
		Field{Name: "num_rads", Kind: IntKind, Constraint: Positive, Default: 1},
		Field{Name: "cluster_configs", Kind: StringKind, Shape: List, Default: strs()},
		Field{Name: "cluster_topology", Kind: StringKind, Default: "all-to-all"},
		Field{Name: "inter_rad_latency", Kind: FloatKind, Constraint: NonNegative, Default: 5.0},
		Field{Name: "inter_rad_bw", Kind: FloatKind, Default: 25.6},
		Field{Name: "inter_rad_fifo_num_slots", Kind: IntKind, Constraint: Positive, Default: 1000},
	)
}

func ints(v ...int) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func floats(v ...float64) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}

func strs(v ...string) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}
