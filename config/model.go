// Package config holds the in-memory model of a RAD cluster configuration
// and the passes that fill and validate it from YAML documents.
package config

import (
	"github.com/sarchlab/radflow/params"
	"github.com/sarchlab/radflow/validation"
)

// ClusterConfig holds the knobs shared by every instance of the cluster.
type ClusterConfig struct {
	*params.Table
}

// RootDir is the simulator root directory.
func (c ClusterConfig) RootDir() string { return c.Text("radsim_root_dir") }

// NumInstances is the number of RADs in the cluster.
func (c ClusterConfig) NumInstances() int { return c.Int("num_rads") }

// Assignments lists the config block name used by each cluster slot.
func (c ClusterConfig) Assignments() []string { return c.Strings("cluster_configs") }

// DriverPeriod is the simulation driver clock period in ns.
func (c ClusterConfig) DriverPeriod() float64 { return c.Float("sim_driver_period") }

// InterInstanceLatency is the inter-RAD latency target in ns.
func (c ClusterConfig) InterInstanceLatency() float64 { return c.Float("inter_rad_latency") }

// InterInstanceBandwidth is the inter-RAD bandwidth target in bits per ns.
func (c ClusterConfig) InterInstanceBandwidth() float64 { return c.Float("inter_rad_bw") }

// HeaderParams holds the parameters that size the shared constants header.
type HeaderParams struct {
	*params.Table
}

// RootDir is the simulator root the header and knob table are written to.
func (h HeaderParams) RootDir() string { return h.Text("radsim_root_dir") }

// RuntimeKnobs holds the knobs the simulator reads per instance.
type RuntimeKnobs struct {
	*params.Table
}

// DesignName is the design the instance runs.
func (k RuntimeKnobs) DesignName() string { return k.Text("design_name") }

// WorkDir is the derived working directory of the instance.
func (k RuntimeKnobs) WorkDir() string { return k.Text(params.DerivedWorkDir) }

// Instance is one declared config block.
type Instance struct {
	Ordinal int
	Name    string
	Pos     validation.Position

	Topology TopologyParams
	Knobs    RuntimeKnobs
}

// Model is the whole configuration of one compilation run. It is built once,
// filled by Walk, checked by Validate, and read by every later stage.
type Model struct {
	Schema    *params.Schema
	Cluster   ClusterConfig
	Header    HeaderParams
	Instances []*Instance

	// Slots maps each cluster slot, the RAD id, to an instance ordinal.
	Slots []int

	// Designs are the distinct design names requested by the caller, in
	// request order.
	Designs []string
}

// NewModel creates a model with n default instances.
func NewModel(schema *params.Schema, designs []string, n int) *Model {
	m := &Model{
		Schema:  schema,
		Cluster: ClusterConfig{schema.Catalog(params.Cluster).NewTable()},
		Header:  HeaderParams{schema.Catalog(params.Header).NewTable()},
		Designs: designs,
	}

	for i := 0; i < n; i++ {
		m.Instances = append(m.Instances, &Instance{
			Ordinal:  i,
			Topology: TopologyParams{schema.Catalog(params.Topology).NewTable()},
			Knobs:    RuntimeKnobs{schema.Catalog(params.Knobs).NewTable()},
		})
	}

	return m
}

// InstanceByName finds a declared instance.
func (m *Model) InstanceByName(name string) (*Instance, bool) {
	for _, inst := range m.Instances {
		if inst.Name == name {
			return inst, true
		}
	}
	return nil, false
}

// SlotInstance returns the instance assigned to a cluster slot.
func (m *Model) SlotInstance(slot int) *Instance {
	return m.Instances[m.Slots[slot]]
}

// ReferencedInstances returns every instance used by at least one slot,
// once, in order of first use.
func (m *Model) ReferencedInstances() []*Instance {
	seen := make(map[int]bool)
	var out []*Instance
	for _, ord := range m.Slots {
		if seen[ord] {
			continue
		}
		seen[ord] = true
		out = append(out, m.Instances[ord])
	}
	return out
}
