package emit

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Knob table", func() {
	It("should flatten the knobs of a single RAD", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, mesh4x4)

		a := RenderKnobTable(m, d)

		Expect(a.Kind).To(Equal(KnobTable))
		Expect(a.Path).To(Equal("/rad-sim/sim/radsim_knobs"))
		Expect(string(a.Data)).To(Equal(strings.Join([]string{
			"design_name 0 mlp",
			"noc_num_nocs 0 1",
			"noc_clk_period 0 0.571 ",
			"noc_vcs 0 6 ",
			"noc_payload_width 0 146 ",
			"noc_num_nodes 0 16 ",
			"design_noc_placement 0 noc.place ",
			"noc_adapters_clk_period 0 1.25 ",
			"noc_adapters_fifo_size 0 16 ",
			"noc_adapters_obuff_size 0 2 ",
			"noc_adapters_in_arbiter 0 fixed_rr ",
			"noc_adapters_out_arbiter 0 priority_rr ",
			"noc_adapters_vc_mapping 0 direct ",
			"design_clk_periods 0 5.0 ",
			"dram_num_controllers 0 0",
			"dram_clk_periods 0 2.0 ",
			"dram_queue_sizes 0 64 ",
			"dram_config_files 0 HBM2_8Gb_x128 ",
			"radsim_user_design_root_dir 0 /rad-sim/example-designs/mlp",
			"radsim_root_dir /rad-sim",
			"sim_driver_period 5.0",
			"telemetry_log_verbosity 0",
			"telemetry_traces trace0 trace1 ",
			"num_rads 1",
			"cluster_configs ",
			"cluster_topology all-to-all",
			"inter_rad_latency_cycles 1",
			"inter_rad_bw_accept_cycles 1",
			"inter_rad_bw_total_cycles 4",
			"inter_rad_fifo_num_slots 1000",
			"",
		}, "\n")))
	})

	It("should key knobs by slot and read them from the assigned instance", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, `
config a:
    design:
        name: mlp
    noc:
        vcs: [6]
config b:
    design:
        name: mlp
    noc:
        vcs: [6]
        dim_x: [2]
        dim_y: [2]
cluster:
    num_rads: 2
    cluster_configs: ['b', 'a']
`)

		text := string(RenderKnobTable(m, d).Data)

		Expect(text).To(ContainSubstring("noc_num_nodes 0 4 \n"))
		Expect(text).To(ContainSubstring("noc_num_nodes 1 64 \n"))
		Expect(text).To(ContainSubstring("cluster_configs b a \n"))
	})
})
