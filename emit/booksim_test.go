package emit

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const mesh4x4 = `
config rad1:
    design:
        name: mlp
    noc:
        dim_x: [4]
        dim_y: [4]
        vcs: [6]
`

var _ = Describe("BookSim descriptor", func() {
	It("should describe a 2d mesh", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, mesh4x4)

		arts, err := RenderBookSim(m, d)

		Expect(err).NotTo(HaveOccurred())
		Expect(arts).To(HaveLen(1))
		Expect(arts[0].Kind).To(Equal(BookSim))
		Expect(arts[0].Path).To(Equal("/rad-sim/sim/noc/noc0_rad0_config"))
		Expect(string(arts[0].Data)).To(Equal(`// Topology
topology = mesh;
k = 4;
n = 2;

// Routing
routing_function = dim_order;

// Flow control
num_vcs = 6;
vc_buf_size = 8;
output_buffer_size = 8;
read_request_begin_vc = 0;
read_request_end_vc = 1;
write_request_begin_vc = 2;
write_request_end_vc = 3;
write_data_begin_vc = 4;
write_data_end_vc = 5;

// Router architecture & delays
router = iq;
vc_allocator = islip;
sw_allocator = islip;
alloc_iters = 1;
wait_for_tail_credit = 0;
credit_delay = 1;
routing_delay = 1;
vc_alloc_delay = 1;
sw_alloc_delay = 1;
`))
	})

	It("should describe a 3d mesh as a concentrated mesh", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, `
config rad1:
    design:
        name: mlp
    noc:
        type: ['3d']
        dim_x: [4]
        dim_y: [2]
        vcs: [3]
`)

		arts, err := RenderBookSim(m, d)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(arts[0].Data)).To(HavePrefix(
			"// Topology\ntopology = cmesh;\nk = 4;\nn = 2;\nc = 4;\nxr = 2;\nyr = 2;\n\n// Routing\n"))
		Expect(d.NodeCounts(0)).To(Equal([]int{64}))
	})

	It("should point anynet networks at their network file", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, `
config rad1:
    design:
        name: mlp
    noc:
        topology: ['anynet']
        anynet_file: ['/nets/ring']
        num_nodes: [10]
        vcs: [3]
`)

		arts, err := RenderBookSim(m, d)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(arts[0].Data)).To(HavePrefix(
			"// Topology\ntopology = anynet;\nnetwork_file = /nets/ring;\n\n// Routing\n"))
	})

	It("should render an instance used by several slots once", func() {
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
cluster:
    num_rads: 3
    cluster_configs: ['b', 'b', 'b']
`)

		arts, err := RenderBookSim(m, d)

		Expect(err).NotTo(HaveOccurred())
		Expect(arts).To(HaveLen(1))
		Expect(arts[0].Path).To(Equal("/rad-sim/sim/noc/noc0_rad1_config"))
	})
})
