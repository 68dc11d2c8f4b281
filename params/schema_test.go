package params

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/radflow/validation"
)

var _ = Describe("Schema", func() {
	var s *Schema

	BeforeEach(func() {
		s = NewSchema("/rad-sim")
	})

	It("should place path defaults under the root", func() {
		topo := s.Catalog(Topology).NewTable()
		Expect(topo.Text("radsim_root_dir")).To(Equal("/rad-sim"))
		Expect(topo.Strings("noc_anynet_file")).To(
			Equal([]string{"/rad-sim/sim/noc/anynet_file"}))
		Expect(s.Catalog(Cluster).NewTable().Text("radsim_root_dir")).
			To(Equal("/rad-sim"))
	})

	It("should route a name to every namespace that declares it", func() {
		t := s.Resolve(InstanceScope, "noc_vcs")
		Expect(t.Namespaces()).To(Equal([]Namespace{Topology, Header, Knobs}))

		t = s.Resolve(BroadcastScope, "noc_dim_x")
		Expect(t.Namespaces()).To(Equal([]Namespace{Topology}))

		t = s.Resolve(InstanceScope, "interfaces_axi_id_width")
		Expect(t.Namespaces()).To(Equal([]Namespace{Header}))
	})

	It("should route cluster names only to the cluster namespace", func() {
		Expect(s.Resolve(ClusterScope, "num_rads").Namespaces()).
			To(Equal([]Namespace{Cluster}))
		Expect(s.Resolve(ClusterScope, "noc_vcs").Empty()).To(BeTrue())
		Expect(s.Resolve(InstanceScope, "num_rads").Empty()).To(BeTrue())
	})

	It("should not route derived fields", func() {
		Expect(s.Resolve(InstanceScope, DerivedWorkDir).Empty()).To(BeTrue())
	})

	It("should list every field exactly once per namespace", func() {
		for _, ns := range Namespaces {
			seen := map[string]bool{}
			for _, f := range s.Catalog(ns).Fields() {
				Expect(seen[f.Name]).To(BeFalse(), "%s.%s", ns, f.Name)
				seen[f.Name] = true
			}
		}
	})
})

var _ = Describe("ParseSection", func() {
	It("should classify flat sections", func() {
		sec, err := ParseSection("noc_adapters")
		Expect(err).NotTo(HaveOccurred())
		Expect(sec.Scope).To(Equal(BroadcastScope))

		sec, err = ParseSection("cluster")
		Expect(err).NotTo(HaveOccurred())
		Expect(sec.Scope).To(Equal(ClusterScope))
	})

	It("should extract the instance name", func() {
		sec, err := ParseSection("config rad1")
		Expect(err).NotTo(HaveOccurred())
		Expect(sec.Scope).To(Equal(InstanceScope))
		Expect(sec.Instance).To(Equal("rad1"))
	})

	It("should reject a bare instance marker", func() {
		_, err := ParseSection("config")
		Expect(validation.IsKind(err, validation.UnknownParameter)).To(BeTrue())
	})

	It("should reject unknown sections", func() {
		_, err := ParseSection("dram")
		Expect(err).To(MatchError(ContainSubstring("unknown section")))
	})
})
