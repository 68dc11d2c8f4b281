package emit

import (
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	It("should render every kind in order", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, mesh4x4)

		arts, err := Render(m, d)

		Expect(err).NotTo(HaveOccurred())
		kinds := make([]Kind, len(arts))
		for i, a := range arts {
			kinds[i] = a.Kind
		}
		Expect(kinds).To(Equal(Kinds))
	})

	It("should be deterministic", func() {
		m, d := compile("/rad-sim", []string{"mlp"}, mesh4x4)
		first, err := Render(m, d)
		Expect(err).NotTo(HaveOccurred())

		m, d = compile("/rad-sim", []string{"mlp"}, mesh4x4)
		second, err := Render(m, d)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	It("should write the artifacts under the root", func() {
		root := GinkgoT().TempDir()
		m, d := compile(root, []string{"mlp"}, mesh4x4)
		arts, err := Render(m, d)
		Expect(err).NotTo(HaveOccurred())

		Expect(WriteAll(arts, logr.Discard())).To(Succeed())

		data, err := os.ReadFile(filepath.Join(root, "sim", "noc", "noc0_rad0_config"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix("// Topology\ntopology = mesh;\n"))
		Expect(find(arts, filepath.Join(root, "sim", "main.cpp")).Kind).To(Equal(EntryPoint))
	})
})
