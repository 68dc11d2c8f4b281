package params

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/radflow/validation"
)

var _ = Describe("Table", func() {
	var t *Table

	BeforeEach(func() {
		t = NewSchema("/r").Catalog(Knobs).NewTable()
	})

	It("should start from the defaults", func() {
		Expect(t.Int("noc_num_nocs")).To(Equal(1))
		Expect(t.Render("noc_clk_period")).To(Equal([]string{"0.571"}))
		Expect(t.Render("design_clk_periods")).To(Equal([]string{"5.0"}))
	})

	It("should store a valid list", func() {
		Expect(t.Set("noc_payload_width", []any{100, 200})).To(Succeed())
		Expect(t.Ints("noc_payload_width")).To(Equal([]int{100, 200}))
	})

	It("should accept ints for float fields and keep them as written", func() {
		Expect(t.Set("design_clk_periods", []any{5, 2.5})).To(Succeed())
		Expect(t.Render("design_clk_periods")).To(Equal([]string{"5", "2.5"}))
	})

	It("should reject a scalar where a list is expected", func() {
		err := t.Set("noc_vcs", 4)
		Expect(validation.IsKind(err, validation.InvalidValue)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("noc_vcs")))
	})

	It("should reject wrong element kinds", func() {
		err := t.Set("noc_vcs", []any{"four"})
		Expect(err).To(MatchError(ContainSubstring("expects an int")))
	})

	It("should enforce constraints", func() {
		err := t.Set("noc_adapters_fifo_size", []any{0})
		Expect(err).To(MatchError(ContainSubstring("must be positive")))
	})

	It("should refuse to set derived fields from documents", func() {
		err := t.Set(DerivedWorkDir, "/x")
		Expect(validation.IsKind(err, validation.UnknownParameter)).To(BeTrue())
		Expect(t.SetDerived(DerivedWorkDir, "/x")).To(Succeed())
		Expect(t.Text(DerivedWorkDir)).To(Equal("/x"))
	})

	It("should report short per-network lists as topology errors", func() {
		_, err := t.IntAt("noc_vcs", 1)
		Expect(validation.IsKind(err, validation.Topology)).To(BeTrue())
	})
})

var _ = DescribeTable("FormatValue",
	func(v any, want string) {
		Expect(FormatValue(v)).To(Equal(want))
	},
	Entry("int", 8, "8"),
	Entry("integral float", 5.0, "5.0"),
	Entry("fraction", 0.571, "0.571"),
	Entry("tiny float", 0.00001, "1e-05"),
	Entry("string", "mesh", "mesh"),
)
