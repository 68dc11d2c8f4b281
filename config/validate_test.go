package config

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/radflow/validation"
)

var _ = Describe("Validate", func() {
	It("should fail when the block count does not match the request", func() {
		m, stats, err := walk(2, parse("config.yml", "mlp",
			"config a:\n    design:\n        name: mlp\n"))
		Expect(err).NotTo(HaveOccurred())

		err = Validate(m, stats.Declared, 2)

		Expect(validation.IsKind(err, validation.Cardinality)).To(BeTrue())
		Expect(validation.ExitCode(err)).To(Equal(-1))
	})

	It("should default the slots to the declared order", func() {
		m, stats, err := walk(2, parse("config.yml", "mlp", `
config a:
    design:
        name: mlp
config b:
    design:
        name: mlp
cluster:
    num_rads: 2
`))
		Expect(err).NotTo(HaveOccurred())

		Expect(Validate(m, stats.Declared, 2)).To(Succeed())
		Expect(m.Slots).To(Equal([]int{0, 1}))
	})

	It("should map named slots, allowing repeats", func() {
		m, stats, err := walk(2, parse("config.yml", "mlp", `
config a:
    design:
        name: mlp
config b:
    design:
        name: mlp
cluster:
    num_rads: 3
    cluster_configs: ['b', 'a', 'b']
`))
		Expect(err).NotTo(HaveOccurred())

		Expect(Validate(m, stats.Declared, 2)).To(Succeed())
		Expect(m.Slots).To(Equal([]int{1, 0, 1}))
		Expect(m.ReferencedInstances()).To(HaveLen(2))
		Expect(m.SlotInstance(0).Name).To(Equal("b"))
	})

	It("should reject unknown instance references", func() {
		m, stats, err := walk(1, parse("config.yml", "mlp", `
config a:
    design:
        name: mlp
cluster:
    cluster_configs: ['rad9']
`))
		Expect(err).NotTo(HaveOccurred())

		err = Validate(m, stats.Declared, 1)

		Expect(validation.IsKind(err, validation.InstanceReference)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("rad9")))
		Expect(validation.ExitCode(err)).To(Equal(1))
	})

	It("should reject a RAD count that disagrees with the slots", func() {
		m, stats, err := walk(1, parse("config.yml", "mlp", `
config a:
    design:
        name: mlp
cluster:
    num_rads: 2
`))
		Expect(err).NotTo(HaveOccurred())

		err = Validate(m, stats.Declared, 1)

		Expect(err).To(MatchError(ContainSubstring("num_rads")))
	})

	It("should reject designs that were not requested", func() {
		m, stats, err := walk(1, parse("config.yml", "mlp", `
config a:
    design:
        name: dlrm
`))
		Expect(err).NotTo(HaveOccurred())

		err = Validate(m, stats.Declared, 1)

		Expect(validation.IsKind(err, validation.Design)).To(BeTrue())
	})

	It("should derive every instance's working directory", func() {
		m, stats, err := walk(1, parse("config.yml", "mlp", `
config a:
    design:
        name: mlp
`))
		Expect(err).NotTo(HaveOccurred())

		Expect(Validate(m, stats.Declared, 1)).To(Succeed())
		Expect(m.Instances[0].Knobs.WorkDir()).To(Equal("/rad-sim/example-designs/mlp"))
	})
})
