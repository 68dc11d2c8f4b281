package pipeline

import (
	"errors"
	"strings"

	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	var original func() (string, error)

	BeforeEach(func() {
		original = getwd
		DeferCleanup(func() { getwd = original })
	})

	It("should default the root to the working directory", func() {
		getwd = func() (string, error) { return "/work/rad-sim", nil }

		c := MakeBuilder().Build()

		Expect(c.Root()).To(Equal("/work/rad-sim"))
	})

	It("should log a working directory failure", func() {
		getwd = func() (string, error) { return "", errors.New("getwd: no such file or directory") }

		var logged []string
		log := funcr.New(func(prefix, args string) {
			logged = append(logged, args)
		}, funcr.Options{})

		c := MakeBuilder().WithLogger(log).Build()

		Expect(c.Root()).To(Equal("."))
		Expect(strings.Join(logged, "\n")).To(ContainSubstring("cannot determine the working directory"))
	})

	It("should keep an explicit root", func() {
		getwd = func() (string, error) { return "", errors.New("unused") }

		Expect(MakeBuilder().WithRoot("/rad-sim").Build().Root()).To(Equal("/rad-sim"))
	})
})
