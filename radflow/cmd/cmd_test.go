package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/radflow/validation"
)

const mlpConfig = `
config rad1:
    design:
        name: 'mlp'
    noc:
        dim_x: [4]
        dim_y: [4]
        vcs: [5]
        num_packet_types: [5]
        payload_width: [82]
        clk_period: [1.0]
cluster:
    num_rads: 1
    cluster_configs: ['rad1']
`

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func simRoot(config string) string {
	root := GinkgoT().TempDir()
	dir := filepath.Join(root, "example-designs", "mlp")
	Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, "config.yml"), []byte(config), 0o644)).To(Succeed())
	return root
}

func clearEnv(names ...string) {
	for _, n := range names {
		old, had := os.LookupEnv(n)
		Expect(os.Unsetenv(n)).To(Succeed())
		DeferCleanup(func() {
			if had {
				os.Setenv(n, old)
			} else {
				os.Unsetenv(n)
			}
		})
	}
}

var _ = Describe("configure", func() {
	BeforeEach(func() {
		clearEnv(EnvRoot, EnvBuildType, EnvVerbosity)
	})

	It("should require a design", func() {
		_, _, err := run("configure")
		Expect(err).To(HaveOccurred())
	})

	It("should write every artifact", func() {
		root := simRoot(mlpConfig)

		_, _, err := run("configure", "mlp", "--root", root, "--skip-build")

		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Join(root, "sim", "radsim_defines.hpp")).To(BeAnExistingFile())
		Expect(filepath.Join(root, "sim", "radsim_knobs")).To(BeAnExistingFile())
		Expect(filepath.Join(root, "sim", "main.cpp")).To(BeAnExistingFile())
		Expect(filepath.Join(root, "sim", "build")).NotTo(BeADirectory())
	})

	It("should map a block-count mismatch to exit status -1", func() {
		root := simRoot(mlpConfig)

		_, _, err := run("configure", "mlp", "--root", root, "--skip-build",
			"--instances", "2")

		Expect(err).To(HaveOccurred())
		Expect(validation.ExitCode(err)).To(Equal(-1))
	})

	It("should print each configuration error once", func() {
		root := simRoot(mlpConfig + "    noc_bogus: 1\n")

		_, errOut, err := run("configure", "mlp", "--root", root, "--skip-build")

		Expect(err).To(HaveOccurred())
		Expect(strings.Count(errOut, "noc_bogus")).To(Equal(1))
		Expect(errOut).NotTo(ContainSubstring("Error:"))
		Expect(filepath.Join(root, "sim", "radsim_knobs")).NotTo(BeAnExistingFile())
	})

	It("should still print errors raised before compiling", func() {
		_, errOut, err := run("configure", "mlp", "--verbosity", "x")

		Expect(err).To(HaveOccurred())
		Expect(errOut).To(ContainSubstring("Error:"))
	})

	It("should take the root from the environment", func() {
		root := simRoot(mlpConfig)
		Expect(os.Setenv(EnvRoot, root)).To(Succeed())

		_, _, err := run("configure", "mlp", "--skip-build")

		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Join(root, "sim", "radsim_knobs")).To(BeAnExistingFile())
	})

	It("should read the environment file of the root", func() {
		root := simRoot(mlpConfig)
		Expect(os.WriteFile(filepath.Join(root, EnvFile),
			[]byte("RADFLOW_VERBOSITY=1\nRADFLOW_BUILD_TYPE=Release\n"), 0o644)).To(Succeed())

		opts := &configureOptions{}
		cmd := newConfigureCmd()
		Expect(cmd.ParseFlags([]string{"--root", root})).To(Succeed())
		opts.root = root
		opts.buildType = "Debug"

		Expect(opts.resolve(cmd)).To(Succeed())
		Expect(opts.verbosity).To(Equal(1))
		Expect(opts.buildType).To(Equal("Release"))
	})

	It("should let flags win over the environment", func() {
		Expect(os.Setenv(EnvBuildType, "Release")).To(Succeed())

		opts := &configureOptions{}
		cmd := newConfigureCmd()
		Expect(cmd.ParseFlags([]string{"--build-type", "RelWithDebInfo"})).To(Succeed())
		opts.root = GinkgoT().TempDir()
		opts.buildType = "RelWithDebInfo"

		Expect(opts.resolve(cmd)).To(Succeed())
		Expect(opts.buildType).To(Equal("RelWithDebInfo"))
	})

	It("should write metrics, traces and a manifest", func() {
		root := simRoot(mlpConfig)
		out := GinkgoT().TempDir()
		metrics := filepath.Join(out, "radflow.prom")
		traces := filepath.Join(out, "traces.json")
		db := filepath.Join(out, "runs.sqlite3")

		_, _, err := run("configure", "mlp", "--root", root, "--skip-build",
			"--metrics-file", metrics, "--trace-file", traces, "--record", db)
		Expect(err).NotTo(HaveOccurred())

		prom, err := os.ReadFile(metrics)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(prom)).To(ContainSubstring("radflow_artifacts_written_total"))

		trace, err := os.ReadFile(traces)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(trace)).To(ContainSubstring(`"Name": "walk"`))

		listing, _, err := run("manifest", db)
		Expect(err).NotTo(HaveOccurred())
		Expect(listing).To(ContainSubstring("run "))
		Expect(listing).To(ContainSubstring(filepath.Join(root, "sim", "radsim_knobs")))
		Expect(listing).To(MatchRegexp(`topology\s+0\s+noc_dim_x`))

		runs, _, err := run("manifest", db, "--runs-only")
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).NotTo(ContainSubstring("noc_dim_x"))
	})
})

var _ = Describe("params", func() {
	It("should list every namespace", func() {
		out, _, err := run("params")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("topology:"))
		Expect(out).To(ContainSubstring("cluster:"))
		Expect(out).To(MatchRegexp(`noc_vcs\s+int\s+list\s+\[5\]`))
	})

	It("should list one namespace", func() {
		out, _, err := run("params", "knobs")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix("knobs:"))
		Expect(out).NotTo(ContainSubstring("topology:"))
		Expect(out).To(MatchRegexp(`radsim_user_design_root_dir\s+string\s+scalar\s+\(derived\)`))
	})

	It("should reject an unknown namespace", func() {
		_, errOut, err := run("params", "noc")
		Expect(err).To(MatchError(ContainSubstring("unknown namespace")))
		Expect(errOut).To(ContainSubstring("Error: unknown namespace"))
	})
})

var _ = Describe("manifest", func() {
	It("should fail on a missing file", func() {
		_, _, err := run("manifest", filepath.Join(GinkgoT().TempDir(), "none.sqlite3"))
		Expect(err).To(HaveOccurred())
	})
})
