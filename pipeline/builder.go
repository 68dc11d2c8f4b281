// Package pipeline runs a configuration through every stage, from YAML
// documents to the files on disk.
package pipeline

import (
	"os"

	"github.com/go-logr/logr"

	"github.com/sarchlab/radflow/bootstrap"
	"github.com/sarchlab/radflow/datarecording"
	"github.com/sarchlab/radflow/observability"
)

var getwd = os.Getwd // wrapped for testability

// Builder can be used to build a compiler.
type Builder struct {
	root      string
	log       logr.Logger
	metrics   *observability.RunMetrics
	manifest  *datarecording.ManifestWriter
	runner    bootstrap.CommandRunner
	buildType string
	skipBuild bool
	instances int
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		log:       logr.Discard(),
		buildType: bootstrap.DefaultBuildType,
	}
}

// WithRoot sets the simulator root directory.
func (b Builder) WithRoot(root string) Builder {
	b.root = root
	return b
}

// WithLogger sets the logger of every stage.
func (b Builder) WithLogger(log logr.Logger) Builder {
	b.log = log
	return b
}

// WithMetrics sets where run metrics are counted.
func (b Builder) WithMetrics(m *observability.RunMetrics) Builder {
	b.metrics = m
	return b
}

// WithManifest records every run into the given manifest.
func (b Builder) WithManifest(w *datarecording.ManifestWriter) Builder {
	b.manifest = w
	return b
}

// WithCommandRunner sets how the build bootstrap runs cmake.
func (b Builder) WithCommandRunner(r bootstrap.CommandRunner) Builder {
	b.runner = r
	return b
}

// WithBuildType sets the CMake build type.
func (b Builder) WithBuildType(t string) Builder {
	b.buildType = t
	return b
}

// WithoutBuild skips the build bootstrap.
func (b Builder) WithoutBuild() Builder {
	b.skipBuild = true
	return b
}

// WithRequestedInstances sets the number of config blocks the documents
// must declare. Zero counts the blocks of the documents.
func (b Builder) WithRequestedInstances(n int) Builder {
	b.instances = n
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.instances < 0 {
		panic("requested instance count cannot be negative")
	}
}

// Build builds the compiler.
func (b Builder) Build() *Compiler {
	b.parametersMustBeValid()

	c := &Compiler{
		root:      b.root,
		log:       b.log,
		metrics:   b.metrics,
		manifest:  b.manifest,
		runner:    b.runner,
		buildType: b.buildType,
		skipBuild: b.skipBuild,
		requested: b.instances,
	}

	if c.root == "" {
		wd, err := getwd()
		if err != nil {
			c.log.Error(err, "cannot determine the working directory, using \".\"")
			wd = "."
		}
		c.root = wd
	}

	if c.runner == nil {
		c.runner = bootstrap.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}

	return c
}
