package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/sarchlab/radflow/bootstrap"
	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/datarecording"
	"github.com/sarchlab/radflow/derive"
	"github.com/sarchlab/radflow/emit"
	"github.com/sarchlab/radflow/observability"
	"github.com/sarchlab/radflow/params"
	"github.com/sarchlab/radflow/validation"
)

// Compiler turns configuration documents into the simulator inputs.
type Compiler struct {
	root      string
	log       logr.Logger
	metrics   *observability.RunMetrics
	manifest  *datarecording.ManifestWriter
	runner    bootstrap.CommandRunner
	buildType string
	skipBuild bool
	requested int
}

// Plan is the result of a successful compilation, not yet written.
type Plan struct {
	Model     *config.Model
	Derived   *derive.Derived
	Artifacts []emit.Artifact
	Stats     config.WalkStats
}

// Root returns the simulator root directory.
func (c *Compiler) Root() string { return c.root }

// DesignDir is the directory of a design under the simulator root.
func (c *Compiler) DesignDir(design string) string {
	return filepath.Join(c.root, "example-designs", design)
}

// DefaultConfigPath is where a design's configuration is read from when no
// path is given.
func (c *Compiler) DefaultConfigPath(design string) string {
	return filepath.Join(c.DesignDir(design), "config.yml")
}

// Designs removes repeated design names, keeping the first occurrence.
func Designs(names []string) []string {
	var out []string
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Load checks that every design exists and reads the configuration
// documents. Without explicit paths, one document per design is read from
// its design directory.
func (c *Compiler) Load(designs, paths []string) ([]*config.Document, error) {
	var errs error
	for _, d := range designs {
		info, err := os.Stat(c.DesignDir(d))
		if err != nil || !info.IsDir() {
			errs = multierr.Append(errs, validation.Errorf(validation.Design, d,
				"cannot find design directory under %s",
				filepath.Join(c.root, "example-designs")))
		}
	}
	if errs != nil {
		return nil, errs
	}

	var docs []*config.Document
	if len(paths) == 0 {
		for _, d := range designs {
			doc, err := config.LoadDocument(c.DefaultConfigPath(d), d)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}

	// With one path per design the documents pair up with the designs,
	// otherwise they all default to the first design.
	for i, p := range paths {
		design := ""
		switch {
		case len(paths) == len(designs):
			design = designs[i]
		case len(designs) > 0:
			design = designs[0]
		}

		doc, err := config.LoadDocument(p, design)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Compile runs every stage in memory. Nothing is written, so a failing
// configuration leaves the simulator tree untouched.
func (c *Compiler) Compile(
	ctx context.Context,
	designs []string,
	docs []*config.Document,
) (plan *Plan, err error) {
	ctx, span := c.start(ctx, "compile")
	defer func() { c.end(span, err) }()

	requested := c.requested
	if requested == 0 {
		for _, d := range docs {
			requested += d.InstanceCount()
		}
	}
	c.log.Info("compiling", "designs", strings.Join(designs, " "),
		"documents", len(docs), "instances", requested)

	m := config.NewModel(params.NewSchema(c.root), designs, requested)
	plan = &Plan{Model: m}

	err = c.stage(ctx, "walk", func() error {
		plan.Stats, err = config.Walk(m, docs, c.log)
		return err
	})
	if err != nil {
		return nil, c.fail(err)
	}
	c.countRouted(plan.Stats)

	err = c.stage(ctx, "validate", func() error {
		return config.Validate(m, plan.Stats.Declared, requested)
	})
	if err != nil {
		return nil, c.fail(err)
	}
	config.Dump(m, c.log)

	err = c.stage(ctx, "derive", func() error {
		plan.Derived, err = derive.Derive(m)
		return err
	})
	if err != nil {
		return nil, c.fail(err)
	}
	for _, w := range plan.Derived.Warnings {
		c.log.Info("warning: "+w.String(), "param", w.Param)
		if c.metrics != nil {
			c.metrics.Warnings.Inc()
		}
	}

	err = c.stage(ctx, "render", func() error {
		plan.Artifacts, err = emit.Render(m, plan.Derived)
		return err
	})
	if err != nil {
		return nil, c.fail(err)
	}

	if c.metrics != nil {
		c.metrics.Instances.Set(float64(len(m.Instances)))
		c.metrics.Slots.Set(float64(len(m.Slots)))
	}

	return plan, nil
}

// Apply writes the artifacts of a plan, records them and prepares the
// build directory.
func (c *Compiler) Apply(ctx context.Context, plan *Plan) (err error) {
	ctx, span := c.start(ctx, "apply")
	defer func() { c.end(span, err) }()

	err = c.stage(ctx, "write", func() error {
		return emit.WriteAll(plan.Artifacts, c.log)
	})
	if err != nil {
		return err
	}

	if c.metrics != nil {
		for _, a := range plan.Artifacts {
			c.metrics.Artifacts.WithLabelValues(string(a.Kind)).Inc()
			c.metrics.ArtifactBytes.WithLabelValues(string(a.Kind)).Add(float64(len(a.Data)))
		}
	}

	if c.manifest != nil {
		err = c.stage(ctx, "record", func() error {
			return c.record(plan)
		})
		if err != nil {
			return err
		}
	}

	if c.skipBuild {
		c.log.Info("skipping build bootstrap")
		return nil
	}

	return c.stage(ctx, "bootstrap", func() error {
		return bootstrap.Prepare(c.root, plan.Model.Designs, c.buildType, c.runner, c.log)
	})
}

// Run loads, compiles and applies in one go.
func (c *Compiler) Run(ctx context.Context, designs, paths []string) error {
	designs = Designs(designs)

	docs, err := c.Load(designs, paths)
	if err != nil {
		return c.fail(err)
	}

	plan, err := c.Compile(ctx, designs, docs)
	if err != nil {
		return err
	}

	if err := c.Apply(ctx, plan); err != nil {
		return c.fail(err)
	}

	c.log.Info("RAD-Sim was configured successfully")
	return nil
}

func (c *Compiler) record(plan *Plan) error {
	m := plan.Model
	w := c.manifest

	if err := w.Run(c.root, m.Designs, len(m.Instances)); err != nil {
		return err
	}

	shared := []*params.Table{m.Header.Table, m.Cluster.Table}
	for _, t := range shared {
		if err := recordTable(w, t, datarecording.SharedInstance); err != nil {
			return err
		}
	}
	for _, inst := range m.Instances {
		for _, t := range []*params.Table{inst.Topology.Table, inst.Knobs.Table} {
			if err := recordTable(w, t, inst.Ordinal); err != nil {
				return err
			}
		}
	}

	for _, a := range plan.Artifacts {
		if err := w.Artifact(string(a.Kind), a.Path, len(a.Data)); err != nil {
			return err
		}
	}

	return w.Flush()
}

func recordTable(w *datarecording.ManifestWriter, t *params.Table, instance int) error {
	ns := string(t.Catalog().Namespace())
	for _, name := range t.Names() {
		for _, v := range t.Render(name) {
			if err := w.Parameter(ns, instance, name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Compiler) countRouted(stats config.WalkStats) {
	if c.metrics == nil {
		return
	}
	for ns, n := range stats.Routed {
		c.metrics.ParametersRouted.WithLabelValues(string(ns)).Add(float64(n))
	}
}

// fail logs every diagnostic of err and counts it by kind.
func (c *Compiler) fail(err error) error {
	for _, e := range multierr.Errors(err) {
		kind := "other"
		var ve *validation.Error
		if errors.As(e, &ve) {
			kind = ve.Kind.String()
		}
		if c.metrics != nil {
			c.metrics.Errors.WithLabelValues(kind).Inc()
		}
		c.log.Error(e, "configuration error")
	}
	return err
}

func (c *Compiler) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(observability.TracerName).Start(ctx, name,
		trace.WithAttributes(attribute.String("radflow.root", c.root)))
}

func (c *Compiler) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Compiler) stage(ctx context.Context, name string, fn func() error) error {
	_, span := c.start(ctx, name)
	err := fn()
	c.end(span, err)
	if err == nil {
		c.log.V(1).Info("stage done", "stage", name)
	}
	return err
}
