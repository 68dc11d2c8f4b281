package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/radflow/bootstrap"
	"github.com/sarchlab/radflow/datarecording"
	"github.com/sarchlab/radflow/observability"
	"github.com/sarchlab/radflow/pipeline"
)

// EnvFile is read from the simulator root before flags are resolved.
const EnvFile = "radflow.env"

// Environment variables seeding the flags.
const (
	EnvRoot      = "RADFLOW_ROOT"
	EnvBuildType = "RADFLOW_BUILD_TYPE"
	EnvVerbosity = "RADFLOW_VERBOSITY"
)

type configureOptions struct {
	root        string
	configs     []string
	instances   int
	skipBuild   bool
	buildType   string
	record      string
	metricsFile string
	traceFile   string
	verbosity   int
}

func newConfigureCmd() *cobra.Command {
	opts := &configureOptions{}

	cmd := &cobra.Command{
		Use:   "configure <design> [design...]",
		Short: "Generate the RAD-Sim inputs of one or more designs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd); err != nil {
				return err
			}
			return opts.run(cmd, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.root, "root", "", "simulator root directory (default: current directory)")
	f.StringArrayVar(&opts.configs, "config", nil,
		"configuration file; repeatable (default: example-designs/<design>/config.yml)")
	f.IntVar(&opts.instances, "instances", 0,
		"number of config blocks the documents must declare (default: counted)")
	f.BoolVar(&opts.skipBuild, "skip-build", false, "do not prepare the build directory")
	f.StringVar(&opts.buildType, "build-type", bootstrap.DefaultBuildType, "CMake build type")
	f.StringVar(&opts.record, "record", "", "record the run into this SQLite manifest")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in the Prometheus text format")
	f.StringVar(&opts.traceFile, "trace-file", "", "write stage traces as JSON")
	f.IntVarP(&opts.verbosity, "verbosity", "v", 0, "log verbosity; 1 dumps the resolved configuration")

	return cmd
}

// resolve fills unset flags from the environment file and the process
// environment.
func (o *configureOptions) resolve(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if !flags.Changed("root") {
		o.root = os.Getenv(EnvRoot)
	}
	if o.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		o.root = wd
	}

	root, err := filepath.Abs(o.root)
	if err != nil {
		return err
	}
	o.root = root

	envFile := filepath.Join(o.root, EnvFile)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvBuildType); v != "" && !flags.Changed("build-type") {
		o.buildType = v
	}

	if v := os.Getenv(EnvVerbosity); v != "" && !flags.Changed("verbosity") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		o.verbosity = n
	}

	return nil
}

func (o *configureOptions) run(cmd *cobra.Command, designs []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := observability.NewLogger(cmd.ErrOrStderr(), o.verbosity)

	b := pipeline.MakeBuilder().
		WithRoot(o.root).
		WithLogger(log).
		WithBuildType(o.buildType).
		WithRequestedInstances(o.instances)

	if o.skipBuild {
		b = b.WithoutBuild()
	}

	if o.traceFile != "" {
		f, err := os.Create(o.traceFile)
		if err != nil {
			return err
		}
		defer f.Close()

		shutdown, err := observability.InitTracing(ctx, f, log)
		if err != nil {
			return err
		}
		defer observability.ShutdownWithTimeout(ctx, shutdown, log)
	}

	var metrics *observability.RunMetrics
	if o.metricsFile != "" {
		var err error
		metrics, err = observability.NewRunMetrics(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		b = b.WithMetrics(metrics)
	}

	if o.record != "" {
		rec, err := datarecording.New(o.record)
		if err != nil {
			return err
		}
		defer rec.Close()

		manifest, err := datarecording.NewManifestWriter(rec)
		if err != nil {
			return err
		}
		log.Info("recording run", "path", o.record, "run", manifest.RunID())
		b = b.WithManifest(manifest)
	}

	// The compiler logs every diagnostic it returns.
	cmd.SilenceErrors = true
	err := b.Build().Run(ctx, designs, o.configs)

	if metrics != nil {
		if werr := metrics.WriteTextfile(o.metricsFile); werr != nil {
			log.Error(werr, "cannot write metrics")
		}
	}

	return err
}
