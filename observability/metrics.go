package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics counts what one configuration run did.
type RunMetrics struct {
	gatherer prometheus.Gatherer

	ParametersRouted *prometheus.CounterVec
	Artifacts        *prometheus.CounterVec
	ArtifactBytes    *prometheus.CounterVec
	Errors           *prometheus.CounterVec
	Warnings         prometheus.Counter
	Instances        prometheus.Gauge
	Slots            prometheus.Gauge
}

// NewRunMetrics registers the run metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewRunMetrics(reg prometheus.Registerer) (*RunMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	routed, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radflow_parameters_routed_total",
		Help: "Parameter values stored, labeled by namespace.",
	}, []string{"namespace"}), "radflow_parameters_routed_total")
	if err != nil {
		return nil, err
	}

	artifacts, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radflow_artifacts_written_total",
		Help: "Generated files written, labeled by kind.",
	}, []string{"kind"}), "radflow_artifacts_written_total")
	if err != nil {
		return nil, err
	}

	artifactBytes, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radflow_artifact_bytes_total",
		Help: "Bytes of generated files written, labeled by kind.",
	}, []string{"kind"}), "radflow_artifact_bytes_total")
	if err != nil {
		return nil, err
	}

	errs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radflow_errors_total",
		Help: "Configuration errors reported, labeled by kind.",
	}, []string{"kind"}), "radflow_errors_total")
	if err != nil {
		return nil, err
	}

	warnings, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "radflow_warnings_total",
		Help: "Recoverable derivation problems that fell back to a default.",
	}), "radflow_warnings_total")
	if err != nil {
		return nil, err
	}

	instances, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "radflow_instances",
		Help: "Number of declared RAD configuration blocks.",
	}), "radflow_instances")
	if err != nil {
		return nil, err
	}

	slots, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "radflow_cluster_slots",
		Help: "Number of RADs in the cluster.",
	}), "radflow_cluster_slots")
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		gatherer:         gatherer,
		ParametersRouted: routed,
		Artifacts:        artifacts,
		ArtifactBytes:    artifactBytes,
		Errors:           errs,
		Warnings:         warnings,
		Instances:        instances,
		Slots:            slots,
	}, nil
}

// WriteTextfile writes the gathered metrics in the Prometheus text format,
// for the node exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
