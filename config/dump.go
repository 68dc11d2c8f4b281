package config

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/sarchlab/radflow/params"
)

// Dump logs the resolved configuration at V(1).
func Dump(m *Model, log logr.Logger) {
	l := log.V(1)
	if !l.Enabled() {
		return
	}

	for _, inst := range m.Instances {
		for _, t := range []*params.Table{inst.Topology.Table, inst.Knobs.Table} {
			for _, name := range t.Names() {
				l.Info("config", "instance", inst.Ordinal,
					"namespace", string(t.Catalog().Namespace()),
					"param", name, "value", strings.Join(t.Render(name), " "))
			}
		}
	}

	for _, t := range []*params.Table{m.Header.Table, m.Cluster.Table} {
		for _, name := range t.Names() {
			l.Info("config", "namespace", string(t.Catalog().Namespace()),
				"param", name, "value", strings.Join(t.Render(name), " "))
		}
	}
}
