package config

import (
	"errors"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/radflow/params"
	"github.com/sarchlab/radflow/validation"
)

// WalkStats summarises what a walk routed.
type WalkStats struct {
	// Declared is the number of instance sections found.
	Declared int

	// Routed counts the values stored per namespace. A broadcast value
	// counts once per instance it reaches.
	Routed map[params.Namespace]int
}

// Walk routes every parameter of docs, visited in order, into the buckets
// of m. Every problem found is reported; the returned error combines them.
func Walk(m *Model, docs []*Document, log logr.Logger) (WalkStats, error) {
	w := &walker{
		m:     m,
		log:   log,
		names: make(map[string]validation.Position),
		stats: WalkStats{Routed: make(map[params.Namespace]int)},
	}

	for _, d := range docs {
		w.doc = d
		d.eachPair(d.root, w.section)
	}

	w.stats.Declared = w.next
	return w.stats, w.errs
}

type walker struct {
	m     *Model
	log   logr.Logger
	doc   *Document
	next  int
	names map[string]validation.Position
	errs  error
	stats WalkStats

	overflowReported bool
}

func (w *walker) fail(err error, at *yaml.Node) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		err = ve.At(w.doc.pos(at))
	}
	w.errs = multierr.Append(w.errs, err)
}

func (w *walker) section(key, value *yaml.Node) {
	sec, err := params.ParseSection(key.Value)
	if err != nil {
		w.fail(err, key)
		return
	}

	var inst *Instance
	if sec.Scope == params.InstanceScope {
		inst = w.declare(sec, key)
	}

	if value.Kind != yaml.MappingNode {
		w.fail(validation.Errorf(validation.InvalidValue, key.Value,
			"a section must be a mapping"), value)
		return
	}

	w.log.V(1).Info("walking section", "section", key.Value, "scope", sec.Scope.String())

	switch sec.Scope {
	case params.InstanceScope:
		if inst != nil {
			w.instanceSection(inst, value)
		}
	case params.BroadcastScope:
		w.broadcastSection(sec, value)
	case params.ClusterScope:
		w.clusterSection(value)
	}
}

// declare assigns the next ordinal to an instance section.
func (w *walker) declare(sec params.Section, key *yaml.Node) *Instance {
	ordinal := w.next
	w.next++

	if first, dup := w.names[sec.Instance]; dup {
		w.fail(validation.Errorf(validation.InstanceReference, sec.Instance,
			"instance declared twice, first at %s", first), key)
		return nil
	}
	w.names[sec.Instance] = w.doc.pos(key)

	if ordinal >= len(w.m.Instances) {
		if !w.overflowReported {
			w.overflowReported = true
			w.fail(validation.Errorf(validation.Cardinality, sec.Instance,
				"more instance sections than the %d requested",
				len(w.m.Instances)), key)
		}
		return nil
	}

	inst := w.m.Instances[ordinal]
	inst.Name = sec.Instance
	inst.Pos = w.doc.pos(key)
	if w.doc.Design != "" {
		if err := inst.Knobs.Set("design_name", w.doc.Design); err != nil {
			w.fail(err, key)
		}
	}

	w.log.V(1).Info("declared instance", "name", inst.Name, "ordinal", ordinal)

	return inst
}

func (w *walker) instanceSection(inst *Instance, body *yaml.Node) {
	w.doc.eachPair(body, func(cat, entries *yaml.Node) {
		if entries.Kind != yaml.MappingNode {
			w.fail(validation.Errorf(validation.UnknownParameter, cat.Value,
				"instance sections hold category mappings, not values"), cat)
			return
		}

		w.doc.eachPair(entries, func(k, v *yaml.Node) {
			name := params.RoutedName(cat.Value, k.Value)
			targets := w.m.Schema.Resolve(params.InstanceScope, name)
			if targets.Empty() {
				w.fail(validation.Errorf(validation.UnknownParameter, name,
					"not a recognised parameter"), k)
				return
			}

			// The shared header is sized from the first instance; width-like
			// fields are widened to the maximum later.
			if inst.Ordinal != 0 && targets.Has(params.Header) {
				targets = targets.Without(params.Header)
				if targets.Empty() {
					w.log.V(1).Info("ignoring header parameter of non-primary instance",
						"param", name, "instance", inst.Name)
					return
				}
			}

			w.store(name, targets, []*Instance{inst}, v)
		})
	})
}

func (w *walker) broadcastSection(sec params.Section, body *yaml.Node) {
	w.doc.eachPair(body, func(k, v *yaml.Node) {
		name := params.RoutedName(sec.Key, k.Value)
		targets := w.m.Schema.Resolve(params.BroadcastScope, name)
		if targets.Empty() {
			w.fail(validation.Errorf(validation.UnknownParameter, name,
				"not a recognised parameter"), k)
			return
		}

		w.store(name, targets, w.m.Instances, v)
	})
}

func (w *walker) clusterSection(body *yaml.Node) {
	w.doc.eachPair(body, func(k, v *yaml.Node) {
		targets := w.m.Schema.Resolve(params.ClusterScope, k.Value)
		if targets.Empty() {
			w.fail(validation.Errorf(validation.UnknownParameter, k.Value,
				"not a recognised cluster parameter"), k)
			return
		}

		w.store(k.Value, targets, nil, v)
	})
}

// store writes one value into every targeted table. Only the first failure
// is reported since every table validates the same field the same way.
func (w *walker) store(name string, targets params.Targets, insts []*Instance, node *yaml.Node) {
	value, err := decodeValue(node)
	if err != nil {
		w.fail(validation.Errorf(validation.InvalidValue, name, "%v", err), node)
		return
	}

	var tables []*params.Table
	for _, ns := range targets.Namespaces() {
		switch ns {
		case params.Topology:
			for _, inst := range insts {
				tables = append(tables, inst.Topology.Table)
			}
		case params.Knobs:
			for _, inst := range insts {
				tables = append(tables, inst.Knobs.Table)
			}
		case params.Header:
			tables = append(tables, w.m.Header.Table)
		case params.Cluster:
			tables = append(tables, w.m.Cluster.Table)
		}
	}

	for _, t := range tables {
		if err := t.Set(name, value); err != nil {
			w.fail(err, node)
			return
		}
		w.stats.Routed[t.Catalog().Namespace()]++
	}

	w.log.V(1).Info("routed parameter", "param", name, "value", value,
		"instances", len(insts))
}
