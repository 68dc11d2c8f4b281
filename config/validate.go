package config

import (
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/sarchlab/radflow/params"
	"github.com/sarchlab/radflow/validation"
)

// Validate enforces the cross-instance invariants once Walk has succeeded:
// the declared block count must match the requested count, every cluster
// slot must name a declared instance, and every instance must run a
// requested design. It then fills the derived working directories.
func Validate(m *Model, declared, requested int) error {
	if declared != requested {
		return validation.Errorf(validation.Cardinality, "",
			"%d instance sections found but %d requested", declared, requested)
	}

	slots, err := resolveSlots(m)
	if err != nil {
		return err
	}
	m.Slots = slots

	var errs error
	for _, inst := range m.Instances {
		design := inst.Knobs.DesignName()
		switch {
		case design == "":
			errs = multierr.Append(errs, validation.Errorf(validation.Design,
				inst.Name, "no design_name set").At(inst.Pos))
		case len(m.Designs) > 0 && !slices.Contains(m.Designs, design):
			errs = multierr.Append(errs, validation.Errorf(validation.Design,
				inst.Name, "design %q was not requested", design).At(inst.Pos))
		}
	}
	if errs != nil {
		return errs
	}

	root := m.Cluster.RootDir()
	for _, inst := range m.Instances {
		dir := filepath.Join(root, "example-designs", inst.Knobs.DesignName())
		if err := inst.Knobs.SetDerived(params.DerivedWorkDir, dir); err != nil {
			return err
		}
	}

	return nil
}

// resolveSlots maps every cluster slot to an instance ordinal. With no
// explicit assignment the slots follow the declared instances in order.
func resolveSlots(m *Model) ([]int, error) {
	names := m.Cluster.Assignments()
	if len(names) == 0 {
		for _, inst := range m.Instances {
			names = append(names, inst.Name)
		}
	}

	var errs error
	slots := make([]int, 0, len(names))
	for slot, name := range names {
		inst, ok := m.InstanceByName(name)
		if !ok {
			errs = multierr.Append(errs, validation.Errorf(
				validation.InstanceReference, "cluster_configs",
				"slot %d names %q, which is not a declared instance", slot, name))
			continue
		}
		slots = append(slots, inst.Ordinal)
	}
	if errs != nil {
		return nil, errs
	}

	if n := m.Cluster.NumInstances(); n != len(slots) {
		return nil, validation.Errorf(validation.InstanceReference, "num_rads",
			"cluster has %d RADs but %d slots are assigned", n, len(slots))
	}

	return slots, nil
}
