package emit

import (
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/sarchlab/radflow/config"
)

type system struct {
	Slot   int
	Design string
}

type entryPointData struct {
	Designs  []string
	NumRADs  int
	Systems  []system
	Teardown []system
	Cluster  bool
}

// RenderEntryPoint renders the simulator's sc_main. Objects are created
// slot by slot and deleted in the opposite order.
func RenderEntryPoint(m *config.Model) (Artifact, error) {
	data := entryPointData{
		Designs: designIncludes(m),
		NumRADs: m.Cluster.NumInstances(),
		Cluster: m.Cluster.NumInstances() > 1,
	}

	for slot := range m.Slots {
		data.Systems = append(data.Systems, system{
			Slot:   slot,
			Design: m.SlotInstance(slot).Knobs.DesignName(),
		})
	}

	data.Teardown = slices.Clone(data.Systems)
	for i, j := 0, len(data.Teardown)-1; i < j; i, j = i+1, j-1 {
		data.Teardown[i], data.Teardown[j] = data.Teardown[j], data.Teardown[i]
	}

	out, err := execute("main.cpp.tmpl", data)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Kind: EntryPoint,
		Path: filepath.Join(m.Header.RootDir(), "sim", "main.cpp"),
		Data: out,
	}, nil
}

// designIncludes lists each design once, in request order, falling back to
// the order slots use them.
func designIncludes(m *config.Model) []string {
	if len(m.Designs) > 0 {
		return m.Designs
	}

	var out []string
	for slot := range m.Slots {
		name := m.SlotInstance(slot).Knobs.DesignName()
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
