package emit

import (
	"fmt"
	"path/filepath"

	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/derive"
)

type booksimData struct {
	derive.Network
	Concentration int
}

// BookSimPath is where the descriptor of network noc of an instance goes.
func BookSimPath(root string, noc, ordinal int) string {
	return filepath.Join(root, "sim", "noc",
		fmt.Sprintf("noc%d_rad%d_config", noc, ordinal))
}

// RenderBookSim renders one descriptor per network of every instance used
// by a cluster slot. An instance used by several slots is rendered once.
func RenderBookSim(m *config.Model, d *derive.Derived) ([]Artifact, error) {
	var arts []Artifact

	for _, inst := range m.ReferencedInstances() {
		root := inst.Topology.RootDir()
		for _, net := range d.Networks[inst.Ordinal] {
			data, err := execute("booksim.tmpl", booksimData{
				Network:       net,
				Concentration: derive.Concentration,
			})
			if err != nil {
				return nil, err
			}

			arts = append(arts, Artifact{
				Kind: BookSim,
				Path: BookSimPath(root, net.Spec.ID, inst.Ordinal),
				Data: data,
			})
		}
	}

	return arts, nil
}
