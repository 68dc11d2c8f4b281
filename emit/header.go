package emit

import (
	"path/filepath"
	"strings"

	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/derive"
)

type headerData struct {
	RootDir   string
	SingleRAD bool
	Widths    derive.HeaderWidths
	Params    map[string]string
}

// RenderHeader renders the constants header shared by every instance.
func RenderHeader(m *config.Model, d *derive.Derived) (Artifact, error) {
	root := m.Header.RootDir()

	values := make(map[string]string)
	for _, name := range m.Header.Names() {
		values[name] = strings.Join(m.Header.Render(name), " ")
	}

	data, err := execute("header.tmpl", headerData{
		RootDir:   root,
		SingleRAD: m.Cluster.NumInstances() <= 1,
		Widths:    d.Widths,
		Params:    values,
	})
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Kind: Header,
		Path: filepath.Join(root, "sim", "radsim_defines.hpp"),
		Data: data,
	}, nil
}
