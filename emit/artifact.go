// Package emit renders the files RAD-Sim reads: the BookSim descriptors,
// the shared constants header, the knob table and the program entry point.
// Everything is rendered in memory first and written by WriteAll.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/derive"
)

// Kind names the type of a generated file.
type Kind string

// The artifact kinds.
const (
	BookSim    Kind = "booksim"
	Header     Kind = "header"
	KnobTable  Kind = "knobs"
	EntryPoint Kind = "main"
)

// Kinds lists the artifact kinds in rendering order.
var Kinds = []Kind{BookSim, Header, KnobTable, EntryPoint}

// Artifact is one rendered file.
type Artifact struct {
	Kind Kind
	Path string
	Data []byte
}

// Render produces every artifact of a run, in a fixed order.
func Render(m *config.Model, d *derive.Derived) ([]Artifact, error) {
	arts, err := RenderBookSim(m, d)
	if err != nil {
		return nil, err
	}

	header, err := RenderHeader(m, d)
	if err != nil {
		return nil, err
	}

	entry, err := RenderEntryPoint(m)
	if err != nil {
		return nil, err
	}

	return append(arts, header, RenderKnobTable(m, d), entry), nil
}

// WriteAll writes the artifacts, creating parent directories as needed.
func WriteAll(arts []Artifact, log logr.Logger) error {
	for _, a := range arts {
		if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.Path, err)
		}

		if err := os.WriteFile(a.Path, a.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Path, err)
		}

		log.Info("wrote artifact", "kind", string(a.Kind), "path", a.Path,
			"bytes", len(a.Data))
	}

	return nil
}
