package datarecording

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
)

// Table names of the run manifest.
const (
	RunTable       = "runs"
	ParameterTable = "parameters"
	ArtifactTable  = "artifacts"
)

// SharedInstance is the instance column of parameters that belong to no
// single instance.
const SharedInstance = -1

// RunEntry describes one configuration run.
type RunEntry struct {
	RunID     string
	Started   string
	Root      string
	Designs   string
	Instances int
}

// ParameterEntry is one resolved parameter value.
type ParameterEntry struct {
	RunID     string
	Namespace string
	Instance  int
	Name      string
	Value     string
}

// ArtifactEntry is one written file.
type ArtifactEntry struct {
	RunID string
	Kind  string
	Path  string
	Bytes int
}

// ManifestWriter records the entries of a single run.
type ManifestWriter struct {
	rec   DataRecorder
	runID string
}

// NewManifestWriter creates the manifest tables and starts a run with a
// fresh id.
func NewManifestWriter(rec DataRecorder) (*ManifestWriter, error) {
	for name, sample := range map[string]any{
		RunTable:       RunEntry{},
		ParameterTable: ParameterEntry{},
		ArtifactTable:  ArtifactEntry{},
	} {
		if err := rec.CreateTable(name, sample); err != nil {
			return nil, err
		}
	}

	return &ManifestWriter{rec: rec, runID: xid.New().String()}, nil
}

// RunID identifies the run being recorded.
func (w *ManifestWriter) RunID() string { return w.runID }

// Run records the run itself.
func (w *ManifestWriter) Run(root string, designs []string, instances int) error {
	return w.rec.InsertData(RunTable, RunEntry{
		RunID:     w.runID,
		Started:   time.Now().UTC().Format(time.RFC3339),
		Root:      root,
		Designs:   strings.Join(designs, ";"),
		Instances: instances,
	})
}

// Parameter records one parameter value.
func (w *ManifestWriter) Parameter(namespace string, instance int, name, value string) error {
	return w.rec.InsertData(ParameterTable, ParameterEntry{
		RunID:     w.runID,
		Namespace: namespace,
		Instance:  instance,
		Name:      name,
		Value:     value,
	})
}

// Artifact records one written file.
func (w *ManifestWriter) Artifact(kind, path string, size int) error {
	return w.rec.InsertData(ArtifactTable, ArtifactEntry{
		RunID: w.runID,
		Kind:  kind,
		Path:  path,
		Bytes: size,
	})
}

// Flush writes the buffered entries.
func (w *ManifestWriter) Flush() error { return w.rec.Flush() }

// Manifest is everything recorded about one run.
type Manifest struct {
	Run        RunEntry
	Parameters []ParameterEntry
	Artifacts  []ArtifactEntry
}

// ReadManifests loads every recorded run, newest first.
func ReadManifests(ctx context.Context, r DataReader) ([]Manifest, error) {
	r.MapTable(RunTable, RunEntry{})
	r.MapTable(ParameterTable, ParameterEntry{})
	r.MapTable(ArtifactTable, ArtifactEntry{})

	runs, _, err := r.Query(ctx, RunTable, QueryParams{OrderBy: "Started DESC, RunID DESC"})
	if err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}

	out := make([]Manifest, 0, len(runs))
	for _, row := range runs {
		m := Manifest{Run: *row.(*RunEntry)}
		byRun := QueryParams{Where: "RunID = ?", Args: []any{m.Run.RunID}}

		params, _, err := r.Query(ctx, ParameterTable, byRun)
		if err != nil {
			return nil, fmt.Errorf("reading parameters: %w", err)
		}
		for _, p := range params {
			m.Parameters = append(m.Parameters, *p.(*ParameterEntry))
		}

		arts, _, err := r.Query(ctx, ArtifactTable, byRun)
		if err != nil {
			return nil, fmt.Errorf("reading artifacts: %w", err)
		}
		for _, a := range arts {
			m.Artifacts = append(m.Artifacts, *a.(*ArtifactEntry))
		}

		out = append(out, m)
	}

	return out, nil
}
