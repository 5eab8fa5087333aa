// Package export writes a generated river run to its target sink. Every
// run gets its own folder under the configured save path, named by a
// random hex string, holding the per-segment chain log plus whatever
// files the chosen exporter produces. Exporters register themselves in a
// static name → constructor table; there is no runtime discovery.
package export

import (
	"bufio"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/fields"
	"github.com/nikpau/sr-gen/pkg/mesh"
)

// Dataset bundles a finished generation run for export: the assembled
// mesh, the depth and current fields and the parameters that produced
// them.
type Dataset struct {
	Mesh    *mesh.BaseSegment
	Depth   fields.Field
	Current fields.Current
	Params  config.Parameters
}

// Validate checks that every field matches the mesh shape. A mismatch is
// an internal consistency error and always fatal; fields are never
// coerced to fit.
func (d *Dataset) Validate() error {
	rows, cols := d.Mesh.Rows(), d.Mesh.Cols()
	for _, f := range []struct {
		name  string
		field fields.Field
	}{
		{"depth", d.Depth},
		{"current x", d.Current.X},
		{"current y", d.Current.Y},
	} {
		if f.field.Rows() != rows || f.field.Cols() != cols {
			return errors.New(errors.ErrCodeShapeMismatch,
				"%s field is %dx%d but the mesh is %dx%d",
				f.name, f.field.Rows(), f.field.Cols(), rows, cols)
		}
	}
	return nil
}

// Exporter serializes a dataset into a run folder.
type Exporter interface {
	// Name returns the registry name of the exporter.
	Name() string

	// Export writes the dataset. dir is the run folder, already created.
	Export(ctx context.Context, d *Dataset, dir string) error
}

// Constructor builds an exporter from the run parameters.
type Constructor func(p config.Parameters) Exporter

// registry is the static exporter dispatch table, assembled once at
// startup.
var registry = map[string]Constructor{
	"csv":     newCSV,
	"ucd":     newUCD,
	"geojson": newGeoJSON,
	"mongo":   newMongo,
}

// New looks up an exporter by name.
func New(name string, p config.Parameters) (Exporter, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeExporterNotFound,
			"no exporter named %q, available: %v", name, Names())
	}
	return ctor(p), nil
}

// Names returns the registered exporter names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write performs a full export: it validates the dataset, creates the
// run folder, records the chain log as segments.txt and hands the
// dataset to the configured exporter. The run folder path is returned.
func Write(ctx context.Context, d *Dataset, logger *log.Logger) (string, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	exp, err := New(d.Params.Exporter, d.Params)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(d.Params.SavePath, runFolderName())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create run folder %s", dir)
	}

	if err := writeSegmentLog(dir, d.Mesh.Log); err != nil {
		return "", err
	}
	if err := exp.Export(ctx, d, dir); err != nil {
		return "", err
	}

	logger.Info("run exported", "exporter", exp.Name(), "dir", dir)
	return dir, nil
}

// runFolderName returns a random 32-char hex string.
func runFolderName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// writeSegmentLog records the textual chain log so a run folder always
// documents how its river was assembled.
func writeSegmentLog(dir string, entries []string) error {
	f, err := os.Create(filepath.Join(dir, "segments.txt"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write segment log")
	}
	w := bufio.NewWriter(f)
	for _, line := range entries {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write segment log")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write segment log")
	}
	return nil
}
