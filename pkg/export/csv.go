package export

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
)

// CSV writes two files per run: coords.csv with the flattened mesh
// coordinates and metrics.csv with per-point water depth and current
// velocities.
type CSV struct{}

func newCSV(config.Parameters) Exporter { return &CSV{} }

// Name implements [Exporter].
func (e *CSV) Name() string { return "csv" }

// Export implements [Exporter].
func (e *CSV) Export(ctx context.Context, d *Dataset, dir string) error {
	if err := e.writeCoords(d, filepath.Join(dir, "coords.csv")); err != nil {
		return err
	}
	return e.writeMetrics(d, filepath.Join(dir, "metrics.csv"))
}

func (e *CSV) writeCoords(d *Dataset, path string) error {
	return writeLines(path, func(w *bufio.Writer) {
		fmt.Fprint(w, "x [UTM],y [UTM]\n")
		for _, row := range d.Mesh.Grid {
			for _, p := range row {
				fmt.Fprintf(w, "%v, %v\n", p.X, p.Y)
			}
		}
	})
}

func (e *CSV) writeMetrics(d *Dataset, path string) error {
	return writeLines(path, func(w *bufio.Writer) {
		fmt.Fprint(w, "water_depth [m],current_vel_x [m/s],current_vel_y [m/s],current_velocity [m/s]\n")
		for i := range d.Depth {
			for j := range d.Depth[i] {
				vx, vy := d.Current.X[i][j], d.Current.Y[i][j]
				fmt.Fprintf(w, "%v, %v, %v, %v\n",
					d.Depth[i][j], vx, vy, math.Sqrt(vx*vx+vy*vy))
			}
		}
	})
}

// writeLines streams a file through a buffered writer.
func writeLines(path string, fill func(w *bufio.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	w := bufio.NewWriter(f)
	fill(w)
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
