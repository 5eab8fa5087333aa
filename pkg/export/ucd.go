package export

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/triangulate"
)

// ucdEOL terminates every line of a UCD file. The downstream simulation
// tooling expects DOS line endings.
const ucdEOL = "\r\n"

// UCD writes the run as an AVS-UCD (Unstructured Cell Data) file,
// generated.inp, with the mesh triangulated into cells and depth plus
// current velocity attached as node data. Node and cell ids are
// 1-indexed as the format demands.
type UCD struct {
	conforming bool
	now        func() time.Time
}

func newUCD(p config.Parameters) Exporter {
	return &UCD{conforming: p.Conforming, now: time.Now}
}

// Name implements [Exporter].
func (e *UCD) Name() string { return "ucd" }

// Export implements [Exporter].
func (e *UCD) Export(ctx context.Context, d *Dataset, dir string) error {
	tris, err := e.triangles(d)
	if err != nil {
		return err
	}

	points := d.Mesh.Grid.Flatten()
	return writeLines(filepath.Join(dir, "generated.inp"), func(w *bufio.Writer) {
		fmt.Fprintf(w, "# AVS-UCD FILE CREATED BY SR-GEN at %s%s",
			e.now().Format("2006-01-02 15:04:05"), ucdEOL)
		fmt.Fprintf(w, "%d %d 3 0 0%s", len(points), len(tris), ucdEOL)

		for i, p := range points {
			fmt.Fprintf(w, "%d %v %v %v%s", i+1, p.X, p.Y, 0.0, ucdEOL)
		}
		for i, t := range tris {
			fmt.Fprintf(w, "%d 1 tri %d %d %d%s", i+1, t.A, t.B, t.C, ucdEOL)
		}

		fmt.Fprintf(w, "2 2 1%s", ucdEOL)
		fmt.Fprintf(w, "UV,m/s%s", ucdEOL)
		fmt.Fprintf(w, "S,mNN%s", ucdEOL)

		id := 1
		for i := range d.Depth {
			for j := range d.Depth[i] {
				fmt.Fprintf(w, "%d %v %v %v%s",
					id, d.Current.Y[i][j], d.Current.X[i][j], d.Depth[i][j], ucdEOL)
				id++
			}
		}
	})
}

// triangles picks the triangulation strategy: the regular grid split by
// default, the boundary-conforming variant when requested. Either way
// the vertex references are 1-based.
func (e *UCD) triangles(d *Dataset) ([]triangulate.Triangle, error) {
	if !e.conforming {
		return triangulate.Regular(d.Mesh.Rows(), d.Mesh.Cols(), 1)
	}
	tris, err := triangulate.Constrained(d.Mesh.Grid)
	if err != nil {
		return nil, err
	}
	for i := range tris {
		tris[i].A++
		tris[i].B++
		tris[i].C++
	}
	return tris, nil
}
