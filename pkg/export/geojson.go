package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/triangulate"
)

// GeoJSON writes river.geojson: the channel outline as a polygon
// feature plus one point feature per mesh node carrying depth and
// current properties. Handy for dropping a generated river into GIS
// tooling to eyeball it.
type GeoJSON struct{}

func newGeoJSON(config.Parameters) Exporter { return &GeoJSON{} }

// Name implements [Exporter].
func (e *GeoJSON) Name() string { return "geojson" }

// Export implements [Exporter].
func (e *GeoJSON) Export(ctx context.Context, d *Dataset, dir string) error {
	data, err := FeatureCollection(d).MarshalJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode geojson")
	}
	path := filepath.Join(dir, "river.geojson")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// FeatureCollection converts a dataset into GeoJSON: the channel
// outline as a polygon feature plus one point feature per mesh node
// carrying depth and current properties. The HTTP API serves the same
// structure inline.
func FeatureCollection(d *Dataset) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	outline := geojson.NewFeature(orb.Polygon{triangulate.Boundary(d.Mesh.Grid)})
	outline.Properties["kind"] = "boundary"
	fc.Append(outline)

	for i, row := range d.Mesh.Grid {
		for j, p := range row {
			f := geojson.NewFeature(orb.Point{p.X, p.Y})
			f.Properties["depth"] = d.Depth[i][j]
			f.Properties["current_x"] = d.Current.X[i][j]
			f.Properties["current_y"] = d.Current.Y[i][j]
			fc.Append(f)
		}
	}
	return fc
}
