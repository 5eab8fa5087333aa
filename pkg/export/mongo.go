package export

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
)

// Mongo connection defaults, overridable through the environment.
const (
	defaultMongoURI   = "mongodb://localhost:27017"
	mongoURIEnv       = "SRGEN_MONGO_URI"
	mongoDatabase     = "srgen"
	mongoCollection   = "rivers"
	mongoWriteTimeout = 30 * time.Second
)

// Mongo inserts the run as a single document into a MongoDB collection
// instead of producing files. The run folder still receives the
// segments.txt chain log; the document records the parameters, the
// flattened coordinates and the fields.
type Mongo struct {
	uri    string
	params config.Parameters
}

func newMongo(p config.Parameters) Exporter {
	uri := os.Getenv(mongoURIEnv)
	if uri == "" {
		uri = defaultMongoURI
	}
	return &Mongo{uri: uri, params: p}
}

// Name implements [Exporter].
func (e *Mongo) Name() string { return "mongo" }

// Export implements [Exporter].
func (e *Mongo) Export(ctx context.Context, d *Dataset, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(e.uri))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "connect to %s", e.uri)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	doc, err := e.document(d)
	if err != nil {
		return err
	}
	coll := client.Database(mongoDatabase).Collection(mongoCollection)
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "insert river document")
	}
	return nil
}

// document flattens the dataset into one BSON document.
func (e *Mongo) document(d *Dataset) (bson.M, error) {
	coords := make(bson.A, 0, d.Mesh.Rows()*d.Mesh.Cols())
	depth := make(bson.A, 0, cap(coords))
	currentX := make(bson.A, 0, cap(coords))
	currentY := make(bson.A, 0, cap(coords))

	for i, row := range d.Mesh.Grid {
		for j, p := range row {
			coords = append(coords, bson.A{p.X, p.Y})
			depth = append(depth, d.Depth[i][j])
			currentX = append(currentX, d.Current.X[i][j])
			currentY = append(currentY, d.Current.Y[i][j])
		}
	}

	return bson.M{
		"created_at": time.Now().UTC(),
		"params":     e.params,
		"rows":       d.Mesh.Rows(),
		"cols":       d.Mesh.Cols(),
		"length":     d.Mesh.Length,
		"segments":   d.Mesh.Log,
		"coords":     coords,
		"depth":      depth,
		"current_x":  currentX,
		"current_y":  currentY,
	}, nil
}
