package dataset

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/binoviz/bino/pkg/errors"
)

// MongoStore reads numeric columns from a MongoDB collection. Every
// numeric field of the collection's documents is one dataset; field
// names are sorted so indices stay stable across runs.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	source string
}

var _ Store = (*MongoStore)(nil)

// parseMongoSource splits a mongodb://host[:port]/db/collection source
// into the client URI and the database and collection names.
func parseMongoSource(source string) (clientURI, db, coll string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", "", errors.Wrap(errors.ErrCodeInvalidPath, err, "bad mongodb source %q", source)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) != 2 || segs[0] == "" || segs[1] == "" {
		return "", "", "", errors.New(errors.ErrCodeInvalidPath,
			"mongodb source must name a database and a collection, like mongodb://host:27017/db/points")
	}
	db, coll = segs[0], segs[1]
	u.Path = "/"
	return u.String(), db, coll, nil
}

// OpenMongo connects to the collection named by the source URI.
func OpenMongo(ctx context.Context, source string) (*MongoStore, error) {
	clientURI, db, coll, err := parseMongoSource(source)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(clientURI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot connect to %s", source)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot reach %s", source)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(coll),
		source: source,
	}, nil
}

// Names samples one document and returns its numeric field names in
// sorted order. The _id field is never a dataset.
func (s *MongoStore) Names(ctx context.Context) ([]string, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, bson.D{}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "No datasets found in %s.", s.source)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot read %s", s.source)
	}

	names := make([]string, 0, len(doc))
	for name, v := range doc {
		if name == "_id" || !isNumeric(v) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "No datasets found in %s.", s.source)
	}
	sort.Strings(names)
	return names, nil
}

// Columns reads the datasets at the given indices with the row slice
// applied. Documents missing a selected field contribute NaN.
func (s *MongoStore) Columns(ctx context.Context, indices []int, sl Slice) ([]Column, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkIndices(s.source, indices, names); err != nil {
		return nil, err
	}

	selected := make([]string, len(indices))
	proj := bson.D{{Key: "_id", Value: 0}}
	for i, idx := range indices {
		selected[i] = names[idx]
		proj = append(proj, bson.E{Key: names[idx], Value: 1})
	}

	opts := options.Find().
		SetProjection(proj).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot read %s", s.source)
	}
	defer cur.Close(ctx)

	cols := make([][]float64, len(selected))
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot decode a document from %s", s.source)
		}
		for i, name := range selected {
			cols[i] = append(cols[i], numValue(doc[name]))
		}
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "cannot read %s", s.source)
	}

	out := make([]Column, len(selected))
	for i := range selected {
		out[i] = Column{Name: selected[i], Data: sl.Cut(cols[i])}
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int32, int64, int:
		return true
	}
	return false
}

// numValue converts a decoded BSON value to float64, NaN when the
// value is missing or not numeric.
func numValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return nan
}
