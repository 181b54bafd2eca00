package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDocuments indicates a FindOne matched nothing. It aliases the driver
// sentinel so both backends report the same error.
var ErrNoDocuments = mongo.ErrNoDocuments

// FindOptions narrows a Find call. Sample takes precedence over Limit and
// returns up to Sample randomly chosen documents.
type FindOptions struct {
	Limit  int64
	Sample int64
}

// Store is the document-store contract every component persists through. The
// production backend is MongoDB; tests run against the in-memory backend.
type Store interface {
	// FindOne decodes the first document matching filter into out, or
	// returns ErrNoDocuments.
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error

	// Find decodes all matching documents into out, which must be a
	// pointer to a slice.
	Find(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error

	// InsertOne stores doc and returns the hex form of its generated
	// object id.
	InsertOne(ctx context.Context, collection string, doc any) (string, error)

	// UpdateOne applies update to the first document matching filter and
	// reports how many documents matched. With upsert a non-match inserts
	// a new document instead.
	UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (int64, error)

	// DeleteOne removes the first document matching filter and reports the
	// deleted count (0 or 1).
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)

	// Aggregate runs pipeline and decodes the resulting documents into
	// out, which must be a pointer to a slice.
	Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error

	// EstimatedCount reports the approximate number of documents in the
	// collection.
	EstimatedCount(ctx context.Context, collection string) (int64, error)
}
