package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore builds a Store backed by the named database on client.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{db: client.Database(database)}
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter bson.M, out any) error {
	return s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error {
	if opts.Sample > 0 {
		pipeline := []bson.M{}
		if len(filter) > 0 {
			pipeline = append(pipeline, bson.M{"$match": filter})
		}
		pipeline = append(pipeline, bson.M{"$sample": bson.M{"size": opts.Sample}})
		return s.Aggregate(ctx, collection, pipeline, out)
	}

	findOpts := options.Find()
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (int64, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(upsert))
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error {
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (s *MongoStore) EstimatedCount(ctx context.Context, collection string) (int64, error) {
	return s.db.Collection(collection).EstimatedDocumentCount(ctx)
}
