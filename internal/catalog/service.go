// Package catalog is the thin pass-through persistence for travel packages
// and traveler stories. It carries no business rules; documents flow to and
// from the store as-is.
package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfari/wayfari/internal/store"
)

// Document-store collections served by the catalog.
const (
	PackagesCollection = "packages"
	StoriesCollection  = "stories"
)

var (
	// ErrNotFound indicates the document id matched no record.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID indicates the id is not a valid object id.
	ErrInvalidID = errors.New("invalid document id")
)

// Service exposes package and story persistence.
type Service struct {
	store store.Store
}

// NewService builds the catalog service on the document store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// SamplePackages returns up to n randomly selected packages.
func (s *Service) SamplePackages(ctx context.Context, n int64) ([]bson.M, error) {
	var result []bson.M
	err := s.store.Find(ctx, PackagesCollection, bson.M{}, store.FindOptions{Sample: n}, &result)
	return result, err
}

// PackageByID fetches a single package document.
func (s *Service) PackageByID(ctx context.Context, id string) (bson.M, error) {
	return s.byID(ctx, PackagesCollection, id)
}

// AddPackage inserts a package document as supplied.
func (s *Service) AddPackage(ctx context.Context, doc bson.M) (string, error) {
	delete(doc, "_id")
	return s.store.InsertOne(ctx, PackagesCollection, doc)
}

// ListStories returns stories, optionally capped or randomly sampled.
func (s *Service) ListStories(ctx context.Context, limit, sample int64) ([]bson.M, error) {
	var result []bson.M
	err := s.store.Find(ctx, StoriesCollection, bson.M{}, store.FindOptions{Limit: limit, Sample: sample}, &result)
	return result, err
}

// StoryByID fetches a single story document.
func (s *Service) StoryByID(ctx context.Context, id string) (bson.M, error) {
	return s.byID(ctx, StoriesCollection, id)
}

// AddStory inserts a story document as supplied.
func (s *Service) AddStory(ctx context.Context, doc bson.M) (string, error) {
	delete(doc, "_id")
	return s.store.InsertOne(ctx, StoriesCollection, doc)
}

// PackageCount reports the approximate number of packages.
func (s *Service) PackageCount(ctx context.Context) (int64, error) {
	return s.store.EstimatedCount(ctx, PackagesCollection)
}

// StoryCount reports the approximate number of stories.
func (s *Service) StoryCount(ctx context.Context) (int64, error) {
	return s.store.EstimatedCount(ctx, StoriesCollection)
}

func (s *Service) byID(ctx context.Context, collection, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var doc bson.M
	err = s.store.FindOne(ctx, collection, bson.M{"_id": oid}, &doc)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return doc, err
}
