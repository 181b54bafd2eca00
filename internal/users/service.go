package users

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfari/wayfari/internal/store"
)

// ErrNotFound indicates no user record exists for the given email.
var ErrNotFound = errors.New("user not found")

// Service manages user records. Role checks always re-read the stored record
// so role changes take effect without re-issuing tokens.
type Service struct {
	store store.Store
}

// NewService builds a user service on the document store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Register inserts a user keyed by email. Registration is idempotent: a
// duplicate email is a no-op that reports the existing record's id.
func (s *Service) Register(ctx context.Context, user User) (id string, existed bool, err error) {
	var existing User
	err = s.store.FindOne(ctx, Collection, bson.M{"email": user.Email}, &existing)
	if err == nil {
		return existing.ID.Hex(), true, nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		return "", false, err
	}

	id, err = s.store.InsertOne(ctx, Collection, user)
	return id, false, err
}

// Get fetches a user by email.
func (s *Service) Get(ctx context.Context, email string) (User, error) {
	var user User
	err := s.store.FindOne(ctx, Collection, bson.M{"email": email}, &user)
	if errors.Is(err, store.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	return user, err
}

// List returns all user records.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var all []User
	err := s.store.Find(ctx, Collection, bson.M{}, store.FindOptions{}, &all)
	return all, err
}

// UpdateProfile upserts the profile fields of the user with the given id.
func (s *Service) UpdateProfile(ctx context.Context, id string, profile Profile) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if profile.Name != "" {
		set["name"] = profile.Name
	}
	if profile.Address != "" {
		set["address"] = profile.Address
	}
	if profile.Phone != "" {
		set["phone"] = profile.Phone
	}
	if profile.Bio != "" {
		set["bio"] = profile.Bio
	}
	if profile.Photo != "" {
		set["photo"] = profile.Photo
	}

	_, err = s.store.UpdateOne(ctx, Collection, bson.M{"_id": oid}, bson.M{"$set": set}, true)
	return err
}

// Classify reports whether the email belongs to an admin or a guide. It is a
// public lookup and fails with ErrNotFound for unknown emails.
func (s *Service) Classify(ctx context.Context, email string) (Classification, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return Classification{}, err
	}
	return Classification{
		IsAdmin: user.Role == RoleAdmin,
		IsGuide: user.Role == RoleGuide,
	}, nil
}

// PromoteToGuide flips the user's role to guide, matched by email. A missing
// user is reported as promoted=false rather than an error; the promotion
// workflow decides how loudly to treat that.
func (s *Service) PromoteToGuide(ctx context.Context, email string) (bool, error) {
	matched, err := s.store.UpdateOne(ctx, Collection,
		bson.M{"email": email}, bson.M{"$set": bson.M{"role": RoleGuide}}, false)
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

// RoleCounts tallies user records per role. Records without a role group
// under the empty string.
func (s *Service) RoleCounts(ctx context.Context) (map[string]int64, error) {
	// Rows decode as bson.M because records without a role group under a
	// null _id, which must not break decoding.
	var rows []bson.M
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}},
	}
	if err := s.store.Aggregate(ctx, Collection, pipeline, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		role, _ := row["_id"].(string)
		counts[role] = asInt64(row["count"])
	}
	return counts, nil
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
