package bookings

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfari/wayfari/internal/store"
	"github.com/wayfari/wayfari/internal/users"
)

var (
	// ErrNotFound indicates the booking id matched no record.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidID indicates the booking id is not a valid object id.
	ErrInvalidID = errors.New("invalid booking id")

	// ErrInvalidStatus indicates a status value outside the allowed set.
	// Storage stays untouched when it is reported.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// allowedTargets are the only statuses a transition may set. Note there is no
// prior-state precondition: a booking may be accepted from any current state.
var allowedTargets = map[string]bool{
	StatusInReview: true,
	StatusAccepted: true,
	StatusRejected: true,
}

// Service owns the booking state machine.
type Service struct {
	store store.Store
}

// NewService builds the booking lifecycle service on the document store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create inserts a new booking in the pending state. Payment fields are
// always cleared regardless of what the caller supplied.
func (s *Service) Create(ctx context.Context, b Booking) (string, error) {
	b.ID = primitive.NilObjectID
	b.Status = StatusPending
	b.TransactionID = ""
	b.PaymentDate = ""
	b.PaymentPrice = 0
	b.PaymentEmail = ""
	return s.store.InsertOne(ctx, Collection, b)
}

// Get fetches a booking by hex id.
func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Booking{}, ErrInvalidID
	}
	var b Booking
	err = s.store.FindOne(ctx, Collection, bson.M{"_id": oid}, &b)
	if errors.Is(err, store.ErrNoDocuments) {
		return Booking{}, ErrNotFound
	}
	return b, err
}

// AttachPayment records payment details and forces the booking into
// in-review, whatever its prior status. Re-paying overwrites the previous
// payment fields.
func (s *Service) AttachPayment(ctx context.Context, id string, p Payment) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"transactionId": p.TransactionID,
		"paymentDate":   p.Date,
		"paymentPrice":  p.Price,
		"paymentEmail":  p.Email,
		"status":        StatusInReview,
	}}
	matched, err := s.store.UpdateOne(ctx, Collection, bson.M{"_id": oid}, update, false)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus moves the booking to one of the allowed target statuses. Any
// other value fails before the store is touched.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !allowedTargets[status] {
		return ErrInvalidStatus
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	matched, err := s.store.UpdateOne(ctx, Collection,
		bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}}, false)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes the booking and reports the deleted count. Whether the
// caller may delete it (owner or admin) is the route's concern.
func (s *Service) Remove(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	return s.store.DeleteOne(ctx, Collection, bson.M{"_id": oid})
}

// ListByFilter returns bookings narrowed by the requester's view: a tourist
// sees only their own bookings, a guide sees every booking. Any other role
// value also reads unfiltered.
func (s *Service) ListByFilter(ctx context.Context, email, role string) ([]Booking, error) {
	filter := bson.M{}
	if role == users.RoleTourist && email != "" {
		filter["touristEmail"] = email
	}

	var result []Booking
	err := s.store.Find(ctx, Collection, filter, store.FindOptions{}, &result)
	return result, err
}

// Revenue sums paymentPrice across all bookings. Bookings without a payment
// contribute nothing; no bookings at all yields zero.
func (s *Service) Revenue(ctx context.Context) (float64, error) {
	var rows []bson.M
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$paymentPrice"}}},
	}
	if err := s.store.Aggregate(ctx, Collection, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return asFloat64(rows[0]["total"]), nil
}

// asFloat64 tolerates the integer types the store returns when every summed
// value happens to be whole.
func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	default:
		return 0
	}
}
