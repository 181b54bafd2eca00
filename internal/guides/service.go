package guides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfari/wayfari/internal/notification"
	"github.com/wayfari/wayfari/internal/store"
	"github.com/wayfari/wayfari/internal/users"
)

var (
	// ErrNotFound indicates the application id matched no record.
	ErrNotFound = errors.New("application not found")

	// ErrInvalidID indicates the application id is not a valid object id.
	ErrInvalidID = errors.New("invalid application id")
)

// AcceptResult reports the outcome of the two-step accept composite.
type AcceptResult struct {
	Promoted bool  `json:"promoted"`
	Deleted  int64 `json:"deletedCount"`
}

// Service handles the guide promotion workflow: application submission and
// the admin-driven accept/reject decision.
type Service struct {
	store    store.Store
	users    *users.Service
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the promotion workflow service.
func NewService(st store.Store, userSvc *users.Service, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{store: st, users: userSvc, notifier: notifier, logger: logger}
}

// Apply inserts a new application record. There is no uniqueness constraint;
// the same email may apply repeatedly.
func (s *Service) Apply(ctx context.Context, app Application) (string, error) {
	app.ID = primitive.NilObjectID
	return s.store.InsertOne(ctx, Collection, app)
}

// List returns all pending applications for the admin review queue.
func (s *Service) List(ctx context.Context) ([]Application, error) {
	var all []Application
	err := s.store.Find(ctx, Collection, bson.M{}, store.FindOptions{}, &all)
	return all, err
}

// Accept promotes the applicant to guide and then deletes the application.
// The two steps are not transactional: a crash in between leaves an orphaned
// application next to an already-promoted user, which an operator must
// reconcile manually. A promotion that matches no user record is logged at
// warn level but does not stop the delete, so the application still reaches
// its terminal state.
func (s *Service) Accept(ctx context.Context, id, applicantEmail string) (AcceptResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return AcceptResult{}, ErrInvalidID
	}

	promoted, err := s.users.PromoteToGuide(ctx, applicantEmail)
	if err != nil {
		return AcceptResult{}, fmt.Errorf("promote %s: %w", applicantEmail, err)
	}
	if !promoted && s.logger != nil {
		s.logger.Warn("accepting application for unknown user, promotion was a no-op",
			slog.String("application_id", id),
			slog.String("applicant_email", applicantEmail),
		)
	}

	deleted, err := s.store.DeleteOne(ctx, Collection, bson.M{"_id": oid})
	if err != nil {
		return AcceptResult{Promoted: promoted}, fmt.Errorf("delete application %s: %w", id, err)
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindApplicationAccepted,
			Destination: applicantEmail,
			Body:        "Your guide application has been accepted",
		})
	}

	return AcceptResult{Promoted: promoted, Deleted: deleted}, nil
}

// Reject deletes the application without touching the applicant's role. A
// zero deleted count signals the id matched nothing.
func (s *Service) Reject(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	// Read first so the rejection notice can reach the applicant; the
	// record is gone once the delete lands.
	var app Application
	if err := s.store.FindOne(ctx, Collection, bson.M{"_id": oid}, &app); err != nil && !errors.Is(err, store.ErrNoDocuments) {
		return 0, err
	}

	deleted, err := s.store.DeleteOne(ctx, Collection, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}

	if deleted > 0 && s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindApplicationRejected,
			Destination: app.ApplicantEmail,
			Body:        "Your guide application has been rejected",
		})
	}

	return deleted, nil
}
