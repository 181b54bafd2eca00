package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/wayfari/wayfari/internal/store"
	"github.com/wayfari/wayfari/internal/users"
)

func TestCreateStartsPendingWithoutPayment(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	id, err := svc.Create(ctx, Booking{
		TouristEmail:  "a@x.com",
		TransactionID: "smuggled",
		PaymentPrice:  99,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	b, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected status pending, got %q", b.Status)
	}
	if b.TransactionID != "" || b.PaymentPrice != 0 {
		t.Fatalf("payment fields must be cleared on create: %+v", b)
	}
}

func TestAttachPaymentForcesInReview(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	id, err := svc.Create(ctx, Booking{TouristEmail: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Even a terminal booking snaps back to in-review on (re-)payment.
	if err := svc.SetStatus(ctx, id, StatusAccepted); err != nil {
		t.Fatalf("set status: %v", err)
	}

	payment := Payment{TransactionID: "tx-1", Date: "2026-08-28", Price: 120, Email: "a@x.com"}
	if err := svc.AttachPayment(ctx, id, payment); err != nil {
		t.Fatalf("attach payment: %v", err)
	}

	b, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Status != StatusInReview {
		t.Fatalf("expected status in-review, got %q", b.Status)
	}
	if b.TransactionID != "tx-1" || b.PaymentPrice != 120 || b.PaymentEmail != "a@x.com" {
		t.Fatalf("payment fields not recorded: %+v", b)
	}
}

func TestAttachPaymentUnknownBooking(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	err := svc.AttachPayment(ctx, "65f000000000000000000000", Payment{TransactionID: "tx"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.AttachPayment(ctx, "not-an-id", Payment{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestSetStatusAcceptsOnlyAllowedValues(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	id, err := svc.Create(ctx, Booking{TouristEmail: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []string{StatusInReview, StatusAccepted, StatusRejected} {
		if err := svc.SetStatus(ctx, id, status); err != nil {
			t.Fatalf("set status %q: %v", status, err)
		}
		b, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if b.Status != status {
			t.Fatalf("expected status %q, got %q", status, b.Status)
		}
	}

	for _, status := range []string{"pending", "done", "", "ACCEPTED"} {
		if err := svc.SetStatus(ctx, id, status); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}

	// The last valid transition must still be in place.
	b, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Status != StatusRejected {
		t.Fatalf("rejected transition mutated storage: status %q", b.Status)
	}
}

func TestListByFilterAsymmetry(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "a@x.com", "b@x.com"} {
		if _, err := svc.Create(ctx, Booking{TouristEmail: email}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := svc.ListByFilter(ctx, "a@x.com", users.RoleTourist)
	if err != nil {
		t.Fatalf("list tourist: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 bookings for a@x.com, got %d", len(mine))
	}
	for _, b := range mine {
		if b.TouristEmail != "a@x.com" {
			t.Fatalf("foreign booking in tourist view: %+v", b)
		}
	}

	// The guide view is intentionally unfiltered, email notwithstanding.
	all, err := svc.ListByFilter(ctx, "a@x.com", users.RoleGuide)
	if err != nil {
		t.Fatalf("list guide: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 bookings for guide view, got %d", len(all))
	}
}

func TestRevenue(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	total, err := svc.Revenue(ctx)
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 revenue with no bookings, got %v", total)
	}

	paid := []float64{10, 20}
	for _, price := range paid {
		id, err := svc.Create(ctx, Booking{TouristEmail: "a@x.com"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := svc.AttachPayment(ctx, id, Payment{TransactionID: "tx", Price: price}); err != nil {
			t.Fatalf("attach payment: %v", err)
		}
	}
	// One booking without payment contributes nothing.
	if _, err := svc.Create(ctx, Booking{TouristEmail: "b@x.com"}); err != nil {
		t.Fatalf("create unpaid: %v", err)
	}

	total, err = svc.Revenue(ctx)
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if total != 30 {
		t.Fatalf("expected revenue 30, got %v", total)
	}
}

func TestRemove(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	id, err := svc.Create(ctx, Booking{TouristEmail: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Remove(ctx, id)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected deleted count 1, got %d", deleted)
	}

	deleted, err = svc.Remove(ctx, id)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected deleted count 0, got %d", deleted)
	}
}
