package shared

import (
	"context"

	"event-bookings/internal/domain/booking"
)

//go:generate mockgen -source=store.go -destination=../../../tests/mock/shared/store.go -package=sharedmock

// Actor scopes what a caller may see.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// BookingStore is the record store behind the booking use cases. FindByID
// reports a missing record as an infra.RepositoryError of kind NOT_FOUND.
type BookingStore interface {
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	Add(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	Remove(ctx context.Context, id string) error
	Query(ctx context.Context, q Query) ([]*booking.Booking, error)
	Aggregate(ctx context.Context, preds []Predicate) ([]StatusTotals, error)
}

// StatusTotals is one row of the statistics aggregation.
type StatusTotals struct {
	Status       booking.Status
	Count        int64
	Quantity     int64
	RevenueCents int64
}
