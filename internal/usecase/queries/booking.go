package queries

import (
	"context"

	"event-bookings/internal/infra"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/usecase/shared"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

type BookingQueries interface {
	List(ctx context.Context, filter Filter, actor shared.Actor) ([]*BookingView, error)
	GetByID(ctx context.Context, id string) (*BookingView, error)
	Statistics(ctx context.Context, actor shared.Actor) (*BookingStats, error)
}

type bookingQueriesImpl struct {
	store shared.BookingStore
}

func NewBookingQueries(store shared.BookingStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter Filter, actor shared.Actor) ([]*BookingView, error) {
	query, err := BuildQuery(filter, actor)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.Query(ctx, query)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*BookingView, 0, len(rows))
	for _, b := range rows {
		views = append(views, NewBookingView(b))
	}
	return views, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id string) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) Statistics(ctx context.Context, actor shared.Actor) (*BookingStats, error) {
	totals, err := q.store.Aggregate(ctx, scopePredicates(actor))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	stats := &BookingStats{ByStatus: make([]StatusBreakdown, 0, len(totals))}
	for _, t := range totals {
		stats.TotalBookings += t.Count
		stats.TicketQuantity += t.Quantity
		stats.RevenueCents += t.RevenueCents
		stats.ByStatus = append(stats.ByStatus, StatusBreakdown{
			Status:         t.Status.String(),
			Count:          t.Count,
			TicketQuantity: t.Quantity,
			RevenueCents:   t.RevenueCents,
		})
	}
	return stats, nil
}
