package memstore

import (
	"context"
	"sync"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/infra"
	"event-bookings/internal/usecase/shared"
)

// BookingStore keeps bookings in process memory. Records are cloned on the
// way in and out so callers never share state with the store.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*booking.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*booking.Booking)}
}

func (s *BookingStore) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	return b.Clone(), nil
}

func (s *BookingStore) Add(ctx context.Context, b *booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to add booking", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.ID()]; exists {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	s.bookings[b.ID()] = b.Clone()
	return nil
}

func (s *BookingStore) Update(ctx context.Context, b *booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.ID()]; !exists {
		return infra.NotFound("booking not found")
	}
	s.bookings[b.ID()] = b.Clone()
	return nil
}

func (s *BookingStore) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to remove booking", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[id]; !exists {
		return infra.NotFound("booking not found")
	}
	delete(s.bookings, id)
	return nil
}

func (s *BookingStore) Query(ctx context.Context, q shared.Query) ([]*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	s.mu.RLock()
	all := make([]*booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		all = append(all, b.Clone())
	}
	s.mu.RUnlock()

	return q.Apply(all), nil
}

func (s *BookingStore) Aggregate(ctx context.Context, preds []shared.Predicate) ([]shared.StatusTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate bookings", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[booking.Status]*shared.StatusTotals)
	for _, b := range s.bookings {
		if !shared.MatchesAll(preds, b) {
			continue
		}
		t, ok := byStatus[b.Status()]
		if !ok {
			t = &shared.StatusTotals{Status: b.Status()}
			byStatus[b.Status()] = t
		}
		t.Count++
		t.Quantity += int64(b.Quantity())
		t.RevenueCents += b.TotalAmount().Cents()
	}

	out := make([]shared.StatusTotals, 0, len(byStatus))
	for _, st := range booking.AllStatuses {
		if t, ok := byStatus[st]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}
