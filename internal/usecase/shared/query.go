package shared

import (
	"slices"
	"strings"
	"time"

	"event-bookings/internal/domain/booking"
)

// Predicate is a closed set of filters. Stores either evaluate Matches directly
// or translate each concrete type into their own query language.
type Predicate interface {
	Matches(b *booking.Booking) bool
	isPredicate()
}

type OwnedBy struct {
	UserID string
}

type StatusIn struct {
	Statuses []booking.Status
}

type BookedOnOrAfter struct {
	From time.Time
}

type BookedOnOrBefore struct {
	To time.Time
}

// TextContains is a case-sensitive substring match on customer name, event name or invoice id.
type TextContains struct {
	Term string
}

func (p OwnedBy) Matches(b *booking.Booking) bool { return b.UserID() == p.UserID }

func (p StatusIn) Matches(b *booking.Booking) bool { return slices.Contains(p.Statuses, b.Status()) }

func (p BookedOnOrAfter) Matches(b *booking.Booking) bool { return !b.BookingDate().Before(p.From) }

func (p BookedOnOrBefore) Matches(b *booking.Booking) bool { return !b.BookingDate().After(p.To) }

func (p TextContains) Matches(b *booking.Booking) bool {
	return strings.Contains(b.CustomerName(), p.Term) ||
		strings.Contains(b.Event().EventName, p.Term) ||
		strings.Contains(b.InvoiceID(), p.Term)
}

func (OwnedBy) isPredicate()          {}
func (StatusIn) isPredicate()         {}
func (BookedOnOrAfter) isPredicate()  {}
func (BookedOnOrBefore) isPredicate() {}
func (TextContains) isPredicate()     {}

func MatchesAll(preds []Predicate, b *booking.Booking) bool {
	for _, p := range preds {
		if !p.Matches(b) {
			return false
		}
	}
	return true
}

type SortField string

const (
	SortByBookingDate SortField = "booking_date"
	SortByPrice       SortField = "price"
	SortByCreatedAt   SortField = "created_at"
	SortByID          SortField = "id"
)

type OrderKey struct {
	Field SortField
	Desc  bool
}

// Window is an offset/limit page. Limit 0 means unbounded.
type Window struct {
	Offset int
	Limit  int
}

type Query struct {
	Predicates []Predicate
	Order      []OrderKey
	Window     Window
}

// Compare orders two bookings by the query's keys, earlier keys first.
func (q Query) Compare(a, b *booking.Booking) int {
	for _, k := range q.Order {
		c := compareField(k.Field, a, b)
		if k.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func compareField(f SortField, a, b *booking.Booking) int {
	switch f {
	case SortByBookingDate:
		return a.BookingDate().Compare(b.BookingDate())
	case SortByPrice:
		return cmpInt64(a.Price().Cents(), b.Price().Cents())
	case SortByCreatedAt:
		return a.CreatedAt().Compare(b.CreatedAt())
	case SortByID:
		return strings.Compare(a.ID(), b.ID())
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Apply runs the whole pipeline over an in-memory slice.
func (q Query) Apply(all []*booking.Booking) []*booking.Booking {
	out := make([]*booking.Booking, 0, len(all))
	for _, b := range all {
		if MatchesAll(q.Predicates, b) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, q.Compare)

	start := min(q.Window.Offset, len(out))
	out = out[start:]
	if q.Window.Limit > 0 && len(out) > q.Window.Limit {
		out = out[:q.Window.Limit]
	}
	return out
}
