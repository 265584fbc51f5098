package queries

import (
	"strings"
	"time"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/usecase/shared"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Recognised sortBy values. Anything else falls back to createdAt ascending,
// and an empty value means createdAt descending.
const (
	SortKeyBookingDate = "BookingDate"
	SortKeyPrice       = "Price"
)

// Filter describes which bookings to select, how to order them and which page
// to return. The zero value selects everything, newest first, first page.
type Filter struct {
	Statuses []string
	FromDate *time.Time
	ToDate   *time.Time
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// BuildQuery turns a filter and the caller's scope into a store query.
// Ownership comes first so no later predicate can widen the result.
func BuildQuery(f Filter, actor shared.Actor) (shared.Query, error) {
	if f.Page < 0 {
		return shared.Query{}, errs.Mark(errs.Newf("page must not be negative, got %d", f.Page), errs.ErrInvalidFilter)
	}
	preds, err := filterPredicates(f, actor)
	if err != nil {
		return shared.Query{}, err
	}

	size := ValidateLimit(f.PageSize)
	return shared.Query{
		Predicates: preds,
		Order:      orderFor(f.SortBy, f.SortDesc),
		Window:     shared.Window{Offset: f.Page * size, Limit: size},
	}, nil
}

func filterPredicates(f Filter, actor shared.Actor) ([]shared.Predicate, error) {
	var preds []shared.Predicate
	preds = append(preds, scopePredicates(actor)...)

	if len(f.Statuses) > 0 {
		statuses, err := parseStatuses(f.Statuses)
		if err != nil {
			return nil, err
		}
		preds = append(preds, shared.StatusIn{Statuses: statuses})
	}

	if f.FromDate != nil && f.ToDate != nil && f.FromDate.After(*f.ToDate) {
		return nil, errs.Mark(errs.New("fromDate must not be after toDate"), errs.ErrInvalidFilter)
	}
	if f.FromDate != nil {
		preds = append(preds, shared.BookedOnOrAfter{From: f.FromDate.UTC()})
	}
	if f.ToDate != nil {
		preds = append(preds, shared.BookedOnOrBefore{To: f.ToDate.UTC()})
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, shared.TextContains{Term: term})
	}
	return preds, nil
}

// scopePredicates restricts members to their own bookings. A non-admin
// without a user id is not restricted, which mirrors the service contract;
// the HTTP layer always supplies the id.
func scopePredicates(actor shared.Actor) []shared.Predicate {
	if actor.IsAdmin || actor.UserID == "" {
		return nil
	}
	return []shared.Predicate{shared.OwnedBy{UserID: actor.UserID}}
}

func parseStatuses(names []string) ([]booking.Status, error) {
	out := make([]booking.Status, 0, len(names))
	seen := make(map[booking.Status]struct{}, len(names))
	for _, name := range names {
		st, err := booking.ParseStatusName(name)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "unknown status %q", name), errs.ErrInvalidFilter)
		}
		if _, dup := seen[st]; dup {
			continue
		}
		seen[st] = struct{}{}
		out = append(out, st)
	}
	return out, nil
}

func orderFor(sortBy string, desc bool) []shared.OrderKey {
	switch sortBy {
	case "":
		return withTieBreak(shared.OrderKey{Field: shared.SortByCreatedAt, Desc: true})
	case SortKeyBookingDate:
		return withTieBreak(shared.OrderKey{Field: shared.SortByBookingDate, Desc: desc})
	case SortKeyPrice:
		return withTieBreak(shared.OrderKey{Field: shared.SortByPrice, Desc: desc})
	default:
		return withTieBreak(shared.OrderKey{Field: shared.SortByCreatedAt})
	}
}

// withTieBreak appends createdAt and id in the primary direction so that
// pages are disjoint even when primary keys collide.
func withTieBreak(primary shared.OrderKey) []shared.OrderKey {
	keys := []shared.OrderKey{primary}
	if primary.Field != shared.SortByCreatedAt {
		keys = append(keys, shared.OrderKey{Field: shared.SortByCreatedAt, Desc: primary.Desc})
	}
	return append(keys, shared.OrderKey{Field: shared.SortByID, Desc: primary.Desc})
}
