//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/infra/memstore"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/usecase/queries"
	"event-bookings/internal/usecase/shared"
	"event-bookings/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type seedBooking struct {
	userID   string
	customer string
	event    string
	invoice  string
	date     time.Time
	cents    int64
	qty      int
	status   booking.Status
}

// seed stores bookings with strictly increasing createdAt in slice order and returns their ids.
func seed(t *testing.T, store *memstore.BookingStore, rows ...seedBooking) []string {
	t.Helper()
	ids := make([]string, 0, len(rows))
	for i, r := range rows {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = fmt.Sprintf("b-%03d", i)
			b.CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
			b.UpdatedAt = b.CreatedAt
			if r.userID != "" {
				b.UserID = r.userID
			}
			if r.customer != "" {
				b.CustomerName = r.customer
			}
			if r.event != "" {
				b.EventName = r.event
			}
			if r.invoice != "" {
				b.InvoiceID = r.invoice
			}
			if !r.date.IsZero() {
				b.BookingDate = r.date
			}
			if r.cents != 0 {
				b.PriceCents = r.cents
			}
			if r.qty != 0 {
				b.Quantity = r.qty
			}
			if r.status != "" {
				b.Status = r.status
			}
		}).BuildDomain()
		require.NoError(t, store.Add(context.Background(), b))
		ids = append(ids, b.ID())
	}
	return ids
}

func viewIDs(views []*queries.BookingView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestBookingQueries_List(t *testing.T) {
	ctx := context.Background()
	admin := shared.Actor{UserID: "admin-1", IsAdmin: true}
	june := func(day int) time.Time { return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC) }

	t.Run("admin sees all, member sees own", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{userID: "u1"},
			seedBooking{userID: "u2"},
			seedBooking{userID: "u1"},
		)
		q := queries.NewBookingQueries(store)

		all, err := q.List(ctx, queries.Filter{}, admin)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mine, err := q.List(ctx, queries.Filter{}, shared.Actor{UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b-002", "b-000"}, viewIDs(mine))
		for _, v := range mine {
			assert.Equal(t, "u1", v.UserID)
		}

		none, err := q.List(ctx, queries.Filter{}, shared.Actor{UserID: "u3"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("status filter", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{status: booking.StatusPending},
			seedBooking{status: booking.StatusConfirmed},
			seedBooking{status: booking.StatusCancelled},
			seedBooking{status: booking.StatusConfirmed},
		)
		q := queries.NewBookingQueries(store)

		got, err := q.List(ctx, queries.Filter{Statuses: []string{"confirmed"}, SortBy: "Other"}, admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-001", "b-003"}, viewIDs(got))

		got, err = q.List(ctx, queries.Filter{Statuses: []string{"Pending", "Cancelled"}, SortBy: "Other"}, admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-000", "b-002"}, viewIDs(got))
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{date: june(1)},
			seedBooking{date: june(10)},
			seedBooking{date: june(20)},
			seedBooking{date: june(30)},
		)
		q := queries.NewBookingQueries(store)

		from, to := june(10), june(20)
		got, err := q.List(ctx, queries.Filter{FromDate: &from, ToDate: &to, SortBy: "BookingDate"}, admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-001", "b-002"}, viewIDs(got))

		got, err = q.List(ctx, queries.Filter{FromDate: &to, SortBy: "BookingDate"}, admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-002", "b-003"}, viewIDs(got))
	})

	t.Run("search matches customer, event or invoice case-sensitively", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{customer: "Bob Jazz", event: "Opera Night", invoice: "INV-1"},
			seedBooking{customer: "Carol", event: "Jazz Festival", invoice: "INV-2"},
			seedBooking{customer: "Dave", event: "Opera Night", invoice: "JAZZ-3"},
			seedBooking{customer: "Erin", event: "Rock Show", invoice: "INV-4"},
		)
		q := queries.NewBookingQueries(store)

		got, err := q.List(ctx, queries.Filter{Search: "Jazz", SortBy: "Other"}, admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"b-000", "b-001"}, viewIDs(got))

		got, err = q.List(ctx, queries.Filter{Search: "jazz"}, admin)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sort orders", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{cents: 3000, date: june(3)},
			seedBooking{cents: 1000, date: june(1)},
			seedBooking{cents: 2000, date: june(2)},
		)
		q := queries.NewBookingQueries(store)

		testCases := []struct {
			name   string
			filter queries.Filter
			want   []string
		}{
			{name: "default newest first", filter: queries.Filter{}, want: []string{"b-002", "b-001", "b-000"}},
			{name: "price ascending", filter: queries.Filter{SortBy: "Price"}, want: []string{"b-001", "b-002", "b-000"}},
			{name: "price descending", filter: queries.Filter{SortBy: "Price", SortDesc: true}, want: []string{"b-000", "b-002", "b-001"}},
			{name: "booking date descending", filter: queries.Filter{SortBy: "BookingDate", SortDesc: true}, want: []string{"b-000", "b-002", "b-001"}},
			{name: "unknown key is createdAt ascending", filter: queries.Filter{SortBy: "Nope", SortDesc: true}, want: []string{"b-000", "b-001", "b-002"}},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := q.List(ctx, tc.filter, admin)
				require.NoError(t, err)
				assert.Equal(t, tc.want, viewIDs(got))
			})
		}
	})

	t.Run("pages are disjoint and cover everything", func(t *testing.T) {
		store := memstore.NewBookingStore()
		rows := make([]seedBooking, 25)
		for i := range rows {
			rows[i] = seedBooking{cents: 1000}
		}
		all := seed(t, store, rows...)
		q := queries.NewBookingQueries(store)

		seen := make(map[string]struct{})
		for page := 0; page < 3; page++ {
			got, err := q.List(ctx, queries.Filter{SortBy: "Price", Page: page, PageSize: 10}, admin)
			require.NoError(t, err)
			if page < 2 {
				assert.Len(t, got, 10)
			} else {
				assert.Len(t, got, 5)
			}
			for _, id := range viewIDs(got) {
				_, dup := seen[id]
				assert.False(t, dup, "id %s appeared on two pages", id)
				seen[id] = struct{}{}
			}
		}
		assert.Len(t, seen, len(all))

		empty, err := q.List(ctx, queries.Filter{Page: 5, PageSize: 10}, admin)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("invalid filter", func(t *testing.T) {
		q := queries.NewBookingQueries(memstore.NewBookingStore())

		_, err := q.List(ctx, queries.Filter{Statuses: []string{"Refunded"}}, admin)
		assert.True(t, errs.Is(err, errs.ErrInvalidFilter))

		_, err = q.List(ctx, queries.Filter{Page: -1}, admin)
		assert.True(t, errs.Is(err, errs.ErrInvalidFilter))
	})

	t.Run("store failure is marked", func(t *testing.T) {
		q := queries.NewBookingQueries(memstore.NewBookingStore())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := q.List(cancelled, queries.Filter{}, admin)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewBookingStore()
	voucher := "SUMMER25"
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.EVoucher = &voucher }).BuildDomain()
	require.NoError(t, store.Add(ctx, b))
	q := queries.NewBookingQueries(store)

	t.Run("found", func(t *testing.T) {
		got, err := q.GetByID(ctx, b.ID())
		require.NoError(t, err)

		want := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
			bb.ID = b.ID()
			bb.EVoucher = &voucher
		}).BuildView()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, int64(59998), got.TotalAmountCents)
	})

	t.Run("not found", func(t *testing.T) {
		got, err := q.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
		assert.Nil(t, got)
	})
}

func TestBookingQueries_Statistics(t *testing.T) {
	ctx := context.Background()

	t.Run("totals and breakdown", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{userID: "u1", cents: 5000, qty: 1, status: booking.StatusConfirmed},
			seedBooking{userID: "u1", cents: 6000, qty: 2, status: booking.StatusPending},
		)
		q := queries.NewBookingQueries(store)

		stats, err := q.Statistics(ctx, shared.Actor{IsAdmin: true})
		require.NoError(t, err)

		want := &queries.BookingStats{
			TotalBookings:  2,
			TicketQuantity: 3,
			RevenueCents:   17000,
			ByStatus: []queries.StatusBreakdown{
				{Status: "Pending", Count: 1, TicketQuantity: 2, RevenueCents: 12000},
				{Status: "Confirmed", Count: 1, TicketQuantity: 1, RevenueCents: 5000},
			},
		}
		if diff := cmp.Diff(want, stats); diff != "" {
			t.Errorf("stats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cancelled bookings count and member scope applies", func(t *testing.T) {
		store := memstore.NewBookingStore()
		seed(t, store,
			seedBooking{userID: "u1", cents: 1000, qty: 1, status: booking.StatusCancelled},
			seedBooking{userID: "u1", cents: 1000, qty: 3},
			seedBooking{userID: "u2", cents: 9900, qty: 4},
		)
		q := queries.NewBookingQueries(store)

		stats, err := q.Statistics(ctx, shared.Actor{UserID: "u1"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalBookings)
		assert.Equal(t, int64(4), stats.TicketQuantity)
		assert.Equal(t, int64(4000), stats.RevenueCents)
		require.Len(t, stats.ByStatus, 2)
		assert.Equal(t, "Pending", stats.ByStatus[0].Status)
		assert.Equal(t, "Cancelled", stats.ByStatus[1].Status)
	})

	t.Run("empty store", func(t *testing.T) {
		q := queries.NewBookingQueries(memstore.NewBookingStore())
		stats, err := q.Statistics(ctx, shared.Actor{IsAdmin: true})
		require.NoError(t, err)
		assert.Zero(t, stats.TotalBookings)
		assert.Empty(t, stats.ByStatus)
	})
}
