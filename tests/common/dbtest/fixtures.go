//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertBooking writes b as-is, bypassing the application layer.
func InsertBooking(t *testing.T, db DBLike, b *booking.Booking) {
	t.Helper()

	ev := b.Event()
	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (id, invoice_id, user_id, customer_name,
			event_id, event_name, category_id, category_name, ticket_category_id, ticket_category_name,
			booking_date, price_cents, quantity, e_voucher, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		b.ID(), b.InvoiceID(), b.UserID(), b.CustomerName(),
		ev.EventID, ev.EventName, ev.CategoryID, ev.CategoryName, ev.TicketCategoryID, ev.TicketCategoryName,
		b.BookingDate(), b.Price().Cents(), b.Quantity(), pgconv.StringPtrToPgtype(b.EVoucher()),
		b.Status().String(), b.CreatedAt(), b.UpdatedAt(),
	)
	require.NoError(t, err)
}

func CountBookings(t *testing.T, db DBLike) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties every table the service owns.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE bookings")
	return err
}
