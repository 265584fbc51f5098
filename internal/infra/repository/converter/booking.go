package converter

import (
	"event-bookings/internal/domain/booking"
	"event-bookings/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// BookingRow mirrors one row of the bookings table.
type BookingRow struct {
	ID                 string             `db:"id"`
	InvoiceID          string             `db:"invoice_id"`
	UserID             string             `db:"user_id"`
	CustomerName       string             `db:"customer_name"`
	EventID            string             `db:"event_id"`
	EventName          string             `db:"event_name"`
	CategoryID         string             `db:"category_id"`
	CategoryName       string             `db:"category_name"`
	TicketCategoryID   string             `db:"ticket_category_id"`
	TicketCategoryName string             `db:"ticket_category_name"`
	BookingDate        pgtype.Timestamptz `db:"booking_date"`
	PriceCents         int64              `db:"price_cents"`
	Quantity           int32              `db:"quantity"`
	EVoucher           pgtype.Text        `db:"e_voucher"`
	Status             string             `db:"status"`
	CreatedAt          pgtype.Timestamptz `db:"created_at"`
	UpdatedAt          pgtype.Timestamptz `db:"updated_at"`
}

func BookingFromRow(row BookingRow) (*booking.Booking, error) {
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(row.PriceCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		row.ID,
		row.InvoiceID,
		row.UserID,
		row.CustomerName,
		booking.EventRef{
			EventID:            row.EventID,
			EventName:          row.EventName,
			CategoryID:         row.CategoryID,
			CategoryName:       row.CategoryName,
			TicketCategoryID:   row.TicketCategoryID,
			TicketCategoryName: row.TicketCategoryName,
		},
		pgconv.TimeFromPgtype(row.BookingDate),
		price,
		int(row.Quantity),
		pgconv.StringPtrFromPgtype(row.EVoucher),
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

// BookingInsertArgs returns the column values in insert order.
func BookingInsertArgs(b *booking.Booking) []any {
	ev := b.Event()
	return []any{
		b.ID(),
		b.InvoiceID(),
		b.UserID(),
		b.CustomerName(),
		ev.EventID,
		ev.EventName,
		ev.CategoryID,
		ev.CategoryName,
		ev.TicketCategoryID,
		ev.TicketCategoryName,
		pgconv.TimeToPgtype(b.BookingDate()),
		b.Price().Cents(),
		int32(b.Quantity()),
		pgconv.StringPtrToPgtype(b.EVoucher()),
		b.Status().String(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}
