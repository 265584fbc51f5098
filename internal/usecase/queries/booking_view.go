package queries

import (
	"time"

	"event-bookings/internal/domain/booking"
)

// BookingView is the read model returned to callers. Amounts are in cents.
type BookingView struct {
	ID                 string    `json:"id"`
	InvoiceID          string    `json:"invoice_id"`
	UserID             string    `json:"user_id"`
	CustomerName       string    `json:"customer_name"`
	EventID            string    `json:"event_id"`
	EventName          string    `json:"event_name"`
	CategoryID         string    `json:"category_id"`
	CategoryName       string    `json:"category_name"`
	TicketCategoryID   string    `json:"ticket_category_id"`
	TicketCategoryName string    `json:"ticket_category_name"`
	BookingDate        time.Time `json:"booking_date"`
	PriceCents         int64     `json:"price_cents"`
	Quantity           int       `json:"quantity"`
	TotalAmountCents   int64     `json:"total_amount_cents"`
	EVoucher           *string   `json:"e_voucher,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type StatusBreakdown struct {
	Status         string `json:"status"`
	Count          int64  `json:"count"`
	TicketQuantity int64  `json:"ticket_quantity"`
	RevenueCents   int64  `json:"revenue_cents"`
}

// BookingStats sums every booking in the caller's scope, cancelled ones included,
// and breaks the totals down per status.
type BookingStats struct {
	TotalBookings  int64             `json:"total_bookings"`
	TicketQuantity int64             `json:"ticket_quantity"`
	RevenueCents   int64             `json:"revenue_cents"`
	ByStatus       []StatusBreakdown `json:"by_status"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	ev := b.Event()
	var voucher *string
	if v := b.EVoucher(); v != nil {
		s := *v
		voucher = &s
	}
	return &BookingView{
		ID:                 b.ID(),
		InvoiceID:          b.InvoiceID(),
		UserID:             b.UserID(),
		CustomerName:       b.CustomerName(),
		EventID:            ev.EventID,
		EventName:          ev.EventName,
		CategoryID:         ev.CategoryID,
		CategoryName:       ev.CategoryName,
		TicketCategoryID:   ev.TicketCategoryID,
		TicketCategoryName: ev.TicketCategoryName,
		BookingDate:        b.BookingDate(),
		PriceCents:         b.Price().Cents(),
		Quantity:           b.Quantity(),
		TotalAmountCents:   b.TotalAmount().Cents(),
		EVoucher:           voucher,
		Status:             b.Status().String(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}
