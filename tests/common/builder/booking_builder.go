//go:build unit || e2e

package builder

import (
	"time"

	"event-bookings/internal/domain/booking"
	reqdto "event-bookings/internal/handler/dto/request"
	"event-bookings/internal/pkg/clock"
	"event-bookings/internal/usecase/commands"
	"event-bookings/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                 string
	InvoiceID          string
	UserID             string
	CustomerName       string
	EventID            string
	EventName          string
	CategoryID         string
	CategoryName       string
	TicketCategoryID   string
	TicketCategoryName string
	BookingDate        time.Time
	PriceCents         int64
	Quantity           int
	EVoucher           *string
	Status             booking.Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:                 uuid.New().String(),
		InvoiceID:          "INV-1001",
		UserID:             "user-1",
		CustomerName:       "Alice Andersson",
		EventID:            "event-1",
		EventName:          "Summer Concert",
		CategoryID:         "cat-music",
		CategoryName:       "Music",
		TicketCategoryID:   "tc-standard",
		TicketCategoryName: "Standard",
		BookingDate:        time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		PriceCents:         29999,
		Quantity:           2,
		Status:             booking.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) event() booking.EventRef {
	return booking.EventRef{
		EventID:            b.EventID,
		EventName:          b.EventName,
		CategoryID:         b.CategoryID,
		CategoryName:       b.CategoryName,
		TicketCategoryID:   b.TicketCategoryID,
		TicketCategoryName: b.TicketCategoryName,
	}
}

// Build methods
func (b *BookingBuilder) BuildDraft() booking.Draft {
	price, _ := booking.NewMoney(b.PriceCents)
	return booking.Draft{
		InvoiceID:    b.InvoiceID,
		UserID:       b.UserID,
		CustomerName: b.CustomerName,
		Event:        b.event(),
		BookingDate:  b.BookingDate,
		Price:        price,
		Quantity:     b.Quantity,
		EVoucher:     b.EVoucher,
	}
}

// BuildNew runs the creation rules, so ID, status and timestamps come from the domain.
func (b *BookingBuilder) BuildNew(clk clock.Clock) (*booking.Booking, error) {
	return booking.NewBooking(clk, b.BuildDraft())
}

// BuildDomain reconstructs a stored booking with exactly the builder's fields.
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	price, _ := booking.NewMoney(b.PriceCents)
	return booking.ReconstructBooking(
		b.ID, b.InvoiceID, b.UserID, b.CustomerName,
		b.event(),
		b.BookingDate,
		price,
		b.Quantity,
		b.EVoucher,
		b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		InvoiceID:          b.InvoiceID,
		UserID:             b.UserID,
		CustomerName:       b.CustomerName,
		EventID:            b.EventID,
		EventName:          b.EventName,
		CategoryID:         b.CategoryID,
		CategoryName:       b.CategoryName,
		TicketCategoryID:   b.TicketCategoryID,
		TicketCategoryName: b.TicketCategoryName,
		BookingDate:        b.BookingDate,
		Price:              float64(b.PriceCents) / 100,
		Quantity:           b.Quantity,
		EVoucher:           b.EVoucher,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	price := float64(b.PriceCents) / 100
	return reqdto.CreateBookingRequest{
		InvoiceID:          b.InvoiceID,
		EventID:            b.EventID,
		EventName:          b.EventName,
		CategoryID:         b.CategoryID,
		CategoryName:       b.CategoryName,
		TicketCategoryID:   b.TicketCategoryID,
		TicketCategoryName: b.TicketCategoryName,
		BookingDate:        b.BookingDate,
		Price:              &price,
		Quantity:           b.Quantity,
		EVoucher:           b.EVoucher,
	}
}
