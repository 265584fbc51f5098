package booking

import (
	"strings"
	"time"

	"event-bookings/internal/pkg/clock"
	"event-bookings/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus           = errs.New("invalid booking status")
	ErrInvalidStatusTransition = errs.New("invalid booking status transition")
	ErrNegativePrice           = errs.New("price cannot be negative")
	ErrPriceTooLarge           = errs.New("price cannot exceed 10000000.00")
	ErrInvalidQuantity         = errs.New("quantity must be between 1 and 10000")
	ErrMissingInvoiceID        = errs.New("invoice id is required")
	ErrMissingUserID           = errs.New("user id is required")
	ErrMissingEventID          = errs.New("event id is required")
)

// Draft carries the caller-supplied fields of a new booking.
type Draft struct {
	InvoiceID    string
	UserID       string
	CustomerName string
	Event        EventRef
	BookingDate  time.Time
	Price        Money
	Quantity     int
	EVoucher     *string
}

// Patch lists the only fields that may change after creation. Nil keeps the current value.
type Patch struct {
	Status   *Status
	Quantity *int
	EVoucher *string
}

type Booking struct {
	id           string
	invoiceID    string
	userID       string
	customerName string
	event        EventRef
	bookingDate  time.Time
	price        Money
	quantity     Quantity
	eVoucher     *string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBooking(clk clock.Clock, d Draft) (*Booking, error) {
	if strings.TrimSpace(d.InvoiceID) == "" {
		return nil, ErrMissingInvoiceID
	}
	if strings.TrimSpace(d.UserID) == "" {
		return nil, ErrMissingUserID
	}
	if strings.TrimSpace(d.Event.EventID) == "" {
		return nil, ErrMissingEventID
	}
	qty, err := NewQuantity(d.Quantity)
	if err != nil {
		return nil, err
	}

	now := timestamp(clk.Now())
	return &Booking{
		id:           uuid.New().String(),
		invoiceID:    d.InvoiceID,
		userID:       d.UserID,
		customerName: d.CustomerName,
		event:        d.Event,
		bookingDate:  timestamp(d.BookingDate),
		price:        d.Price,
		quantity:     qty,
		eVoucher:     normalizeVoucher(d.EVoucher),
		status:       StatusPending,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructBooking rebuilds a stored booking without re-running creation rules.
func ReconstructBooking(
	id, invoiceID, userID, customerName string,
	event EventRef,
	bookingDate time.Time,
	price Money,
	quantity int,
	eVoucher *string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		invoiceID:    invoiceID,
		userID:       userID,
		customerName: customerName,
		event:        event,
		bookingDate:  bookingDate,
		price:        price,
		quantity:     Quantity{value: quantity},
		eVoucher:     eVoucher,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Booking) Apply(p Patch, now time.Time) error {
	status := b.status
	if p.Status != nil {
		if !b.status.CanTransitionTo(*p.Status) {
			return ErrInvalidStatusTransition
		}
		status = *p.Status
	}

	qty := b.quantity
	if p.Quantity != nil {
		q, err := NewQuantity(*p.Quantity)
		if err != nil {
			return err
		}
		qty = q
	}

	b.status = status
	b.quantity = qty
	if p.EVoucher != nil {
		b.eVoucher = normalizeVoucher(p.EVoucher)
	}
	b.updatedAt = timestamp(now)
	return nil
}

// Cancel is allowed from any state and is idempotent.
func (b *Booking) Cancel(now time.Time) {
	b.status = StatusCancelled
	b.updatedAt = timestamp(now)
}

func (b *Booking) Clone() *Booking {
	c := *b
	if b.eVoucher != nil {
		v := *b.eVoucher
		c.eVoucher = &v
	}
	return &c
}

func (b *Booking) IsOwnedBy(userID string) bool {
	return userID != "" && b.userID == userID
}

// TotalAmount is derived on every read so it cannot drift from price and quantity.
func (b *Booking) TotalAmount() Money {
	return b.price.Times(b.quantity.Int())
}

func (b *Booking) ID() string             { return b.id }
func (b *Booking) InvoiceID() string      { return b.invoiceID }
func (b *Booking) UserID() string         { return b.userID }
func (b *Booking) CustomerName() string   { return b.customerName }
func (b *Booking) Event() EventRef        { return b.event }
func (b *Booking) BookingDate() time.Time { return b.bookingDate }
func (b *Booking) Price() Money           { return b.price }
func (b *Booking) Quantity() int          { return b.quantity.Int() }
func (b *Booking) EVoucher() *string      { return b.eVoucher }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

func normalizeVoucher(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// timestamp matches the microsecond precision of timestamptz.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
