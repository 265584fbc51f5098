package commands

import (
	"context"
	"log/slog"
	"time"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/infra"
	"event-bookings/internal/pkg/clock"
	"event-bookings/internal/pkg/errs"
	"event-bookings/internal/pkg/patch"
	"event-bookings/internal/usecase/queries"
	"event-bookings/internal/usecase/shared"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

type CreateBookingInput struct {
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
	Price              float64
	Quantity           int
	EVoucher           *string
}

// UpdateBookingInput patches a booking. Nil fields keep the stored value and
// an empty voucher clears it.
type UpdateBookingInput struct {
	ID       string
	Status   *string
	Quantity *int
	EVoucher *string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	Update(ctx context.Context, in UpdateBookingInput) error
	Cancel(ctx context.Context, id string, actorUserID string) (*queries.BookingView, error)
	Delete(ctx context.Context, id string) error
}

type bookingUseCaseImpl struct {
	store shared.BookingStore
	clock clock.Clock
}

func NewBookingUseCase(store shared.BookingStore, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{store: store, clock: clk}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	price, err := booking.NewMoneyFromAmount(in.Price)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	b, err := booking.NewBooking(uc.clock, booking.Draft{
		InvoiceID:    in.InvoiceID,
		UserID:       in.UserID,
		CustomerName: in.CustomerName,
		Event: booking.EventRef{
			EventID:            in.EventID,
			EventName:          in.EventName,
			CategoryID:         in.CategoryID,
			CategoryName:       in.CategoryName,
			TicketCategoryID:   in.TicketCategoryID,
			TicketCategoryName: in.TicketCategoryName,
		},
		BookingDate: in.BookingDate,
		Price:       price,
		Quantity:    in.Quantity,
		EVoucher:    in.EVoucher,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := uc.store.Add(ctx, b); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking created",
		slog.String("booking_id", b.ID()),
		slog.String("user_id", b.UserID()),
		slog.String("event_id", b.Event().EventID),
		slog.Int("quantity", b.Quantity()),
		slog.String("total_amount", b.TotalAmount().String()),
	)
	return queries.NewBookingView(b), nil
}

func (uc *bookingUseCaseImpl) Update(ctx context.Context, in UpdateBookingInput) error {
	status, err := patch.Map(in.Status, booking.NewStatus)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	b, err := uc.load(ctx, in.ID)
	if err != nil {
		return err
	}

	from := b.Status()
	if err := b.Apply(booking.Patch{Status: status, Quantity: in.Quantity, EVoucher: in.EVoucher}, uc.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := uc.save(ctx, b); err != nil {
		return err
	}

	if from != b.Status() {
		slog.Info("booking status changed",
			slog.String("booking_id", b.ID()),
			slog.String("from", from.String()),
			slog.String("to", b.Status().String()),
		)
	}
	return nil
}

// Cancel reports a booking owned by someone else as not found.
func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, id string, actorUserID string) (*queries.BookingView, error) {
	b, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(actorUserID) {
		return nil, errs.ErrBookingNotFound
	}

	b.Cancel(uc.clock.Now())
	if err := uc.save(ctx, b); err != nil {
		return nil, err
	}

	slog.Info("booking cancelled", slog.String("booking_id", b.ID()), slog.String("user_id", actorUserID))
	return queries.NewBookingView(b), nil
}

func (uc *bookingUseCaseImpl) Delete(ctx context.Context, id string) error {
	if err := uc.store.Remove(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking deleted", slog.String("booking_id", id))
	return nil
}

func (uc *bookingUseCaseImpl) load(ctx context.Context, id string) (*booking.Booking, error) {
	b, err := uc.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

// save has no version check; a concurrent writer can be overwritten.
func (uc *bookingUseCaseImpl) save(ctx context.Context, b *booking.Booking) error {
	if err := uc.store.Update(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
