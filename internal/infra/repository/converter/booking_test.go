//go:build unit

package converter_test

import (
	"testing"
	"time"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/infra/repository/converter"
	"event-bookings/internal/pkg/clock"
	"event-bookings/tests/common/builder"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// column positions in BookingInsertArgs
const (
	priceArg    = 11
	quantityArg = 12
)

func TestBookingInsertArgs(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))

	t.Run("largest accepted booking is stored without narrowing", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.PriceCents = booking.MaxPriceCents
			b.Quantity = booking.MaxQuantity
		}).BuildNew(clk)
		require.NoError(t, err)

		args := converter.BookingInsertArgs(b)
		require.Len(t, args, 17)
		assert.Equal(t, booking.MaxPriceCents, args[priceArg])
		assert.Equal(t, int32(booking.MaxQuantity), args[quantityArg])
		assert.Equal(t, b.Quantity(), int(args[quantityArg].(int32)))
	})

	t.Run("quantity that would not fit the column never reaches it", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Quantity = 1<<32 + 1
		}).BuildNew(clk)
		assert.ErrorIs(t, err, booking.ErrInvalidQuantity)
	})
}

func TestBookingFromRow(t *testing.T) {
	ts := pgtype.Timestamptz{Time: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), Valid: true}
	row := converter.BookingRow{
		ID:          "b-1",
		InvoiceID:   "INV-1",
		UserID:      "user-1",
		EventID:     "event-1",
		BookingDate: ts,
		PriceCents:  booking.MaxPriceCents,
		Quantity:    booking.MaxQuantity,
		Status:      "Confirmed",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	t.Run("boundary values survive the round trip", func(t *testing.T) {
		b, err := converter.BookingFromRow(row)
		require.NoError(t, err)
		assert.Equal(t, booking.MaxQuantity, b.Quantity())
		assert.Equal(t, booking.MaxPriceCents, b.Price().Cents())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.EVoucher())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		bad := row
		bad.Status = "Refunded"
		_, err := converter.BookingFromRow(bad)
		assert.Error(t, err)
	})
}
