package repository

import (
	"context"

	"event-bookings/internal/domain/booking"
	"event-bookings/internal/infra"
	"event-bookings/internal/infra/repository/converter"
	"event-bookings/internal/pkg/pgconv"
	"event-bookings/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, selectBookingByIDSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking row", err)
	}
	return b, nil
}

func (r *BookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingInsertArgs(b)...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Status().String(),
		int32(b.Quantity()),
		pgconv.StringPtrToPgtype(b.EVoucher()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("booking not found")
	}
	return nil
}

func (r *BookingRepository) Remove(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("booking not found")
	}
	return nil
}

func (r *BookingRepository) Query(ctx context.Context, q shared.Query) ([]*booking.Booking, error) {
	sql, args, err := buildSelect(q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}

	out := make([]*booking.Booking, 0, len(records))
	for _, row := range records {
		b, err := converter.BookingFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking row", err)
		}
		out = append(out, b)
	}
	return out, nil
}

type statusTotalsRow struct {
	Status       string `db:"status"`
	Count        int64  `db:"count"`
	Quantity     int64  `db:"quantity"`
	RevenueCents int64  `db:"revenue_cents"`
}

func (r *BookingRepository) Aggregate(ctx context.Context, preds []shared.Predicate) ([]shared.StatusTotals, error) {
	sql, args, err := buildAggregate(preds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking aggregate", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate bookings", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[statusTotalsRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking totals", err)
	}

	byStatus := make(map[booking.Status]shared.StatusTotals, len(records))
	for _, row := range records {
		st, err := booking.NewStatus(row.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("unexpected booking status", err)
		}
		byStatus[st] = shared.StatusTotals{
			Status:       st,
			Count:        row.Count,
			Quantity:     row.Quantity,
			RevenueCents: row.RevenueCents,
		}
	}

	out := make([]shared.StatusTotals, 0, len(byStatus))
	for _, st := range booking.AllStatuses {
		if t, ok := byStatus[st]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
