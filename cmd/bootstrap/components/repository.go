package components

import (
	"errors"
	"log/slog"

	"event-bookings/internal/infra/memstore"
	"event-bookings/internal/infra/repository"
	"event-bookings/internal/pkg/config"
	"event-bookings/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewBookingStore,
	),
)

// NewBookingStore picks the record store named by STORE_DRIVER.
func NewBookingStore(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) (shared.BookingStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory booking store; data is lost on restart")
		return memstore.NewBookingStore(), nil
	case config.StoreDriverPostgres:
		if pool == nil {
			return nil, errors.New("postgres store selected but no database pool is available")
		}
		return repository.NewBookingRepository(pool), nil
	default:
		return nil, errors.New("unknown store driver: " + cfg.Store.Driver)
	}
}
