package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/scalable_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/scalable_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/scalable_booking/internal/core/ports"
	"github.com/srgjo27/scalable_booking/internal/platform/config"
	"github.com/srgjo27/scalable_booking/internal/platform/database"
)

// Store bundles the repositories of one storage backend.
type Store struct {
	Bookings  ports.BookingRepository
	ShowSeats ports.ShowSeatRepository
	Catalog   ports.SeatCatalog

	db *sql.DB
}

// Open builds the repositories selected by cfg.App.Storage. The memory
// backend seeds one demo screen so shows can be registered against it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if cfg.App.Storage == config.StorageMemory {
		catalog := memory.NewSeatCatalog()
		tenantID := uuid.New()
		screen := catalog.SeedScreen(tenantID, 10, 12)
		log.Info("using in-memory storage",
			zap.String("screen_id", screen.ID.String()),
			zap.String("tenant_id", tenantID.String()),
		)

		return &Store{
			Bookings:  memory.NewBookingRepository(),
			ShowSeats: memory.NewShowSeatRepository(catalog),
			Catalog:   catalog,
		}, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("database schema applied")
	}

	return &Store{
		Bookings:  postgres.NewBookingRepository(db),
		ShowSeats: postgres.NewShowSeatRepository(db),
		Catalog:   postgres.NewSeatCatalog(db),
		db:        db,
	}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
