package repository

import (
	"context"
	"fmt"

	"github.com/saeid-a/BindingStudio/internal/config"
	"github.com/saeid-a/BindingStudio/internal/database"
	"github.com/saeid-a/BindingStudio/internal/models"
)

// Store is implemented by every profile backend in this package.
type Store interface {
	Create(ctx context.Context, fields models.ProfileFields) (*models.BindingProfile, error)
	Get(ctx context.Context, id int64) (*models.BindingProfile, error)
	List(ctx context.Context) ([]models.BindingProfile, error)
	Update(ctx context.Context, id int64, patch models.ProfilePatch) (*models.BindingProfile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Open returns the backend selected by cfg.StoreDriver and a function that
// releases its connections.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return NewProfileRepository(pool), pool.Close, nil

	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := NewBunProfileRepository(db)
		if err := repo.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil

	case config.StoreMemory, "":
		return NewMemoryProfileRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
