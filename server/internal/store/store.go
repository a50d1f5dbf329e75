package store

import (
	"context"

	"github.com/kachalmers/tuiter/server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, sqlite, postgres)
// and must be safe for concurrent use.
type Store interface {
	Users() Users
	Tuits() Tuits
	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Users persists accounts. Create assigns an ID when u.ID is empty and
// returns model.ErrConflict for a duplicate username. Lookups return
// model.ErrNotFound. List preserves insertion order.
type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Delete removes the user and its tuits, returning the number of users removed.
	Delete(ctx context.Context, userID string) (int64, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

// Tuits persists posts. Create assigns an ID when t.ID is empty.
type Tuits interface {
	Create(ctx context.Context, t *model.Tuit) (*model.Tuit, error)
	List(ctx context.Context) ([]*model.Tuit, error)
	Get(ctx context.Context, tuitID string) (*model.Tuit, error)
	Delete(ctx context.Context, tuitID string) (int64, error)
}
