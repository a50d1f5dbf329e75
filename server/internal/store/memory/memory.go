// Package memory is an in-process store.Store used by tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

type memStore struct {
	mu sync.RWMutex

	users     map[string]*model.User
	userOrder []string
	tuits     map[string]*model.Tuit
	tuitOrder []string
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		users: make(map[string]*model.User),
		tuits: make(map[string]*model.Tuit),
	}
}

func (s *memStore) Users() store.Users { return (*users)(s) }
func (s *memStore) Tuits() store.Tuits { return (*tuits)(s) }

func (s *memStore) Ping(ctx context.Context) error { return ctx.Err() }
func (s *memStore) Close() error                   { return nil }

// removeID drops id from order, keeping the rest in place.
func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// --- Users ---
type users memStore

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Username == in.Username {
			return nil, model.ErrConflict
		}
	}
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if _, ok := u.users[out.ID]; ok {
		return nil, model.ErrConflict
	}
	u.users[out.ID] = &out
	u.userOrder = append(u.userOrder, out.ID)
	cp := out
	return &cp, nil
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*model.User, 0, len(u.userOrder))
	for _, id := range u.userOrder {
		cp := *u.users[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	found, ok := u.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, id := range u.userOrder {
		if found := u.users[id]; found.Username == username {
			cp := *found
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (u *users) Delete(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.deleteLocked(userID), nil
}

func (u *users) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	var matched []string
	for _, id := range u.userOrder {
		if u.users[id].Username == username {
			matched = append(matched, id)
		}
	}
	var n int64
	for _, id := range matched {
		n += u.deleteLocked(id)
	}
	return n, nil
}

// deleteLocked removes a user and cascades to its tuits. Caller holds mu.
func (u *users) deleteLocked(userID string) int64 {
	if _, ok := u.users[userID]; !ok {
		return 0
	}
	delete(u.users, userID)
	u.userOrder = removeID(u.userOrder, userID)
	for _, tid := range append([]string(nil), u.tuitOrder...) {
		if u.tuits[tid].AuthorID == userID {
			delete(u.tuits, tid)
			u.tuitOrder = removeID(u.tuitOrder, tid)
		}
	}
	return 1
}

// --- Tuits ---
type tuits memStore

func (t *tuits) Create(ctx context.Context, in *model.Tuit) (*model.Tuit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.users[in.AuthorID]; !ok {
		return nil, model.ErrNotFound
	}
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if _, ok := t.tuits[out.ID]; ok {
		return nil, model.ErrConflict
	}
	t.tuits[out.ID] = &out
	t.tuitOrder = append(t.tuitOrder, out.ID)
	cp := out
	return &cp, nil
}

func (t *tuits) List(ctx context.Context) ([]*model.Tuit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*model.Tuit, 0, len(t.tuitOrder))
	for _, id := range t.tuitOrder {
		cp := *t.tuits[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (t *tuits) Get(ctx context.Context, tuitID string) (*model.Tuit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	found, ok := t.tuits[tuitID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (t *tuits) Delete(ctx context.Context, tuitID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tuits[tuitID]; !ok {
		return 0, nil
	}
	delete(t.tuits, tuitID)
	t.tuitOrder = removeID(t.tuitOrder, tuitID)
	return 1, nil
}
