package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kachalmers/tuiter/server/internal/api/validate"
	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// TuitView is a tuit with its author resolved. Author is nil when the
// referenced account no longer exists.
type TuitView struct {
	*model.Tuit
	Author *model.User
}

type TuitService struct {
	store store.Store
	now   func() time.Time
}

func NewTuitService(s store.Store) *TuitService {
	return &TuitService{store: s, now: time.Now}
}

// CreateTuit posts text on behalf of authorID; an unknown author is model.ErrNotFound.
func (s *TuitService) CreateTuit(ctx context.Context, authorID, text string) (*model.Tuit, error) {
	if err := validate.TuitText(text); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	if _, err := s.store.Users().Get(ctx, authorID); err != nil {
		return nil, err
	}
	return s.store.Tuits().Create(ctx, &model.Tuit{
		ID:       uuid.NewString(),
		Tuit:     text,
		AuthorID: authorID,
		PostedOn: s.now().UTC().Truncate(time.Millisecond),
	})
}

// ListTuits returns every tuit in posting order with authors populated.
func (s *TuitService) ListTuits(ctx context.Context) ([]TuitView, error) {
	ts, err := s.store.Tuits().List(ctx)
	if err != nil {
		return nil, err
	}
	authors := map[string]*model.User{}
	out := make([]TuitView, 0, len(ts))
	for _, t := range ts {
		a, ok := authors[t.AuthorID]
		if !ok {
			a, err = s.author(ctx, t.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[t.AuthorID] = a
		}
		out = append(out, TuitView{Tuit: t, Author: a})
	}
	return out, nil
}

func (s *TuitService) GetTuit(ctx context.Context, tuitID string) (*TuitView, error) {
	t, err := s.store.Tuits().Get(ctx, tuitID)
	if err != nil {
		return nil, err
	}
	a, err := s.author(ctx, t.AuthorID)
	if err != nil {
		return nil, err
	}
	return &TuitView{Tuit: t, Author: a}, nil
}

func (s *TuitService) DeleteTuit(ctx context.Context, tuitID string) (*model.DeleteResult, error) {
	n, err := s.store.Tuits().Delete(ctx, tuitID)
	if err != nil {
		return nil, err
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func (s *TuitService) author(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.store.Users().Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	return u, err
}
