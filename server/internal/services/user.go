package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kachalmers/tuiter/server/internal/api/validate"
	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// CreateUserInput carries a registration; Password is plaintext.
type CreateUserInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// UserService handles user-related operations.
type UserService struct {
	store store.Store
	cost  int
	now   func() time.Time
}

func NewUserService(s store.Store, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{store: s, cost: bcryptCost, now: time.Now}
}

// CreateUser validates the input, hashes the password and persists the account.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := validate.CreateUser(in.Username, in.Password, in.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.store.Users().Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		JoinedOn:     s.now().UTC().Truncate(time.Millisecond),
	})
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

// DeleteUser removes the account and its tuits. A missing id deletes nothing.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (*model.DeleteResult, error) {
	n, err := s.store.Users().Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// DeleteUsersByUsername removes every account with the given username.
func (s *UserService) DeleteUsersByUsername(ctx context.Context, username string) (*model.DeleteResult, error) {
	n, err := s.store.Users().DeleteByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// Login returns the account matching the credentials, or model.ErrUnauthorized.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrUnauthorized
	}
	return u, nil
}
