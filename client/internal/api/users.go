package api

import (
	"context"
	"net/http"

	"github.com/kachalmers/tuiter/client/internal/types"
)

// No client-side validation: the backend is the authority.

// CreateUser registers a new account.
func CreateUser(ctx context.Context, hc HTTPClient, baseURL string, req types.CreateUserRequest) (*types.User, error) {
	var user types.User
	if err := call(ctx, hc, "create user", http.MethodPost, endpoint(baseURL, "users"), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account in backend order.
func ListUsers(ctx context.Context, hc HTTPClient, baseURL string) ([]types.User, error) {
	var users []types.User
	if err := call(ctx, hc, "list users", http.MethodGet, endpoint(baseURL, "users"), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves an account by ID.
func GetUser(ctx context.Context, hc HTTPClient, baseURL, userID string) (*types.User, error) {
	var user types.User
	if err := call(ctx, hc, "get user", http.MethodGet, endpoint(baseURL, "users", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account by ID.
func DeleteUser(ctx context.Context, hc HTTPClient, baseURL, userID string) (*types.DeleteResult, error) {
	var res types.DeleteResult
	if err := call(ctx, hc, "delete user", http.MethodDelete, endpoint(baseURL, "users", userID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteUsersByUsername removes every account with the given username.
// The backend exposes this as a GET with side effects; the verb is part of
// its wire contract.
func DeleteUsersByUsername(ctx context.Context, hc HTTPClient, baseURL, username string) (*types.DeleteResult, error) {
	var res types.DeleteResult
	target := endpoint(baseURL, "users", "username", username, "delete")
	if err := call(ctx, hc, "delete users by username", http.MethodGet, target, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Login submits credentials and returns the authenticated account.
func Login(ctx context.Context, hc HTTPClient, baseURL string, creds types.Credentials) (*types.User, error) {
	var user types.User
	if err := call(ctx, hc, "login", http.MethodPost, endpoint(baseURL, "login"), creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
