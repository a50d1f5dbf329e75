package api

import (
	"context"
	"net/http"

	"github.com/kachalmers/tuiter/client/internal/types"
)

// CreateTuit posts a tuit on behalf of authorID.
func CreateTuit(ctx context.Context, hc HTTPClient, baseURL, authorID string, req types.CreateTuitRequest) (*types.Tuit, error) {
	var tuit types.Tuit
	target := endpoint(baseURL, "users", authorID, "tuits")
	if err := call(ctx, hc, "create tuit", http.MethodPost, target, req, &tuit); err != nil {
		return nil, err
	}
	return &tuit, nil
}

// ListTuits returns every tuit in one round trip.
func ListTuits(ctx context.Context, hc HTTPClient, baseURL string) ([]types.Tuit, error) {
	var tuits types.TuitList
	if err := call(ctx, hc, "list tuits", http.MethodGet, endpoint(baseURL, "tuits"), nil, &tuits); err != nil {
		return nil, err
	}
	return tuits, nil
}

// GetTuit retrieves a tuit by ID.
func GetTuit(ctx context.Context, hc HTTPClient, baseURL, tuitID string) (*types.Tuit, error) {
	var tuit types.Tuit
	if err := call(ctx, hc, "get tuit", http.MethodGet, endpoint(baseURL, "tuits", tuitID), nil, &tuit); err != nil {
		return nil, err
	}
	return &tuit, nil
}

// DeleteTuit removes a tuit by ID.
func DeleteTuit(ctx context.Context, hc HTTPClient, baseURL, tuitID string) (*types.DeleteResult, error) {
	var res types.DeleteResult
	if err := call(ctx, hc, "delete tuit", http.MethodDelete, endpoint(baseURL, "tuits", tuitID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
