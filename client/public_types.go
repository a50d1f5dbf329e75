package client

import "github.com/kachalmers/tuiter/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	CreateUserRequest = types.CreateUserRequest
	Credentials       = types.Credentials
	CreateTuitRequest = types.CreateTuitRequest

	// Domain entities
	User    = types.User
	Tuit    = types.Tuit
	UserRef = types.UserRef

	// Responses
	DeleteResult = types.DeleteResult
)
