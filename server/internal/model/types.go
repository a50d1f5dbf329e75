package model

import "time"

// User represents an account in the system.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	JoinedOn     time.Time `json:"joined"`
}

// Tuit is a short text post. AuthorID references a User.
type Tuit struct {
	ID       string    `json:"_id"`
	Tuit     string    `json:"tuit"`
	AuthorID string    `json:"postedBy"`
	PostedOn time.Time `json:"postedOn"`
}

// DeleteResult acknowledges a delete operation.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
