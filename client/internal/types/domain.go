package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User represents an account as returned by the backend.
type User struct {
	ID        string `json:"_id,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Tuit represents a short text post.
type Tuit struct {
	ID       string    `json:"_id,omitempty"`
	Tuit     string    `json:"tuit"`
	PostedBy UserRef   `json:"postedBy"`
	PostedOn time.Time `json:"postedOn"`
}

// UserRef is the authoring user of a tuit. The backend sends either the
// populated user object or only its id; User is nil in the latter case.
type UserRef struct {
	ID   string
	User *User
}

// MarshalJSON emits the embedded user when present, otherwise the bare id.
func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts a user object, an id string or null.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*r = UserRef{}
		return nil
	case b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id}
		return nil
	case b[0] == '{':
		var u User
		if err := json.Unmarshal(b, &u); err != nil {
			return err
		}
		*r = UserRef{ID: u.ID, User: &u}
		return nil
	default:
		return fmt.Errorf("postedBy: unexpected JSON %q", string(b))
	}
}

// TuitList decodes either a bare JSON array of tuits or an object wrapping
// the array under "tuits".
type TuitList []Tuit

func (l *TuitList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Tuits []Tuit `json:"tuits"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*l = wrapped.Tuits
		return nil
	}
	var plain []Tuit
	if err := json.Unmarshal(b, &plain); err != nil {
		return err
	}
	*l = plain
	return nil
}
