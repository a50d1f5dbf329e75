package types

// ------------------------------
// Request Types
// ------------------------------

// CreateUserRequest holds parameters for a new account
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Credentials is the login payload
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTuitRequest holds the content of a new tuit
type CreateTuitRequest struct {
	Tuit string `json:"tuit"`
}
