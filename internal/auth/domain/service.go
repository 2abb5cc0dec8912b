package domain

import "context"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries the mutable fields of an account. A blank
// Password leaves the stored hash untouched.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Service interface {
	// Register creates an unapproved account with the user role.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Login verifies credentials and returns a signed token for the
	// session cookie. Unapproved accounts are rejected.
	Login(ctx context.Context, req LoginRequest) (string, *User, error)

	// Authenticate resolves a token back to its live user record.
	Authenticate(ctx context.Context, token string) (*User, error)

	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, actorID, id int64, req UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, actorID, id int64) error
	ApproveUser(ctx context.Context, id int64) (*User, error)
}
