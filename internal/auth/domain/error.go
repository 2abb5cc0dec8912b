package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrSelfDemote         = errors.New("cannot change your own role")
	ErrInvalidRole        = errors.New("role must be admin or user")
	ErrMissingFields      = errors.New("name, email and password are required")
)
