package identity

import "errors"

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrProfileNotFound = errors.New("profile not found")
	ErrSellerNotFound  = errors.New("seller not found")
	ErrInvalidRole     = errors.New("invalid role")
)
