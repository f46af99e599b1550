package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSellerNotApproved = errors.New("seller is not approved")
	ErrInvalidFlag       = errors.New("invalid moderation flag")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
)
