package cart

import "errors"

var (
	// ErrSellerConflict rejects an add that would mix items from two
	// sellers. The caller must clear (or replace) the cart first.
	ErrSellerConflict = errors.New("cart is locked to another seller")

	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidSnapshot = errors.New("invalid cart snapshot")
)
