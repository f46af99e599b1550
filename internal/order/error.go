package order

import (
	"errors"
	"strings"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSellerNotFound    = errors.New("seller not found")
)

// MissingFieldsError names the absent required fields so the client can show
// which input to fix.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
