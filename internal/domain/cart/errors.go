package cart

import "errors"

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)
