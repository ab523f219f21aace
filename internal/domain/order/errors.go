package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidPayment = errors.New("invalid payment method")
	ErrEmptyCart      = errors.New("cart is empty or not found")
)
