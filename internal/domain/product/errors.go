package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidColor    = errors.New("invalid product color")
	ErrInvalidSize     = errors.New("invalid product size")
)
