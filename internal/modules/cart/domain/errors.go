package domain

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrCartEmpty       = errors.New("cart is empty")
)
