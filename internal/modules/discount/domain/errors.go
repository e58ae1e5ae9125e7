package domain

import "errors"

var (
	ErrDiscountNotFound = errors.New("discount not found")
	ErrInvalidPercent   = errors.New("percent must be greater than 0 and at most 100")
	ErrInvalidWindow    = errors.New("start date must not be after end date")
)
