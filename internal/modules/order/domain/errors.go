package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrNotOrderOwner      = errors.New("order belongs to another user")
	ErrOrderNotPayable    = errors.New("order is not awaiting payment")
	ErrInvalidSignature   = errors.New("payment signature verification failed")
	ErrPaymentNotPrepared = errors.New("payment was not initiated for this order")
)
