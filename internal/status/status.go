package status

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidPlan          = errors.New("subscription: unknown plan")
	ErrSubscriptionInactive = errors.New("subscription: subscription is inactive")
	ErrClassFull            = errors.New("booking: class is full")
	ErrBelowZero            = errors.New("booking: booked spots cannot go below zero")
	ErrCapacityExceeded     = errors.New("booking: class capacity exceeded")
	ErrAlreadyBooked        = errors.New("booking: class already booked")
	ErrUnauthenticated      = errors.New("auth: unauthenticated")
)
