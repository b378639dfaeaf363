package service

import "errors"

var (
	// ErrNoAvailableDriver is returned when a ride is requested and no driver is Active.
	ErrNoAvailableDriver = errors.New("no available driver")

	// ErrStoreBusy is returned when another instance holds the ride store lock.
	ErrStoreBusy = errors.New("ride store is busy, retry later")

	// ErrInvalidCaller is returned when a profile operation has no caller identity.
	ErrInvalidCaller = errors.New("invalid caller")

	// ErrInvalidRating is returned when a rating is NaN or infinite.
	ErrInvalidRating = errors.New("invalid rating")
)
