package repository

import "rideshare/internal/domain"

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	RecordRepository[domain.Ride]
}
