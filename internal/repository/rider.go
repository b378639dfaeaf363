package repository

import "rideshare/internal/domain"

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	RecordRepository[domain.Rider]
}
