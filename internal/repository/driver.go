package repository

import "rideshare/internal/domain"

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	RecordRepository[domain.Driver]
}
