package postgres

import (
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

var _ repository.DriverRepository = (*DriverRepository)(nil)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	*table[domain.Driver]
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{table: &table[domain.Driver]{
		db:   db,
		name: "drivers",
		columns: []string{
			"name", "contact", "email", "role",
			"vehicle_plate_number", "vehicle_seat_number", "vehicle_make", "vehicle_model",
			"vehicle_color", "vehicle_type", "vehicle_year",
			"rating", "current_status", "address",
		},
		fields: domain.DriverFields,
		scan:   scanDriver,
		values: func(d domain.Driver) ([]any, error) {
			return []any{
				d.Name, d.Contact, d.Email, d.Role,
				d.VehiclePlateNumber, d.VehicleSeatNumber, d.VehicleMake, d.VehicleModel,
				d.VehicleColor, d.VehicleType, d.VehicleYear,
				d.Rating, d.CurrentStatus.String(), d.Address,
			}, nil
		},
	}}
}

func scanDriver(s rowScanner) (int64, domain.Driver, error) {
	var (
		seq    int64
		driver domain.Driver
		status string
	)
	err := s.Scan(
		&seq,
		&driver.Name,
		&driver.Contact,
		&driver.Email,
		&driver.Role,
		&driver.VehiclePlateNumber,
		&driver.VehicleSeatNumber,
		&driver.VehicleMake,
		&driver.VehicleModel,
		&driver.VehicleColor,
		&driver.VehicleType,
		&driver.VehicleYear,
		&driver.Rating,
		&status,
		&driver.Address,
	)
	if err != nil {
		return 0, driver, err
	}
	driver.CurrentStatus, err = domain.ParseCurrentStatus(status)
	return seq, driver, err
}
