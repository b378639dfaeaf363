package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

var _ repository.RideRepository = (*RideRepository)(nil)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
// The driver and rider snapshots are stored as JSONB documents.
type RideRepository struct {
	*table[domain.Ride]
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{table: &table[domain.Ride]{
		db:   db,
		name: "rides",
		columns: []string{
			"ride_id", "driver", "rider", "pickup", "dropoff", "status", "timestamp",
			"rating", "driver_rating", "rider_rating", "driver_feedback", "rider_feedback",
			"rider_confirmation", "driver_confirmation",
		},
		fields: domain.RideFields,
		scan:   scanRide,
		values: rideValues,
	}}
}

func rideValues(r domain.Ride) ([]any, error) {
	driver, err := json.Marshal(r.Driver)
	if err != nil {
		return nil, fmt.Errorf("encode driver snapshot: %w", err)
	}
	rider, err := json.Marshal(r.Rider)
	if err != nil {
		return nil, fmt.Errorf("encode rider snapshot: %w", err)
	}
	return []any{
		r.RideID, driver, rider, r.Pickup, r.Dropoff, r.Status.String(), r.Timestamp,
		r.Rating, r.DriverRating, r.RiderRating, r.DriverFeedback, r.RiderFeedback,
		r.RiderConfirmation, r.DriverConfirmation,
	}, nil
}

func scanRide(s rowScanner) (int64, domain.Ride, error) {
	var (
		seq           int64
		ride          domain.Ride
		driver, rider []byte
		status        string
	)
	err := s.Scan(
		&seq,
		&ride.RideID,
		&driver,
		&rider,
		&ride.Pickup,
		&ride.Dropoff,
		&status,
		&ride.Timestamp,
		&ride.Rating,
		&ride.DriverRating,
		&ride.RiderRating,
		&ride.DriverFeedback,
		&ride.RiderFeedback,
		&ride.RiderConfirmation,
		&ride.DriverConfirmation,
	)
	if err != nil {
		return 0, ride, err
	}
	if err := json.Unmarshal(driver, &ride.Driver); err != nil {
		return 0, ride, fmt.Errorf("decode driver snapshot: %w", err)
	}
	if err := json.Unmarshal(rider, &ride.Rider); err != nil {
		return 0, ride, fmt.Errorf("decode rider snapshot: %w", err)
	}
	if ride.Status, err = domain.ParseRideStatus(status); err != nil {
		return 0, ride, err
	}
	return seq, ride, nil
}
