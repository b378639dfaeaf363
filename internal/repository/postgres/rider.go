package postgres

import (
	"database/sql"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

var _ repository.RiderRepository = (*RiderRepository)(nil)

// RiderRepository is a PostgreSQL implementation of repository.RiderRepository.
type RiderRepository struct {
	*table[domain.Rider]
}

// NewRiderRepository creates a new PostgreSQL rider repository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{table: &table[domain.Rider]{
		db:      db,
		name:    "riders",
		columns: []string{"name", "contact", "email", "role", "address"},
		fields:  domain.RiderFields,
		scan:    scanRider,
		values: func(r domain.Rider) ([]any, error) {
			return []any{r.Name, r.Contact, r.Email, r.Role, r.Address}, nil
		},
	}}
}

func scanRider(s rowScanner) (int64, domain.Rider, error) {
	var (
		seq   int64
		rider domain.Rider
	)
	err := s.Scan(&seq, &rider.Name, &rider.Contact, &rider.Email, &rider.Role, &rider.Address)
	return seq, rider, err
}
