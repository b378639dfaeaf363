package postgres

import (
	"errors"
	"reflect"
	"testing"

	"rideshare/internal/domain"
)

// fakeRow replays a fixed set of column values through Scan.
type fakeRow struct {
	values []any
}

func (f fakeRow) Scan(dest ...any) error {
	if len(dest) != len(f.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *string:
			*p = f.values[i].(string)
		case *float64:
			*p = f.values[i].(float64)
		case *[]byte:
			*p = f.values[i].([]byte)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestTable_SQL(t *testing.T) {
	t.Parallel()

	repo := NewRiderRepository(nil)

	if got, want := repo.insertSQL(), `INSERT INTO riders (name, contact, email, role, address) VALUES ($1, $2, $3, $4, $5)`; got != want {
		t.Errorf("insert: expected %q, got %q", want, got)
	}
	if got, want := repo.selectSQL(), `SELECT seq, name, contact, email, role, address FROM riders ORDER BY seq`; got != want {
		t.Errorf("select: expected %q, got %q", want, got)
	}
	if got, want := repo.updateSQL(), `UPDATE riders SET name = $1, contact = $2, email = $3, role = $4, address = $5 WHERE seq = $6`; got != want {
		t.Errorf("update: expected %q, got %q", want, got)
	}
}

func TestTable_ColumnsMatchValues(t *testing.T) {
	t.Parallel()

	drivers := NewDriverRepository(nil)
	args, err := drivers.values(domain.Driver{Name: "Kelsey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != len(drivers.columns) {
		t.Errorf("drivers: expected %d values, got %d", len(drivers.columns), len(args))
	}

	rides := NewRideRepository(nil)
	args, err = rides.values(domain.Ride{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != len(rides.columns) {
		t.Errorf("rides: expected %d values, got %d", len(rides.columns), len(args))
	}
}

func TestScanRide_RoundTripsSnapshots(t *testing.T) {
	t.Parallel()

	ride := domain.NewRequestedRide(
		domain.Driver{Name: "B", Rating: 4.5, CurrentStatus: domain.CurrentStatusActive, Address: "d"},
		domain.Rider{Name: "A", Address: "r"},
		"X", "Y", "t",
	)
	ride.RideID = "ride-1"
	ride.DriverFeedback = "smooth"

	args, err := rideValues(ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := append([]any{int64(7)}, args...)
	seq, got, err := scanRide(fakeRow{values: values})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 7 {
		t.Errorf("expected seq 7, got %d", seq)
	}
	if !reflect.DeepEqual(got, ride) {
		t.Errorf("expected %+v, got %+v", ride, got)
	}
}

func TestScanDriver_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	values := []any{int64(1), "n", "", "", "", "", "", "", "", "", "", "", 0.0, "Sleeping", ""}
	_, _, err := scanDriver(fakeRow{values: values})

	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %v", err)
	}
}
