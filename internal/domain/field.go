package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Field identifies a named field of a record.
type Field string

// Identity fields shared by riders and drivers.
const (
	FieldName    Field = "name"
	FieldContact Field = "contact"
	FieldEmail   Field = "email"
	FieldRole    Field = "role"
	FieldAddress Field = "address"
)

// Driver-only fields.
const (
	FieldVehiclePlateNumber Field = "vehicleplatenumber"
	FieldVehicleSeatNumber  Field = "vehicleseatnumber"
	FieldVehicleMake        Field = "vehiclemake"
	FieldVehicleModel       Field = "vehiclemodel"
	FieldVehicleColor       Field = "vehiclecolor"
	FieldVehicleType        Field = "vehicletype"
	FieldVehicleYear        Field = "vehicleyear"
	FieldRating             Field = "rating"
	FieldCurrentStatus      Field = "currentstatus"
)

// Ride fields.
const (
	FieldRideID             Field = "rideid"
	FieldDriver             Field = "driver"
	FieldRider              Field = "rider"
	FieldPickup             Field = "pickup"
	FieldDropoff            Field = "dropoff"
	FieldStatus             Field = "status"
	FieldTimestamp          Field = "timestamp"
	FieldDriverRating       Field = "driverrating"
	FieldRiderRating        Field = "riderrating"
	FieldDriverFeedback     Field = "driverfeedback"
	FieldRiderFeedback      Field = "riderfeedback"
	FieldRiderConfirmation  Field = "riderconfirmation"
	FieldDriverConfirmation Field = "driverconfirmation"
	FieldDriverAddress      Field = "driveraddress"
	FieldRiderAddress       Field = "rideraddress"
)

// Accessor reads and writes one field of a record of type T.
// A nil Set marks the field as read-only.
type Accessor[T any] struct {
	Get   func(rec T) string
	Set   func(rec *T, value string) error
	Clear func(rec *T)
}

// FieldTable maps the closed set of fields of a record kind to their accessors.
type FieldTable[T any] map[Field]Accessor[T]

// Lookup returns the accessor for name or ErrInvalidFieldName.
func (t FieldTable[T]) Lookup(name string) (Accessor[T], error) {
	acc, ok := t[Field(name)]
	if !ok {
		return Accessor[T]{}, fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	return acc, nil
}

// Render returns the string form of the named field. Unknown names render as the
// empty string alongside ErrInvalidFieldName.
func (t FieldTable[T]) Render(rec T, name string) (string, error) {
	acc, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	return acc.Get(rec), nil
}

// Assign parses value and stores it in the named field.
func (t FieldTable[T]) Assign(rec *T, name, value string) error {
	acc, err := t.Lookup(name)
	if err != nil {
		return err
	}
	if acc.Set == nil {
		return fmt.Errorf("%w: %q", ErrFieldReadOnly, name)
	}
	return acc.Set(rec, value)
}

// Reset puts the named field back to its zero value.
func (t FieldTable[T]) Reset(rec *T, name string) error {
	acc, err := t.Lookup(name)
	if err != nil {
		return err
	}
	if acc.Clear == nil {
		return fmt.Errorf("%w: %q", ErrFieldReadOnly, name)
	}
	acc.Clear(rec)
	return nil
}

// Validate reports whether name is a known field without touching a record.
func (t FieldTable[T]) Validate(name string) error {
	_, err := t.Lookup(name)
	return err
}

// Matches reports whether the rendered field of rec equals value.
func (t FieldTable[T]) Matches(rec T, name, value string) (bool, error) {
	got, err := t.Render(rec, name)
	if err != nil {
		return false, err
	}
	return got == value, nil
}

func stringField[T any](ptr func(*T) *string) Accessor[T] {
	return Accessor[T]{
		Get: func(rec T) string { return *ptr(&rec) },
		Set: func(rec *T, value string) error {
			*ptr(rec) = value
			return nil
		},
		Clear: func(rec *T) { *ptr(rec) = "" },
	}
}

func floatField[T any](field Field, ptr func(*T) *float64) Accessor[T] {
	return Accessor[T]{
		Get: func(rec T) string { return FormatFloat(*ptr(&rec)) },
		Set: func(rec *T, value string) error {
			f, err := ParseFloat(field, value)
			if err != nil {
				return err
			}
			*ptr(rec) = f
			return nil
		},
		Clear: func(rec *T) { *ptr(rec) = 0 },
	}
}

func readOnlyField[T any](get func(T) string) Accessor[T] {
	return Accessor[T]{Get: get}
}

// FormatFloat renders a float in its shortest exact decimal form ("0", "4.5").
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseFloat parses a float field value. NaN and infinities are rejected.
func ParseFloat(field Field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Kind: "number", Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Field: field, Value: value, Kind: "number"}
	}
	return f, nil
}
