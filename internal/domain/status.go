package domain

// CurrentStatus represents whether a driver is accepting rides.
type CurrentStatus string

const (
	CurrentStatusActive   CurrentStatus = "Active"
	CurrentStatusInactive CurrentStatus = "Inactive"
)

// String returns the wire form of the status. The zero value reads as Inactive.
func (s CurrentStatus) String() string {
	if s == "" {
		return string(CurrentStatusInactive)
	}
	return string(s)
}

// ParseCurrentStatus converts text into a CurrentStatus.
func ParseCurrentStatus(s string) (CurrentStatus, error) {
	switch CurrentStatus(s) {
	case CurrentStatusActive, CurrentStatusInactive:
		return CurrentStatus(s), nil
	default:
		return "", &ParseError{Field: FieldCurrentStatus, Value: s, Kind: "CurrentStatus"}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s CurrentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CurrentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrentStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "Active"
	RideStatusCompleted RideStatus = "Completed"
	RideStatusCancelled RideStatus = "Cancelled"
)

// String returns the wire form of the status. The zero value reads as Active.
func (s RideStatus) String() string {
	if s == "" {
		return string(RideStatusActive)
	}
	return string(s)
}

// ParseRideStatus converts text into a RideStatus.
func ParseRideStatus(s string) (RideStatus, error) {
	switch RideStatus(s) {
	case RideStatusActive, RideStatusCompleted, RideStatusCancelled:
		return RideStatus(s), nil
	default:
		return "", &ParseError{Field: FieldStatus, Value: s, Kind: "RideStatus"}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s RideStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *RideStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseRideStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
