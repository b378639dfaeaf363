package domain

// Ride pairs a driver and a rider for one trip.
//
// Driver and Rider are snapshots copied by value when the ride is created.
// Later edits to the driver or rider stores do not reach existing rides;
// only an explicit snapshot swap on the ride does.
type Ride struct {
	RideID             string     `json:"rideid"`
	Driver             Driver     `json:"driver"`
	Rider              Rider      `json:"rider"`
	Pickup             string     `json:"pickup"`
	Dropoff            string     `json:"dropoff"`
	Status             RideStatus `json:"status"`
	Timestamp          string     `json:"timestamp"`
	Rating             float64    `json:"rating"`
	DriverRating       float64    `json:"driverrating"`
	RiderRating        float64    `json:"riderrating"`
	DriverFeedback     string     `json:"driverfeedback"`
	RiderFeedback      string     `json:"riderfeedback"`
	RiderConfirmation  string     `json:"riderconfirmation"`
	DriverConfirmation string     `json:"driverconfirmation"`
}

// NewRequestedRide builds the ride created by the ride-request flow: no ride
// id, Active status, and every rating, feedback and confirmation at its default.
func NewRequestedRide(driver Driver, rider Rider, pickup, dropoff, timestamp string) Ride {
	return Ride{
		Driver:    driver,
		Rider:     rider,
		Pickup:    pickup,
		Dropoff:   dropoff,
		Status:    RideStatusActive,
		Timestamp: timestamp,
	}
}

// RideFields is the accessor table for Ride. The snapshot fields render the
// embedded driver or rider and cannot be assigned as strings.
var RideFields = FieldTable[Ride]{
	FieldRideID:  stringField(func(r *Ride) *string { return &r.RideID }),
	FieldDriver:  readOnlyField(func(r Ride) string { return r.Driver.Name }),
	FieldRider:   readOnlyField(func(r Ride) string { return r.Rider.Name }),
	FieldPickup:  stringField(func(r *Ride) *string { return &r.Pickup }),
	FieldDropoff: stringField(func(r *Ride) *string { return &r.Dropoff }),
	FieldStatus: {
		Get: func(r Ride) string { return r.Status.String() },
		Set: func(r *Ride, value string) error {
			status, err := ParseRideStatus(value)
			if err != nil {
				return err
			}
			r.Status = status
			return nil
		},
		Clear: func(r *Ride) { r.Status = RideStatusActive },
	},
	FieldTimestamp:          stringField(func(r *Ride) *string { return &r.Timestamp }),
	FieldRating:             floatField(FieldRating, func(r *Ride) *float64 { return &r.Rating }),
	FieldDriverRating:       floatField(FieldDriverRating, func(r *Ride) *float64 { return &r.DriverRating }),
	FieldRiderRating:        floatField(FieldRiderRating, func(r *Ride) *float64 { return &r.RiderRating }),
	FieldDriverFeedback:     stringField(func(r *Ride) *string { return &r.DriverFeedback }),
	FieldRiderFeedback:      stringField(func(r *Ride) *string { return &r.RiderFeedback }),
	FieldRiderConfirmation:  stringField(func(r *Ride) *string { return &r.RiderConfirmation }),
	FieldDriverConfirmation: stringField(func(r *Ride) *string { return &r.DriverConfirmation }),
	FieldDriverAddress:      readOnlyField(func(r Ride) string { return r.Driver.Address }),
	FieldRiderAddress:       readOnlyField(func(r Ride) string { return r.Rider.Address }),
}

// Field renders the named field of the ride.
func (r Ride) Field(name string) (string, error) {
	return RideFields.Render(r, name)
}
