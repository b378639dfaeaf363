package domain

// Driver represents a driver and the vehicle they operate.
type Driver struct {
	Name               string        `json:"name"`
	Contact            string        `json:"contact"`
	Email              string        `json:"email"`
	Role               string        `json:"role"`
	VehiclePlateNumber string        `json:"vehicleplatenumber"`
	VehicleSeatNumber  string        `json:"vehicleseatnumber"`
	VehicleMake        string        `json:"vehiclemake"`
	VehicleModel       string        `json:"vehiclemodel"`
	VehicleColor       string        `json:"vehiclecolor"`
	VehicleType        string        `json:"vehicletype"`
	VehicleYear        string        `json:"vehicleyear"`
	Rating             float64       `json:"rating"`
	CurrentStatus      CurrentStatus `json:"currentstatus"`
	Address            string        `json:"address"`
}

// DriverFields is the accessor table for Driver.
var DriverFields = FieldTable[Driver]{
	FieldName:               stringField(func(d *Driver) *string { return &d.Name }),
	FieldContact:            stringField(func(d *Driver) *string { return &d.Contact }),
	FieldEmail:              stringField(func(d *Driver) *string { return &d.Email }),
	FieldRole:               stringField(func(d *Driver) *string { return &d.Role }),
	FieldVehiclePlateNumber: stringField(func(d *Driver) *string { return &d.VehiclePlateNumber }),
	FieldVehicleSeatNumber:  stringField(func(d *Driver) *string { return &d.VehicleSeatNumber }),
	FieldVehicleMake:        stringField(func(d *Driver) *string { return &d.VehicleMake }),
	FieldVehicleModel:       stringField(func(d *Driver) *string { return &d.VehicleModel }),
	FieldVehicleColor:       stringField(func(d *Driver) *string { return &d.VehicleColor }),
	FieldVehicleType:        stringField(func(d *Driver) *string { return &d.VehicleType }),
	FieldVehicleYear:        stringField(func(d *Driver) *string { return &d.VehicleYear }),
	FieldRating:             floatField(FieldRating, func(d *Driver) *float64 { return &d.Rating }),
	FieldCurrentStatus: {
		Get: func(d Driver) string { return d.CurrentStatus.String() },
		Set: func(d *Driver, value string) error {
			status, err := ParseCurrentStatus(value)
			if err != nil {
				return err
			}
			d.CurrentStatus = status
			return nil
		},
		Clear: func(d *Driver) { d.CurrentStatus = CurrentStatusInactive },
	},
	FieldAddress: stringField(func(d *Driver) *string { return &d.Address }),
}

// Field renders the named field of the driver.
func (d Driver) Field(name string) (string, error) {
	return DriverFields.Render(d, name)
}
