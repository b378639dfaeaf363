package domain

// Rider represents a passenger registered with the service.
// Neither name nor address is enforced unique.
type Rider struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

// RiderFields is the accessor table for Rider.
var RiderFields = FieldTable[Rider]{
	FieldName:    stringField(func(r *Rider) *string { return &r.Name }),
	FieldContact: stringField(func(r *Rider) *string { return &r.Contact }),
	FieldEmail:   stringField(func(r *Rider) *string { return &r.Email }),
	FieldRole:    stringField(func(r *Rider) *string { return &r.Role }),
	FieldAddress: stringField(func(r *Rider) *string { return &r.Address }),
}

// Field renders the named field of the rider.
func (r Rider) Field(name string) (string, error) {
	return RiderFields.Render(r, name)
}
