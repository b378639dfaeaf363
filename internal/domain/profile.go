package domain

// Profile is the free-form profile a caller publishes about themselves.
type Profile struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Clone returns a copy that shares no memory with p.
func (p Profile) Clone() Profile {
	if p.Keywords != nil {
		p.Keywords = append([]string(nil), p.Keywords...)
	}
	return p
}
