package models

// Customer mirrors the backend customer record.
type Customer struct {
	ID                  int64      `json:"id"`
	FullName            string     `json:"fullName"`
	Email               string     `json:"email"`
	PhoneNumber         string     `json:"phoneNumber"`
	Address             string     `json:"address"`
	Role                string     `json:"role"`
	Locked              bool       `json:"locked"`
	LockedUntil         *Timestamp `json:"lockedUntil,omitempty"`
	FailedLoginAttempts int        `json:"failedLoginAttempts"`
}

// Profile holds the customer fields that can be edited or requested for change.
type Profile struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// Profile returns the editable subset of the customer record.
func (c Customer) Profile() Profile {
	return Profile{
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}

// WithProfile returns a copy of the customer carrying the given profile fields.
func (c Customer) WithProfile(p Profile) Customer {
	c.FullName = p.FullName
	c.Email = p.Email
	c.PhoneNumber = p.PhoneNumber
	c.Address = p.Address
	return c
}
