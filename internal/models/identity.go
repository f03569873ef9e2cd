package models

// Identity is the authenticated principal of a console session. Role is
// already normalized; consumers never inspect the raw backend string.
type Identity struct {
	CustomerID  int64  `json:"customerId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        Role   `json:"role"`
}

// IdentityFor builds an identity from a backend customer record.
func IdentityFor(c Customer) Identity {
	return Identity{
		CustomerID:  c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Role:        ParseRole(c.Role),
	}
}

// IsAdmin reports whether the identity may use the admin console.
func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}

// Profile returns the identity's editable fields.
func (i Identity) Profile() Profile {
	return Profile{FullName: i.FullName, Email: i.Email, PhoneNumber: i.PhoneNumber, Address: i.Address}
}
