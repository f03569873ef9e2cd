package dto

import "github.com/hongminglow/bank-console/internal/models"

// ProfileUpdatePayload is the body of a customer change request.
type ProfileUpdatePayload struct {
	RequestedFullName    *string `json:"requestedFullName,omitempty"`
	RequestedEmail       *string `json:"requestedEmail,omitempty"`
	RequestedPhoneNumber *string `json:"requestedPhoneNumber,omitempty"`
	RequestedAddress     *string `json:"requestedAddress,omitempty"`
}

// ProfileForm is a profile edit posted by the browser. Fields left out of
// the body are nil and keep their current value.
type ProfileForm struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// Apply overlays the fields present in the form onto current.
func (f ProfileForm) Apply(current models.Profile) models.Profile {
	out := current
	if f.FullName != nil {
		out.FullName = *f.FullName
	}
	if f.Email != nil {
		out.Email = *f.Email
	}
	if f.PhoneNumber != nil {
		out.PhoneNumber = *f.PhoneNumber
	}
	if f.Address != nil {
		out.Address = *f.Address
	}
	return out
}

// CustomerForm is the admin payload for creating or editing a customer.
// Empty fields are omitted so the backend leaves them untouched.
type CustomerForm struct {
	FullName    string `json:"fullName,omitempty" binding:"required"`
	Email       string `json:"email,omitempty" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role,omitempty"`
}
