package models

import "strings"

// Role is the console's canonical reading of a backend role string.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a backend role onto a canonical Role. The backend stores
// both "ADMIN" and "admin"; every other value is treated as a customer.
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleCustomer
}

// IsAdmin reports whether the role grants the admin console.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
