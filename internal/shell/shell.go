// Package shell decides what a signed-in user can see: the navigation
// menu for their role and where a view redirects them when it is not
// theirs.
package shell

import "github.com/hongminglow/bank-console/internal/models"

// Landing pages.
const (
	LoginPath          = "/login"
	DashboardPath      = "/dashboard"
	AdminDashboardPath = "/admin/dashboard"
)

// Access is the audience a view is built for.
type Access int

const (
	Public Access = iota
	AnyUser
	CustomerOnly
	AdminOnly
)

// Item is one navigation entry.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	adminNav = []Item{
		{Label: "Admin Dashboard", Path: AdminDashboardPath},
		{Label: "Manage Customers", Path: "/admin/customers"},
		{Label: "My Profile", Path: "/profile"},
	}
	customerNav = []Item{
		{Label: "Dashboard", Path: DashboardPath},
		{Label: "My Accounts", Path: "/accounts"},
		{Label: "Transactions", Path: "/transactions"},
		{Label: "Statements", Path: "/statements"},
		{Label: "My Profile", Path: "/profile"},
	}
)

// Nav returns the menu for an identity.
func Nav(id models.Identity) []Item {
	src := customerNav
	if id.IsAdmin() {
		src = adminNav
	}
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Home is where a signed-in user lands.
func Home(id models.Identity) string {
	if id.IsAdmin() {
		return AdminDashboardPath
	}
	return DashboardPath
}

// Guard reports whether id may open a view with the given access. When it
// may not, redirect names the page to send the user to instead. A nil id
// means nobody is signed in.
func Guard(access Access, id *models.Identity) (redirect string, ok bool) {
	if access == Public {
		return "", true
	}
	if id == nil {
		return LoginPath, false
	}
	switch access {
	case CustomerOnly:
		if id.IsAdmin() {
			return AdminDashboardPath, false
		}
	case AdminOnly:
		if !id.IsAdmin() {
			return DashboardPath, false
		}
	}
	return "", true
}
