package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can manage users, approve overtime, run payroll
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Username     string
	PasswordHash *string
	Role         Role
	Department   string
	// StaffHouse marks employees lodged in the company staff house,
	// who carry the weekly lodging deduction.
	StaffHouse    bool
	GcashNumber   *string
	RequiredHours float64
	Email         *string
	OAuthProvider *string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
