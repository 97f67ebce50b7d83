package user

import (
	"time"

	"github.com/workshift-ph/timeclock-backend/internal/pkg/validator"
)

type CreateUserRequest struct {
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	Department    string  `json:"department"`
	StaffHouse    bool    `json:"staff_house"`
	GcashNumber   *string `json:"gcash_number,omitempty"`
	RequiredHours float64 `json:"required_hours"`
	Email         *string `json:"email,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username is required"})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters of letters, numbers, dots, underscores, and hyphens"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters long"})
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be 'admin' or 'employee'"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if r.GcashNumber != nil && *r.GcashNumber != "" && !validator.IsNumeric(*r.GcashNumber) {
		errs = append(errs, validator.ValidationError{Field: "gcash_number", Message: "must contain digits only"})
	}
	if r.RequiredHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "required_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID            string
	Username      *string  `json:"username,omitempty"`
	Password      *string  `json:"password,omitempty"`
	Role          *string  `json:"role,omitempty"`
	Department    *string  `json:"department,omitempty"`
	StaffHouse    *bool    `json:"staff_house,omitempty"`
	GcashNumber   *string  `json:"gcash_number,omitempty"`
	RequiredHours *float64 `json:"required_hours,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Username != nil && !validator.IsValidUsername(*r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters of letters, numbers, dots, underscores, and hyphens"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters long"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be 'admin' or 'employee'"})
	}
	if r.GcashNumber != nil && *r.GcashNumber != "" && !validator.IsNumeric(*r.GcashNumber) {
		errs = append(errs, validator.ValidationError{Field: "gcash_number", Message: "must contain digits only"})
	}
	if r.RequiredHours != nil && *r.RequiredHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "required_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequiredHoursRequest updates the caller's own hours goal.
type UpdateRequiredHoursRequest struct {
	RequiredHours float64 `json:"required_hours"`
}

func (r *UpdateRequiredHoursRequest) Validate() error {
	if r.RequiredHours < 0 {
		return validator.ValidationErrors{{Field: "required_hours", Message: "must be non-negative"}}
	}
	return nil
}

type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	Department    string    `json:"department"`
	StaffHouse    bool      `json:"staff_house"`
	GcashNumber   *string   `json:"gcash_number,omitempty"`
	RequiredHours float64   `json:"required_hours"`
	Email         *string   `json:"email,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Role:          string(u.Role),
		Department:    u.Department,
		StaffHouse:    u.StaffHouse,
		GcashNumber:   u.GcashNumber,
		RequiredHours: u.RequiredHours,
		Email:         u.Email,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
	}
}
