package user

import "context"

type UserService interface {
	// List returns all users. Admin only.
	List(ctx context.Context) ([]UserResponse, error)

	// Create registers a new user. Admin only.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// Update modifies a user's profile fields. Admin only.
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// UpdateRequiredHours sets the caller's own hours goal.
	UpdateRequiredHours(ctx context.Context, req UpdateRequiredHoursRequest) error

	// Deactivate disables a user's account. Admin only.
	Deactivate(ctx context.Context, id string) error

	// Me returns the caller's own profile.
	Me(ctx context.Context) (UserResponse, error)
}
