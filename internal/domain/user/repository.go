package user

import "context"

// UserRepository defines roster lookups.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (User, error)

	// GetActiveUsers retrieves all active users ordered by ID.
	GetActiveUsers(ctx context.Context) ([]User, error)
}
