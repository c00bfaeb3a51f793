// internal/repository/user_repo.go
package repository

import (
	"context"

	"splitledger/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	// A second user with the same email yields util.ErrDuplicateEntry.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByEmail retrieves a user by their normalized email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// ListUsers returns every user ordered by name.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// GetUsersByIDs returns the users among ids that exist, in no particular order.
	GetUsersByIDs(ctx context.Context, q DBExecutor, ids []int64) ([]domain.User, error)
}
