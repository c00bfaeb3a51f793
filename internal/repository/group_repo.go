// internal/repository/group_repo.go
package repository

import (
	"context"

	"splitledger/internal/domain"
)

// GroupRepository defines the interface for group and membership data operations.
type GroupRepository interface {
	CreateGroup(ctx context.Context, q DBExecutor, group *domain.Group) error
	// AddMember inserts a membership row; an existing (group, user) pair yields util.ErrDuplicateEntry.
	AddMember(ctx context.Context, q DBExecutor, groupID, userID int64) error
	GetGroupByID(ctx context.Context, q DBExecutor, id int64) (*domain.Group, error)
	// ListGroupsByUserID returns the groups userID belongs to, newest first, with member ids loaded.
	ListGroupsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Group, error)
	IsMember(ctx context.Context, q DBExecutor, groupID, userID int64) (bool, error)
	ListMemberIDs(ctx context.Context, q DBExecutor, groupID int64) ([]int64, error)
}
