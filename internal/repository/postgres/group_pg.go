// internal/repository/postgres/group_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"splitledger/internal/domain"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// GroupRepository implements repository.GroupRepository for PostgreSQL.
type GroupRepository struct{}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository() repository.GroupRepository {
	return &GroupRepository{}
}

// CreateGroup inserts a new group and sets its ID.
func (r *GroupRepository) CreateGroup(ctx context.Context, q repository.DBExecutor, group *domain.Group) error {
	query := `INSERT INTO groups (name, created_by, created_at) VALUES ($1, $2, $3) RETURNING id`
	err := q.QueryRowContext(ctx, query, group.Name, group.CreatedBy, group.CreatedAt).Scan(&group.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("group creator %d: %w", group.CreatedBy, util.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// AddMember adds userID to groupID.
func (r *GroupRepository) AddMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64) error {
	query := `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`
	if _, err := q.ExecContext(ctx, query, groupID, userID); err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("user %d is already in group %d: %w", userID, groupID, util.ErrDuplicateEntry)
		case isForeignKeyViolation(err):
			return fmt.Errorf("add member %d to group %d: %w", userID, groupID, util.ErrNotFound)
		}
		return fmt.Errorf("failed to add user %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

// GetGroupByID retrieves a group and its member ids.
func (r *GroupRepository) GetGroupByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT id, name, created_by, created_at FROM groups WHERE id = $1`
	if err := q.GetContext(ctx, &group, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group by ID %d: %w", id, err)
	}

	memberIDs, err := r.ListMemberIDs(ctx, q, id)
	if err != nil {
		return nil, err
	}
	group.MemberIDs = memberIDs
	return &group, nil
}

// ListGroupsByUserID returns the groups userID is a member of, newest first.
func (r *GroupRepository) ListGroupsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Group, error) {
	groups := []domain.Group{}
	query := `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC, g.id DESC`
	if err := q.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list groups for user %d: %w", userID, err)
	}
	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]int64, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	members := []domain.GroupMember{}
	membersQuery := `SELECT group_id, user_id FROM group_members WHERE group_id = ANY($1) ORDER BY user_id`
	if err := q.SelectContext(ctx, &members, membersQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	byGroup := make(map[int64][]int64, len(groups))
	for _, m := range members {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m.UserID)
	}
	for i := range groups {
		groups[i].MemberIDs = byGroup[groups[i].ID]
	}
	return groups, nil
}

// IsMember reports whether userID belongs to groupID.
func (r *GroupRepository) IsMember(ctx context.Context, q repository.DBExecutor, groupID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	if err := q.GetContext(ctx, &exists, query, groupID, userID); err != nil {
		return false, fmt.Errorf("failed to check membership of user %d in group %d: %w", userID, groupID, err)
	}
	return exists, nil
}

// ListMemberIDs returns the ids of groupID's members in ascending order.
func (r *GroupRepository) ListMemberIDs(ctx context.Context, q repository.DBExecutor, groupID int64) ([]int64, error) {
	ids := []int64{}
	query := `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`
	if err := q.SelectContext(ctx, &ids, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", groupID, err)
	}
	return ids, nil
}
