// internal/domain/group.go
package domain

import (
	"strings"
	"time"
)

// Group is a set of users sharing expenses.
type Group struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy int64     `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	MemberIDs []int64 `db:"-" json:"member_ids,omitempty"` // Loaded separately from group_members
}

// GroupMember is one (group, user) membership row.
type GroupMember struct {
	GroupID int64 `db:"group_id" json:"group_id"`
	UserID  int64 `db:"user_id" json:"user_id"`
}

// NewGroup creates a new Group owned by createdBy.
func NewGroup(name string, createdBy int64) *Group {
	return &Group{
		Name:      strings.TrimSpace(name),
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}
