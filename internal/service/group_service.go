// internal/service/group_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"splitledger/internal/domain"
	"splitledger/internal/events"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// GroupService defines the interface for group management.
type GroupService interface {
	// CreateGroup creates a group with the creator and memberIDs as members, atomically.
	CreateGroup(ctx context.Context, creatorID int64, name string, memberIDs []int64) (*domain.Group, error)
	ListGroups(ctx context.Context, userID int64) ([]domain.Group, error)
}

type groupService struct {
	tx         *TxManager
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	groupRepo  repository.GroupRepository
	notifier   notifier
}

// NewGroupService creates a new instance of GroupService.
func NewGroupService(
	tx *TxManager,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	publisher events.Publisher,
) GroupService {
	return &groupService{
		tx:         tx,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		notifier:   newNotifier(publisher, nil, nil),
	}
}

func (s *groupService) CreateGroup(ctx context.Context, creatorID int64, name string, memberIDs []int64) (*domain.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, util.NewValidationError("name", "group name is required")
	}

	// The creator is always a member; listing them again is tolerated.
	members := []int64{creatorID}
	seen := map[int64]int{creatorID: -1}
	for i, id := range memberIDs {
		field := fmt.Sprintf("members[%d]", i)
		if id <= 0 {
			return nil, util.NewValidationError(field, "must be a positive user id")
		}
		if prev, dup := seen[id]; dup {
			if prev == -1 {
				continue
			}
			return nil, util.NewValidationError(field, fmt.Sprintf("user %d is listed more than once", id))
		}
		seen[id] = i
		members = append(members, id)
	}

	existing, err := s.userRepo.GetUsersByIDs(ctx, s.dbExecutor, members)
	if err != nil {
		return nil, fmt.Errorf("create group: failed to load members: %w", err)
	}
	if len(existing) != len(members) {
		found := make(map[int64]bool, len(existing))
		for _, u := range existing {
			found[u.ID] = true
		}
		if !found[creatorID] {
			return nil, util.ErrUserNotFound
		}
		for i, id := range memberIDs {
			if !found[id] {
				return nil, util.NewValidationError(fmt.Sprintf("members[%d]", i), fmt.Sprintf("user %d does not exist", id))
			}
		}
	}

	group := domain.NewGroup(name, creatorID)
	err = s.tx.WithinTx(ctx, "create group", func(q repository.DBExecutor) error {
		if err := s.groupRepo.CreateGroup(ctx, q, group); err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		for _, id := range members {
			if err := s.groupRepo.AddMember(ctx, q, group.ID, id); err != nil {
				return fmt.Errorf("create group: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	group.MemberIDs = members

	s.notifier.publish(ctx, events.TypeGroupCreated, creatorID, group)
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// requireMembership returns ErrGroupNotFound for an unknown group and
// ErrForbidden when userID is not one of its members.
func requireMembership(ctx context.Context, q repository.DBExecutor, groupRepo repository.GroupRepository, groupID, userID int64) (*domain.Group, error) {
	group, err := groupRepo.GetGroupByID(ctx, q, groupID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	for _, id := range group.MemberIDs {
		if id == userID {
			return group, nil
		}
	}
	return nil, util.ErrForbidden
}
