// internal/service/expense_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
	"splitledger/internal/events"
	"splitledger/internal/ledger"
	"splitledger/internal/metrics"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// CreateExpenseInput is a request to record an expense paid by the acting user.
type CreateExpenseInput struct {
	GroupID      int64
	Amount       decimal.Decimal
	Description  string
	SplitType    domain.SplitType
	Participants []ledger.Participant
}

// ExpenseService defines the interface for expense-related business logic.
type ExpenseService interface {
	CreateExpense(ctx context.Context, actorID int64, in CreateExpenseInput) (*domain.Expense, error)
	ListGroupExpenses(ctx context.Context, actorID, groupID int64) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, actorID, expenseID int64) error
}

type expenseService struct {
	tx          *TxManager
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	groupRepo   repository.GroupRepository
	expenseRepo repository.ExpenseRepository
	metrics     *metrics.Metrics
	notifier    notifier
}

// NewExpenseService creates a new instance of ExpenseService. m may be nil.
func NewExpenseService(
	tx *TxManager,
	dbExecutor repository.DBExecutor,
	groupRepo repository.GroupRepository,
	expenseRepo repository.ExpenseRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) ExpenseService {
	return &expenseService{
		tx:          tx,
		dbExecutor:  dbExecutor,
		groupRepo:   groupRepo,
		expenseRepo: expenseRepo,
		metrics:     m,
		notifier:    newNotifier(publisher, m, logger),
	}
}

// CreateExpense splits the amount, checks that the payer and every participant
// belong to the group, and stores the expense with its shares in one transaction.
func (s *expenseService) CreateExpense(ctx context.Context, actorID int64, in CreateExpenseInput) (*domain.Expense, error) {
	if in.GroupID <= 0 {
		return nil, util.NewValidationError("group_id", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, util.NewValidationError("description", "is required")
	}
	if !in.SplitType.Valid() {
		return nil, util.NewValidationError("split_type", "must be one of equal, exact, percentage")
	}

	shares, err := ledger.ComputeShares(in.Amount, in.SplitType, in.Participants)
	if err != nil {
		return nil, err
	}

	group, err := requireMembership(ctx, s.dbExecutor, s.groupRepo, in.GroupID, actorID)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	members := make(map[int64]bool, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		members[id] = true
	}
	for i, share := range shares {
		if !members[share.UserID] {
			return nil, util.NewValidationError(fmt.Sprintf("shares[%d].user_id", i),
				fmt.Sprintf("user %d is not a member of group %d", share.UserID, in.GroupID))
		}
	}

	expense := domain.NewExpense(in.GroupID, actorID, in.Amount, in.Description, in.SplitType)
	err = s.tx.WithinTx(ctx, "create expense", func(q repository.DBExecutor) error {
		if err := s.expenseRepo.CreateExpense(ctx, q, expense); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		for i := range shares {
			shares[i].ExpenseID = expense.ID
			if err := s.expenseRepo.CreateExpenseShare(ctx, q, &shares[i]); err != nil {
				return fmt.Errorf("create expense: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	expense.Shares = shares

	if s.metrics != nil {
		s.metrics.ExpensesCreated.WithLabelValues(string(expense.SplitType)).Inc()
	}
	s.notifier.publish(ctx, events.TypeExpenseCreated, actorID, expense)
	return expense, nil
}

// ListGroupExpenses returns the group's expenses, newest first, each with its shares.
func (s *expenseService) ListGroupExpenses(ctx context.Context, actorID, groupID int64) ([]domain.Expense, error) {
	if _, err := requireMembership(ctx, s.dbExecutor, s.groupRepo, groupID, actorID); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses, err := s.expenseRepo.ListExpensesByGroupID(ctx, s.dbExecutor, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if err := s.attachShares(ctx, expenses); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) attachShares(ctx context.Context, expenses []domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	ids := make([]int64, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	shares, err := s.expenseRepo.ListSharesByExpenseIDs(ctx, s.dbExecutor, ids)
	if err != nil {
		return err
	}
	byExpense := make(map[int64][]domain.ExpenseShare, len(expenses))
	for _, share := range shares {
		byExpense[share.ExpenseID] = append(byExpense[share.ExpenseID], share)
	}
	for i := range expenses {
		expenses[i].Shares = byExpense[expenses[i].ID]
		if expenses[i].Shares == nil {
			expenses[i].Shares = []domain.ExpenseShare{}
		}
	}
	return nil
}

// DeleteExpense removes an expense and its shares as one unit. Any member of
// the expense's group may delete it.
func (s *expenseService) DeleteExpense(ctx context.Context, actorID, expenseID int64) error {
	var expense *domain.Expense
	err := s.tx.WithinTx(ctx, "delete expense", func(q repository.DBExecutor) error {
		var err error
		expense, err = s.expenseRepo.GetExpenseByID(ctx, q, expenseID)
		if err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return util.ErrExpenseNotFound
			}
			return fmt.Errorf("delete expense: %w", err)
		}

		isMember, err := s.groupRepo.IsMember(ctx, q, expense.GroupID, actorID)
		if err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		if !isMember {
			return util.ErrForbidden
		}

		if err := s.expenseRepo.DeleteSharesByExpenseID(ctx, q, expenseID); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		if err := s.expenseRepo.DeleteExpense(ctx, q, expenseID); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return util.ErrExpenseNotFound
			}
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ExpensesDeleted.Inc()
	}
	s.notifier.publish(ctx, events.TypeExpenseDeleted, actorID, map[string]int64{
		"expense_id": expense.ID,
		"group_id":   expense.GroupID,
	})
	return nil
}
