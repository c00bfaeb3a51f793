// internal/repository/expense_repo.go
package repository

import (
	"context"

	"splitledger/internal/domain"
)

// ExpenseRepository defines the interface for expense and share data operations.
type ExpenseRepository interface {
	// CreateExpense inserts the expense row and sets its ID. Shares are inserted separately.
	CreateExpense(ctx context.Context, q DBExecutor, expense *domain.Expense) error
	CreateExpenseShare(ctx context.Context, q DBExecutor, share *domain.ExpenseShare) error
	GetExpenseByID(ctx context.Context, q DBExecutor, id int64) (*domain.Expense, error)
	// ListExpensesByGroupID returns the group's expenses newest first, with the payer name joined.
	ListExpensesByGroupID(ctx context.Context, q DBExecutor, groupID int64) ([]domain.Expense, error)
	// ListSharesByExpenseIDs returns the shares of the given expenses, with user names joined.
	ListSharesByExpenseIDs(ctx context.Context, q DBExecutor, expenseIDs []int64) ([]domain.ExpenseShare, error)
	// ListExpensesInvolvingUser returns every expense userID paid for or holds a share of.
	ListExpensesInvolvingUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Expense, error)
	DeleteSharesByExpenseID(ctx context.Context, q DBExecutor, expenseID int64) error
	DeleteExpense(ctx context.Context, q DBExecutor, id int64) error
}
