// internal/repository/postgres/expense_pg.go
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

const expenseColumns = `e.id, e.group_id, e.paid_by, u.name AS paid_by_name, e.amount, e.description, e.split_type, e.created_at`

// ExpenseRepository implements repository.ExpenseRepository for PostgreSQL.
type ExpenseRepository struct{}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository() repository.ExpenseRepository {
	return &ExpenseRepository{}
}

// CreateExpense inserts the expense row using the provided DBExecutor.
func (r *ExpenseRepository) CreateExpense(ctx context.Context, q repository.DBExecutor, expense *domain.Expense) error {
	query := `INSERT INTO expenses (group_id, paid_by, amount, description, split_type, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		expense.GroupID,
		expense.PaidBy,
		expense.Amount,
		expense.Description,
		expense.SplitType,
		expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create expense in group %d: %w", expense.GroupID, util.ErrNotFound)
		}
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// CreateExpenseShare inserts one share row and sets its ID.
func (r *ExpenseRepository) CreateExpenseShare(ctx context.Context, q repository.DBExecutor, share *domain.ExpenseShare) error {
	query := `INSERT INTO expense_shares (expense_id, user_id, amount) VALUES ($1, $2, $3) RETURNING id`
	err := q.QueryRowContext(ctx, query, share.ExpenseID, share.UserID, share.Amount).Scan(&share.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("user %d already has a share of expense %d: %w", share.UserID, share.ExpenseID, util.ErrDuplicateEntry)
		case isForeignKeyViolation(err):
			return fmt.Errorf("share for user %d: %w", share.UserID, util.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create share of expense %d: %w", share.ExpenseID, err)
	}
	return nil
}

// GetExpenseByID retrieves an expense without its shares.
func (r *ExpenseRepository) GetExpenseByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Expense, error) {
	var expense domain.Expense
	query := `SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.id = $1`
	if err := q.GetContext(ctx, &expense, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID %d: %w", id, err)
	}
	return &expense, nil
}

// ListExpensesByGroupID returns the group's expenses, newest first.
func (r *ExpenseRepository) ListExpensesByGroupID(ctx context.Context, q repository.DBExecutor, groupID int64) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	query := `SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC, e.id DESC`
	if err := q.SelectContext(ctx, &expenses, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %d: %w", groupID, err)
	}
	return expenses, nil
}

// ListSharesByExpenseIDs returns the shares of every expense in expenseIDs.
func (r *ExpenseRepository) ListSharesByExpenseIDs(ctx context.Context, q repository.DBExecutor, expenseIDs []int64) ([]domain.ExpenseShare, error) {
	shares := []domain.ExpenseShare{}
	if len(expenseIDs) == 0 {
		return shares, nil
	}
	query := `
		SELECT s.id, s.expense_id, s.user_id, u.name AS user_name, s.amount
		FROM expense_shares s
		JOIN users u ON u.id = s.user_id
		WHERE s.expense_id = ANY($1)
		ORDER BY s.expense_id, s.id`
	if err := q.SelectContext(ctx, &shares, query, pq.Array(expenseIDs)); err != nil {
		return nil, fmt.Errorf("failed to list expense shares: %w", err)
	}
	return shares, nil
}

// ListExpensesInvolvingUser returns the expenses userID paid for or holds a share of.
func (r *ExpenseRepository) ListExpensesInvolvingUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	query := `SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.paid_by = $1
		   OR EXISTS (SELECT 1 FROM expense_shares s WHERE s.expense_id = e.id AND s.user_id = $1)
		ORDER BY e.id`
	if err := q.SelectContext(ctx, &expenses, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list expenses involving user %d: %w", userID, err)
	}
	return expenses, nil
}

// DeleteSharesByExpenseID removes every share of an expense.
func (r *ExpenseRepository) DeleteSharesByExpenseID(ctx context.Context, q repository.DBExecutor, expenseID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, expenseID); err != nil {
		return fmt.Errorf("failed to delete shares of expense %d: %w", expenseID, err)
	}
	return nil
}

// DeleteExpense removes the expense row. Shares must already be gone.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting expense %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
