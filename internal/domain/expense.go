// internal/domain/expense.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// SplitType selects how an expense amount is divided among its participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitExact      SplitType = "exact"
	SplitPercentage SplitType = "percentage"
)

// Valid reports whether s is a known split policy.
func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense is a payment made by one user on behalf of a group.
// Expenses and their shares are immutable once created.
type Expense struct {
	ID          int64           `db:"id" json:"id"`
	GroupID     int64           `db:"group_id" json:"group_id"`
	PaidBy      int64           `db:"paid_by" json:"paid_by"`
	PaidByName  string          `db:"paid_by_name" json:"paid_by_name,omitempty"` // Joined from users on reads
	Amount      decimal.Decimal `db:"amount" json:"amount"`                       // NUMERIC(14, 2) in DB
	Description string          `db:"description" json:"description"`
	SplitType   SplitType       `db:"split_type" json:"split_type"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`

	Shares []ExpenseShare `db:"-" json:"shares"`
}

// ExpenseShare is the portion of an expense attributed to one user.
type ExpenseShare struct {
	ID        int64           `db:"id" json:"id,omitempty"`
	ExpenseID int64           `db:"expense_id" json:"expense_id,omitempty"`
	UserID    int64           `db:"user_id" json:"user_id"`
	UserName  string          `db:"user_name" json:"user_name,omitempty"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
}

// NewExpense creates a new Expense instance. Shares are attached by the caller.
func NewExpense(groupID, paidBy int64, amount decimal.Decimal, description string, splitType SplitType) *Expense {
	return &Expense{
		GroupID:     groupID,
		PaidBy:      paidBy,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		SplitType:   splitType,
		CreatedAt:   time.Now().UTC(),
	}
}
