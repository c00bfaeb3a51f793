// internal/service/balance_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"splitledger/internal/domain"
	"splitledger/internal/ledger"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// BalanceService computes a user's net position against everyone they share costs with.
type BalanceService interface {
	GetBalances(ctx context.Context, userID int64) ([]domain.Balance, error)
}

type balanceService struct {
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	expenseRepo    repository.ExpenseRepository
	settlementRepo repository.SettlementRepository
}

// NewBalanceService creates a new instance of BalanceService.
func NewBalanceService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	expenseRepo repository.ExpenseRepository,
	settlementRepo repository.SettlementRepository,
) BalanceService {
	return &balanceService{
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
	}
}

// GetBalances loads every expense, share and settlement touching userID and
// nets them per counterparty. Reads only; no locks are taken.
func (s *balanceService) GetBalances(ctx context.Context, userID int64) ([]domain.Balance, error) {
	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get balances: failed to get user %d: %w", userID, err)
	}

	expenses, err := s.expenseRepo.ListExpensesInvolvingUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}
	expenseIDs := make([]int64, len(expenses))
	for i, e := range expenses {
		expenseIDs[i] = e.ID
	}
	shares, err := s.expenseRepo.ListSharesByExpenseIDs(ctx, s.dbExecutor, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}
	settlements, err := s.settlementRepo.ListSettlementsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}

	balances := ledger.ComputeBalances(userID, expenses, shares, settlements)
	if len(balances) == 0 {
		return balances, nil
	}

	counterparties := make([]int64, len(balances))
	for i, b := range balances {
		counterparties[i] = b.UserID
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, s.dbExecutor, counterparties)
	if err != nil {
		return nil, fmt.Errorf("get balances: failed to load counterparty names: %w", err)
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range balances {
		balances[i].Name = names[balances[i].UserID]
	}
	return balances, nil
}
