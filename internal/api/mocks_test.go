// internal/api/mocks_test.go
package api

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"splitledger/internal/auth"
	"splitledger/internal/domain"
	"splitledger/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockGroupService is a mock implementation of service.GroupService.
type MockGroupService struct{ mock.Mock }

func (m *MockGroupService) CreateGroup(ctx context.Context, creatorID int64, name string, memberIDs []int64) (*domain.Group, error) {
	args := m.Called(ctx, creatorID, name, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

// MockExpenseService is a mock implementation of service.ExpenseService.
type MockExpenseService struct{ mock.Mock }

func (m *MockExpenseService) CreateExpense(ctx context.Context, actorID int64, in service.CreateExpenseInput) (*domain.Expense, error) {
	args := m.Called(ctx, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListGroupExpenses(ctx context.Context, actorID, groupID int64) ([]domain.Expense, error) {
	args := m.Called(ctx, actorID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, actorID, expenseID int64) error {
	args := m.Called(ctx, actorID, expenseID)
	return args.Error(0)
}

// MockBalanceService is a mock implementation of service.BalanceService.
type MockBalanceService struct{ mock.Mock }

func (m *MockBalanceService) GetBalances(ctx context.Context, userID int64) ([]domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

// MockSettlementService is a mock implementation of service.SettlementService.
type MockSettlementService struct{ mock.Mock }

func (m *MockSettlementService) RecordSettlement(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (*domain.Settlement, error) {
	args := m.Called(ctx, fromUserID, toUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementService) ListSettlements(ctx context.Context, userID int64) ([]domain.Settlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

// stubTokens accepts "token-<id>" style tokens from a fixed table.
type stubTokens map[string]int64

func (s stubTokens) Validate(token string) (*auth.Claims, error) {
	id, ok := s[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &auth.Claims{UserID: id}, nil
}
