// internal/service/settlement_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
	"splitledger/internal/events"
	"splitledger/internal/ledger"
	"splitledger/internal/metrics"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// SettlementService records payments between users.
type SettlementService interface {
	// RecordSettlement appends a payment of amount from fromUserID to toUserID.
	// It is visible to the next GetBalances call of either user.
	RecordSettlement(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, userID int64) ([]domain.Settlement, error)
}

type settlementService struct {
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	settlementRepo repository.SettlementRepository
	metrics        *metrics.Metrics
	notifier       notifier
}

// NewSettlementService creates a new instance of SettlementService. m may be nil.
func NewSettlementService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	settlementRepo repository.SettlementRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) SettlementService {
	return &settlementService{
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		settlementRepo: settlementRepo,
		metrics:        m,
		notifier:       newNotifier(publisher, m, logger),
	}
}

func (s *settlementService) RecordSettlement(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (*domain.Settlement, error) {
	if toUserID <= 0 {
		return nil, util.NewValidationError("to_user_id", "is required")
	}
	if fromUserID == toUserID {
		return nil, util.ErrSelfSettlement
	}
	if err := ledger.ValidateAmount("amount", amount); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, toUserID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("record settlement: failed to get user %d: %w", toUserID, err)
	}

	settlement := domain.NewSettlement(fromUserID, toUserID, amount)
	if err := s.settlementRepo.CreateSettlement(ctx, s.dbExecutor, settlement); err != nil {
		return nil, fmt.Errorf("record settlement: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SettlementsRecorded.Inc()
	}
	s.notifier.publish(ctx, events.TypeSettlementRecorded, fromUserID, settlement)
	return settlement, nil
}

func (s *settlementService) ListSettlements(ctx context.Context, userID int64) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlementsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	return settlements, nil
}
