// internal/repository/settlement_repo.go
package repository

import (
	"context"

	"splitledger/internal/domain"
)

// SettlementRepository defines the interface for settlement data operations.
// Settlements are append-only.
type SettlementRepository interface {
	CreateSettlement(ctx context.Context, q DBExecutor, settlement *domain.Settlement) error
	// ListSettlementsByUserID returns settlements sent or received by userID, newest first.
	ListSettlementsByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.Settlement, error)
}
