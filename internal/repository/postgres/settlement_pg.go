// internal/repository/postgres/settlement_pg.go
package postgres

import (
	"context"
	"fmt"

	"splitledger/internal/domain"
	"splitledger/internal/repository"
	"splitledger/internal/util"
)

// SettlementRepository implements repository.SettlementRepository for PostgreSQL.
type SettlementRepository struct{}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository() repository.SettlementRepository {
	return &SettlementRepository{}
}

// CreateSettlement appends a settlement and sets its ID.
func (r *SettlementRepository) CreateSettlement(ctx context.Context, q repository.DBExecutor, settlement *domain.Settlement) error {
	query := `INSERT INTO settlements (from_user_id, to_user_id, amount, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		settlement.FromUserID,
		settlement.ToUserID,
		settlement.Amount,
		settlement.CreatedAt,
	).Scan(&settlement.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("settlement to user %d: %w", settlement.ToUserID, util.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create settlement: %w", err)
	}
	return nil
}

// ListSettlementsByUserID returns the settlements userID sent or received.
func (r *SettlementRepository) ListSettlementsByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Settlement, error) {
	settlements := []domain.Settlement{}
	query := `
		SELECT id, from_user_id, to_user_id, amount, created_at
		FROM settlements
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC, id DESC`
	if err := q.SelectContext(ctx, &settlements, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list settlements for user %d: %w", userID, err)
	}
	return settlements, nil
}
