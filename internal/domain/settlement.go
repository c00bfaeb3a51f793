// internal/domain/settlement.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement records a payment from one user to another that offsets a balance.
// It is a terminal fact: a reversal is a new settlement in the opposite direction.
type Settlement struct {
	ID         int64           `db:"id" json:"id"`
	FromUserID int64           `db:"from_user_id" json:"from_user_id"`
	ToUserID   int64           `db:"to_user_id" json:"to_user_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// NewSettlement creates a new Settlement instance.
func NewSettlement(fromUserID, toUserID int64, amount decimal.Decimal) *Settlement {
	return &Settlement{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
}
