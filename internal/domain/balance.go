// internal/domain/balance.go
package domain

import "github.com/shopspring/decimal"

// Balance is the derived net position of the subject user against one counterparty.
// Positive: the counterparty owes the subject. Negative: the subject owes the counterparty.
type Balance struct {
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}
