// internal/ledger/shares.go
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
	"splitledger/internal/util"
)

// MinorUnitPlaces is the number of decimal places of the ledger currency.
const MinorUnitPlaces = 2

var (
	// MaxAmount is the largest amount a NUMERIC(14, 2) column holds.
	MaxAmount = decimal.RequireFromString("999999999999.99")

	hundred = decimal.NewFromInt(100)
	// Percentages may drift from 100 by rounding on the client.
	percentageEpsilon = decimal.RequireFromString("0.01")
)

// Participant is one entry of an expense split request.
// Value is the share amount for exact splits, the percentage for percentage
// splits and is ignored for equal splits.
type Participant struct {
	UserID int64
	Value  decimal.Decimal
}

// ValidateAmount checks that amount is positive, fits the store and has no
// more precision than the currency's minor unit.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return util.NewValidationError(field, "must be greater than zero")
	}
	if amount.GreaterThan(MaxAmount) {
		return util.NewValidationError(field, "exceeds the maximum of "+MaxAmount.StringFixed(MinorUnitPlaces))
	}
	if !hasMinorUnitPrecision(amount) {
		return util.NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", MinorUnitPlaces))
	}
	return nil
}

// ComputeShares divides amount among participants according to policy.
// The returned shares keep the participants' order and always sum to amount
// exactly. It has no side effects.
func ComputeShares(amount decimal.Decimal, policy domain.SplitType, participants []Participant) ([]domain.ExpenseShare, error) {
	if err := ValidateAmount("amount", amount); err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, util.NewValidationError("shares", "at least one participant is required")
	}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}

	switch policy {
	case domain.SplitEqual:
		return splitEqual(amount, participants), nil
	case domain.SplitExact:
		return splitExact(amount, participants)
	case domain.SplitPercentage:
		return splitPercentage(amount, participants)
	default:
		return nil, util.NewValidationError("split_type", fmt.Sprintf("unknown split type %q", policy))
	}
}

func validateParticipants(participants []Participant) error {
	seen := make(map[int64]struct{}, len(participants))
	for i, p := range participants {
		field := fmt.Sprintf("shares[%d].user_id", i)
		if p.UserID <= 0 {
			return util.NewValidationError(field, "must be a positive user id")
		}
		if _, dup := seen[p.UserID]; dup {
			return util.NewValidationError(field, fmt.Sprintf("user %d appears more than once", p.UserID))
		}
		seen[p.UserID] = struct{}{}
	}
	return nil
}

// splitEqual gives everyone amount/n rounded down to the minor unit and hands
// the leftover units, one each, to the first participants in list order.
func splitEqual(amount decimal.Decimal, participants []Participant) []domain.ExpenseShare {
	units := toMinorUnits(amount)
	n := int64(len(participants))
	base, remainder := units/n, units%n

	shares := make([]domain.ExpenseShare, len(participants))
	for i, p := range participants {
		u := base
		if int64(i) < remainder {
			u++
		}
		shares[i] = domain.ExpenseShare{UserID: p.UserID, Amount: fromMinorUnits(u)}
	}
	return shares
}

func splitExact(amount decimal.Decimal, participants []Participant) ([]domain.ExpenseShare, error) {
	sum := decimal.Zero
	shares := make([]domain.ExpenseShare, len(participants))
	for i, p := range participants {
		field := fmt.Sprintf("shares[%d].amount", i)
		if p.Value.IsNegative() {
			return nil, util.NewValidationError(field, "must not be negative")
		}
		if !hasMinorUnitPrecision(p.Value) {
			return nil, util.NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", MinorUnitPlaces))
		}
		sum = sum.Add(p.Value)
		shares[i] = domain.ExpenseShare{UserID: p.UserID, Amount: p.Value.Round(MinorUnitPlaces)}
	}
	if !sum.Equal(amount) {
		return nil, util.NewValidationError("shares",
			fmt.Sprintf("shares sum to %s but the amount is %s", sum.StringFixed(MinorUnitPlaces), amount.StringFixed(MinorUnitPlaces)))
	}
	return shares, nil
}

// splitPercentage converts percentages into minor units proportionally to the
// percentage total, rounding down, then hands the leftover units one each to
// the first participants holding a non-zero percentage.
func splitPercentage(amount decimal.Decimal, participants []Participant) ([]domain.ExpenseShare, error) {
	total := decimal.Zero
	for i, p := range participants {
		if p.Value.IsNegative() || p.Value.GreaterThan(hundred) {
			return nil, util.NewValidationError(fmt.Sprintf("shares[%d].percentage", i), "must be between 0 and 100")
		}
		total = total.Add(p.Value)
	}
	if total.Sub(hundred).Abs().GreaterThan(percentageEpsilon) {
		return nil, util.NewValidationError("shares",
			fmt.Sprintf("percentages sum to %s, expected 100", total.String()))
	}

	units := decimal.NewFromInt(toMinorUnits(amount))
	allocated := int64(0)
	raw := make([]int64, len(participants))
	for i, p := range participants {
		q, _ := units.Mul(p.Value).QuoRem(total, 0)
		raw[i] = q.IntPart()
		allocated += raw[i]
	}

	remainder := toMinorUnits(amount) - allocated
	shares := make([]domain.ExpenseShare, len(participants))
	for i, p := range participants {
		if remainder > 0 && p.Value.IsPositive() {
			raw[i]++
			remainder--
		}
		shares[i] = domain.ExpenseShare{UserID: p.UserID, Amount: fromMinorUnits(raw[i])}
	}
	return shares, nil
}

func hasMinorUnitPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MinorUnitPlaces))
}

func toMinorUnits(d decimal.Decimal) int64 {
	return d.Shift(MinorUnitPlaces).IntPart()
}

func fromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -MinorUnitPlaces)
}
