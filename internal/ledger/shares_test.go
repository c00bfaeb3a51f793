// internal/ledger/shares_test.go
package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/domain"
	"splitledger/internal/util"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func users(ids ...int64) []Participant {
	ps := make([]Participant, len(ids))
	for i, id := range ids {
		ps[i] = Participant{UserID: id}
	}
	return ps
}

func sumShares(shares []domain.ExpenseShare) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func assertShares(t *testing.T, expected map[int64]string, shares []domain.ExpenseShare) {
	t.Helper()
	require.Len(t, shares, len(expected))
	for _, s := range shares {
		want, ok := expected[s.UserID]
		require.True(t, ok, "unexpected share for user %d", s.UserID)
		assert.True(t, d(want).Equal(s.Amount), "user %d: expected %s, got %s", s.UserID, want, s.Amount)
	}
}

func TestComputeShares_Equal(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		ids      []int64
		expected map[int64]string
	}{
		{name: "divides evenly", amount: "90", ids: []int64{1, 2, 3}, expected: map[int64]string{1: "30", 2: "30", 3: "30"}},
		{name: "remainder to first participants", amount: "100", ids: []int64{1, 2, 3}, expected: map[int64]string{1: "33.34", 2: "33.33", 3: "33.33"}},
		{name: "two cents left over", amount: "0.05", ids: []int64{7, 8, 9}, expected: map[int64]string{7: "0.02", 8: "0.02", 9: "0.01"}},
		{name: "single participant", amount: "12.34", ids: []int64{4}, expected: map[int64]string{4: "12.34"}},
		{name: "fewer cents than participants", amount: "0.01", ids: []int64{1, 2}, expected: map[int64]string{1: "0.01", 2: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(d(tt.amount), domain.SplitEqual, users(tt.ids...))
			require.NoError(t, err)
			assertShares(t, tt.expected, shares)
			assert.True(t, d(tt.amount).Equal(sumShares(shares)))
		})
	}
}

func TestComputeShares_EqualKeepsOrder(t *testing.T) {
	shares, err := ComputeShares(d("10"), domain.SplitEqual, users(30, 10, 20))
	require.NoError(t, err)

	require.Len(t, shares, 3)
	assert.Equal(t, int64(30), shares[0].UserID)
	assert.Equal(t, "3.34", shares[0].Amount.StringFixed(2))
	assert.Equal(t, int64(10), shares[1].UserID)
	assert.Equal(t, int64(20), shares[2].UserID)
}

func TestComputeShares_EqualSumsToAmount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		amount := decimal.New(rng.Int63n(10_000_000)+1, -2)
		n := rng.Intn(12) + 1
		ids := make([]int64, n)
		for j := range ids {
			ids[j] = int64(j + 1)
		}

		shares, err := ComputeShares(amount, domain.SplitEqual, users(ids...))
		require.NoError(t, err)
		require.True(t, amount.Equal(sumShares(shares)), "amount %s over %d participants summed to %s", amount, n, sumShares(shares))

		// No two shares differ by more than one minor unit.
		minShare, maxShare := shares[0].Amount, shares[0].Amount
		for _, s := range shares {
			minShare = decimal.Min(minShare, s.Amount)
			maxShare = decimal.Max(maxShare, s.Amount)
		}
		require.True(t, maxShare.Sub(minShare).LessThanOrEqual(d("0.01")))
	}
}

func TestComputeShares_Exact(t *testing.T) {
	t.Run("accepts shares summing to the amount", func(t *testing.T) {
		shares, err := ComputeShares(d("100"), domain.SplitExact, []Participant{
			{UserID: 1, Value: d("60")},
			{UserID: 2, Value: d("40")},
		})
		require.NoError(t, err)
		assertShares(t, map[int64]string{1: "60", 2: "40"}, shares)
	})

	t.Run("allows a zero share", func(t *testing.T) {
		shares, err := ComputeShares(d("25.50"), domain.SplitExact, []Participant{
			{UserID: 1, Value: d("25.50")},
			{UserID: 2, Value: d("0")},
		})
		require.NoError(t, err)
		assertShares(t, map[int64]string{1: "25.50", 2: "0"}, shares)
	})

	tests := []struct {
		name   string
		amount string
		parts  []Participant
		field  string
	}{
		{
			name:   "sum below amount",
			amount: "100",
			parts:  []Participant{{UserID: 1, Value: d("60")}, {UserID: 2, Value: d("39.99")}},
			field:  "shares",
		},
		{
			name:   "sum above amount",
			amount: "100",
			parts:  []Participant{{UserID: 1, Value: d("60")}, {UserID: 2, Value: d("40.01")}},
			field:  "shares",
		},
		{
			name:   "negative share",
			amount: "10",
			parts:  []Participant{{UserID: 1, Value: d("15")}, {UserID: 2, Value: d("-5")}},
			field:  "shares[1].amount",
		},
		{
			name:   "sub-cent share",
			amount: "10",
			parts:  []Participant{{UserID: 1, Value: d("5.005")}, {UserID: 2, Value: d("4.995")}},
			field:  "shares[0].amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(d(tt.amount), domain.SplitExact, tt.parts)
			assert.Nil(t, shares)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
			ve, ok := util.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestComputeShares_Percentage(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		parts    []Participant
		expected map[int64]string
	}{
		{
			name:     "clean split",
			amount:   "200",
			parts:    []Participant{{UserID: 1, Value: d("50")}, {UserID: 2, Value: d("30")}, {UserID: 3, Value: d("20")}},
			expected: map[int64]string{1: "100", 2: "60", 3: "40"},
		},
		{
			name:     "thirds hand the leftover cent to the first",
			amount:   "100",
			parts:    []Participant{{UserID: 1, Value: d("33.33")}, {UserID: 2, Value: d("33.33")}, {UserID: 3, Value: d("33.34")}},
			expected: map[int64]string{1: "33.33", 2: "33.33", 3: "33.34"},
		},
		{
			name:     "leftover skips zero percentages",
			amount:   "0.01",
			parts:    []Participant{{UserID: 1, Value: d("0")}, {UserID: 2, Value: d("50")}, {UserID: 3, Value: d("50")}},
			expected: map[int64]string{1: "0", 2: "0.01", 3: "0"},
		},
		{
			name:     "sum within epsilon of 100",
			amount:   "10",
			parts:    []Participant{{UserID: 1, Value: d("33.33")}, {UserID: 2, Value: d("33.33")}, {UserID: 3, Value: d("33.33")}},
			expected: map[int64]string{1: "3.34", 2: "3.33", 3: "3.33"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(d(tt.amount), domain.SplitPercentage, tt.parts)
			require.NoError(t, err)
			assertShares(t, tt.expected, shares)
			assert.True(t, d(tt.amount).Equal(sumShares(shares)))
		})
	}
}

func TestComputeShares_PercentageSumsToAmount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		amount := decimal.New(rng.Int63n(10_000_000)+1, -2)
		n := rng.Intn(6) + 1

		// Random basis points that add up to 10000, i.e. 100.00%.
		remaining := int64(10000)
		parts := make([]Participant, n)
		for j := 0; j < n; j++ {
			bp := remaining
			if j < n-1 {
				bp = rng.Int63n(remaining + 1)
			}
			remaining -= bp
			parts[j] = Participant{UserID: int64(j + 1), Value: decimal.New(bp, -2)}
		}

		shares, err := ComputeShares(amount, domain.SplitPercentage, parts)
		require.NoError(t, err)
		require.True(t, amount.Equal(sumShares(shares)), "amount %s split %v summed to %s", amount, parts, sumShares(shares))
		for j, s := range shares {
			require.False(t, s.Amount.IsNegative())
			if parts[j].Value.IsZero() {
				require.True(t, s.Amount.IsZero())
			}
		}
	}
}

func TestComputeShares_PercentageRejects(t *testing.T) {
	tests := []struct {
		name  string
		parts []Participant
		field string
	}{
		{
			name:  "sum below 100",
			parts: []Participant{{UserID: 1, Value: d("50")}, {UserID: 2, Value: d("40")}},
			field: "shares",
		},
		{
			name:  "sum above 100",
			parts: []Participant{{UserID: 1, Value: d("60")}, {UserID: 2, Value: d("40.5")}},
			field: "shares",
		},
		{
			name:  "negative percentage",
			parts: []Participant{{UserID: 1, Value: d("110")}, {UserID: 2, Value: d("-10")}},
			field: "shares[0].percentage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeShares(d("100"), domain.SplitPercentage, tt.parts)
			ve, ok := util.AsValidationError(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestComputeShares_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		policy domain.SplitType
		parts  []Participant
		field  string
	}{
		{name: "zero amount", amount: "0", policy: domain.SplitEqual, parts: users(1), field: "amount"},
		{name: "negative amount", amount: "-5", policy: domain.SplitEqual, parts: users(1), field: "amount"},
		{name: "sub-cent amount", amount: "1.001", policy: domain.SplitEqual, parts: users(1), field: "amount"},
		{name: "amount too large", amount: "1000000000000", policy: domain.SplitEqual, parts: users(1), field: "amount"},
		{name: "no participants", amount: "10", policy: domain.SplitEqual, parts: nil, field: "shares"},
		{name: "duplicate participant", amount: "10", policy: domain.SplitEqual, parts: users(1, 2, 1), field: "shares[2].user_id"},
		{name: "non-positive user id", amount: "10", policy: domain.SplitEqual, parts: users(0), field: "shares[0].user_id"},
		{name: "unknown policy", amount: "10", policy: domain.SplitType("shares"), parts: users(1), field: "split_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(d(tt.amount), tt.policy, tt.parts)
			assert.Nil(t, shares)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
			ve, ok := util.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
