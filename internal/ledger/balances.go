// internal/ledger/balances.go
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"splitledger/internal/domain"
)

// ComputeBalances nets every expense share and settlement touching userID into
// one signed total per counterparty. A positive amount means the counterparty
// owes userID. Counterparties that net to exactly zero are omitted and the
// result is ordered by counterparty id. Inputs are not modified.
//
// Shares whose expense is not in expenses are ignored, since their payer is unknown.
func ComputeBalances(userID int64, expenses []domain.Expense, shares []domain.ExpenseShare, settlements []domain.Settlement) []domain.Balance {
	payers := make(map[int64]int64, len(expenses))
	for _, e := range expenses {
		payers[e.ID] = e.PaidBy
	}

	totals := make(map[int64]decimal.Decimal)
	for _, s := range shares {
		payer, ok := payers[s.ExpenseID]
		if !ok || payer == s.UserID {
			continue
		}
		switch userID {
		case payer:
			totals[s.UserID] = totals[s.UserID].Add(s.Amount)
		case s.UserID:
			totals[payer] = totals[payer].Sub(s.Amount)
		}
	}

	// Paying someone moves what you owe them toward zero, so it counts like
	// lending: from's view of to goes up and to's view of from goes down.
	for _, st := range settlements {
		if st.FromUserID == st.ToUserID {
			continue
		}
		switch userID {
		case st.FromUserID:
			totals[st.ToUserID] = totals[st.ToUserID].Add(st.Amount)
		case st.ToUserID:
			totals[st.FromUserID] = totals[st.FromUserID].Sub(st.Amount)
		}
	}

	balances := make([]domain.Balance, 0, len(totals))
	for counterparty, amount := range totals {
		if amount.IsZero() {
			continue
		}
		balances = append(balances, domain.Balance{UserID: counterparty, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })
	return balances
}

// BalanceWith returns userID's net amount against counterparty, zero when absent.
func BalanceWith(balances []domain.Balance, counterparty int64) decimal.Decimal {
	for _, b := range balances {
		if b.UserID == counterparty {
			return b.Amount
		}
	}
	return decimal.Zero
}

// ComputeNetPositions returns every user's overall position across the whole
// record set: what others owe them minus what they owe others. It equals the
// sum of ComputeBalances for that user, and the positions of all users sum to zero.
func ComputeNetPositions(expenses []domain.Expense, shares []domain.ExpenseShare, settlements []domain.Settlement) map[int64]decimal.Decimal {
	payers := make(map[int64]int64, len(expenses))
	for _, e := range expenses {
		payers[e.ID] = e.PaidBy
	}

	net := make(map[int64]decimal.Decimal)
	for _, s := range shares {
		payer, ok := payers[s.ExpenseID]
		if !ok || payer == s.UserID {
			continue
		}
		net[payer] = net[payer].Add(s.Amount)
		net[s.UserID] = net[s.UserID].Sub(s.Amount)
	}
	for _, st := range settlements {
		if st.FromUserID == st.ToUserID {
			continue
		}
		net[st.FromUserID] = net[st.FromUserID].Add(st.Amount)
		net[st.ToUserID] = net[st.ToUserID].Sub(st.Amount)
	}

	for id, amount := range net {
		if amount.IsZero() {
			delete(net, id)
		}
	}
	return net
}
