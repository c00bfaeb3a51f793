// internal/api/handler/expense.go
package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/api/types"
	"splitledger/internal/domain"
	"splitledger/internal/ledger"
	"splitledger/internal/service"
	"splitledger/internal/util"
)

// ExpenseHandler handles expense creation, listing and deletion.
type ExpenseHandler struct {
	responder
	expenses service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{responder: newResponder(logger), expenses: expenses}
}

// ShareRequest is one participant of a new expense. It accepts
//
//	2                                 (equal split, bare user id)
//	{"user_id": 2}                    (equal split)
//	{"user_id": 2, "amount": 12.5}    (exact split)
//	{"user_id": 2, "percentage": 25}  (percentage split; "amount" is read as the percentage too)
type ShareRequest struct {
	UserID     int64            `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// UnmarshalJSON accepts either a share object or a bare user id.
func (s *ShareRequest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return util.NewValidationError("shares", "each share must be a user id or an object")
		}
		id, err := n.Int64()
		if err != nil {
			return util.NewValidationError("shares", fmt.Sprintf("%q is not a user id", n.String()))
		}
		*s = ShareRequest{UserID: id}
		return nil
	}

	type plain ShareRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ShareRequest(p)
	return nil
}

// CreateExpenseRequest represents the request body for expense creation.
// The caller is recorded as the payer.
type CreateExpenseRequest struct {
	GroupID     int64            `json:"group_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	SplitType   domain.SplitType `json:"split_type"`
	Shares      []ShareRequest   `json:"shares"`
}

// participants converts the request shares into ledger inputs for the split policy.
func (req CreateExpenseRequest) participants() ([]ledger.Participant, error) {
	out := make([]ledger.Participant, 0, len(req.Shares))
	for i, s := range req.Shares {
		p := ledger.Participant{UserID: s.UserID}
		switch req.SplitType {
		case domain.SplitExact:
			if s.Amount == nil {
				return nil, util.NewValidationError(fmt.Sprintf("shares[%d].amount", i), "is required for exact splits")
			}
			p.Value = *s.Amount
		case domain.SplitPercentage:
			switch {
			case s.Percentage != nil:
				p.Value = *s.Percentage
			case s.Amount != nil:
				p.Value = *s.Amount
			default:
				return nil, util.NewValidationError(fmt.Sprintf("shares[%d].percentage", i), "is required for percentage splits")
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Create records a new expense paid by the caller.
// POST /api/expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	var req CreateExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	participants, err := req.participants()
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(), userID, service.CreateExpenseInput{
		GroupID:      req.GroupID,
		Amount:       req.Amount,
		Description:  req.Description,
		SplitType:    req.SplitType,
		Participants: participants,
	})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, expense)
}

// ListByGroup returns a group's expenses with their shares.
// GET /api/expenses/{id}, where id is the group id.
func (h *ExpenseHandler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	groupID, err := idParam(r, "id")
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	expenses, err := h.expenses.ListGroupExpenses(r.Context(), userID, groupID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, expenses)
}

// Delete removes an expense and its shares.
// DELETE /api/expenses/{id}
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	expenseID, err := idParam(r, "id")
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	if err := h.expenses.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "Expense deleted"})
}
