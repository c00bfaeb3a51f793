// internal/api/handler/settlement.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/service"
)

// SettlementHandler records and lists settlements.
type SettlementHandler struct {
	responder
	settlements service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlements service.SettlementService, logger *slog.Logger) *SettlementHandler {
	return &SettlementHandler{responder: newResponder(logger), settlements: settlements}
}

// SettleRequest represents the request body for settling up.
type SettleRequest struct {
	ToUserID int64           `json:"to_user_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// Settle records a payment from the caller to another user.
// POST /api/settle
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	var req SettleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	settlement, err := h.settlements.RecordSettlement(r.Context(), userID, req.ToUserID, req.Amount)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, settlement)
}

// List returns settlements the caller paid or received, newest first.
// GET /api/settlements
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	settlements, err := h.settlements.ListSettlements(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, settlements)
}
