// internal/api/handler/balance.go
package handler

import (
	"log/slog"
	"net/http"

	"splitledger/internal/service"
)

// BalanceHandler serves the caller's net balances.
type BalanceHandler struct {
	responder
	balances service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balances service.BalanceService, logger *slog.Logger) *BalanceHandler {
	return &BalanceHandler{responder: newResponder(logger), balances: balances}
}

// Get returns one signed entry per counterparty.
// GET /api/balances
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	balances, err := h.balances.GetBalances(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, balances)
}
