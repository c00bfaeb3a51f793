// internal/api/handler/group.go
package handler

import (
	"log/slog"
	"net/http"

	"splitledger/internal/service"
)

// GroupHandler handles group creation and listing.
type GroupHandler struct {
	responder
	groups service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups service.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{responder: newResponder(logger), groups: groups}
}

// CreateGroupRequest represents the request body for group creation.
// The caller is always added as a member.
type CreateGroupRequest struct {
	Name    string  `json:"name"`
	Members []int64 `json:"members"`
}

// Create creates a group.
// POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	var req CreateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), userID, req.Name, req.Members)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, group)
}

// List returns the groups the caller belongs to.
// GET /api/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	groups, err := h.groups.ListGroups(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, groups)
}
