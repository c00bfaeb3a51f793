// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/api/middleware"
	"splitledger/internal/api/types"
	"splitledger/internal/util"
)

// DefaultTimeout bounds every request handled by the API router.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// responder holds the JSON helpers shared by all handlers.
type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses. Anything not mapped here is a
// storage or programming error: it is logged and hidden behind a generic 500.
func (h responder) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	body := types.ErrorResponse{Error: "Internal server error"}

	if ve, ok := util.AsValidationError(err); ok {
		h.respondWithJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: ve.Message, Field: ve.Field})
		return
	}

	switch {
	case util.IsError(err, util.ErrSelfSettlement):
		statusCode = http.StatusBadRequest
		body = types.ErrorResponse{Error: util.ErrSelfSettlement.Error(), Field: "to_user_id"}
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		body.Error = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrUserNotFound),
		util.IsError(err, util.ErrGroupNotFound), util.IsError(err, util.ErrExpenseNotFound):
		statusCode = http.StatusNotFound
		body.Error = "Resource not found"
	case util.IsError(err, util.ErrForbidden):
		statusCode = http.StatusForbidden
		body.Error = util.ErrForbidden.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		body.Error = "Invalid credentials"
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		body.Error = util.ErrUnauthorized.Error()
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		body.Error = "Resource already exists"
	default:
		h.logger.Error("Unhandled service error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}

	h.respondWithJSON(w, statusCode, body)
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return util.NewValidationError("body", "request body is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return util.NewValidationError(typeErr.Field, "has the wrong type")
		case errors.As(err, &syntaxErr):
			return util.NewValidationError("body", "malformed JSON at offset "+strconv.FormatInt(syntaxErr.Offset, 10))
		default:
			if ve, ok := util.AsValidationError(err); ok {
				return ve
			}
			return util.NewValidationError("body", "malformed JSON")
		}
	}
	return nil
}

// currentUserID returns the user id placed in the context by middleware.RequireAuth.
func currentUserID(r *http.Request) (int64, error) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return 0, util.ErrUnauthorized
	}
	return userID, nil
}

// idParam parses a positive int64 path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
