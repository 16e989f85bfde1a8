package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

// Error kinds returned in the envelope.
const (
	kindNotFound            = "not_found"
	kindForbidden           = "forbidden"
	kindUnauthorized        = "unauthorized"
	kindValidation          = "validation"
	kindInvalidTransition   = "invalid_state_transition"
	kindCurrencyMismatch    = "currency_mismatch"
	kindInsufficientBalance = "insufficient_balance"
	kindAlreadyExists       = "already_exists"
	kindConflict            = "conflict"
	kindInternal            = "internal"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, kind, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Kind: kind, Message: message, Details: details}})
}

// handleError maps a domain error onto a status code and error envelope.
// Anything unrecognised is logged and reported as a bare 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		te *domain.TransitionError
		ce *domain.CurrencyMismatchError
		be *domain.InsufficientBalanceError
	)

	switch {
	case errors.As(err, &ve):
		fields := make([]fieldErrorResponse, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeError(w, http.StatusUnprocessableEntity, kindValidation, ve.Error(), map[string]any{"fields": fields})
	case errors.As(err, &te):
		writeError(w, http.StatusConflict, kindInvalidTransition, te.Error(), map[string]any{
			"entity":    te.Entity,
			"id":        te.ID.String(),
			"operation": te.Operation,
			"from":      te.From,
		})
	case errors.As(err, &ce):
		writeError(w, http.StatusConflict, kindCurrencyMismatch, ce.Error(), map[string]any{
			"expected": ce.Expected.String(),
			"got":      ce.Got.String(),
		})
	case errors.As(err, &be):
		writeError(w, http.StatusUnprocessableEntity, kindInsufficientBalance, be.Error(), map[string]any{
			"balance":  be.Balance.StringFixed(2),
			"required": be.Required.StringFixed(2),
			"currency": be.Currency.String(),
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, kindNotFound, "not found", nil)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, kindForbidden, "forbidden", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "unauthorized", nil)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, kindValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidStateTransition):
		writeError(w, http.StatusConflict, kindInvalidTransition, err.Error(), nil)
	case errors.Is(err, domain.ErrCurrencyMismatch):
		writeError(w, http.StatusConflict, kindCurrencyMismatch, err.Error(), nil)
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeError(w, http.StatusUnprocessableEntity, kindInsufficientBalance, err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, kindAlreadyExists, "already exists", nil)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, kindConflict, "conflicting request in progress, retry", nil)
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, kindInternal, "internal server error", nil)
	}
}
