package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/service/currency"
	"github.com/heartmarshall/hrwallet-backend/internal/transport/middleware"
)

type currencyReconciler interface {
	Reconcile(ctx context.Context, userID uuid.UUID) (currency.ReconcileResult, error)
}

type balanceVerifier interface {
	VerifyBalance(ctx context.Context, userID uuid.UUID) (domain.BalanceCheck, error)
}

type auditTrail interface {
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	currency currencyReconciler
	ledger   balanceVerifier
	audit    auditTrail
	log      *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(currency currencyReconciler, ledger balanceVerifier, audit auditTrail, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		currency: currency,
		ledger:   ledger,
		audit:    audit,
		log:      logger.With("handler", "admin"),
	}
}

type reconcileResponse struct {
	UserID             uuid.UUID `json:"userId"`
	Currency           string    `json:"currency,omitempty"`
	NoOp               bool      `json:"noOp"`
	User               bool      `json:"user"`
	Wallet             bool      `json:"wallet"`
	CreditRequests     int64     `json:"creditRequests"`
	WalletTransactions int64     `json:"walletTransactions"`
	Redemptions        int64     `json:"redemptions"`
	Changed            int64     `json:"changed"`
}

type balanceCheckResponse struct {
	UserID     uuid.UUID `json:"userId"`
	Cached     string    `json:"cached"`
	Computed   string    `json:"computed"`
	Credits    string    `json:"credits"`
	Debits     string    `json:"debits"`
	Consistent bool      `json:"consistent"`
}

type auditRecordResponse struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    uuid.UUID      `json:"actorId"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   uuid.UUID      `json:"entityId"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ReconcileCurrency rewrites a user's records to their authoritative currency.
// POST /admin/users/{id}/reconcile-currency
func (h *AdminHandler) ReconcileCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.adminTarget(w, r)
	if !ok {
		return
	}

	res, err := h.currency.Reconcile(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "currency reconciled",
		slog.String("user_id", userID.String()),
		slog.Int64("changed", res.Changed()),
	)

	writeJSON(w, http.StatusOK, reconcileResponse{
		UserID:             res.UserID,
		Currency:           res.Currency.String(),
		NoOp:               res.NoOp,
		User:               res.User,
		Wallet:             res.Wallet,
		CreditRequests:     res.CreditRequests,
		WalletTransactions: res.WalletTransactions,
		Redemptions:        res.Redemptions,
		Changed:            res.Changed(),
	})
}

// VerifyBalance compares a wallet's cached balance with its ledger.
// GET /admin/users/{id}/balance-check
func (h *AdminHandler) VerifyBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.adminTarget(w, r)
	if !ok {
		return
	}

	check, err := h.ledger.VerifyBalance(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceCheckResponse{
		UserID:     check.UserID,
		Cached:     check.Cached.StringFixed(2),
		Computed:   check.Computed.StringFixed(2),
		Credits:    check.Credits.StringFixed(2),
		Debits:     check.Debits.StringFixed(2),
		Consistent: check.Consistent(),
	})
}

// AuditTrail lists the audit records of one entity, newest first.
// GET /admin/audit/{entityType}/{id}
func (h *AdminHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	entityID, ok := h.adminTarget(w, r)
	if !ok {
		return
	}
	entityType := domain.EntityType(chi.URLParam(r, "entityType"))
	if !entityType.IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("entityType", "unknown entity type"))
		return
	}
	limit, _, err := page(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	records, err := h.audit.GetByEntity(r.Context(), entityType, entityID, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(records, limit, 0, func(rec *domain.AuditRecord) auditRecordResponse {
		return auditRecordResponse{
			ID:         rec.ID,
			ActorID:    rec.ActorID,
			Action:     string(rec.Action),
			EntityType: rec.EntityType.String(),
			EntityID:   rec.EntityID,
			Details:    rec.Details,
			CreatedAt:  rec.CreatedAt,
		}
	}))
}

func (h *AdminHandler) adminTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if err := middleware.RequireRole(r.Context(), domain.RoleAdmin); err != nil {
		handleError(h.log, w, r, err)
		return uuid.Nil, false
	}
	userID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return uuid.Nil, false
	}
	return userID, true
}
