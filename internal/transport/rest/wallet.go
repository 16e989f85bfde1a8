package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/transport/middleware"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

type walletService interface {
	EnsureWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error)
}

// WalletHandler serves balance and ledger reads.
type WalletHandler struct {
	svc walletService
	log *slog.Logger
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(svc walletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{svc: svc, log: logger.With("handler", "wallet")}
}

// Get handles GET /wallet. Payout staff may pass ?userId= to read someone else's.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := walletOwner(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	wallet, err := h.svc.EnsureWallet(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWallet(wallet))
}

// Transactions handles GET /wallet/transactions?type=&redeemable=&limit=&offset=.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, err := walletOwner(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var filter domain.TransactionFilter
	if filter.Limit, filter.Offset, err = page(r); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if filter.RedeemableOnly, err = queryBool(r, "redeemable"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if v := r.URL.Query().Get("type"); v != "" {
		typ := domain.TransactionType(v)
		if !typ.IsValid() {
			handleError(h.log, w, r, domain.NewValidationError("type", "must be credit or debit"))
			return
		}
		filter.Type = &typ
	}

	txs, err := h.svc.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapList(txs, filter.Limit, filter.Offset, func(t *domain.WalletTransaction) *transactionResponse {
		return toTransaction(t)
	}))
}

// walletOwner resolves whose wallet is being read.
func walletOwner(r *http.Request) (uuid.UUID, error) {
	self, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}

	other, err := queryUUID(r, "userId")
	if err != nil {
		return uuid.Nil, err
	}
	if other == nil || *other == self {
		return self, nil
	}

	if err := middleware.RequireRole(r.Context(), domain.RoleAdmin, domain.RoleAccount); err != nil {
		return uuid.Nil, err
	}
	return *other, nil
}
