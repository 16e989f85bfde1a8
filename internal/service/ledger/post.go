package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
)

// Post appends a transaction to a wallet previously returned by LockWallet in
// the same transaction and advances w.Balance. Debits never take the balance
// below zero.
func (s *Service) Post(ctx context.Context, w *domain.Wallet, p domain.LedgerPosting) (*domain.WalletTransaction, error) {
	if !p.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "must be positive")
	}
	if !p.Type.IsValid() {
		return nil, domain.NewValidationError("type", "must be credit or debit")
	}
	if p.Currency != w.Currency {
		return nil, &domain.CurrencyMismatchError{Expected: w.Currency, Got: p.Currency}
	}

	next := w.Balance.Add(p.Amount)
	if p.Type == domain.TransactionTypeDebit {
		if w.Balance.LessThan(p.Amount) {
			return nil, &domain.InsufficientBalanceError{Balance: w.Balance, Required: p.Amount, Currency: w.Currency}
		}
		next = w.Balance.Sub(p.Amount)
	}

	tx, err := s.wallets.PostTransaction(ctx, domain.PostTransactionParams{
		ID:          uuid.New(),
		UserID:      w.UserID,
		Type:        p.Type,
		Amount:      p.Amount,
		Currency:    p.Currency,
		NewBalance:  next,
		Links:       p.Links,
		Description: p.Description,
		TimelineLog: p.TimelineLog,
	})
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", p.Type, err)
	}

	w.Balance = next
	metrics.WalletPostings.WithLabelValues(string(p.Type)).Inc()

	s.log.InfoContext(ctx, "wallet transaction posted",
		slog.String("user_id", w.UserID.String()),
		slog.String("transaction_id", tx.ID.String()),
		slog.String("type", string(p.Type)),
		slog.String("amount", p.Amount.StringFixed(2)),
		slog.String("currency", string(p.Currency)),
		slog.String("balance", next.StringFixed(2)),
	)

	return tx, nil
}

// Credit locks the user's wallet and posts a credit in its currency.
// It must be called inside Exclusive.
func (s *Service) Credit(ctx context.Context, userID uuid.UUID, p domain.LedgerPosting) (*domain.WalletTransaction, error) {
	p.Type = domain.TransactionTypeCredit
	return s.lockAndPost(ctx, userID, p)
}

// Debit locks the user's wallet and posts a debit, failing with
// InsufficientBalanceError when the balance does not cover it.
// It must be called inside Exclusive.
func (s *Service) Debit(ctx context.Context, userID uuid.UUID, p domain.LedgerPosting) (*domain.WalletTransaction, error) {
	p.Type = domain.TransactionTypeDebit
	return s.lockAndPost(ctx, userID, p)
}

func (s *Service) lockAndPost(ctx context.Context, userID uuid.UUID, p domain.LedgerPosting) (*domain.WalletTransaction, error) {
	w, err := s.LockWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Currency == "" {
		p.Currency = w.Currency
	}
	return s.Post(ctx, w, p)
}
