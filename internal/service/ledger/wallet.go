package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// EnsureWallet returns the user's wallet, creating it in the authoritative
// currency when absent and correcting its currency when it disagrees.
func (s *Service) EnsureWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	cur, _, err := s.currency.Authoritative(ctx, userID)
	if err != nil {
		return nil, err
	}

	w, err := s.wallets.Ensure(ctx, userID, cur)
	if err != nil {
		return nil, fmt.Errorf("ensure wallet: %w", err)
	}

	if w.Currency != cur {
		if _, err := s.wallets.SetCurrency(ctx, userID, cur); err != nil {
			return nil, fmt.Errorf("correct wallet currency: %w", err)
		}
		s.log.InfoContext(ctx, "wallet currency corrected",
			slog.String("user_id", userID.String()),
			slog.String("from", string(w.Currency)),
			slog.String("to", string(cur)),
		)
		w.Currency = cur
	}

	return w, nil
}

// LockWallet ensures the wallet exists and locks its row until the current
// transaction ends. It must be called inside Exclusive.
func (s *Service) LockWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	if _, err := s.EnsureWallet(ctx, userID); err != nil {
		return nil, err
	}
	w, err := s.wallets.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	return w, nil
}

// GetBalance returns the wallet without creating it. A user with no wallet
// yet has a zero balance in their authoritative currency.
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	w, err := s.wallets.Get(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	cur, _, err := s.currency.Authoritative(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &domain.Wallet{UserID: userID, Balance: decimal.Zero, Currency: cur, CreatedAt: now, UpdatedAt: now}, nil
}
