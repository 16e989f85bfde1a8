package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// GetTransaction returns one ledger row.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.WalletTransaction, error) {
	tx, err := s.wallets.GetTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return tx, nil
}

// ListTransactions returns the user's ledger, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, filter domain.TransactionFilter) ([]domain.WalletTransaction, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, domain.NewValidationError("type", "must be credit or debit")
	}
	if filter.Offset < 0 {
		return nil, domain.NewValidationError("offset", "must be non-negative")
	}
	filter.Limit = domain.ClampLimit(filter.Limit)

	txs, err := s.wallets.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// MarkRedeemed flags a credit as consumed by a redemption. A credit can be
// marked only once; a second attempt fails with ErrInvalidStateTransition.
func (s *Service) MarkRedeemed(ctx context.Context, txID, redemptionID uuid.UUID) error {
	if err := s.wallets.MarkRedeemed(ctx, txID, redemptionID); err != nil {
		return fmt.Errorf("mark transaction %s redeemed: %w", txID, err)
	}
	return nil
}
