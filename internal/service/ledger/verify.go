package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
)

// VerifyBalance compares the cached wallet balance with Σcredit − Σdebit.
// Drift is reported, never repaired.
func (s *Service) VerifyBalance(ctx context.Context, userID uuid.UUID) (domain.BalanceCheck, error) {
	w, err := s.wallets.Get(ctx, userID)
	if err != nil {
		return domain.BalanceCheck{}, fmt.Errorf("get wallet: %w", err)
	}

	credits, debits, err := s.wallets.SumByType(ctx, userID)
	if err != nil {
		return domain.BalanceCheck{}, fmt.Errorf("sum transactions: %w", err)
	}

	check := domain.BalanceCheck{
		UserID:   userID,
		Cached:   w.Balance,
		Computed: credits.Sub(debits),
		Credits:  credits,
		Debits:   debits,
	}

	if !check.Consistent() {
		metrics.BalanceDrift.Inc()
		s.log.WarnContext(ctx, "wallet balance drift",
			slog.String("user_id", userID.String()),
			slog.String("cached", check.Cached.StringFixed(2)),
			slog.String("computed", check.Computed.StringFixed(2)),
		)
	}

	return check, nil
}
