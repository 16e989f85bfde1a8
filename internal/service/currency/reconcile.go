package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/internal/metrics"
)

// ReconcileResult counts the records rewritten for one user.
type ReconcileResult struct {
	UserID             uuid.UUID
	Currency           domain.Currency
	NoOp               bool
	User               bool
	Wallet             bool
	CreditRequests     int64
	WalletTransactions int64
	Redemptions        int64
}

// Changed returns the number of records that were rewritten.
func (r ReconcileResult) Changed() int64 {
	n := r.CreditRequests + r.WalletTransactions + r.Redemptions
	if r.User {
		n++
	}
	if r.Wallet {
		n++
	}
	return n
}

// Reconcile rewrites the currency of the user, their wallet and every credit
// request, wallet transaction and redemption so that all of them carry the
// authoritative currency. Amounts are never touched. A missing user is a no-op.
// Running it twice in a row changes nothing the second time.
func (s *Service) Reconcile(ctx context.Context, userID uuid.UUID) (ReconcileResult, error) {
	res := ReconcileResult{UserID: userID}

	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		res.NoOp = true
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("get user %s: %w", userID, err)
	}

	cur := domain.AuthoritativeCurrency(*u)
	res.Currency = cur

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if res.User, err = s.users.UpdateCurrency(ctx, userID, cur); err != nil {
			return fmt.Errorf("update user currency: %w", err)
		}
		if res.Wallet, err = s.wallets.SetCurrency(ctx, userID, cur); err != nil {
			return fmt.Errorf("update wallet currency: %w", err)
		}
		if res.CreditRequests, err = s.requests.UpdateCurrencyForUser(ctx, userID, cur); err != nil {
			return fmt.Errorf("update credit request currency: %w", err)
		}
		if res.WalletTransactions, err = s.wallets.UpdateCurrencyForUser(ctx, userID, cur); err != nil {
			return fmt.Errorf("update wallet transaction currency: %w", err)
		}
		if res.Redemptions, err = s.redemptions.UpdateCurrencyForUser(ctx, userID, cur); err != nil {
			return fmt.Errorf("update redemption currency: %w", err)
		}

		return nil
	})
	if err != nil {
		return ReconcileResult{UserID: userID}, err
	}

	res.NoOp = res.Changed() == 0
	if !res.NoOp {
		s.log.InfoContext(ctx, "currency reconciled",
			slog.String("user_id", userID.String()),
			slog.String("currency", string(cur)),
			slog.Int64("changed", res.Changed()),
		)
		s.recordAudit(ctx, res)
	}

	return res, nil
}

// recordAudit writes the audit record of a committed reconciliation. A failure
// is logged and counted; the corrected records stay.
func (s *Service) recordAudit(ctx context.Context, res ReconcileResult) {
	actorID, _ := actorFromCtx(ctx, res.UserID)
	err := s.audit.Log(context.WithoutCancel(ctx), domain.AuditRecord{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     domain.AuditActionReconcileCurrency,
		EntityType: domain.EntityTypeUser,
		EntityID:   res.UserID,
		Details: map[string]any{
			"currency":           string(res.Currency),
			"user":               res.User,
			"wallet":             res.Wallet,
			"creditRequests":     res.CreditRequests,
			"walletTransactions": res.WalletTransactions,
			"redemptions":        res.Redemptions,
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.SideEffectFailures.WithLabelValues("audit").Inc()
		s.log.ErrorContext(ctx, "reconcile audit failed",
			slog.String("user_id", res.UserID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// ReconcileSummary aggregates a ReconcileAll run.
type ReconcileSummary struct {
	Users   int
	Changed int
	Failed  int
}

// ReconcileAll reconciles every user with a bounded number of workers. A
// failure for one user does not stop the others; failures are joined into the
// returned error.
func (s *Service) ReconcileAll(ctx context.Context) (ReconcileSummary, error) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return ReconcileSummary{}, fmt.Errorf("list users: %w", err)
	}

	var (
		mu      sync.Mutex
		summary = ReconcileSummary{Users: len(ids)}
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			res, err := s.Reconcile(gctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				errs = append(errs, fmt.Errorf("user %s: %w", id, err))
				return nil
			}
			if !res.NoOp {
				summary.Changed++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}

	s.log.InfoContext(ctx, "currency reconciliation finished",
		slog.Int("users", summary.Users),
		slog.Int("changed", summary.Changed),
		slog.Int("failed", summary.Failed),
	)

	return summary, errors.Join(errs...)
}
