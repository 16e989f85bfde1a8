package redemption

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Reject refuses an open payout and restores the employee's balance with a
// compensating credit. The original credit stays redeemed; the reversal is a
// new credit that can be redeemed on its own.
func (s *Service) Reject(ctx context.Context, input RejectInput) (_ *Result, err error) {
	defer func() { observe("reject", err) }()

	caller, err := s.payoutCaller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rr, err := s.redemptions.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get redemption: %w", err)
	}
	if !rr.Status.IsOpen() {
		return nil, domain.NewTransitionError(entityRedemption, rr.ID, "reject", string(rr.Status))
	}

	reason := strings.TrimSpace(input.Reason)
	var res Result

	err = s.ledger.Exclusive(ctx, rr.UserID, func(ctx context.Context) error {
		w, err := s.ledger.LockWallet(ctx, rr.UserID)
		if err != nil {
			return err
		}

		now := s.now()
		before := w.Balance
		rejected := domain.NewTimelineEntry(domain.StepRedemptionRejected, caller.Role, caller.Actor(), reason, now).
			WithMetadata(map[string]any{"reason": reason})
		reversed := domain.NewTimelineEntry(domain.StepWalletReversed, caller.Role, caller.Actor(), "", now).
			WithMetadata(map[string]any{
				"amount":        rr.Amount.StringFixed(2),
				"currency":      string(w.Currency),
				"balanceBefore": before.StringFixed(2),
				"balanceAfter":  before.Add(rr.Amount).StringFixed(2),
			})

		updated, err := s.redemptions.Reject(ctx, rr.ID, domain.RedemptionRejection{
			ProcessedBy: caller.ID,
			ProcessedAt: now,
			Reason:      reason,
		}, []domain.TimelineEntry{rejected, reversed})
		if err != nil {
			return stateError(err, rr.ID, "reject", rr.Status)
		}

		reversal, err := s.ledger.Post(ctx, w, domain.LedgerPosting{
			Type:        domain.TransactionTypeCredit,
			Amount:      rr.Amount,
			Currency:    w.Currency,
			Links:       domain.TransactionLinks{RedemptionRequestID: &rr.ID, SourceTransactionID: rr.DebitTransactionID},
			Description: "Reversal of redemption " + rr.ID.String(),
			TimelineLog: updated.TimelineLog.Clone(),
		})
		if err != nil {
			return err
		}

		res = Result{Redemption: updated, Transaction: reversal}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated := res.Redemption
	s.log.InfoContext(ctx, "redemption rejected",
		slog.String("redemption_id", updated.ID.String()),
		slog.String("processor_id", caller.ID.String()),
		slog.String("reversal_id", res.Transaction.ID.String()),
	)

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit: auditRecord(caller, domain.AuditActionReject, updated, map[string]any{
			"reason":                reason,
			"reversalTransactionId": res.Transaction.ID.String(),
		}),
		Notifications: []domain.Notification{notice(updated.UserID, "Redemption rejected", updated)},
		Emails:        s.emailsFor(ctx, domain.EmailRedemptionRejected, updated),
	})

	return &res, nil
}
