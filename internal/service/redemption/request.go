package redemption

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Request converts one unredeemed credit into a pending payout. The redemption
// is created, the credit marked redeemed and the debit posted in a single
// transaction; a credit can back at most one redemption.
func (s *Service) Request(ctx context.Context, input RequestInput) (_ *Result, err error) {
	defer func() { observe("request", err) }()

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	credit, err := s.ledger.GetTransaction(ctx, input.CreditTransactionID)
	if err != nil {
		return nil, err
	}
	if err := checkRedeemable(caller, credit); err != nil {
		return nil, err
	}

	cur, employee, err := s.currency.Authoritative(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if credit.Currency != cur {
		return nil, &domain.CurrencyMismatchError{Expected: cur, Got: credit.Currency}
	}

	var res Result
	err = s.ledger.Exclusive(ctx, caller.ID, func(ctx context.Context) error {
		w, err := s.ledger.LockWallet(ctx, caller.ID)
		if err != nil {
			return err
		}

		// Re-read under the wallet lock; a concurrent request may have won.
		credit, err := s.ledger.GetTransaction(ctx, credit.ID)
		if err != nil {
			return err
		}
		if err := checkRedeemable(caller, credit); err != nil {
			return err
		}
		if w.Balance.LessThan(credit.Amount) {
			return &domain.InsufficientBalanceError{Balance: w.Balance, Required: credit.Amount, Currency: w.Currency}
		}

		now := s.now()
		requested := domain.NewTimelineEntry(domain.StepRedemptionRequested, caller.Role, caller.Actor(), strings.TrimSpace(input.Notes), now).
			WithMetadata(map[string]any{
				"amount":              credit.Amount.StringFixed(2),
				"currency":            string(cur),
				"creditTransactionId": credit.ID.String(),
			})

		rr, err := s.redemptions.Create(ctx, &domain.RedemptionRequest{
			ID:                  uuid.New(),
			UserID:              caller.ID,
			Amount:              credit.Amount,
			Currency:            cur,
			CreditTransactionID: credit.ID,
			Status:              domain.RedemptionStatusPending,
			Notes:               strings.TrimSpace(input.Notes),
			TimelineLog:         credit.TimelineLog.Clone().Append(requested),
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		if err != nil {
			return redeemConflict(err, credit.ID)
		}

		if err := s.ledger.MarkRedeemed(ctx, credit.ID, rr.ID); err != nil {
			return redeemConflict(err, credit.ID)
		}

		before := w.Balance
		debit, err := s.ledger.Post(ctx, w, domain.LedgerPosting{
			Type:        domain.TransactionTypeDebit,
			Amount:      credit.Amount,
			Currency:    cur,
			Links:       domain.TransactionLinks{RedemptionRequestID: &rr.ID, SourceTransactionID: &credit.ID},
			Description: "Redemption " + rr.ID.String(),
			TimelineLog: rr.TimelineLog.Clone(),
		})
		if err != nil {
			return err
		}

		debited := domain.NewTimelineEntry(domain.StepWalletDebited, caller.Role, caller.Actor(), "", now).
			WithMetadata(map[string]any{
				"amount":        credit.Amount.StringFixed(2),
				"currency":      string(cur),
				"balanceBefore": before.StringFixed(2),
				"balanceAfter":  w.Balance.StringFixed(2),
				"transactionId": debit.ID.String(),
			})
		rr, err = s.redemptions.AttachDebit(ctx, rr.ID, debit.ID, []domain.TimelineEntry{debited})
		if err != nil {
			return fmt.Errorf("attach debit: %w", err)
		}

		res = Result{Redemption: rr, Transaction: debit}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rr := res.Redemption
	s.log.InfoContext(ctx, "redemption requested",
		slog.String("redemption_id", rr.ID.String()),
		slog.String("user_id", rr.UserID.String()),
		slog.String("credit_transaction_id", rr.CreditTransactionID.String()),
		slog.String("amount", rr.Amount.StringFixed(2)),
		slog.String("currency", string(rr.Currency)),
	)

	s.generateProofAsync(ctx, *rr, *employee)
	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionRedeem, rr, map[string]any{"debitTransactionId": res.Transaction.ID.String()}),
		Notifications: s.staffNotices(ctx, "New redemption request", rr),
		Emails:        emails(domain.EmailRedemptionRequested, rr, employee.Email),
	})

	return &res, nil
}

func checkRedeemable(caller *domain.User, tx *domain.WalletTransaction) error {
	if tx.UserID != caller.ID {
		return fmt.Errorf("%w: transaction belongs to another user", domain.ErrForbidden)
	}
	if tx.Type != domain.TransactionTypeCredit {
		return domain.NewValidationError("creditTransactionId", "only credit transactions can be redeemed")
	}
	if tx.Redeemed {
		return redeemConflict(domain.ErrInvalidStateTransition, tx.ID)
	}
	return nil
}

func redeemConflict(err error, creditID uuid.UUID) error {
	if errors.Is(err, domain.ErrInvalidStateTransition) {
		return domain.NewTransitionError("wallet_transaction", creditID, "redeem", "redeemed")
	}
	return err
}
