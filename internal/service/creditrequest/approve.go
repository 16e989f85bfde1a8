package creditrequest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Approve is the HOD decision. A policy request is credited to the wallet in
// the same transaction; a freelancer request moves on to the employee's
// confirmation.
func (s *Service) Approve(ctx context.Context, input DecisionInput) (_ *Result, err error) {
	defer func() { observe("approve", err) }()

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cr, err := s.requests.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if !cr.CanBeDecidedBy(caller.ID, caller.Role) {
		return nil, fmt.Errorf("%w: not the deciding HOD", domain.ErrForbidden)
	}
	if cr.Status != domain.CreditStatusPendingApproval {
		return nil, domain.NewTransitionError(entityCreditRequest, cr.ID, "approve", string(cr.Status))
	}

	approval := domain.NewTimelineEntry(domain.StepHODApproved, caller.Role, caller.Actor(), strings.TrimSpace(input.Comment), s.now())

	if cr.Type == domain.CreditRequestTypePolicy {
		return s.credit(ctx, caller, cr, approval, "approve")
	}

	updated, err := s.requests.Transition(ctx, domain.CreditTransition{
		ID:      cr.ID,
		From:    domain.CreditStatusPendingApproval,
		To:      domain.CreditStatusPendingEmployeeApproval,
		Entries: []domain.TimelineEntry{approval},
	})
	if err != nil {
		return nil, stateError(err, cr.ID, "approve", cr.Status)
	}

	s.log.InfoContext(ctx, "credit request approved by hod",
		slog.String("request_id", cr.ID.String()),
		slog.String("hod_id", caller.ID.String()),
	)

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionApprove, updated, nil),
		Notifications: []domain.Notification{notice(updated.UserID, "Credit request awaiting your approval", updated)},
	})

	return &Result{Request: updated}, nil
}

// ApproveByEmployee is the freelancer's confirmation of an HOD-approved
// request. The wallet is credited in the same transaction.
func (s *Service) ApproveByEmployee(ctx context.Context, input DecisionInput) (_ *Result, err error) {
	defer func() { observe("approve_by_employee", err) }()

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cr, err := s.requests.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if !cr.IsOwnedBy(caller.ID) {
		return nil, fmt.Errorf("%w: only the employee can confirm", domain.ErrForbidden)
	}
	if cr.Status != domain.CreditStatusPendingEmployeeApproval {
		return nil, domain.NewTransitionError(entityCreditRequest, cr.ID, "approve", string(cr.Status))
	}

	approval := domain.NewTimelineEntry(domain.StepEmployeeApproved, caller.Role, caller.Actor(), strings.TrimSpace(input.Comment), s.now())
	return s.credit(ctx, caller, cr, approval, "approve")
}

// credit moves cr to approved and posts the matching wallet credit in one
// transaction. The credit is posted in the authoritative currency at this
// moment, which may differ from the currency recorded at creation.
func (s *Service) credit(
	ctx context.Context,
	caller *domain.User,
	cr *domain.CreditRequest,
	approval domain.TimelineEntry,
	op string,
) (*Result, error) {
	var res Result

	err := s.ledger.Exclusive(ctx, cr.UserID, func(ctx context.Context) error {
		w, err := s.ledger.LockWallet(ctx, cr.UserID)
		if err != nil {
			return err
		}

		before := w.Balance
		after := before.Add(cr.Amount)
		credited := domain.NewTimelineEntry(domain.StepWalletCredited, caller.Role, caller.Actor(), "", approval.At).
			WithMetadata(map[string]any{
				"amount":        cr.Amount.StringFixed(2),
				"currency":      string(w.Currency),
				"balanceBefore": before.StringFixed(2),
				"balanceAfter":  after.StringFixed(2),
			})

		updated, err := s.requests.Transition(ctx, domain.CreditTransition{
			ID:      cr.ID,
			From:    cr.Status,
			To:      domain.CreditStatusApproved,
			Entries: []domain.TimelineEntry{approval, credited},
		})
		if err != nil {
			return stateError(err, cr.ID, op, cr.Status)
		}

		tx, err := s.ledger.Post(ctx, w, domain.LedgerPosting{
			Type:        domain.TransactionTypeCredit,
			Amount:      cr.Amount,
			Currency:    w.Currency,
			Links:       domain.TransactionLinks{CreditRequestID: &cr.ID},
			Description: creditDescription(cr),
			TimelineLog: updated.TimelineLog.Clone(),
		})
		if err != nil {
			return err
		}

		res = Result{Request: updated, Transaction: tx}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "wallet credited",
		slog.String("request_id", cr.ID.String()),
		slog.String("user_id", cr.UserID.String()),
		slog.String("transaction_id", res.Transaction.ID.String()),
		slog.String("amount", cr.Amount.StringFixed(2)),
		slog.String("currency", string(res.Transaction.Currency)),
	)

	updated := res.Request
	notify := []domain.Notification{notice(updated.UserID, "Wallet credited", updated)}
	if updated.InitiatorID != updated.UserID {
		notify = append(notify, notice(updated.InitiatorID, "Credit request approved", updated))
	}
	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit: auditRecord(caller, domain.AuditActionCredit, updated, map[string]any{
			"transactionId": res.Transaction.ID.String(),
			"balance":       res.Transaction.Balance.StringFixed(2),
		}),
		Notifications: notify,
		Emails:        s.emails(ctx, domain.EmailCreditRequestApproved, updated, updated.UserID, updated.InitiatorID),
	})

	return &res, nil
}

func creditDescription(cr *domain.CreditRequest) string {
	if cr.Description != "" {
		return cr.Description
	}
	return fmt.Sprintf("%s credit request %s", cr.Type, cr.ID)
}
