package redemption

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// MarkProcessing moves a pending payout to processing so other account users
// see it is being handled.
func (s *Service) MarkProcessing(ctx context.Context, id uuid.UUID) (_ *domain.RedemptionRequest, err error) {
	defer func() { observe("mark_processing", err) }()

	caller, err := s.payoutCaller(ctx)
	if err != nil {
		return nil, err
	}

	rr, err := s.redemptions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get redemption: %w", err)
	}
	if rr.Status != domain.RedemptionStatusPending {
		return nil, domain.NewTransitionError(entityRedemption, rr.ID, "start processing", string(rr.Status))
	}

	entry := domain.NewTimelineEntry(domain.StepRedemptionProcessing, caller.Role, caller.Actor(), "", s.now())
	updated, err := s.redemptions.MarkProcessing(ctx, rr.ID, []domain.TimelineEntry{entry})
	if err != nil {
		return nil, stateError(err, rr.ID, "start processing", rr.Status)
	}

	s.log.InfoContext(ctx, "redemption processing",
		slog.String("redemption_id", rr.ID.String()),
		slog.String("processor_id", caller.ID.String()),
	)

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionProcess, updated, nil),
		Notifications: []domain.Notification{notice(updated.UserID, "Redemption is being processed", updated)},
	})

	return updated, nil
}

// Process completes a payout. The employee's currency is re-resolved: an
// explicit payment currency that disagrees fails with CurrencyMismatchError and
// nothing is written; a redemption recorded in a stale currency is corrected.
func (s *Service) Process(ctx context.Context, input ProcessInput) (_ *domain.RedemptionRequest, err error) {
	defer func() { observe("process", err) }()

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
		return nil, domain.NewTransitionError(entityRedemption, rr.ID, "process", string(rr.Status))
	}

	cur, employee, err := s.currency.Authoritative(ctx, rr.UserID)
	if err != nil {
		return nil, err
	}
	if input.PaymentCurrency != nil && *input.PaymentCurrency != cur {
		return nil, &domain.CurrencyMismatchError{Expected: cur, Got: *input.PaymentCurrency}
	}

	now := s.now()
	ref := strings.TrimSpace(input.TransactionReference)
	md := map[string]any{
		"transactionReference": ref,
		"amount":               rr.Amount.StringFixed(2),
		"currency":             string(cur),
	}
	if rr.Currency != cur {
		md["previousCurrency"] = string(rr.Currency)
	}
	entry := domain.NewTimelineEntry(domain.StepRedemptionProcessed, caller.Role, caller.Actor(), "", now).WithMetadata(md)

	updated, err := s.redemptions.Complete(ctx, rr.ID, domain.RedemptionCompletion{
		ProcessedBy:          caller.ID,
		ProcessedAt:          now,
		TransactionReference: ref,
		PaymentNotes:         trimOrNil(input.PaymentNotes),
		Currency:             cur,
	}, []domain.TimelineEntry{entry})
	if err != nil {
		return nil, stateError(err, rr.ID, "process", rr.Status)
	}

	s.log.InfoContext(ctx, "redemption completed",
		slog.String("redemption_id", rr.ID.String()),
		slog.String("processor_id", caller.ID.String()),
		slog.String("reference", ref),
		slog.String("currency", string(cur)),
	)

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionProcess, updated, map[string]any{"transactionReference": ref}),
		Notifications: []domain.Notification{notice(updated.UserID, "Redemption paid out", updated)},
		Emails:        emails(domain.EmailRedemptionCompleted, updated, employee.Email),
	})

	return updated, nil
}
