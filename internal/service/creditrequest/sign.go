package creditrequest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Sign records the employee's signature on a policy request and forwards it to
// the HOD.
func (s *Service) Sign(ctx context.Context, input SignInput) (_ *domain.CreditRequest, err error) {
	defer func() { observe("sign", err) }()

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
		return nil, fmt.Errorf("%w: only the employee can sign", domain.ErrForbidden)
	}
	if cr.Type != domain.CreditRequestTypePolicy || cr.Status != domain.CreditStatusPendingSignature {
		return nil, domain.NewTransitionError(entityCreditRequest, cr.ID, "sign", string(cr.Status))
	}

	sig := strings.TrimSpace(input.SignatureID)
	entry := domain.NewTimelineEntry(domain.StepEmployeeSignature, caller.Role, caller.Actor(), "", s.now()).
		WithSignature(sig)

	updated, err := s.requests.Transition(ctx, domain.CreditTransition{
		ID:          cr.ID,
		From:        domain.CreditStatusPendingSignature,
		To:          domain.CreditStatusPendingApproval,
		Entries:     []domain.TimelineEntry{entry},
		SignatureID: &sig,
	})
	if err != nil {
		return nil, stateError(err, cr.ID, "sign", cr.Status)
	}

	s.log.InfoContext(ctx, "credit request signed",
		slog.String("request_id", cr.ID.String()),
		slog.String("user_id", caller.ID.String()),
	)

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionSign, updated, map[string]any{"signatureId": sig}),
		Notifications: []domain.Notification{notice(updated.HodID, "Credit request awaiting approval", updated)},
	})

	return updated, nil
}
