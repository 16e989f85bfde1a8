package creditrequest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// RejectByEmployee lets the employee decline a request: a policy request
// before signing, or a freelancer request after HOD approval.
func (s *Service) RejectByEmployee(ctx context.Context, input DecisionInput) (_ *domain.CreditRequest, err error) {
	defer func() { observe("reject_by_employee", err) }()

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
		return nil, fmt.Errorf("%w: only the employee can reject here", domain.ErrForbidden)
	}

	var to domain.CreditRequestStatus
	switch cr.Status {
	case domain.CreditStatusPendingSignature:
		to = domain.CreditStatusRejectedByUser
	case domain.CreditStatusPendingEmployeeApproval:
		to = domain.CreditStatusRejectedByEmployee
	default:
		return nil, domain.NewTransitionError(entityCreditRequest, cr.ID, "reject", string(cr.Status))
	}

	return s.reject(ctx, caller, cr, to, domain.StepEmployeeRejected, strings.TrimSpace(input.Comment), "reject")
}

// RejectByHod lets the deciding HOD or an admin refuse a request waiting for
// approval. A reason is required.
func (s *Service) RejectByHod(ctx context.Context, input DecisionInput) (_ *domain.CreditRequest, err error) {
	defer func() { observe("reject_by_hod", err) }()

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(input.Comment)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "required")
	}

	cr, err := s.requests.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if !cr.CanBeDecidedBy(caller.ID, caller.Role) {
		return nil, fmt.Errorf("%w: not the deciding HOD", domain.ErrForbidden)
	}
	if cr.Status != domain.CreditStatusPendingApproval {
		return nil, domain.NewTransitionError(entityCreditRequest, cr.ID, "reject", string(cr.Status))
	}

	return s.reject(ctx, caller, cr, domain.CreditStatusRejectedByHOD, domain.StepHODRejected, reason, "reject")
}

func (s *Service) reject(
	ctx context.Context,
	caller *domain.User,
	cr *domain.CreditRequest,
	to domain.CreditRequestStatus,
	step domain.TimelineStep,
	reason, op string,
) (*domain.CreditRequest, error) {
	entry := domain.NewTimelineEntry(step, caller.Role, caller.Actor(), reason, s.now())
	if reason != "" {
		entry = entry.WithMetadata(map[string]any{"reason": reason})
	}

	updated, err := s.requests.Transition(ctx, domain.CreditTransition{
		ID:      cr.ID,
		From:    cr.Status,
		To:      to,
		Entries: []domain.TimelineEntry{entry},
	})
	if err != nil {
		return nil, stateError(err, cr.ID, op, cr.Status)
	}

	s.log.InfoContext(ctx, "credit request rejected",
		slog.String("request_id", cr.ID.String()),
		slog.String("by", caller.ID.String()),
		slog.String("status", string(to)),
	)

	notify := []domain.Notification{notice(updated.InitiatorID, "Credit request rejected", updated)}
	if caller.ID != updated.UserID {
		notify = append(notify, notice(updated.UserID, "Credit request rejected", updated))
	}
	if caller.ID != updated.HodID && step == domain.StepEmployeeRejected {
		notify = append(notify, notice(updated.HodID, "Credit request rejected", updated))
	}

	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionReject, updated, map[string]any{"reason": reason}),
		Notifications: notify,
		Emails:        s.emails(ctx, domain.EmailCreditRequestRejected, updated, updated.UserID, updated.InitiatorID, updated.HodID),
	})

	return updated, nil
}
