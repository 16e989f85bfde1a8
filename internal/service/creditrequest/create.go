package creditrequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Create raises a credit request for an employee. Policy requests raised by an
// HOD or admin wait for the employee's signature; everything else goes to the
// HOD's approval queue.
func (s *Service) Create(ctx context.Context, input CreateInput) (_ *domain.CreditRequest, err error) {
	defer func() { observe("create", err) }()

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	amount, err := domain.ComputeAmount(input.BaseAmount, input.Bonus, input.Deductions, input.AmountItems)
	if err != nil {
		return nil, err
	}
	if amount.Amount.GreaterThan(s.maxAmount) {
		return nil, domain.NewValidationError("amount", "exceeds the maximum of "+s.maxAmount.StringFixed(2))
	}

	employee, err := s.users.GetByID(ctx, input.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("userId", "employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if !employee.HasHOD() {
		return nil, domain.NewValidationError("userId", "employee has no HOD assigned")
	}

	switch input.Type {
	case domain.CreditRequestTypePolicy:
		if err := s.checkPolicyInitiator(ctx, caller, employee.ID, *input.PolicyID); err != nil {
			return nil, err
		}
	case domain.CreditRequestTypeFreelancer:
		if !employee.IsFreelancer() {
			return nil, domain.NewValidationError("userId", "employee is not a freelancer")
		}
		if err := s.checkFreelancerInitiator(ctx, caller, employee.ID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	cur := domain.AuthoritativeCurrency(*employee)
	status := domain.InitialCreditStatus(input.Type, caller.Role)
	description := strings.TrimSpace(input.Description)

	created := domain.NewTimelineEntry(domain.StepRequestCreated, caller.Role, caller.Actor(), description, now).
		WithMetadata(map[string]any{
			"type":     string(input.Type),
			"amount":   amount.Amount.StringFixed(2),
			"currency": string(cur),
			"status":   string(status),
		})

	var policyID *uuid.UUID
	if input.Type == domain.CreditRequestTypePolicy {
		policyID = input.PolicyID
	}

	cr, err := s.requests.Create(ctx, &domain.CreditRequest{
		ID:          uuid.New(),
		UserID:      employee.ID,
		InitiatorID: caller.ID,
		HodID:       *employee.HodID,
		PolicyID:    policyID,
		Type:        input.Type,
		BaseAmount:  amount.Base,
		Bonus:       amount.Bonus,
		Deductions:  amount.Deductions,
		Amount:      amount.Amount,
		Currency:    cur,
		AmountItems: input.AmountItems,
		Attachments: input.Attachments,
		Description: description,
		Status:      status,
		TimelineLog: domain.TimelineLog{created},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create credit request: %w", err)
	}

	s.log.InfoContext(ctx, "credit request created",
		slog.String("request_id", cr.ID.String()),
		slog.String("user_id", cr.UserID.String()),
		slog.String("initiator_id", caller.ID.String()),
		slog.String("type", string(cr.Type)),
		slog.String("status", string(cr.Status)),
		slog.String("amount", cr.Amount.StringFixed(2)),
		slog.String("currency", string(cr.Currency)),
	)

	next := cr.HodID
	title := "Credit request awaiting approval"
	if cr.Status == domain.CreditStatusPendingSignature {
		next = cr.UserID
		title = "Credit request awaiting your signature"
	}
	s.dispatch.Publish(ctx, domain.SideEffects{
		Audit:         auditRecord(caller, domain.AuditActionCreate, cr, nil),
		Notifications: []domain.Notification{notice(next, title, cr)},
		Emails:        s.emails(ctx, domain.EmailCreditRequestCreated, cr, next),
	})

	return cr, nil
}

func (s *Service) checkPolicyInitiator(ctx context.Context, caller *domain.User, employeeID, policyID uuid.UUID) error {
	assignment, err := s.policies.GetAssignment(ctx, employeeID, policyID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError("policyId", "employee has no active assignment for this policy")
	}
	if err != nil {
		return fmt.Errorf("get policy assignment: %w", err)
	}
	if !assignment.IsActive {
		return domain.NewValidationError("policyId", "employee has no active assignment for this policy")
	}

	if caller.Role.IsManager() {
		return nil
	}
	initiators, err := s.policies.InitiatorsForAssignment(ctx, assignment.ID)
	if err != nil {
		return fmt.Errorf("list assignment initiators: %w", err)
	}
	if !isInitiator(initiators, caller.ID) {
		return fmt.Errorf("%w: not an initiator for this policy assignment", domain.ErrForbidden)
	}
	return nil
}

func (s *Service) checkFreelancerInitiator(ctx context.Context, caller *domain.User, employeeID uuid.UUID) error {
	if caller.Role.IsManager() {
		return nil
	}
	initiators, err := s.policies.InitiatorsForEmployee(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("list employee initiators: %w", err)
	}
	if !isInitiator(initiators, caller.ID) {
		return fmt.Errorf("%w: not an initiator for this employee", domain.ErrForbidden)
	}
	return nil
}

func isInitiator(initiators []domain.Initiator, userID uuid.UUID) bool {
	return slices.ContainsFunc(initiators, func(i domain.Initiator) bool { return i.UserID == userID })
}
