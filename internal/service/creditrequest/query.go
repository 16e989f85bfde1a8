package creditrequest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Get returns a request the caller is allowed to see: their own, one they
// raised, one addressed to them as HOD, or any for admin and account users.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.CreditRequest, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	cr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if !canView(caller, cr) {
		return nil, domain.ErrForbidden
	}
	return cr, nil
}

// List returns requests scoped by the caller's role.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.CreditRequest, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := domain.CreditRequestFilter{
		Status: input.Status,
		Type:   input.Type,
		Limit:  domain.ClampLimit(input.Limit),
		Offset: input.Offset,
	}

	switch {
	case input.Initiated:
		f.InitiatorID = &caller.ID
		f.UserID = input.UserID
	case caller.Role == domain.RoleAdmin || caller.Role == domain.RoleAccount:
		f.UserID = input.UserID
	case caller.Role == domain.RoleHOD && !input.Mine:
		f.HodID = &caller.ID
		f.UserID = input.UserID
	default:
		f.UserID = &caller.ID
	}

	list, err := s.requests.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}
	return list, nil
}

func canView(u *domain.User, cr *domain.CreditRequest) bool {
	switch {
	case u.Role == domain.RoleAdmin || u.Role == domain.RoleAccount:
		return true
	case cr.UserID == u.ID || cr.InitiatorID == u.ID:
		return true
	case u.Role == domain.RoleHOD:
		return cr.HodID == u.ID
	}
	return false
}
