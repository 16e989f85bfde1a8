package redemption

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Get returns a redemption visible to the caller: its owner or payout staff.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.RedemptionRequest, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	rr, err := s.redemptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rr.UserID != caller.ID && !caller.Role.CanProcessPayouts() {
		// Hide existence from other employees.
		return nil, domain.ErrNotFound
	}
	return rr, nil
}

// List returns the caller's own redemptions, or the payout queue for account
// users and admins.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.RedemptionRequest, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.RedemptionFilter{
		Statuses: input.Statuses,
		Limit:    domain.ClampLimit(input.Limit),
		Offset:   input.Offset,
	}
	if caller.Role.CanProcessPayouts() {
		filter.UserID = input.UserID
	} else {
		filter.UserID = &caller.ID
	}
	return s.redemptions.List(ctx, filter)
}

// ExportQueue writes the payout queue as a spreadsheet. Without a status
// filter it exports the open items. The queue is read page by page from
// input.Offset to its end.
func (s *Service) ExportQueue(ctx context.Context, w io.Writer, input ListInput) error {
	if _, err := s.payoutCaller(ctx); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	statuses := input.Statuses
	if len(statuses) == 0 {
		statuses = []domain.RedemptionStatus{domain.RedemptionStatusPending, domain.RedemptionStatusProcessing}
	}

	var rows []domain.RedemptionRequest
	for offset := input.Offset; ; offset += domain.MaxPageLimit {
		page, err := s.redemptions.List(ctx, domain.RedemptionFilter{
			UserID:   input.UserID,
			Statuses: statuses,
			Limit:    domain.MaxPageLimit,
			Offset:   offset,
		})
		if err != nil {
			return err
		}
		rows = append(rows, page...)
		if len(page) < domain.MaxPageLimit {
			break
		}
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, rr := range rows {
		ids = append(ids, rr.UserID)
	}
	employees, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve employees: %w", err)
	}
	byID := make(map[uuid.UUID]domain.User, len(employees))
	for _, u := range employees {
		byID[u.ID] = u
	}

	return s.exporter.ExportRedemptions(w, rows, byID)
}
