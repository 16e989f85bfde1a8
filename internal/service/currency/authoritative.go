package currency

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// Authoritative loads the user and returns the currency all of their monetary
// records must carry.
func (s *Service) Authoritative(ctx context.Context, userID uuid.UUID) (domain.Currency, *domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return domain.AuthoritativeCurrency(*u), u, nil
}
