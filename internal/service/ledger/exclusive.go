package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Exclusive runs fn inside one database transaction while holding the
// distributed wallet lock for userID, when one is configured. All balance
// changes of a workflow step go through a single Exclusive call.
func (s *Service) Exclusive(ctx context.Context, userID uuid.UUID, fn func(ctx context.Context) error) error {
	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, lockKey(userID))
		if err != nil {
			return fmt.Errorf("lock wallet %s: %w", userID, err)
		}
		defer release()
	}
	return s.tx.RunInTx(ctx, fn)
}

func lockKey(userID uuid.UUID) string {
	return "wallet:" + userID.String()
}
