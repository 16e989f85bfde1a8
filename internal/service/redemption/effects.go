package redemption

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

func auditRecord(actor *domain.User, action domain.AuditAction, rr *domain.RedemptionRequest, details map[string]any) *domain.AuditRecord {
	d := map[string]any{
		"status":              string(rr.Status),
		"amount":              rr.Amount.StringFixed(2),
		"currency":            string(rr.Currency),
		"creditTransactionId": rr.CreditTransactionID.String(),
	}
	for k, v := range details {
		d[k] = v
	}
	return &domain.AuditRecord{
		ID:         uuid.New(),
		ActorID:    actor.ID,
		Action:     action,
		EntityType: domain.EntityTypeRedemption,
		EntityID:   rr.ID,
		Details:    d,
		CreatedAt:  time.Now().UTC(),
	}
}

func notice(userID uuid.UUID, title string, rr *domain.RedemptionRequest) domain.Notification {
	return domain.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Message:     rr.Amount.StringFixed(2) + " " + string(rr.Currency),
		ActionRoute: "/redemptions/" + rr.ID.String(),
		CreatedAt:   time.Now().UTC(),
	}
}

// staffNotices tells every account user about a new item in the payout queue.
func (s *Service) staffNotices(ctx context.Context, title string, rr *domain.RedemptionRequest) []domain.Notification {
	staff, err := s.users.ListByRole(ctx, domain.RoleAccount)
	if err != nil {
		s.log.WarnContext(ctx, "resolve payout staff",
			slog.String("redemption_id", rr.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	out := make([]domain.Notification, 0, len(staff))
	for _, u := range staff {
		out = append(out, notice(u.ID, title, rr))
	}
	return out
}

// emailsFor resolves the employee's address and builds the email.
func (s *Service) emailsFor(ctx context.Context, kind domain.EmailKind, rr *domain.RedemptionRequest) []domain.WorkflowEmail {
	u, err := s.users.GetByID(ctx, rr.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "resolve email recipient",
			slog.String("redemption_id", rr.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return emails(kind, rr, u.Email)
}

func emails(kind domain.EmailKind, rr *domain.RedemptionRequest, to string) []domain.WorkflowEmail {
	if to == "" {
		return nil
	}
	payload := map[string]any{
		"redemptionId": rr.ID.String(),
		"status":       string(rr.Status),
		"amount":       rr.Amount.StringFixed(2),
		"currency":     string(rr.Currency),
	}
	if rr.TransactionReference != nil {
		payload["transactionReference"] = *rr.TransactionReference
	}
	if rr.RejectionReason != nil {
		payload["reason"] = *rr.RejectionReason
	}
	return []domain.WorkflowEmail{{Kind: kind, Recipients: []string{to}, Payload: payload}}
}
